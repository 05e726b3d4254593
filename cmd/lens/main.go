// Command lens is the StartupLens terminal dashboard: submit business
// ideas for AI analysis, poll their validation reports, and manage the
// business plans derived from them.
//
// Usage:
//
//	LENS_API_URL=https://api.startuplens.io/api lens login -u demo -p secret1
//	lens ideas list --sort top
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/startuplens/lens/internal/api"
	"github.com/startuplens/lens/internal/cache"
	"github.com/startuplens/lens/internal/cli"
	"github.com/startuplens/lens/internal/config"
	"github.com/startuplens/lens/internal/dashboard"
	"github.com/startuplens/lens/internal/guard"
	"github.com/startuplens/lens/internal/metrics"
	"github.com/startuplens/lens/pkg/session"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	// Setup structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("ENVIRONMENT") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Session store: durable when the state directory is usable,
	// memory-only otherwise.
	var sessions session.Store
	if path, err := cfg.SessionPath(); err != nil {
		logger.Warn().Err(err).Msg("no usable state directory, session will not persist")
	} else if fileStore, err := session.NewFileStore(path, logger); err != nil {
		logger.Warn().Err(err).Msg("failed to open session store, session will not persist")
	} else {
		sessions = fileStore
		defer fileStore.Close()
	}
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}

	m := metrics.New()

	client := api.NewClient(cfg.APIURL, sessions, logger)
	client.SetHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})
	client.SetMetrics(m)

	store := cache.New(cfg.CacheCapacity, logger)
	store.SetMetrics(m)

	auth := session.NewManager(sessions, client, logger)
	g := guard.New(auth, cli.Notifier{W: os.Stderr}, cli.Navigator{W: os.Stderr}, logger)
	data := dashboard.New(client, store, logger)

	if cfg.MetricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, m.Handler()); err != nil {
				logger.Warn().Err(err).Msg("metrics endpoint stopped")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Config:   cfg,
		Logger:   logger,
		Sessions: sessions,
		Auth:     auth,
		API:      client,
		Data:     data,
		Guard:    g,
		Out:      os.Stdout,
		Err:      os.Stderr,
	}

	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		cli.RenderError(os.Stderr, err)
		os.Exit(1)
	}
}
