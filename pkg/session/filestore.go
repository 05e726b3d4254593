package session

import (
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// FileStore persists the session in a small SQLite database so it
// survives process restarts. The in-memory copy is authoritative for
// reads; the database is a mirror. A mirror write that fails is logged
// and otherwise ignored, so a read-only or missing state directory
// degrades to memory-only behavior instead of blocking login.
type FileStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	cur    Session
	logger zerolog.Logger
}

// NewFileStore opens (or creates) the session database at path and
// rehydrates the persisted session, if any.
func NewFileStore(path string, logger zerolog.Logger) (*FileStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	f := &FileStore{
		db:     db,
		logger: logger.With().Str("component", "session").Logger(),
	}

	if err := f.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	f.cur = f.load()
	return f, nil
}

func (f *FileStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	_, err := f.db.Exec(schema)
	return err
}

// load reads the persisted fields back into a Session. Unparseable or
// partial rows read as an empty session.
func (f *FileStore) load() Session {
	rows, err := f.db.Query(`SELECT key, value FROM credentials`)
	if err != nil {
		f.logger.Warn().Err(err).Msg("failed to rehydrate session")
		return Session{}
	}
	defer rows.Close()

	values := make(map[string]string, 3)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			f.logger.Warn().Err(err).Msg("failed to scan credential row")
			return Session{}
		}
		values[k] = v
	}

	s := Session{
		AccessToken:  values[keyAccessToken],
		RefreshToken: values[keyRefreshToken],
	}
	if raw, ok := values[keyExpiration]; ok {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			s.ExpiresAt = time.UnixMilli(ms)
		}
	}
	return normalize(s)
}

func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cur = s

	tx, err := f.db.Begin()
	if err != nil {
		f.logger.Warn().Err(err).Msg("session not persisted, keeping in memory")
		return nil
	}
	pairs := map[string]string{
		keyAccessToken:  s.AccessToken,
		keyRefreshToken: s.RefreshToken,
		keyExpiration:   strconv.FormatInt(s.ExpiresAt.UnixMilli(), 10),
	}
	for k, v := range pairs {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO credentials (key, value) VALUES (?, ?)`, k, v); err != nil {
			tx.Rollback()
			f.logger.Warn().Err(err).Msg("session not persisted, keeping in memory")
			return nil
		}
	}
	if err := tx.Commit(); err != nil {
		f.logger.Warn().Err(err).Msg("session not persisted, keeping in memory")
	}
	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cur = Session{}

	if _, err := f.db.Exec(`DELETE FROM credentials`); err != nil {
		f.logger.Warn().Err(err).Msg("failed to clear persisted session")
	}
	return nil
}

func (f *FileStore) Read() Session {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return normalize(f.cur)
}

// Close closes the underlying database.
func (f *FileStore) Close() error {
	return f.db.Close()
}
