// Package cli implements the lens terminal commands. It is a thin
// presentation layer: all data access goes through the dashboard
// service and all gating through the route guard.
package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/startuplens/lens/internal/api"
	"github.com/startuplens/lens/internal/apierr"
	"github.com/startuplens/lens/internal/config"
	"github.com/startuplens/lens/internal/dashboard"
	"github.com/startuplens/lens/internal/guard"
	"github.com/startuplens/lens/pkg/session"
)

// errLoginRequired marks a command aborted by the route guard; the
// guard has already surfaced the notice, so main prints nothing more.
var errLoginRequired = errors.New("login required")

// IsLoginRequired reports whether err is the guard's silent abort.
func IsLoginRequired(err error) bool {
	return errors.Is(err, errLoginRequired)
}

// App bundles the wired components the commands run against.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	Sessions session.Store
	Auth     *session.Manager
	API      *api.Client
	Data     *dashboard.Service
	Guard    *guard.Guard

	Out io.Writer
	Err io.Writer
}

// Notifier surfaces guard notices on stderr, the terminal stand-in
// for a toast.
type Notifier struct {
	W io.Writer
}

func (n Notifier) Notify(msg string) {
	fmt.Fprintf(n.W, "! %s\n", msg)
}

// Navigator renders a redirect as a hint, since a terminal has no
// navigation stack.
type Navigator struct {
	W io.Writer
}

func (n Navigator) NavigateTo(route string) {
	if route == guard.LoginRoute {
		fmt.Fprintln(n.W, "Run 'lens login' to start a new session.")
		return
	}
	fmt.Fprintf(n.W, "Continue at %s\n", route)
}

// requireAuth runs the route guard before a protected command.
func (a *App) requireAuth() error {
	if !a.Guard.Require() {
		return errLoginRequired
	}
	return nil
}

// RenderError writes a user-visible signal for a failed command.
// Field-keyed validation errors print per field; everything else
// prints as a single notice.
func RenderError(w io.Writer, err error) {
	if IsLoginRequired(err) {
		return
	}
	if fields := apierr.FieldsOf(err); len(fields) > 0 {
		fmt.Fprintln(w, "! Please fix the following:")
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, msg := range fields[name] {
				fmt.Fprintf(w, "    %s: %s\n", name, msg)
			}
		}
		return
	}
	if apierr.IsAuthFailure(err) {
		fmt.Fprintln(w, "! Your session is no longer valid. Run 'lens login' to continue.")
		return
	}
	fmt.Fprintf(w, "! %s\n", err)
}
