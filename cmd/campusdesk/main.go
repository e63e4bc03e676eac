package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/naveenspark/campusdesk/internal/config"
	"github.com/naveenspark/campusdesk/internal/logging"
	"github.com/naveenspark/campusdesk/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	cancel()

	var exit exitCode
	switch {
	case errors.As(err, &exit):
		os.Exit(int(exit))
	case err != nil:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// exitCode ends a command with a status but no further message; the command
// has already reported what went wrong.
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func codeErr(code int) error {
	if code == 0 {
		return nil
	}
	return exitCode(code)
}

// app holds what every command needs: resolved config, the gateway, and
// the output streams.
type app struct {
	cfg     config.Config
	gateway *client.Gateway
	out     io.Writer
	errOut  io.Writer
	json    bool
	expired atomic.Bool
	closers []io.Closer
}

func newApp(cfg config.Config, out, errOut io.Writer) (*app, error) {
	store, storeCloser, err := cfg.OpenStore()
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	logger, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		storeCloser.Close() //nolint:errcheck
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		out:     out,
		errOut:  errOut,
		closers: []io.Closer{storeCloser, logCloser},
	}
	a.gateway = client.New(store, cfg.Endpoints(),
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		client.WithLogger(logger),
		client.WithInvalidationHandler(a.onInvalidated),
	)
	return a, nil
}

// onInvalidated is the CLI's route back to login: it cannot navigate, so it
// tells the user how to sign in again.
func (a *app) onInvalidated(reason client.InvalidationReason) {
	if reason != client.ReasonUnauthorized {
		return
	}
	if a.expired.CompareAndSwap(false, true) {
		fmt.Fprintln(a.errOut, errStyle.Render("session expired: run `campusdesk login`"))
	}
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		if c != nil {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// fail reports err and returns the exit status for a failed command. When
// the session was invalidated the expiry notice has already been printed.
func (a *app) fail(err error) int {
	if a.expired.Load() {
		return 1
	}
	fmt.Fprintf(a.errOut, "%s %v\n", errStyle.Render("error:"), err)
	return 1
}
