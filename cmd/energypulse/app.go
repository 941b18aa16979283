package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/clock"
	"github.com/goodnatureofminers/energypulse/internal/dashboard"
	"github.com/goodnatureofminers/energypulse/internal/metrics"
	"github.com/goodnatureofminers/energypulse/internal/service"
	"github.com/goodnatureofminers/energypulse/internal/session"
	"go.uber.org/zap"
)

// app holds everything commands share. It is built once, after flags are parsed.
type app struct {
	ctx  context.Context
	opts options
	out  io.Writer

	logger   *zap.Logger
	sessions *session.Store
	services *service.Services
	clock    clock.Clock
	account  *dashboard.Account
}

func (a *app) init() error {
	logger, err := newLogger(a.opts.LogLevel, a.opts.LogDev)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger

	if a.opts.MetricsAddr != "" {
		startMetricsServer(a.ctx, a.opts.MetricsAddr, logger)
	}

	path := a.opts.SessionFile
	if path == "" {
		if path, err = session.DefaultPath(); err != nil {
			return fmt.Errorf("resolve session file: %w", err)
		}
	}
	a.sessions = session.NewStore(session.NewFileStorage(path), logger)
	if err := a.sessions.Load(); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	api, err := apiclient.New(apiclient.Config{
		BaseURL:           a.opts.APIURL,
		RequestsPerSecond: a.opts.RPS,
		HTTPClient:        &http.Client{Timeout: a.opts.HTTPTimeout},
	}, a.sessions, metrics.NewAPIClient(), logger)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	a.services = service.New(api)
	a.clock = clock.Real()
	a.account = dashboard.NewAccount(a.services.Auth, a.services.Users, a.sessions, logger)
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// requireSession fails early when no credential is stored.
func (a *app) requireSession() error {
	if _, ok := a.sessions.Current(); !ok {
		return errors.New("not signed in, run `energypulse login` first")
	}
	return nil
}

// isAdmin reports whether the stored identity is an administrator.
func (a *app) isAdmin() bool {
	sess, ok := a.sessions.Current()
	return ok && sess.User.IsAdmin()
}

// explain turns an API failure into the message a user should see.
func explain(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if apiclient.IsUnauthenticated(err) {
		return fmt.Errorf("%s (run `energypulse login` again)", apiclient.Message(err, "session expired"))
	}
	return errors.New(apiclient.Message(err, fallback+": "+err.Error()))
}
