package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/cinelog/internal/adapter"
	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/library"
	"github.com/mmcdole/cinelog/internal/store"
)

var errNotConfigured = errors.New("no movie database configured: run 'cinelog init <path>' or pass --db")

// session holds what every command needs once flags are parsed
type session struct {
	cfg       *adapter.Config
	configDir string
	logger    *slog.Logger
	closer    io.Closer
}

func openSession(opts *RootOptions) (*session, error) {
	dir := opts.ConfigDir
	if dir == "" {
		dir = adapter.DefaultConfigDir()
	}

	cfg, err := adapter.LoadConfigFrom(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.DBPath != "" {
		cfg.Database.Path = opts.DBPath
	}

	logCfg := cfg.Logging
	if opts.Verbose {
		logCfg = adapter.LoggingConfig{File: "-", Level: "DEBUG"}
	}
	logger, closer, err := adapter.SetupLogger(&logCfg)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closer = adapter.NullLogger(), io.NopCloser(nil)
	}
	slog.SetDefault(logger)

	logger.Info("starting cinelog", "version", Version)
	return &session{cfg: cfg, configDir: dir, logger: logger, closer: closer}, nil
}

func (o *RootOptions) closeSession() error {
	if o.session == nil {
		return nil
	}
	err := o.session.closer.Close()
	o.session = nil
	return err
}

// openService connects to the configured catalog and loads it
func (s *session) openService(ctx context.Context) (*library.Service, error) {
	if !s.cfg.IsConfigured() {
		return nil, errNotConfigured
	}

	st, err := store.Connect(ctx, s.cfg.Database.Path, s.logger)
	if err != nil {
		return nil, err
	}

	svc := library.NewService(st, s.logger)
	if err := svc.Refresh(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// sortField resolves name, falling back to ui.sort and then title
func (s *session) sortField(name string) (domain.Field, error) {
	if name != "" {
		return parseSortField(name)
	}
	f, err := parseSortField(s.cfg.UI.Sort)
	if err != nil {
		s.logger.Warn("ignoring invalid ui.sort", "value", s.cfg.UI.Sort, "error", err)
		return domain.FieldTitle, nil
	}
	return f, nil
}

func parseSortField(name string) (domain.Field, error) {
	if name == "" {
		return domain.FieldTitle, nil
	}
	f, err := domain.ParseField(name)
	if err != nil {
		return "", err
	}
	if f == domain.FieldID {
		return domain.FieldTitle, nil
	}
	return f, nil
}
