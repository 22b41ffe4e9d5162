// Package app builds the components shared by the hanfr commands from a Config.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/at-ishikawa/hanfr/internal/config"
	"github.com/at-ishikawa/hanfr/internal/database"
	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/quiz"
	"github.com/at-ishikawa/hanfr/internal/search"
	"github.com/at-ishikawa/hanfr/internal/server"
	"github.com/at-ishikawa/hanfr/internal/state"
	"github.com/at-ishikawa/hanfr/internal/translator"
	"github.com/at-ishikawa/hanfr/internal/vocabulary"
)

const (
	BackendFile   = "file"
	BackendMemory = "memory"
)

type Components struct {
	Config   *config.Config
	State    *state.State
	Searcher *search.Searcher
	Static   *quiz.StaticGenerator
	History  *quiz.HistoryGenerator

	closers []func() error
}

// Build wires every component. Close releases the database and HTTP clients.
func Build(ctx context.Context, cfg *config.Config) (*Components, error) {
	components := &Components{Config: cfg}

	store, err := components.newStore(ctx)
	if err != nil {
		return nil, errors.Join(err, components.Close())
	}
	components.State = state.New(store)

	words, err := vocabulary.Load(cfg.Quiz.VocabularyFile)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("vocabulary.Load() > %w", err), components.Close())
	}
	components.Static, err = quiz.NewStaticGenerator(words)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("quiz.NewStaticGenerator() > %w", err), components.Close())
	}

	lookuper := krdict.NewClient(krdict.Config{
		BaseURL:   cfg.KRDict.BaseURL,
		Num:       cfg.KRDict.Num,
		Sort:      cfg.KRDict.Sort,
		TransLang: cfg.KRDict.TransLang,
		Timeout:   cfg.KRDict.Timeout,
	})
	translatorClient := translator.NewClient(translator.Config{
		BaseURL:          cfg.Translator.BaseURL,
		LangPair:         cfg.Translator.LangPair,
		Timeout:          cfg.Translator.Timeout,
		MaxRetryAttempts: cfg.Translator.MaxRetryAttempts,
	})
	components.closers = append(components.closers, translatorClient.Close)

	components.Searcher = search.NewSearcher(search.Config{APIKey: cfg.KRDict.Key}, lookuper, translatorClient)
	components.History = quiz.NewHistoryGenerator(components.Searcher, cfg.Quiz.HistoryLimit)
	return components, nil
}

func (c *Components) newStore(ctx context.Context) (state.Store, error) {
	switch backend := c.Config.State.Backend; backend {
	case BackendFile, "":
		return state.NewFileStore(c.Config.State.Directory), nil
	case BackendMemory:
		return state.NewMemoryStore(), nil
	case database.DriverMySQL, database.DriverSQLite:
		db, err := database.Open(backend, c.Config.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open(%s) > %w", backend, err)
		}
		c.closers = append(c.closers, db.Close)
		if err := database.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		return state.NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported state backend %q", backend)
	}
}

// NewHTTPServer returns the API server listening on the configured port.
func (c *Components) NewHTTPServer() (*http.Server, error) {
	srv, err := server.NewServer(c.Config, c.Searcher, c.State, c.Static, c.History)
	if err != nil {
		return nil, fmt.Errorf("server.NewServer() > %w", err)
	}
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", c.Config.Server.Port),
		Handler: srv.Handler(),
	}, nil
}

// Close releases the components in reverse order of creation.
func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// CloseHook adapts Close to a shutdown hook.
func (c *Components) CloseHook(context.Context) error {
	return c.Close()
}
