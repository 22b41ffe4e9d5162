package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/hanfr/internal/config"
	"github.com/at-ishikawa/hanfr/internal/krdict"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		KRDict: config.KRDictConfig{Key: "key"},
		Server: config.ServerConfig{Port: 18080},
		State:  config.StateConfig{Backend: backend, Directory: filepath.Join(dir, "state")},
		Database: config.DatabaseConfig{
			Path: filepath.Join(dir, "db", "hanfr.db"),
		},
		Quiz: config.QuizConfig{DefaultCount: 10, HistoryLimit: 5},
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name:    "file backend",
			backend: BackendFile,
			check: func(t *testing.T, cfg *config.Config) {
				_, err := os.Stat(filepath.Join(cfg.State.Directory, "history.json"))
				assert.NoError(t, err)
			},
		},
		{
			name:    "memory backend",
			backend: BackendMemory,
		},
		{
			name:    "sqlite backend",
			backend: "sqlite3",
			check: func(t *testing.T, cfg *config.Config) {
				_, err := os.Stat(cfg.Database.Path)
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, tt.backend)
			ctx := context.Background()

			components, err := Build(ctx, cfg)
			require.NoError(t, err)
			t.Cleanup(func() {
				assert.NoError(t, components.Close())
			})

			_, err = components.State.History.Push(ctx, "사랑", krdict.KoreanToFrench)
			require.NoError(t, err)
			items, err := components.State.History.List(ctx)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Greater(t, components.Static.Size(), 500)
			assert.NotNil(t, components.Searcher)
			assert.NotNil(t, components.History)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		_, err := Build(context.Background(), testConfig(t, "redis"))
		assert.ErrorContains(t, err, `unsupported state backend "redis"`)
	})

	t.Run("missing vocabulary file", func(t *testing.T) {
		cfg := testConfig(t, BackendMemory)
		cfg.Quiz.VocabularyFile = filepath.Join(t.TempDir(), "missing.yml")
		_, err := Build(context.Background(), cfg)
		assert.ErrorContains(t, err, "vocabulary.Load()")
	})
}

func TestComponents_NewHTTPServer(t *testing.T) {
	components, err := Build(context.Background(), testConfig(t, BackendMemory))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, components.Close())
	})

	srv, err := components.NewHTTPServer()
	require.NoError(t, err)
	assert.Equal(t, ":18080", srv.Addr)
	assert.NotNil(t, srv.Handler)
}
