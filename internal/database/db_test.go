package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/hanfr/internal/config"
	"github.com/at-ishikawa/hanfr/schemas"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name       string
		driver     string
		cfg        config.DatabaseConfig
		wantDriver string
		wantErr    bool
	}{
		{
			name:   "creates mysql connection with valid config",
			driver: DriverMySQL,
			cfg: config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "hanfr",
				Username: "testuser",
				Password: "testpass",
			},
			wantDriver: "mysql",
		},
		{
			name:   "creates mysql connection with pool settings",
			driver: DriverMySQL,
			cfg: config.DatabaseConfig{
				Host:            "db.example.com",
				Port:            3307,
				Database:        "hanfr",
				Username:        "admin",
				Password:        "secret",
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
			},
			wantDriver: "mysql",
		},
		{
			name:   "creates sqlite connection",
			driver: DriverSQLite,
			cfg: config.DatabaseConfig{
				Path: filepath.Join(t.TempDir(), "nested", "hanfr.db"),
			},
			wantDriver: "sqlite3",
		},
		{
			name:    "unsupported driver",
			driver:  "postgres",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.driver, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, tt.wantDriver, got.DriverName())
		})
	}
}

func TestMysqlDSN(t *testing.T) {
	got := mysqlDSN(config.DatabaseConfig{
		Host:     "localhost",
		Port:     3306,
		Database: "hanfr",
		Username: "user",
		Password: "pass",
	})
	assert.True(t, strings.HasPrefix(got, "user:pass@tcp(localhost:3306)/hanfr?"), got)
	assert.Contains(t, got, "multiStatements=true")
	assert.Contains(t, got, "parseTime=true")
}

func TestMigrationFiles(t *testing.T) {
	for _, driver := range []string{DriverMySQL, DriverSQLite} {
		files, err := migrationFiles(schemas.Migrations, driver)
		require.NoError(t, err)
		assert.NotEmpty(t, files)
	}

	_, err := migrationFiles(schemas.Migrations, "postgres")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_state").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), sqlx.NewDb(db, "mysql")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := Open(DriverSQLite, config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "hanfr.db")})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	var count int
	require.NoError(t, db.GetContext(ctx, &count, "SELECT COUNT(*) FROM kv_state"))
	assert.Equal(t, 0, count)
}
