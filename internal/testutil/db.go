package testutil

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/micropost/internal/config"
	"github.com/xxxsen/micropost/internal/db"
)

// OpenTestDB connects to the postgres named by TEST_DB_* and applies the
// migrations. Tests are skipped when TEST_DB_HOST is unset.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set")
	}
	port, _ := strconv.Atoi(os.Getenv("TEST_DB_PORT"))
	cfg := config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     os.Getenv("TEST_DB_USER"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
		DBName:   os.Getenv("TEST_DB_NAME"),
		SSLMode:  "disable",
	}
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	conn, err := db.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.ApplyMigrations(context.Background(), conn.DB))
	_, err = conn.Exec("TRUNCATE follows, microposts, users")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}
