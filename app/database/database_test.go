package database

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/northwind/catalog-console/app/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	gormlogger "gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	testCases := []struct {
		name           string
		driver         string
		expectedDriver string
		expectError    bool
	}{
		{name: "Default is pgx", driver: "", expectedDriver: ""},
		{name: "Explicit pgx", driver: "pgx", expectedDriver: ""},
		{name: "lib/pq", driver: "postgres", expectedDriver: "postgres"},
		{name: "Unknown", driver: "mysql", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Dialector(config.DatabaseConfig{URL: "postgres://localhost/northwind", Driver: tc.driver})
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			pg, ok := d.(*postgres.Dialector)
			require.True(t, ok)
			assert.Equal(t, tc.expectedDriver, pg.DriverName)
			assert.Equal(t, "postgres://localhost/northwind", pg.DSN)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, parseLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, parseLogLevel("ERROR"))
	assert.Equal(t, gormlogger.Warn, parseLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, parseLogLevel("info"))
	assert.Equal(t, gormlogger.Silent, parseLogLevel(""))
}

func TestNewGormLogger_WritesToSlog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewGormLogger(logger, "info").Info(context.Background(), "migrated %s", "categories")

	assert.Contains(t, buf.String(), "migrated categories")
}
