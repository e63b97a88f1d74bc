package services

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/performance"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, database.NewTableCreator().CreateSchema(conn))
	return &database.DB{DB: conn}
}

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()

	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	require.NoError(t, err)
	return logger
}

func newTestTracker() *performance.Tracker {
	return performance.NewTracker()
}
