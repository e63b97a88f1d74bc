// Package database provides the core functionality for creating and managing
// the site database connection. When a Turso URL and auth token are
// configured the hosted database is used; otherwise a local sqlite file.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
	UseTurso bool
}

// Open establishes the application database connection per configuration.
func Open(logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()

	if config.TursoDatabaseURL != "" && config.TursoAuthToken != "" {
		connStr := config.TursoDatabaseURL + "?authToken=" + config.TursoAuthToken
		conn, err := sql.Open("libsql", connStr)
		if err != nil {
			logger.Database().Error("Failed to open Turso connection", "error", err.Error())
			return nil, fmt.Errorf("turso connection failed: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			logger.Database().Error("Turso ping failed", "error", err.Error())
			return nil, fmt.Errorf("turso ping failed: %w", err)
		}
		applyPoolSettings(conn)
		logger.Database().Info("Database connection established", "driver", "libsql", "duration", time.Since(start))
		return &DB{DB: conn, UseTurso: true}, nil
	}

	dbDir := filepath.Dir(config.SQLitePath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", config.SQLitePath)
	if err != nil {
		logger.Database().Error("Failed to open sqlite connection", "error", err.Error(), "path", config.SQLitePath)
		return nil, fmt.Errorf("sqlite connection failed: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		logger.Database().Error("SQLite ping failed", "error", err.Error(), "path", config.SQLitePath)
		return nil, fmt.Errorf("sqlite ping failed: %w", err)
	}
	applyPoolSettings(conn)

	logger.Database().Info("Database connection established", "driver", "sqlite3", "path", config.SQLitePath, "duration", time.Since(start))
	return &DB{DB: conn, UseTurso: false}, nil
}

func applyPoolSettings(conn *sql.DB) {
	conn.SetMaxOpenConns(config.DBMaxOpenConns)
	conn.SetMaxIdleConns(config.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
	conn.SetConnMaxIdleTime(time.Duration(config.DBConnMaxIdleMinutes) * time.Minute)
}
