// Package content provides the SQL repositories for the six ordered
// directory collections. Every collection follows the same pattern: list
// ordered by position, create appends at the next position, update patches
// named fields, and reorder rewrites position values from an ordered id list.
package content

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

// ErrEmptyPatch is returned when an update carries no recognized fields.
var ErrEmptyPatch = errors.New("update contains no recognized fields")

// nextPosition returns max(position)+1 for a table, 0 when empty.
func nextPosition(db *database.DB, table string) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(position), -1) + 1 FROM %s`, table)

	var position int
	if err := db.QueryRow(query).Scan(&position); err != nil {
		return 0, fmt.Errorf("failed to compute next position for %s: %w", table, err)
	}
	return position, nil
}

// reorderPositions sets position = index for each id in the supplied order.
// This is a full overwrite of the ordering, issued as independent updates;
// concurrent reorder calls can race and the last writer wins per row.
func reorderPositions(db *database.DB, logger *logging.ChanneledLogger, table string, orderedIDs []string) error {
	query := fmt.Sprintf(`UPDATE %s SET position = ? WHERE id = ?`, table)

	start := time.Now()
	logger.Database().Debug("Executing reorder", "table", table, "count", len(orderedIDs))

	for i, id := range orderedIDs {
		if _, err := db.Exec(query, i, id); err != nil {
			logger.Database().Error("Reorder update failed", "error", err.Error(), "table", table, "id", id)
			return fmt.Errorf("failed to reorder %s: %w", table, err)
		}
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		logger.LogSlowQuery(query, duration, "content")
	}
	return nil
}

// patchUpdate builds and executes a partial UPDATE from the client-supplied
// field map, restricted to the allowed json-field → column mapping.
func patchUpdate(db *database.DB, logger *logging.ChanneledLogger, table string, allowed map[string]string, id string, fields map[string]any) error {
	var setClauses []string
	var args []any

	for field, column := range allowed {
		if value, ok := fields[field]; ok {
			setClauses = append(setClauses, column+" = ?")
			args = append(args, value)
		}
	}

	if len(setClauses) == 0 {
		return ErrEmptyPatch
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, table, strings.Join(setClauses, ", "))
	args = append(args, id)

	start := time.Now()
	logger.Database().Debug("Executing patch update", "table", table, "id", id, "fields", len(setClauses))

	result, err := db.Exec(query, args...)
	if err != nil {
		logger.Database().Error("Patch update failed", "error", err.Error(), "table", table, "id", id)
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no %s row with id %s", table, id)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		logger.LogSlowQuery(query, duration, "content")
	}
	return nil
}

// deleteByID removes one row.
func deleteByID(db *database.DB, logger *logging.ChanneledLogger, table, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table)

	logger.Database().Debug("Executing delete", "table", table, "id", id)

	if _, err := db.Exec(query, id); err != nil {
		logger.Database().Error("Delete failed", "error", err.Error(), "table", table, "id", id)
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}
