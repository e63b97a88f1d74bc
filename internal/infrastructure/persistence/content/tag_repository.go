package content

import (
	"fmt"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

type TagRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewTagRepository(db *database.DB, logger *logging.ChanneledLogger) *TagRepository {
	return &TagRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TagRepository) FindAll() ([]*content.Tag, error) {
	const query = `SELECT id, name, slug, position FROM tags ORDER BY position`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query tags", "error", err.Error())
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []*content.Tag
	for rows.Next() {
		var tag content.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.Position); err != nil {
			r.logger.Database().Error("Failed to scan tag row", "error", err.Error())
			continue
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "content")
	}
	return tags, nil
}

func (r *TagRepository) Store(tag *content.Tag) error {
	position, err := nextPosition(r.db, "tags")
	if err != nil {
		return err
	}
	tag.Position = position

	const query = `INSERT INTO tags (id, name, slug, position) VALUES (?, ?, ?, ?)`

	r.logger.Database().Debug("Executing tag insert", "id", tag.ID)
	if _, err := r.db.Exec(query, tag.ID, tag.Name, tag.Slug, tag.Position); err != nil {
		r.logger.Database().Error("Tag insert failed", "error", err.Error(), "id", tag.ID)
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

var tagPatchColumns = map[string]string{
	"name": "name",
	"slug": "slug",
}

func (r *TagRepository) Update(id string, fields map[string]any) error {
	return patchUpdate(r.db, r.logger, "tags", tagPatchColumns, id, fields)
}

func (r *TagRepository) Delete(id string) error {
	return deleteByID(r.db, r.logger, "tags", id)
}

func (r *TagRepository) Reorder(orderedIDs []string) error {
	return reorderPositions(r.db, r.logger, "tags", orderedIDs)
}
