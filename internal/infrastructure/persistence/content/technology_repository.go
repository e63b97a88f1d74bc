package content

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

type TechnologyRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewTechnologyRepository(db *database.DB, logger *logging.ChanneledLogger) *TechnologyRepository {
	return &TechnologyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TechnologyRepository) FindAll() ([]*content.Technology, error) {
	const query = `SELECT id, name, category, logo_path, position FROM technologies ORDER BY position`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query technologies", "error", err.Error())
		return nil, fmt.Errorf("failed to query technologies: %w", err)
	}
	defer rows.Close()

	var technologies []*content.Technology
	for rows.Next() {
		var tech content.Technology
		var category, logoPath sql.NullString
		if err := rows.Scan(&tech.ID, &tech.Name, &category, &logoPath, &tech.Position); err != nil {
			r.logger.Database().Error("Failed to scan technology row", "error", err.Error())
			continue
		}
		tech.Category = category.String
		if logoPath.Valid {
			tech.LogoPath = &logoPath.String
		}
		technologies = append(technologies, &tech)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "content")
	}
	return technologies, nil
}

func (r *TechnologyRepository) Store(tech *content.Technology) error {
	position, err := nextPosition(r.db, "technologies")
	if err != nil {
		return err
	}
	tech.Position = position

	const query = `INSERT INTO technologies (id, name, category, logo_path, position) VALUES (?, ?, ?, ?, ?)`

	r.logger.Database().Debug("Executing technology insert", "id", tech.ID)
	if _, err := r.db.Exec(query, tech.ID, tech.Name, tech.Category, tech.LogoPath, tech.Position); err != nil {
		r.logger.Database().Error("Technology insert failed", "error", err.Error(), "id", tech.ID)
		return fmt.Errorf("failed to insert technology: %w", err)
	}
	return nil
}

var technologyPatchColumns = map[string]string{
	"name":     "name",
	"category": "category",
	"logoPath": "logo_path",
}

func (r *TechnologyRepository) Update(id string, fields map[string]any) error {
	return patchUpdate(r.db, r.logger, "technologies", technologyPatchColumns, id, fields)
}

func (r *TechnologyRepository) Delete(id string) error {
	return deleteByID(r.db, r.logger, "technologies", id)
}

func (r *TechnologyRepository) Reorder(orderedIDs []string) error {
	return reorderPositions(r.db, r.logger, "technologies", orderedIDs)
}
