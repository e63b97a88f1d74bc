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

type ServiceRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewServiceRepository(db *database.DB, logger *logging.ChanneledLogger) *ServiceRepository {
	return &ServiceRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ServiceRepository) FindAll() ([]*content.Service, error) {
	const query = `SELECT id, title, summary, description, icon, position FROM services ORDER BY position`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query services", "error", err.Error())
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []*content.Service
	for rows.Next() {
		var service content.Service
		var summary, description, icon sql.NullString
		if err := rows.Scan(&service.ID, &service.Title, &summary, &description, &icon, &service.Position); err != nil {
			r.logger.Database().Error("Failed to scan service row", "error", err.Error())
			continue
		}
		service.Summary = summary.String
		service.Description = description.String
		service.Icon = icon.String
		services = append(services, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "content")
	}
	return services, nil
}

func (r *ServiceRepository) Store(service *content.Service) error {
	position, err := nextPosition(r.db, "services")
	if err != nil {
		return err
	}
	service.Position = position

	const query = `INSERT INTO services (id, title, summary, description, icon, position) VALUES (?, ?, ?, ?, ?, ?)`

	r.logger.Database().Debug("Executing service insert", "id", service.ID)
	if _, err := r.db.Exec(query, service.ID, service.Title, service.Summary, service.Description, service.Icon, service.Position); err != nil {
		r.logger.Database().Error("Service insert failed", "error", err.Error(), "id", service.ID)
		return fmt.Errorf("failed to insert service: %w", err)
	}
	return nil
}

var servicePatchColumns = map[string]string{
	"title":       "title",
	"summary":     "summary",
	"description": "description",
	"icon":        "icon",
}

func (r *ServiceRepository) Update(id string, fields map[string]any) error {
	return patchUpdate(r.db, r.logger, "services", servicePatchColumns, id, fields)
}

func (r *ServiceRepository) Delete(id string) error {
	return deleteByID(r.db, r.logger, "services", id)
}

func (r *ServiceRepository) Reorder(orderedIDs []string) error {
	return reorderPositions(r.db, r.logger, "services", orderedIDs)
}
