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

type PartnerRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewPartnerRepository(db *database.DB, logger *logging.ChanneledLogger) *PartnerRepository {
	return &PartnerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PartnerRepository) FindAll() ([]*content.Partner, error) {
	const query = `SELECT id, name, logo_path, site_url, position FROM partners ORDER BY position`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query partners", "error", err.Error())
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	var partners []*content.Partner
	for rows.Next() {
		var partner content.Partner
		var logoPath, siteURL sql.NullString
		if err := rows.Scan(&partner.ID, &partner.Name, &logoPath, &siteURL, &partner.Position); err != nil {
			r.logger.Database().Error("Failed to scan partner row", "error", err.Error())
			continue
		}
		if logoPath.Valid {
			partner.LogoPath = &logoPath.String
		}
		if siteURL.Valid {
			partner.SiteURL = &siteURL.String
		}
		partners = append(partners, &partner)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "content")
	}
	return partners, nil
}

func (r *PartnerRepository) Store(partner *content.Partner) error {
	position, err := nextPosition(r.db, "partners")
	if err != nil {
		return err
	}
	partner.Position = position

	const query = `INSERT INTO partners (id, name, logo_path, site_url, position) VALUES (?, ?, ?, ?, ?)`

	r.logger.Database().Debug("Executing partner insert", "id", partner.ID)
	if _, err := r.db.Exec(query, partner.ID, partner.Name, partner.LogoPath, partner.SiteURL, partner.Position); err != nil {
		r.logger.Database().Error("Partner insert failed", "error", err.Error(), "id", partner.ID)
		return fmt.Errorf("failed to insert partner: %w", err)
	}
	return nil
}

var partnerPatchColumns = map[string]string{
	"name":     "name",
	"logoPath": "logo_path",
	"siteUrl":  "site_url",
}

func (r *PartnerRepository) Update(id string, fields map[string]any) error {
	return patchUpdate(r.db, r.logger, "partners", partnerPatchColumns, id, fields)
}

func (r *PartnerRepository) Delete(id string) error {
	return deleteByID(r.db, r.logger, "partners", id)
}

func (r *PartnerRepository) Reorder(orderedIDs []string) error {
	return reorderPositions(r.db, r.logger, "partners", orderedIDs)
}
