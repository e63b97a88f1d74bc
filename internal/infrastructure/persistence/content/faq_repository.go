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

type FAQRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewFAQRepository(db *database.DB, logger *logging.ChanneledLogger) *FAQRepository {
	return &FAQRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FAQRepository) FindAll() ([]*content.FAQ, error) {
	const query = `SELECT id, question, answer, position FROM faqs ORDER BY position`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query faqs", "error", err.Error())
		return nil, fmt.Errorf("failed to query faqs: %w", err)
	}
	defer rows.Close()

	var faqs []*content.FAQ
	for rows.Next() {
		var faq content.FAQ
		var answer sql.NullString
		if err := rows.Scan(&faq.ID, &faq.Question, &answer, &faq.Position); err != nil {
			r.logger.Database().Error("Failed to scan faq row", "error", err.Error())
			continue
		}
		faq.Answer = answer.String
		faqs = append(faqs, &faq)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "content")
	}
	return faqs, nil
}

func (r *FAQRepository) Store(faq *content.FAQ) error {
	position, err := nextPosition(r.db, "faqs")
	if err != nil {
		return err
	}
	faq.Position = position

	const query = `INSERT INTO faqs (id, question, answer, position) VALUES (?, ?, ?, ?)`

	r.logger.Database().Debug("Executing faq insert", "id", faq.ID)
	if _, err := r.db.Exec(query, faq.ID, faq.Question, faq.Answer, faq.Position); err != nil {
		r.logger.Database().Error("FAQ insert failed", "error", err.Error(), "id", faq.ID)
		return fmt.Errorf("failed to insert faq: %w", err)
	}
	return nil
}

var faqPatchColumns = map[string]string{
	"question": "question",
	"answer":   "answer",
}

func (r *FAQRepository) Update(id string, fields map[string]any) error {
	return patchUpdate(r.db, r.logger, "faqs", faqPatchColumns, id, fields)
}

func (r *FAQRepository) Delete(id string) error {
	return deleteByID(r.db, r.logger, "faqs", id)
}

func (r *FAQRepository) Reorder(orderedIDs []string) error {
	return reorderPositions(r.db, r.logger, "faqs", orderedIDs)
}
