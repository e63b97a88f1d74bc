// Package contact provides persistence for contact-form submissions.
package contact

import (
	"fmt"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
)

type SQLMessageRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewSQLMessageRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLMessageRepository {
	return &SQLMessageRepository{
		db:     db,
		logger: logger,
	}
}

// Store saves a contact message.
func (r *SQLMessageRepository) Store(message *content.ContactMessage) error {
	const query = `INSERT INTO contact_messages (id, name, email, company, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	r.logger.Database().Debug("Executing contact message insert", "id", message.ID)
	_, err := r.db.Exec(query, message.ID, message.Name, message.Email, message.Company, message.Message, message.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		r.logger.Database().Error("Contact message insert failed", "error", err.Error(), "id", message.ID)
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}
