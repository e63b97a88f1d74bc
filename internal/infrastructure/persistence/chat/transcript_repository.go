// Package chat provides persistence for chatbot session transcripts.
package chat

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/chat"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

// SQLTranscriptRepository stores one row per chat session holding the full
// running transcript as JSON.
type SQLTranscriptRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewSQLTranscriptRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLTranscriptRepository {
	return &SQLTranscriptRepository{
		db:     db,
		logger: logger,
	}
}

// FindBySession retrieves the transcript for a session, nil when absent.
func (r *SQLTranscriptRepository) FindBySession(sessionID string) (*chat.Transcript, error) {
	const query = `SELECT session_id, messages, created, changed FROM chat_transcripts WHERE session_id = ?`

	var transcript chat.Transcript
	var messagesJSON, createdStr string
	var changed sql.NullString

	err := r.db.QueryRow(query, sessionID).Scan(&transcript.SessionID, &messagesJSON, &createdStr, &changed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to load transcript", "error", err.Error(), "sessionId", sessionID)
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	if err := json.Unmarshal([]byte(messagesJSON), &transcript.Messages); err != nil {
		r.logger.Database().Error("Failed to decode transcript messages", "error", err.Error(), "sessionId", sessionID)
		return nil, fmt.Errorf("failed to decode transcript messages: %w", err)
	}
	if parsed, err := time.Parse(time.RFC3339, createdStr); err == nil {
		transcript.Created = parsed
	}
	if changed.Valid {
		if parsed, err := time.Parse(time.RFC3339, changed.String); err == nil {
			transcript.Changed = &parsed
		}
	}

	return &transcript, nil
}

// Save upserts the transcript row for a session.
func (r *SQLTranscriptRepository) Save(transcript *chat.Transcript) error {
	messagesJSON, err := json.Marshal(transcript.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode transcript messages: %w", err)
	}

	now := time.Now().UTC()
	const query = `
		INSERT INTO chat_transcripts (session_id, messages, created, changed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET messages = excluded.messages, changed = excluded.changed`

	start := time.Now()
	r.logger.Database().Debug("Saving transcript", "sessionId", transcript.SessionID, "messages", len(transcript.Messages))

	created := transcript.Created
	if created.IsZero() {
		created = now
	}

	_, err = r.db.Exec(query, transcript.SessionID, string(messagesJSON), created.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		r.logger.Database().Error("Transcript save failed", "error", err.Error(), "sessionId", transcript.SessionID)
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "chat")
	}
	return nil
}
