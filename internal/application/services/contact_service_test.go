package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/contact"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/ratelimit"
)

type recordingEmail struct {
	sent []*content.ContactMessage
	err  error
}

func (r *recordingEmail) SendContactNotification(msg *content.ContactMessage) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func newContactService(t *testing.T, requests int) (*ContactService, *database.DB, *recordingEmail) {
	t.Helper()

	db := newTestDB(t)
	logger := newTestLogger(t)
	relay := &recordingEmail{}
	limiter := ratelimit.NewKeyedLimiter(requests, 10*time.Minute)
	svc := NewContactService(persistence.NewSQLMessageRepository(db, logger), relay, limiter, logger)
	return svc, db, relay
}

func validInput() *ContactInput {
	return &ContactInput{
		Name:    "Jan Kowalski",
		Email:   "jan@example.com",
		Company: "Acme",
		Message: "We need a new marketing site.",
	}
}

func TestContactSubmitStoresAndRelays(t *testing.T) {
	svc, db, relay := newContactService(t, 5)

	require.NoError(t, svc.Submit("10.0.0.1", validInput()))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM contact_messages`).Scan(&count))
	assert.Equal(t, 1, count)
	require.Len(t, relay.sent, 1)
	assert.Equal(t, "jan@example.com", relay.sent[0].Email)
}

func TestContactRelayFailureStoresMessage(t *testing.T) {
	svc, db, relay := newContactService(t, 5)
	relay.err = errors.New("resend unavailable")

	assert.ErrorIs(t, svc.Submit("10.0.0.1", validInput()), ErrRelayFailed)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM contact_messages`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestContactHoneypotSilentlyDropped(t *testing.T) {
	svc, db, relay := newContactService(t, 5)

	input := validInput()
	input.Website = "http://spam.example"
	require.NoError(t, svc.Submit("10.0.0.1", input))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM contact_messages`).Scan(&count))
	assert.Equal(t, 0, count)
	assert.Empty(t, relay.sent)
}

func TestContactRateLimitPerIP(t *testing.T) {
	svc, _, _ := newContactService(t, 5)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Submit("10.0.0.1", validInput()))
	}
	assert.ErrorIs(t, svc.Submit("10.0.0.1", validInput()), ErrRateLimited)

	// A different IP has its own budget.
	assert.NoError(t, svc.Submit("10.0.0.2", validInput()))
}

func TestContactRequiredFields(t *testing.T) {
	svc, _, _ := newContactService(t, 5)

	input := validInput()
	input.Message = "   "
	assert.Error(t, svc.Submit("10.0.0.1", input))
}
