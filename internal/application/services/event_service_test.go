package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
)

func newEventService(t *testing.T) (*EventService, *database.DB) {
	t.Helper()

	db := newTestDB(t)
	logger := newTestLogger(t)
	return NewEventService(persistence.NewSQLEventRepository(db, logger), logger), db
}

func TestRecordPageViewCoercesLoosePayload(t *testing.T) {
	svc, db := newEventService(t)

	svc.RecordPageView(map[string]any{
		"pagePath":   "/about",
		"pageTitle":  "About us",
		"deviceType": "desktop",
		"referrer":   42.0, // wrong type, coerced to empty
		"country":    "DE",
	})

	var pagePath, referrer, country string
	err := db.QueryRow(`SELECT page_path, referrer, country FROM page_views`).Scan(&pagePath, &referrer, &country)
	require.NoError(t, err)
	assert.Equal(t, "/about", pagePath)
	assert.Equal(t, "", referrer)
	assert.Equal(t, "DE", country)
}

func TestRecordClickCoercesNumbers(t *testing.T) {
	svc, db := newEventService(t)

	svc.RecordClick(map[string]any{
		"pagePath":  "/",
		"xPct":      55.5,
		"yPct":      "not a number",
		"sectionId": "hero",
	})

	var xPct float64
	var yPct *float64
	var sectionID string
	err := db.QueryRow(`SELECT x_pct, y_pct, section_id FROM clicks`).Scan(&xPct, &yPct, &sectionID)
	require.NoError(t, err)
	assert.Equal(t, 55.5, xPct)
	assert.Nil(t, yPct)
	assert.Equal(t, "hero", sectionID)
}

func TestLikesIncrementWithoutDedup(t *testing.T) {
	svc, _ := newEventService(t)

	svc.RecordLike(map[string]any{"articleId": "a1", "sessionId": "s1"})
	svc.RecordLike(map[string]any{"articleId": "a1", "sessionId": "s2"})

	assert.Equal(t, 2, svc.CountLikes("a1"))
	assert.Equal(t, 0, svc.CountLikes("a2"))
}

func TestIngestionFallsBackToLegacyTable(t *testing.T) {
	svc, db := newEventService(t)
	_, err := db.Exec(`DROP TABLE page_views`)
	require.NoError(t, err)

	// Never panics and never surfaces the failure.
	svc.RecordPageView(map[string]any{"pagePath": "/broken"})

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM site_events WHERE event_type = 'pageview'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
