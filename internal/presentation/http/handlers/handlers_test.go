package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/application/services"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/performance"
	analyticspersistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
)

func newAnalyticsRouter(t *testing.T) (*gin.Engine, *database.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.NewTableCreator().CreateSchema(conn))
	db := &database.DB{DB: conn}

	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	require.NoError(t, err)

	eventRepo := analyticspersistence.NewSQLEventRepository(db, logger)
	statsRepo := analyticspersistence.NewSQLStatsRepository(db, logger)
	tracker := performance.NewTracker()

	h := NewAnalyticsHandlers(
		services.NewEventService(eventRepo, logger),
		services.NewDashboardService(statsRepo, eventRepo, logger, tracker),
		services.NewHeatmapService(eventRepo, logger, tracker),
		logger,
	)

	r := gin.New()
	r.POST("/api/analytics/pageview", h.PostPageView)
	r.POST("/api/analytics/click", h.PostClick)
	r.POST("/api/analytics/hover", h.PostHover)
	r.POST("/api/analytics/like", h.PostLike)
	r.GET("/api/analytics/likes", h.GetLikes)
	r.GET("/api/analytics/heatmap", h.GetHeatmap)
	r.GET("/api/analytics/dashboard", h.GetDashboard)
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBeaconsAlwaysReturnOK(t *testing.T) {
	r, db := newAnalyticsRouter(t)

	// Even with the primary tables gone the beacons answer 200.
	_, err := db.Exec(`DROP TABLE page_views`)
	require.NoError(t, err)
	_, err = db.Exec(`DROP TABLE site_events`)
	require.NoError(t, err)

	for _, path := range []string{"/api/analytics/pageview", "/api/analytics/click", "/api/analytics/hover"} {
		w := postJSON(t, r, path, map[string]any{"pagePath": "/"})
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"ok": true}`, w.Body.String(), path)
	}
}

func TestBeaconToleratesGarbageBody(t *testing.T) {
	r, _ := newAnalyticsRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics/pageview", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())
}

func TestLikeRoundTrip(t *testing.T) {
	r, _ := newAnalyticsRouter(t)

	postJSON(t, r, "/api/analytics/like", map[string]any{"articleId": "a1", "sessionId": "s1"})
	postJSON(t, r, "/api/analytics/like", map[string]any{"articleId": "a1", "sessionId": "s2"})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/likes?articleId=a1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ArticleID  string `json:"articleId"`
		TotalLikes int    `json:"totalLikes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalLikes)
}

func TestLikesRequiresArticleID(t *testing.T) {
	r, _ := newAnalyticsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/likes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHeatmapEndpointShape(t *testing.T) {
	r, db := newAnalyticsRouter(t)

	for i, section := range []string{"hero", "hero", "faqs"} {
		_, err := db.Exec(
			`INSERT INTO clicks (id, page_path, section_id, created_at) VALUES (?, '/', ?, '2026-08-01T10:00:00Z')`,
			string(rune('a'+i)), section,
		)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/heatmap?pagePath=/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		PagePath        string `json:"pagePath"`
		TotalClicks     int    `json:"totalClicks"`
		MaxSectionCount int    `json:"maxSectionCount"`
		SectionSummary  []struct {
			SectionID string `json:"sectionId"`
			Count     int    `json:"count"`
		} `json:"sectionSummary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalClicks)
	assert.Equal(t, 2, resp.MaxSectionCount)
	require.Len(t, resp.SectionSummary, 2)
	assert.Equal(t, "hero", resp.SectionSummary[0].SectionID)
}

func TestHeatmapRequiresPagePath(t *testing.T) {
	r, _ := newAnalyticsRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/heatmap", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardEndpointAlwaysOK(t *testing.T) {
	r, db := newAnalyticsRouter(t)

	// No data at all, and then a broken table: both still 200.
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard?period=30", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	_, err := db.Exec(`DROP TABLE daily_stats`)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		KPIs struct {
			TotalViews         int    `json:"totalViews"`
			AvgSessionDuration string `json:"avgSessionDuration"`
		} `json:"kpis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.KPIs.TotalViews)
	assert.Equal(t, "0:00", resp.KPIs.AvgSessionDuration)
}
