// Package handlers provides the HTTP handlers for the public API.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/application/services"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
)

// AnalyticsHandlers serves the beacon ingestion and aggregation endpoints.
type AnalyticsHandlers struct {
	eventService     *services.EventService
	dashboardService *services.DashboardService
	heatmapService   *services.HeatmapService
	logger           *logging.ChanneledLogger
}

// NewAnalyticsHandlers creates analytics endpoint handlers.
func NewAnalyticsHandlers(eventService *services.EventService, dashboardService *services.DashboardService, heatmapService *services.HeatmapService, logger *logging.ChanneledLogger) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		eventService:     eventService,
		dashboardService: dashboardService,
		heatmapService:   heatmapService,
		logger:           logger,
	}
}

// beaconPayload reads the loosely-typed beacon body. An unparsable body
// degrades to an empty payload; beacons never fail.
func beaconPayload(c *gin.Context) map[string]any {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		payload = map[string]any{}
	}
	return payload
}

// PostPageView handles POST /api/analytics/pageview.
func (h *AnalyticsHandlers) PostPageView(c *gin.Context) {
	h.eventService.RecordPageView(beaconPayload(c))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PostClick handles POST /api/analytics/click.
func (h *AnalyticsHandlers) PostClick(c *gin.Context) {
	h.eventService.RecordClick(beaconPayload(c))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PostHover handles POST /api/analytics/hover.
func (h *AnalyticsHandlers) PostHover(c *gin.Context) {
	h.eventService.RecordHover(beaconPayload(c))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PostLike handles POST /api/analytics/like.
func (h *AnalyticsHandlers) PostLike(c *gin.Context) {
	h.eventService.RecordLike(beaconPayload(c))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetLikes handles GET /api/analytics/likes?articleId=.
func (h *AnalyticsHandlers) GetLikes(c *gin.Context) {
	articleID := c.Query("articleId")
	if articleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "articleId is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articleId":  articleID,
		"totalLikes": h.eventService.CountLikes(articleID),
	})
}

// GetDashboard handles GET /api/analytics/dashboard?period=N. The period is
// clamped inside the service; a bad value falls back to the default window.
func (h *AnalyticsHandlers) GetDashboard(c *gin.Context) {
	period, _ := strconv.Atoi(c.Query("period"))
	c.JSON(http.StatusOK, h.dashboardService.ComputeDashboard(period))
}

// GetHeatmap handles GET /api/analytics/heatmap?pagePath=&month=YYYY-MM.
func (h *AnalyticsHandlers) GetHeatmap(c *gin.Context) {
	pagePath := c.Query("pagePath")
	if pagePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pagePath is required"})
		return
	}

	c.JSON(http.StatusOK, h.heatmapService.ComputeHeatmap(pagePath, c.Query("month")))
}
