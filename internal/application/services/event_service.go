// Package services contains the application services that orchestrate
// repositories and infrastructure clients for each request.
package services

import (
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/security"
)

// EventService ingests visitor beacons. Writes are best-effort: a failed
// primary insert falls back to the legacy site_events table, and a failure
// there is logged and swallowed so the browser never sees an error.
type EventService struct {
	eventRepo *persistence.SQLEventRepository
	logger    *logging.ChanneledLogger
}

// NewEventService creates a new event ingestion service.
func NewEventService(eventRepo *persistence.SQLEventRepository, logger *logging.ChanneledLogger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// strField coerces a payload value to a string, else empty.
func strField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

// strOrNil coerces a payload value to a string pointer, else nil.
func strOrNil(payload map[string]any, key string) *string {
	if v, ok := payload[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// numOrNil coerces a payload value to a float pointer, else nil.
func numOrNil(payload map[string]any, key string) *float64 {
	if v, ok := payload[key].(float64); ok {
		return &v
	}
	return nil
}

// RecordPageView stores one page view beacon.
func (s *EventService) RecordPageView(payload map[string]any) {
	event := &analytics.PageViewEvent{
		ID:         security.GenerateULID(),
		PagePath:   strField(payload, "pagePath"),
		PageTitle:  strOrNil(payload, "pageTitle"),
		Referrer:   strField(payload, "referrer"),
		UserAgent:  strField(payload, "userAgent"),
		DeviceType: strField(payload, "deviceType"),
		Country:    strOrNil(payload, "country"),
		City:       strOrNil(payload, "city"),
		SessionID:  strOrNil(payload, "sessionId"),
		VisitorID:  strOrNil(payload, "visitorId"),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.eventRepo.StorePageView(event); err != nil {
		s.fallbackToLegacy(event.ID, "pageview", event.PagePath, payload, event.CreatedAt, err)
	}
}

// RecordClick stores one click beacon.
func (s *EventService) RecordClick(payload map[string]any) {
	event := &analytics.ClickEvent{
		ID:             security.GenerateULID(),
		PagePath:       strField(payload, "pagePath"),
		XPct:           numOrNil(payload, "xPct"),
		YPct:           numOrNil(payload, "yPct"),
		ElementType:    strField(payload, "elementType"),
		ElementText:    strField(payload, "elementText"),
		ElementID:      strField(payload, "elementId"),
		ElementClass:   strField(payload, "elementClass"),
		ViewportWidth:  numOrNil(payload, "viewportWidth"),
		ViewportHeight: numOrNil(payload, "viewportHeight"),
		ScrollDepthPct: numOrNil(payload, "scrollDepthPct"),
		SectionID:      strField(payload, "sectionId"),
		SessionID:      strOrNil(payload, "sessionId"),
		VisitorID:      strOrNil(payload, "visitorId"),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.eventRepo.StoreClick(event); err != nil {
		s.fallbackToLegacy(event.ID, "click", event.PagePath, payload, event.CreatedAt, err)
	}
}

// RecordHover stores one hover beacon.
func (s *EventService) RecordHover(payload map[string]any) {
	event := &analytics.HoverEvent{
		ID:          security.GenerateULID(),
		PagePath:    strField(payload, "pagePath"),
		ElementType: strField(payload, "elementType"),
		ElementID:   strField(payload, "elementId"),
		SectionID:   strField(payload, "sectionId"),
		DurationMs:  numOrNil(payload, "durationMs"),
		SessionID:   strOrNil(payload, "sessionId"),
		VisitorID:   strOrNil(payload, "visitorId"),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.eventRepo.StoreHover(event); err != nil {
		s.fallbackToLegacy(event.ID, "hover", event.PagePath, payload, event.CreatedAt, err)
	}
}

// RecordLike stores one like row.
func (s *EventService) RecordLike(payload map[string]any) {
	event := &analytics.LikeEvent{
		ID:        security.GenerateULID(),
		ArticleID: strField(payload, "articleId"),
		SessionID: strOrNil(payload, "sessionId"),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.eventRepo.StoreLike(event); err != nil {
		s.fallbackToLegacy(event.ID, "like", event.ArticleID, payload, event.CreatedAt, err)
	}
}

// CountLikes returns the like total for an article; 0 on read failure.
func (s *EventService) CountLikes(articleID string) int {
	count, err := s.eventRepo.CountLikes(articleID)
	if err != nil {
		s.logger.Analytics().Error("Like count read failed", "articleId", articleID, "error", err.Error())
		return 0
	}
	return count
}

// fallbackToLegacy is the secondary write path. A second failure is logged
// and dropped.
func (s *EventService) fallbackToLegacy(id, eventType, pagePath string, payload map[string]any, createdAt time.Time, primaryErr error) {
	s.logger.Analytics().Warn("Primary event insert failed, writing to legacy table", "eventType", eventType, "error", primaryErr.Error())

	if err := s.eventRepo.StoreLegacyEvent(id, eventType, pagePath, payload, createdAt); err != nil {
		s.logger.Analytics().Error("Legacy event insert failed, dropping event", "eventType", eventType, "error", err.Error())
	}
}
