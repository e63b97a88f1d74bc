// Package analytics defines the raw event rows and pre-aggregated stat rows
// consumed by the aggregation engine.
package analytics

import "time"

// PageViewEvent is one row per page load, append-only.
type PageViewEvent struct {
	ID         string    `json:"id"`
	PagePath   string    `json:"pagePath"`
	PageTitle  *string   `json:"pageTitle,omitempty"`
	Referrer   string    `json:"referrer"`
	UserAgent  string    `json:"userAgent"`
	DeviceType string    `json:"deviceType"`
	Country    *string   `json:"country,omitempty"`
	City       *string   `json:"city,omitempty"`
	SessionID  *string   `json:"sessionId,omitempty"`
	VisitorID  *string   `json:"visitorId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ClickEvent is one row per recorded click, append-only.
type ClickEvent struct {
	ID             string    `json:"id"`
	PagePath       string    `json:"pagePath"`
	XPct           *float64  `json:"xPct,omitempty"`
	YPct           *float64  `json:"yPct,omitempty"`
	ElementType    string    `json:"elementType"`
	ElementText    string    `json:"elementText"`
	ElementID      string    `json:"elementId"`
	ElementClass   string    `json:"elementClass"`
	ViewportWidth  *float64  `json:"viewportWidth,omitempty"`
	ViewportHeight *float64  `json:"viewportHeight,omitempty"`
	ScrollDepthPct *float64  `json:"scrollDepthPct,omitempty"`
	SectionID      string    `json:"sectionId"`
	SessionID      *string   `json:"sessionId,omitempty"`
	VisitorID      *string   `json:"visitorId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// HoverEvent is one row per recorded hover, append-only.
type HoverEvent struct {
	ID          string    `json:"id"`
	PagePath    string    `json:"pagePath"`
	ElementType string    `json:"elementType"`
	ElementID   string    `json:"elementId"`
	SectionID   string    `json:"sectionId"`
	DurationMs  *float64  `json:"durationMs,omitempty"`
	SessionID   *string   `json:"sessionId,omitempty"`
	VisitorID   *string   `json:"visitorId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LikeEvent is one row per like call. No dedup by session.
type LikeEvent struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	SessionID *string   `json:"sessionId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DailyStat is one pre-aggregated row per calendar day, upserted by an
// external job. Date is ISO-8601 day granularity (YYYY-MM-DD).
type DailyStat struct {
	Date                      string  `json:"date"`
	TotalViews                int     `json:"totalViews"`
	UniqueVisitors            int     `json:"uniqueVisitors"`
	BounceRate                float64 `json:"bounceRate"`
	AvgSessionDurationSeconds float64 `json:"avgSessionDurationSeconds"`
}

// TopPageStat is re-derived periodically by an external process.
type TopPageStat struct {
	Path      string `json:"path"`
	Title     string `json:"title"`
	ViewCount int    `json:"viewCount"`
}

// SectionCount is one logical page section and its click count.
type SectionCount struct {
	SectionID string `json:"sectionId"`
	Count     int    `json:"count"`
	Intensity string `json:"intensity,omitempty"`
}
