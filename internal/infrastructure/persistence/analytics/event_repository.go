// Package analytics provides the concrete SQL-based implementations
// for analytics event persistence.
//
// PURPOSE: store visitor beacons to the database as they arrive
// - page view beacons → page_views table
// - click beacons → clicks table
// - hover beacons → hovers table
// - like calls → likes table
//
// Rows are append-only; aggregation reads happen in the stats repository
// and the dashboard/heatmap services.
package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

// timeLayout keeps stored timestamps lexicographically sortable and lets the
// heatmap month filter run as a plain string prefix match.
const timeLayout = time.RFC3339

// SQLEventRepository handles real-time beacon persistence to the database.
type SQLEventRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLEventRepository creates a new instance of the repository.
func NewSQLEventRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLEventRepository {
	return &SQLEventRepository{
		db:     db,
		logger: logger,
	}
}

// StorePageView saves a page view beacon.
func (r *SQLEventRepository) StorePageView(event *analytics.PageViewEvent) error {
	const query = `
		INSERT INTO page_views (id, page_path, page_title, referrer, user_agent, device_type, country, city, session_id, visitor_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing page view insert", "id", event.ID, "pagePath", event.PagePath)

	_, err := r.db.Exec(
		query,
		event.ID,
		event.PagePath,
		event.PageTitle,
		event.Referrer,
		event.UserAgent,
		event.DeviceType,
		event.Country,
		event.City,
		event.SessionID,
		event.VisitorID,
		event.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		r.logger.Database().Error("Page view insert failed", "error", err.Error(), "id", event.ID, "pagePath", event.PagePath)
		return fmt.Errorf("failed to store page view: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "analytics")
	}
	return nil
}

// StoreClick saves a click beacon.
func (r *SQLEventRepository) StoreClick(event *analytics.ClickEvent) error {
	const query = `
		INSERT INTO clicks (id, page_path, x_pct, y_pct, element_type, element_text, element_id, element_class, viewport_width, viewport_height, scroll_depth_pct, section_id, session_id, visitor_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing click insert", "id", event.ID, "pagePath", event.PagePath, "sectionId", event.SectionID)

	_, err := r.db.Exec(
		query,
		event.ID,
		event.PagePath,
		event.XPct,
		event.YPct,
		event.ElementType,
		event.ElementText,
		event.ElementID,
		event.ElementClass,
		event.ViewportWidth,
		event.ViewportHeight,
		event.ScrollDepthPct,
		event.SectionID,
		event.SessionID,
		event.VisitorID,
		event.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		r.logger.Database().Error("Click insert failed", "error", err.Error(), "id", event.ID, "pagePath", event.PagePath)
		return fmt.Errorf("failed to store click: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "analytics")
	}
	return nil
}

// StoreHover saves a hover beacon.
func (r *SQLEventRepository) StoreHover(event *analytics.HoverEvent) error {
	const query = `
		INSERT INTO hovers (id, page_path, element_type, element_id, section_id, duration_ms, session_id, visitor_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing hover insert", "id", event.ID, "pagePath", event.PagePath)

	_, err := r.db.Exec(
		query,
		event.ID,
		event.PagePath,
		event.ElementType,
		event.ElementID,
		event.SectionID,
		event.DurationMs,
		event.SessionID,
		event.VisitorID,
		event.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		r.logger.Database().Error("Hover insert failed", "error", err.Error(), "id", event.ID, "pagePath", event.PagePath)
		return fmt.Errorf("failed to store hover: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "analytics")
	}
	return nil
}

// StoreLike saves one like row. No dedup by session; counting twice for the
// same article from different sessions is expected behavior.
func (r *SQLEventRepository) StoreLike(event *analytics.LikeEvent) error {
	const query = `INSERT INTO likes (id, article_id, session_id, created_at) VALUES (?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing like insert", "id", event.ID, "articleId", event.ArticleID)

	_, err := r.db.Exec(query, event.ID, event.ArticleID, event.SessionID, event.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		r.logger.Database().Error("Like insert failed", "error", err.Error(), "articleId", event.ArticleID)
		return fmt.Errorf("failed to store like: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "analytics")
	}
	return nil
}

// CountLikes returns the total like rows for an article.
func (r *SQLEventRepository) CountLikes(articleID string) (int, error) {
	const query = `SELECT COUNT(*) FROM likes WHERE article_id = ?`

	var count int
	if err := r.db.QueryRow(query, articleID).Scan(&count); err != nil {
		r.logger.Database().Error("Like count failed", "error", err.Error(), "articleId", articleID)
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// StoreLegacyEvent writes a beacon into the legacy catch-all table. Used as
// the secondary target when a primary insert fails.
func (r *SQLEventRepository) StoreLegacyEvent(id, eventType, pagePath string, payload any, createdAt time.Time) error {
	payloadJSON, _ := json.Marshal(payload)

	const query = `INSERT INTO site_events (id, event_type, page_path, payload, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query, id, eventType, pagePath, string(payloadJSON), createdAt.UTC().Format(timeLayout))
	if err != nil {
		r.logger.Database().Error("Legacy event insert failed", "error", err.Error(), "eventType", eventType)
		return fmt.Errorf("failed to store legacy event: %w", err)
	}
	return nil
}

// FindPageViewsSince retrieves raw page view rows created at or after start,
// for the device and location breakdowns.
func (r *SQLEventRepository) FindPageViewsSince(since time.Time) ([]*analytics.PageViewEvent, error) {
	const query = `
		SELECT id, page_path, page_title, referrer, user_agent, device_type, country, city, session_id, visitor_id, created_at
		FROM page_views
		WHERE created_at >= ?
		ORDER BY created_at`

	start := time.Now()
	r.logger.Database().Debug("Loading page views in range", "since", since)

	rows, err := r.db.Query(query, since.UTC().Format(timeLayout))
	if err != nil {
		r.logger.Database().Error("Failed to query page views", "error", err.Error(), "since", since)
		return nil, fmt.Errorf("failed to query page views: %w", err)
	}
	defer rows.Close()

	var events []*analytics.PageViewEvent
	for rows.Next() {
		var event analytics.PageViewEvent
		var pageTitle, referrer, userAgent, deviceType sql.NullString
		var country, city, sessionID, visitorID sql.NullString
		var createdAtStr string

		err := rows.Scan(
			&event.ID,
			&event.PagePath,
			&pageTitle,
			&referrer,
			&userAgent,
			&deviceType,
			&country,
			&city,
			&sessionID,
			&visitorID,
			&createdAtStr,
		)
		if err != nil {
			r.logger.Database().Error("Failed to scan page view row", "error", err.Error())
			continue
		}

		event.Referrer = referrer.String
		event.UserAgent = userAgent.String
		event.DeviceType = deviceType.String
		if pageTitle.Valid {
			event.PageTitle = &pageTitle.String
		}
		if country.Valid {
			event.Country = &country.String
		}
		if city.Valid {
			event.City = &city.String
		}
		if sessionID.Valid {
			event.SessionID = &sessionID.String
		}
		if visitorID.Valid {
			event.VisitorID = &visitorID.String
		}
		if parsed, err := time.Parse(timeLayout, createdAtStr); err == nil {
			event.CreatedAt = parsed
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		r.logger.Database().Error("Row iteration error for page views", "error", err.Error())
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "analytics")
	}
	return events, nil
}

// FindClicksByPage retrieves click rows for an exact page path. When
// monthPrefix is non-empty (YYYY-MM) rows are filtered by a created_at
// string prefix match, which assumes UTC-stored timestamps.
func (r *SQLEventRepository) FindClicksByPage(pagePath, monthPrefix string) ([]*analytics.ClickEvent, error) {
	query := `
		SELECT id, page_path, x_pct, y_pct, element_type, element_text, element_id, element_class, viewport_width, viewport_height, scroll_depth_pct, section_id, session_id, visitor_id, created_at
		FROM clicks
		WHERE page_path = ?`
	args := []any{pagePath}

	if monthPrefix != "" {
		query += ` AND created_at LIKE ?`
		args = append(args, monthPrefix+"%")
	}
	query += ` ORDER BY created_at`

	start := time.Now()
	r.logger.Database().Debug("Loading clicks for page", "pagePath", pagePath, "month", monthPrefix)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Database().Error("Failed to query clicks", "error", err.Error(), "pagePath", pagePath)
		return nil, fmt.Errorf("failed to query clicks: %w", err)
	}
	defer rows.Close()

	var events []*analytics.ClickEvent
	for rows.Next() {
		var event analytics.ClickEvent
		var xPct, yPct, viewportWidth, viewportHeight, scrollDepthPct sql.NullFloat64
		var elementType, elementText, elementID, elementClass, sectionID sql.NullString
		var sessionID, visitorID sql.NullString
		var createdAtStr string

		err := rows.Scan(
			&event.ID,
			&event.PagePath,
			&xPct,
			&yPct,
			&elementType,
			&elementText,
			&elementID,
			&elementClass,
			&viewportWidth,
			&viewportHeight,
			&scrollDepthPct,
			&sectionID,
			&sessionID,
			&visitorID,
			&createdAtStr,
		)
		if err != nil {
			r.logger.Database().Error("Failed to scan click row", "error", err.Error())
			continue
		}

		if xPct.Valid {
			event.XPct = &xPct.Float64
		}
		if yPct.Valid {
			event.YPct = &yPct.Float64
		}
		if viewportWidth.Valid {
			event.ViewportWidth = &viewportWidth.Float64
		}
		if viewportHeight.Valid {
			event.ViewportHeight = &viewportHeight.Float64
		}
		if scrollDepthPct.Valid {
			event.ScrollDepthPct = &scrollDepthPct.Float64
		}
		event.ElementType = elementType.String
		event.ElementText = elementText.String
		event.ElementID = elementID.String
		event.ElementClass = elementClass.String
		event.SectionID = sectionID.String
		if sessionID.Valid {
			event.SessionID = &sessionID.String
		}
		if visitorID.Valid {
			event.VisitorID = &visitorID.String
		}
		if parsed, err := time.Parse(timeLayout, createdAtStr); err == nil {
			event.CreatedAt = parsed
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		r.logger.Database().Error("Row iteration error for clicks", "error", err.Error())
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "analytics")
	}
	return events, nil
}
