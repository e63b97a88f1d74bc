package analytics

import (
	"fmt"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

// SQLStatsRepository reads the pre-aggregated stat tables maintained by the
// external aggregation job. This engine never writes them.
type SQLStatsRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

// NewSQLStatsRepository creates a new instance of the repository.
func NewSQLStatsRepository(db *database.DB, logger *logging.ChanneledLogger) *SQLStatsRepository {
	return &SQLStatsRepository{
		db:     db,
		logger: logger,
	}
}

// FindDailyStatsSince retrieves daily_stats rows with date >= since
// (YYYY-MM-DD), ascending by date.
func (r *SQLStatsRepository) FindDailyStatsSince(since string) ([]*analytics.DailyStat, error) {
	const query = `
		SELECT date, total_views, unique_visitors, bounce_rate, avg_session_duration_seconds
		FROM daily_stats
		WHERE date >= ?
		ORDER BY date`

	start := time.Now()
	r.logger.Database().Debug("Loading daily stats", "since", since)

	rows, err := r.db.Query(query, since)
	if err != nil {
		r.logger.Database().Error("Failed to query daily stats", "error", err.Error(), "since", since)
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []*analytics.DailyStat
	for rows.Next() {
		var stat analytics.DailyStat
		if err := rows.Scan(&stat.Date, &stat.TotalViews, &stat.UniqueVisitors, &stat.BounceRate, &stat.AvgSessionDurationSeconds); err != nil {
			r.logger.Database().Error("Failed to scan daily stat row", "error", err.Error())
			continue
		}
		stats = append(stats, &stat)
	}

	if err := rows.Err(); err != nil {
		r.logger.Database().Error("Row iteration error for daily stats", "error", err.Error())
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "analytics")
	}
	return stats, nil
}

// FindTopPages retrieves the externally maintained top page ranking,
// descending by view count.
func (r *SQLStatsRepository) FindTopPages(limit int) ([]*analytics.TopPageStat, error) {
	const query = `
		SELECT path, title, view_count
		FROM top_pages
		ORDER BY view_count DESC
		LIMIT ?`

	start := time.Now()
	rows, err := r.db.Query(query, limit)
	if err != nil {
		r.logger.Database().Error("Failed to query top pages", "error", err.Error())
		return nil, fmt.Errorf("failed to query top pages: %w", err)
	}
	defer rows.Close()

	var pages []*analytics.TopPageStat
	for rows.Next() {
		var page analytics.TopPageStat
		if err := rows.Scan(&page.Path, &page.Title, &page.ViewCount); err != nil {
			r.logger.Database().Error("Failed to scan top page row", "error", err.Error())
			continue
		}
		pages = append(pages, &page)
	}

	if err := rows.Err(); err != nil {
		r.logger.Database().Error("Row iteration error for top pages", "error", err.Error())
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "analytics")
	}
	return pages, nil
}
