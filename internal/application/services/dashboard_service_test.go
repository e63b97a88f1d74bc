package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/analytics"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
)

func newDashboardService(t *testing.T) (*DashboardService, *database.DB) {
	t.Helper()

	db := newTestDB(t)
	logger := newTestLogger(t)
	statsRepo := persistence.NewSQLStatsRepository(db, logger)
	eventRepo := persistence.NewSQLEventRepository(db, logger)
	return NewDashboardService(statsRepo, eventRepo, logger, newTestTracker()), db
}

func seedDailyStats(t *testing.T, db *database.DB, days, viewsPerDay, visitorsPerDay int) {
	t.Helper()

	now := time.Now().UTC()
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		_, err := db.Exec(
			`INSERT INTO daily_stats (date, total_views, unique_visitors, bounce_rate, avg_session_duration_seconds) VALUES (?, ?, ?, ?, ?)`,
			date, viewsPerDay, visitorsPerDay, 40.0, 125.0,
		)
		require.NoError(t, err)
	}
}

func TestComputeDashboardThirtyDayScenario(t *testing.T) {
	svc, db := newDashboardService(t)
	seedDailyStats(t, db, 30, 100, 10)

	resp := svc.ComputeDashboard(30)

	assert.Equal(t, 3000, resp.KPIs.TotalViews)
	assert.Equal(t, 100, resp.KPIs.AvgViewsPerDay)
	assert.Equal(t, 300, resp.KPIs.TotalVisitors)
	assert.Equal(t, 100, resp.KPIs.TodayViews)
	assert.Equal(t, 10, resp.KPIs.TodayVisitors)
	assert.Equal(t, 40, resp.KPIs.BounceRate)
	assert.Equal(t, "2:05", resp.KPIs.AvgSessionDuration)
	assert.Len(t, resp.DailyStats, 30)
}

func TestComputeDashboardAvgDividesByRequestedWindow(t *testing.T) {
	// Only 5 days of history but a 30 day window: the average divides by
	// the window length and understates the daily rate.
	svc, db := newDashboardService(t)
	seedDailyStats(t, db, 5, 100, 10)

	resp := svc.ComputeDashboard(30)

	assert.Equal(t, 500, resp.KPIs.TotalViews)
	assert.Equal(t, 17, resp.KPIs.AvgViewsPerDay)
}

func TestComputeDashboardGrowthZeroWithShortHistory(t *testing.T) {
	// The previous-period window comes from the same fetch, which only
	// covers the requested window, so growth reads 0.
	svc, db := newDashboardService(t)
	seedDailyStats(t, db, 30, 100, 10)

	resp := svc.ComputeDashboard(30)

	assert.Equal(t, 0, resp.KPIs.ViewsGrowth)
	assert.Equal(t, 0, resp.KPIs.VisitorsGrowth)
}

func TestGrowthZeroGuard(t *testing.T) {
	assert.Equal(t, 0, growth(500, 0))
	assert.Equal(t, 0, growth(0, 0))
	assert.Equal(t, 50, growth(150, 100))
	assert.Equal(t, -50, growth(50, 100))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "0:09", formatDuration(9))
	assert.Equal(t, "2:05", formatDuration(125))
	// Sessions over an hour keep accumulating minutes.
	assert.Equal(t, "75:00", formatDuration(4500))
}

func TestComputeDashboardPeriodClamping(t *testing.T) {
	assert.Equal(t, 30, ClampPeriod(0))
	assert.Equal(t, 30, ClampPeriod(-5))
	assert.Equal(t, 1, ClampPeriod(1))
	assert.Equal(t, 90, ClampPeriod(90))
	assert.Equal(t, 90, ClampPeriod(365))
}

func TestClassifyDevices(t *testing.T) {
	views := make([]*analytics.PageViewEvent, 0, 10)
	add := func(device string, n int) {
		for i := 0; i < n; i++ {
			views = append(views, &analytics.PageViewEvent{DeviceType: device})
		}
	}
	add("Desktop (Windows)", 5)
	add("TABLET ipad", 2)
	add("iphone", 3)

	devices := classifyDevices(views)

	assert.Equal(t, 50, devices.Desktop)
	assert.Equal(t, 20, devices.Tablet)
	assert.Equal(t, 30, devices.Mobile)
}

func TestDevicePercentagesStayNearHundred(t *testing.T) {
	// Independent rounding; the buckets stay within 2 of 100 and in range.
	for _, counts := range [][3]int{{1, 1, 1}, {2, 3, 4}, {7, 11, 13}, {1, 0, 0}, {33, 33, 34}} {
		var views []*analytics.PageViewEvent
		for i := 0; i < counts[0]; i++ {
			views = append(views, &analytics.PageViewEvent{DeviceType: "desktop"})
		}
		for i := 0; i < counts[1]; i++ {
			views = append(views, &analytics.PageViewEvent{DeviceType: "tablet"})
		}
		for i := 0; i < counts[2]; i++ {
			views = append(views, &analytics.PageViewEvent{DeviceType: "mobile"})
		}

		devices := classifyDevices(views)
		sum := devices.Desktop + devices.Tablet + devices.Mobile
		assert.InDelta(t, 100, sum, 2, "counts %v summed to %d", counts, sum)
		for _, pct := range []int{devices.Desktop, devices.Tablet, devices.Mobile} {
			assert.GreaterOrEqual(t, pct, 0)
			assert.LessOrEqual(t, pct, 100)
		}
	}
}

func TestGroupLocations(t *testing.T) {
	country := func(name string) *string { return &name }

	var views []*analytics.PageViewEvent
	for i := 0; i < 5; i++ {
		views = append(views, &analytics.PageViewEvent{Country: country("Germany")})
	}
	for i := 0; i < 3; i++ {
		views = append(views, &analytics.PageViewEvent{Country: country("France")})
	}
	views = append(views, &analytics.PageViewEvent{})

	locations := groupLocations(views, 20)

	require.Len(t, locations, 3)
	assert.Equal(t, LocationCount{Country: "Germany", Count: 5}, locations[0])
	assert.Equal(t, LocationCount{Country: "France", Count: 3}, locations[1])
	assert.Equal(t, LocationCount{Country: "Unknown", Count: 1}, locations[2])
}

func TestGroupLocationsCap(t *testing.T) {
	var views []*analytics.PageViewEvent
	for i := 0; i < 30; i++ {
		name := fmt.Sprintf("Country-%02d", i)
		views = append(views, &analytics.PageViewEvent{Country: &name})
	}

	locations := groupLocations(views, 20)
	assert.Len(t, locations, 20)
}

func TestComputeDashboardFailureReturnsDefaultShape(t *testing.T) {
	svc, db := newDashboardService(t)
	_, err := db.Exec(`DROP TABLE daily_stats`)
	require.NoError(t, err)

	resp := svc.ComputeDashboard(30)

	assert.Equal(t, KPISummary{AvgSessionDuration: "0:00"}, resp.KPIs)
	assert.Empty(t, resp.DailyStats)
	assert.Empty(t, resp.TopPages)
	assert.Empty(t, resp.Locations)
}

func TestComputeDashboardTopPagesLimit(t *testing.T) {
	svc, db := newDashboardService(t)
	seedDailyStats(t, db, 3, 10, 1)

	for i := 0; i < 15; i++ {
		_, err := db.Exec(
			`INSERT INTO top_pages (path, title, view_count) VALUES (?, ?, ?)`,
			fmt.Sprintf("/page-%02d", i), fmt.Sprintf("Page %02d", i), 100-i,
		)
		require.NoError(t, err)
	}

	resp := svc.ComputeDashboard(30)

	require.Len(t, resp.TopPages, 10)
	assert.Equal(t, "/page-00", resp.TopPages[0].Path)
	assert.Equal(t, 100, resp.TopPages[0].ViewCount)
}
