package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/performance"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

// KPISummary carries the headline numbers for the admin dashboard.
type KPISummary struct {
	TodayViews         int    `json:"todayViews"`
	TodayVisitors      int    `json:"todayVisitors"`
	TotalViews         int    `json:"totalViews"`
	TotalVisitors      int    `json:"totalVisitors"`
	AvgViewsPerDay     int    `json:"avgViewsPerDay"`
	ViewsGrowth        int    `json:"viewsGrowth"`
	VisitorsGrowth     int    `json:"visitorsGrowth"`
	BounceRate         int    `json:"bounceRate"`
	AvgSessionDuration string `json:"avgSessionDuration"`
}

// DeviceBreakdown holds each device bucket's share of page views, as
// independently rounded percentages.
type DeviceBreakdown struct {
	Desktop int `json:"desktop"`
	Mobile  int `json:"mobile"`
	Tablet  int `json:"tablet"`
}

// LocationCount is one country bucket in the location breakdown.
type LocationCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// DashboardResponse is the full payload for the dashboard endpoint.
type DashboardResponse struct {
	KPIs       KPISummary               `json:"kpis"`
	DailyStats []*analytics.DailyStat   `json:"dailyStats"`
	TopPages   []*analytics.TopPageStat `json:"topPages"`
	Devices    DeviceBreakdown          `json:"devices"`
	Locations  []LocationCount          `json:"locations"`
}

// DashboardService computes the KPI summary, top-page ranking, and
// device/location breakdowns for a requested day window.
type DashboardService struct {
	statsRepo   *persistence.SQLStatsRepository
	eventRepo   *persistence.SQLEventRepository
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewDashboardService creates a new dashboard analytics service.
func NewDashboardService(statsRepo *persistence.SQLStatsRepository, eventRepo *persistence.SQLEventRepository, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *DashboardService {
	return &DashboardService{
		statsRepo:   statsRepo,
		eventRepo:   eventRepo,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// ClampPeriod normalizes the requested day window to [1, max], using the
// configured default when the request carries no usable value.
func ClampPeriod(days int) int {
	if days <= 0 {
		days = config.DashboardDefaultPeriodDays
	}
	if days < 1 {
		days = 1
	}
	if days > config.DashboardMaxPeriodDays {
		days = config.DashboardMaxPeriodDays
	}
	return days
}

// ComputeDashboard builds the dashboard payload for the last periodDays
// days. Any failure along the way collapses the whole response to the
// zeroed default shape; the endpoint never returns partial results.
func (s *DashboardService) ComputeDashboard(periodDays int) *DashboardResponse {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_dashboard")
	defer marker.Complete()

	periodDays = ClampPeriod(periodDays)
	marker.AddMetadata("periodDays", periodDays)

	resp, err := s.computeDashboard(periodDays)
	if err != nil {
		s.logger.Analytics().Error("Dashboard computation failed, returning default shape", "periodDays", periodDays, "error", err.Error())
		marker.SetError(err)
		return emptyDashboardResponse()
	}

	s.logger.Analytics().Info("Successfully computed dashboard analytics", "periodDays", periodDays, "duration", time.Since(start))
	marker.SetSuccess(true)
	s.logger.Perf().Info("Performance for ComputeDashboard", "duration", marker.Duration, "success", true)
	return resp
}

func (s *DashboardService) computeDashboard(periodDays int) (*DashboardResponse, error) {
	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	since := now.AddDate(0, 0, -(periodDays - 1)).Format("2006-01-02")

	stats, err := s.statsRepo.FindDailyStatsSince(since)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily stats: %w", err)
	}

	// The previous-period window is sliced from the same fetch. The fetch
	// spans periodDays days, so prevWindow is usually empty and growth
	// reads as 0 until the fetch covers a longer history.
	lastWindow := stats
	if len(stats) > periodDays {
		lastWindow = stats[len(stats)-periodDays:]
	}
	prevEnd := len(stats) - len(lastWindow)
	prevStart := prevEnd - periodDays
	if prevStart < 0 {
		prevStart = 0
	}
	prevWindow := stats[prevStart:prevEnd]

	var todayViews, todayVisitors int
	var totalViews, totalVisitors int
	var bounceSum, durationSum float64
	for _, stat := range lastWindow {
		if stat.Date == today {
			todayViews = stat.TotalViews
			todayVisitors = stat.UniqueVisitors
		}
		totalViews += stat.TotalViews
		totalVisitors += stat.UniqueVisitors
		bounceSum += stat.BounceRate
		durationSum += stat.AvgSessionDurationSeconds
	}

	var prevViews, prevVisitors int
	for _, stat := range prevWindow {
		prevViews += stat.TotalViews
		prevVisitors += stat.UniqueVisitors
	}

	var bounceRate int
	var avgDurationSeconds float64
	if len(lastWindow) > 0 {
		bounceRate = roundInt(bounceSum / float64(len(lastWindow)))
		avgDurationSeconds = durationSum / float64(len(lastWindow))
	}

	kpis := KPISummary{
		TodayViews:    todayViews,
		TodayVisitors: todayVisitors,
		TotalViews:    totalViews,
		TotalVisitors: totalVisitors,
		// Divides by the requested window length, not by rows present, so
		// short history understates the average.
		AvgViewsPerDay:     roundInt(float64(totalViews) / float64(periodDays)),
		ViewsGrowth:        growth(totalViews, prevViews),
		VisitorsGrowth:     growth(totalVisitors, prevVisitors),
		BounceRate:         bounceRate,
		AvgSessionDuration: formatDuration(avgDurationSeconds),
	}

	topPages, err := s.statsRepo.FindTopPages(config.TopPagesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top pages: %w", err)
	}
	if topPages == nil {
		topPages = []*analytics.TopPageStat{}
	}

	views, err := s.eventRepo.FindPageViewsSince(now.AddDate(0, 0, -(periodDays - 1)).Truncate(24 * time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to load page views: %w", err)
	}

	dailyStats := lastWindow
	if dailyStats == nil {
		dailyStats = []*analytics.DailyStat{}
	}

	return &DashboardResponse{
		KPIs:       kpis,
		DailyStats: dailyStats,
		TopPages:   topPages,
		Devices:    classifyDevices(views),
		Locations:  groupLocations(views, config.LocationsLimit),
	}, nil
}

// growth computes a percentage change with a zero-guard: undefined growth
// reports as 0, never infinity or NaN.
func growth(current, previous int) int {
	if previous <= 0 {
		return 0
	}
	return roundInt(float64(current-previous) / float64(previous) * 100)
}

// formatDuration renders seconds as "M:SS". No hour component; long
// sessions render minutes >= 60.
func formatDuration(seconds float64) string {
	total := roundInt(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// classifyDevices buckets page views by case-insensitive substring match
// on the reported device type. Everything not desktop or tablet counts as
// mobile. Percentages are rounded independently and may not sum to 100.
func classifyDevices(views []*analytics.PageViewEvent) DeviceBreakdown {
	if len(views) == 0 {
		return DeviceBreakdown{}
	}

	var desktop, tablet, mobile int
	for _, view := range views {
		device := strings.ToLower(view.DeviceType)
		switch {
		case strings.Contains(device, "desktop"):
			desktop++
		case strings.Contains(device, "tablet"):
			tablet++
		default:
			mobile++
		}
	}

	total := float64(len(views))
	return DeviceBreakdown{
		Desktop: roundInt(float64(desktop) / total * 100),
		Mobile:  roundInt(float64(mobile) / total * 100),
		Tablet:  roundInt(float64(tablet) / total * 100),
	}
}

// groupLocations counts page views per country, descending, capped at
// limit. Views without a country fall under "Unknown".
func groupLocations(views []*analytics.PageViewEvent, limit int) []LocationCount {
	counts := make(map[string]int)
	for _, view := range views {
		country := "Unknown"
		if view.Country != nil && *view.Country != "" {
			country = *view.Country
		}
		counts[country]++
	}

	locations := make([]LocationCount, 0, len(counts))
	for country, count := range counts {
		locations = append(locations, LocationCount{Country: country, Count: count})
	}
	sort.Slice(locations, func(i, j int) bool {
		if locations[i].Count != locations[j].Count {
			return locations[i].Count > locations[j].Count
		}
		return locations[i].Country < locations[j].Country
	})

	if len(locations) > limit {
		locations = locations[:limit]
	}
	return locations
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func emptyDashboardResponse() *DashboardResponse {
	return &DashboardResponse{
		KPIs:       KPISummary{AvgSessionDuration: "0:00"},
		DailyStats: []*analytics.DailyStat{},
		TopPages:   []*analytics.TopPageStat{},
		Devices:    DeviceBreakdown{},
		Locations:  []LocationCount{},
	}
}
