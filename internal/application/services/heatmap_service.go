package services

import (
	"sort"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/performance"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/analytics"
)

// HeatmapResponse is the full payload for the heatmap endpoint.
type HeatmapResponse struct {
	PagePath        string                    `json:"pagePath"`
	Clicks          []*analytics.ClickEvent   `json:"clicks"`
	TotalClicks     int                       `json:"totalClicks"`
	SectionSummary  []*analytics.SectionCount `json:"sectionSummary"`
	MaxSectionCount int                       `json:"maxSectionCount"`
}

// HeatmapService aggregates click rows into per-section counts for one page.
type HeatmapService struct {
	eventRepo   *persistence.SQLEventRepository
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewHeatmapService creates a new heatmap aggregation service.
func NewHeatmapService(eventRepo *persistence.SQLEventRepository, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *HeatmapService {
	return &HeatmapService{
		eventRepo:   eventRepo,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// ComputeHeatmap groups clicks for pagePath by section, optionally filtered
// to one YYYY-MM month. A read failure yields the empty shape, never an
// error; the endpoint always renders.
func (s *HeatmapService) ComputeHeatmap(pagePath, month string) *HeatmapResponse {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_heatmap")
	defer marker.Complete()
	marker.AddMetadata("pagePath", pagePath)

	clicks, err := s.eventRepo.FindClicksByPage(pagePath, month)
	if err != nil {
		s.logger.Analytics().Error("Heatmap click read failed, returning empty shape", "pagePath", pagePath, "error", err.Error())
		marker.SetError(err)
		return &HeatmapResponse{
			PagePath:       pagePath,
			Clicks:         []*analytics.ClickEvent{},
			SectionSummary: []*analytics.SectionCount{},
		}
	}
	if clicks == nil {
		clicks = []*analytics.ClickEvent{}
	}

	summary, maxCount := summarizeSections(clicks)

	s.logger.Analytics().Info("Computed heatmap", "pagePath", pagePath, "month", month, "totalClicks", len(clicks), "duration", time.Since(start))
	marker.SetSuccess(true)

	return &HeatmapResponse{
		PagePath:        pagePath,
		Clicks:          clicks,
		TotalClicks:     len(clicks),
		SectionSummary:  summary,
		MaxSectionCount: maxCount,
	}
}

// summarizeSections counts clicks per section id, descending by count.
// Clicks without a section fall under "unknown". Each section also gets a
// three-tier intensity relative to the busiest section.
func summarizeSections(clicks []*analytics.ClickEvent) ([]*analytics.SectionCount, int) {
	counts := make(map[string]int)
	for _, click := range clicks {
		section := click.SectionID
		if section == "" {
			section = "unknown"
		}
		counts[section]++
	}

	summary := make([]*analytics.SectionCount, 0, len(counts))
	maxCount := 0
	for section, count := range counts {
		summary = append(summary, &analytics.SectionCount{SectionID: section, Count: count})
		if count > maxCount {
			maxCount = count
		}
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Count != summary[j].Count {
			return summary[i].Count > summary[j].Count
		}
		return summary[i].SectionID < summary[j].SectionID
	})

	for _, section := range summary {
		section.Intensity = intensityTier(section.Count, maxCount)
	}
	return summary, maxCount
}

func intensityTier(count, maxCount int) string {
	if maxCount == 0 {
		return "cool"
	}
	ratio := float64(count) / float64(maxCount)
	switch {
	case ratio >= 0.66:
		return "hot"
	case ratio >= 0.33:
		return "warm"
	default:
		return "cool"
	}
}
