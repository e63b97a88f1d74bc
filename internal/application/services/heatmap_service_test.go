package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/analytics"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
)

func newHeatmapService(t *testing.T) (*HeatmapService, *database.DB) {
	t.Helper()

	db := newTestDB(t)
	logger := newTestLogger(t)
	eventRepo := persistence.NewSQLEventRepository(db, logger)
	return NewHeatmapService(eventRepo, logger, newTestTracker()), db
}

func seedClick(t *testing.T, db *database.DB, id, pagePath, sectionID string, createdAt time.Time) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO clicks (id, page_path, section_id, created_at) VALUES (?, ?, ?, ?)`,
		id, pagePath, sectionID, createdAt.UTC().Format(time.RFC3339),
	)
	require.NoError(t, err)
}

func TestComputeHeatmapSectionScenario(t *testing.T) {
	svc, db := newHeatmapService(t)
	now := time.Now().UTC()
	seedClick(t, db, "c1", "/", "hero", now)
	seedClick(t, db, "c2", "/", "hero", now)
	seedClick(t, db, "c3", "/", "faqs", now)

	resp := svc.ComputeHeatmap("/", "")

	assert.Equal(t, "/", resp.PagePath)
	assert.Equal(t, 3, resp.TotalClicks)
	assert.Equal(t, 2, resp.MaxSectionCount)
	require.Len(t, resp.SectionSummary, 2)
	assert.Equal(t, "hero", resp.SectionSummary[0].SectionID)
	assert.Equal(t, 2, resp.SectionSummary[0].Count)
	assert.Equal(t, "faqs", resp.SectionSummary[1].SectionID)
	assert.Equal(t, 1, resp.SectionSummary[1].Count)
}

func TestComputeHeatmapSectionCountsSumToTotal(t *testing.T) {
	svc, db := newHeatmapService(t)
	now := time.Now().UTC()
	sections := []string{"hero", "hero", "pricing", "pricing", "pricing", "faqs", "", ""}
	for i, section := range sections {
		seedClick(t, db, string(rune('a'+i)), "/pricing", section, now)
	}

	resp := svc.ComputeHeatmap("/pricing", "")

	sum := 0
	for _, section := range resp.SectionSummary {
		sum += section.Count
	}
	assert.Equal(t, resp.TotalClicks, sum)

	// Empty section ids group under "unknown".
	found := false
	for _, section := range resp.SectionSummary {
		if section.SectionID == "unknown" {
			found = true
			assert.Equal(t, 2, section.Count)
		}
	}
	assert.True(t, found)
}

func TestComputeHeatmapFiltersByPageAndMonth(t *testing.T) {
	svc, db := newHeatmapService(t)
	march := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	seedClick(t, db, "c1", "/", "hero", march)
	seedClick(t, db, "c2", "/", "hero", april)
	seedClick(t, db, "c3", "/about", "team", march)

	resp := svc.ComputeHeatmap("/", "2026-03")

	assert.Equal(t, 1, resp.TotalClicks)
	require.Len(t, resp.SectionSummary, 1)
	assert.Equal(t, "hero", resp.SectionSummary[0].SectionID)
}

func TestComputeHeatmapIntensityTiers(t *testing.T) {
	svc, db := newHeatmapService(t)
	now := time.Now().UTC()
	add := func(prefix, section string, n int) {
		for i := 0; i < n; i++ {
			seedClick(t, db, prefix+string(rune('0'+i)), "/", section, now)
		}
	}
	add("h", "hero", 10)
	add("p", "pricing", 5)
	add("f", "faqs", 2)

	resp := svc.ComputeHeatmap("/", "")

	byID := map[string]string{}
	for _, section := range resp.SectionSummary {
		byID[section.SectionID] = section.Intensity
	}
	assert.Equal(t, "hot", byID["hero"])
	assert.Equal(t, "warm", byID["pricing"])
	assert.Equal(t, "cool", byID["faqs"])
}

func TestComputeHeatmapFailureReturnsEmptyShape(t *testing.T) {
	svc, db := newHeatmapService(t)
	_, err := db.Exec(`DROP TABLE clicks`)
	require.NoError(t, err)

	resp := svc.ComputeHeatmap("/", "")

	assert.Equal(t, "/", resp.PagePath)
	assert.Equal(t, 0, resp.TotalClicks)
	assert.NotNil(t, resp.Clicks)
	assert.Empty(t, resp.Clicks)
	assert.Empty(t, resp.SectionSummary)
	assert.Equal(t, 0, resp.MaxSectionCount)
}

func TestComputeHeatmapNoClicks(t *testing.T) {
	svc, _ := newHeatmapService(t)

	resp := svc.ComputeHeatmap("/nothing", "")

	assert.Equal(t, 0, resp.TotalClicks)
	assert.Empty(t, resp.SectionSummary)
	assert.Equal(t, 0, resp.MaxSectionCount)
}
