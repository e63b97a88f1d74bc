package content

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, database.NewTableCreator().CreateSchema(conn))
	return &database.DB{DB: conn}
}

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()

	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	require.NoError(t, err)
	return logger
}

func TestTagStoreAssignsSequentialPositions(t *testing.T) {
	repo := NewTagRepository(newTestDB(t), newTestLogger(t))

	for i := 0; i < 3; i++ {
		tag := &content.Tag{ID: fmt.Sprintf("t%d", i), Name: fmt.Sprintf("Tag %d", i), Slug: fmt.Sprintf("tag-%d", i)}
		require.NoError(t, repo.Store(tag))
		assert.Equal(t, i, tag.Position)
	}

	tags, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, tags, 3)
	for i, tag := range tags {
		assert.Equal(t, i, tag.Position)
	}
}

func TestReorderRewritesPositions(t *testing.T) {
	repo := NewTagRepository(newTestDB(t), newTestLogger(t))

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Store(&content.Tag{ID: id, Name: id, Slug: id}))
	}

	require.NoError(t, repo.Reorder([]string{"c", "a", "b"}))

	tags, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "c", tags[0].ID)
	assert.Equal(t, "a", tags[1].ID)
	assert.Equal(t, "b", tags[2].ID)
	for i, tag := range tags {
		assert.Equal(t, i, tag.Position)
	}
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	repo := NewFAQRepository(newTestDB(t), newTestLogger(t))

	require.NoError(t, repo.Store(&content.FAQ{ID: "f1", Question: "How long does a project take?", Answer: "Depends."}))

	err := repo.Update("f1", map[string]any{"unknownField": "x"})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	err = repo.Update("f1", map[string]any{})
	assert.ErrorIs(t, err, ErrEmptyPatch)
}

func TestUpdateUnknownIDFails(t *testing.T) {
	repo := NewFAQRepository(newTestDB(t), newTestLogger(t))

	err := repo.Update("missing", map[string]any{"question": "anyone?"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no faqs row")
}

func TestUpdatePatchesNamedFieldsOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewPartnerRepository(db, newTestLogger(t))

	url := "https://example.com"
	require.NoError(t, repo.Store(&content.Partner{ID: "p1", Name: "Acme", SiteURL: &url}))

	require.NoError(t, repo.Update("p1", map[string]any{"name": "Acme GmbH", "position": 99}))

	partners, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, partners, 1)
	assert.Equal(t, "Acme GmbH", partners[0].Name)
	// position is not patchable through update
	assert.Equal(t, 0, partners[0].Position)
	require.NotNil(t, partners[0].SiteURL)
	assert.Equal(t, url, *partners[0].SiteURL)
}

func TestArticleLifecycle(t *testing.T) {
	repo := NewArticleRepository(newTestDB(t), newTestLogger(t))

	article := &content.Article{
		Title:   "Redesigning the onboarding flow",
		Slug:    "redesigning-onboarding",
		Excerpt: "A case study",
		Body:    "Long form text",
		TagIDs:  []string{"t1", "t2"},
	}
	article.ID = "a1"
	require.NoError(t, repo.Store(article))
	assert.Equal(t, 0, article.Position)

	loaded, err := repo.FindByID("a1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{"t1", "t2"}, loaded.TagIDs)
	assert.False(t, loaded.Created.IsZero())
	assert.Nil(t, loaded.Changed)

	require.NoError(t, repo.Update("a1", map[string]any{"title": "Redesigning onboarding", "tagIds": []string{"t3"}}))
	loaded, err = repo.FindByID("a1")
	require.NoError(t, err)
	assert.Equal(t, "Redesigning onboarding", loaded.Title)
	assert.Equal(t, []string{"t3"}, loaded.TagIDs)
	assert.NotNil(t, loaded.Changed)

	require.NoError(t, repo.Delete("a1"))
	loaded, err = repo.FindByID("a1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestArticleMediaPaths(t *testing.T) {
	repo := NewArticleRepository(newTestDB(t), newTestLogger(t))

	require.NoError(t, repo.Store(&content.Article{ID: "a1", Title: "T", Slug: "t"}))

	thumbnail := "a1/thumbnail/0-cover.webp"
	video := "a1/video/0-walkthrough.mp4"
	gallery := []string{"a1/gallery/0-one.jpg", "a1/gallery/1-two.jpg"}
	documents := []string{"a1/documents/0-brief.pdf"}
	require.NoError(t, repo.SetMediaPaths("a1", &thumbnail, &video, gallery, documents))

	loaded, err := repo.FindByID("a1")
	require.NoError(t, err)
	require.NotNil(t, loaded.ThumbnailPath)
	assert.Equal(t, thumbnail, *loaded.ThumbnailPath)
	require.NotNil(t, loaded.VideoPath)
	assert.Equal(t, video, *loaded.VideoPath)
	assert.Equal(t, gallery, loaded.GalleryPaths)
	assert.Equal(t, documents, loaded.DocumentPaths)
}

func TestFeaturedClearThenSet(t *testing.T) {
	repo := NewArticleRepository(newTestDB(t), newTestLogger(t))

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.Store(&content.Article{ID: id, Title: id, Slug: id, IsFeatured: id == "a"}))
	}

	require.NoError(t, repo.ClearFeatured())
	require.NoError(t, repo.SetFeatured([]string{"b", "c"}))

	articles, err := repo.FindAll()
	require.NoError(t, err)

	featured := map[string]bool{}
	for _, article := range articles {
		featured[article.ID] = article.IsFeatured
	}
	assert.False(t, featured["a"])
	assert.True(t, featured["b"])
	assert.True(t, featured["c"])
	assert.False(t, featured["d"])
}
