package content

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/database"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

const articleColumns = `id, title, slug, excerpt, body, thumbnail_path, gallery_paths, video_path, document_paths, tag_ids, is_featured, position, created, changed`

// ArticleRepository persists articles, the richest directory collection.
type ArticleRepository struct {
	db     *database.DB
	logger *logging.ChanneledLogger
}

func NewArticleRepository(db *database.DB, logger *logging.ChanneledLogger) *ArticleRepository {
	return &ArticleRepository{
		db:     db,
		logger: logger,
	}
}

// FindAll retrieves all articles ordered by position.
func (r *ArticleRepository) FindAll() ([]*content.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles ORDER BY position`, articleColumns)

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query articles", "error", err.Error())
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []*content.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			r.logger.Database().Error("Failed to scan article row", "error", err.Error())
			continue
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "content")
	}
	return articles, nil
}

// FindByID retrieves one article, nil when absent.
func (r *ArticleRepository) FindByID(id string) (*content.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = ?`, articleColumns)

	row := r.db.QueryRow(query, id)
	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to load article", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	return article, nil
}

// Store inserts a new article at the next position.
func (r *ArticleRepository) Store(article *content.Article) error {
	position, err := nextPosition(r.db, "articles")
	if err != nil {
		return err
	}
	article.Position = position
	article.Created = time.Now().UTC()

	galleryJSON, _ := json.Marshal(article.GalleryPaths)
	documentsJSON, _ := json.Marshal(article.DocumentPaths)
	tagsJSON, _ := json.Marshal(article.TagIDs)

	const query = `
		INSERT INTO articles (id, title, slug, excerpt, body, thumbnail_path, gallery_paths, video_path, document_paths, tag_ids, is_featured, position, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Executing article insert", "id", article.ID, "slug", article.Slug)

	_, err = r.db.Exec(
		query,
		article.ID,
		article.Title,
		article.Slug,
		article.Excerpt,
		article.Body,
		article.ThumbnailPath,
		string(galleryJSON),
		article.VideoPath,
		string(documentsJSON),
		string(tagsJSON),
		boolToInt(article.IsFeatured),
		article.Position,
		article.Created.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Database().Error("Article insert failed", "error", err.Error(), "id", article.ID)
		return fmt.Errorf("failed to insert article: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration, "content")
	}
	return nil
}

// articlePatchColumns maps client field names to columns for patch updates.
var articlePatchColumns = map[string]string{
	"title":   "title",
	"slug":    "slug",
	"excerpt": "excerpt",
	"body":    "body",
}

// Update patches named scalar fields. Slice-valued fields (tags) and media
// paths have dedicated operations.
func (r *ArticleRepository) Update(id string, fields map[string]any) error {
	if tagIDs, ok := fields["tagIds"]; ok {
		tagsJSON, _ := json.Marshal(tagIDs)
		fields["tagIds"] = string(tagsJSON)
	}

	allowed := make(map[string]string, len(articlePatchColumns)+1)
	for field, column := range articlePatchColumns {
		allowed[field] = column
	}
	allowed["tagIds"] = "tag_ids"

	if err := patchUpdate(r.db, r.logger, "articles", allowed, id, fields); err != nil {
		return err
	}
	return r.touch(id)
}

// SetMediaPaths overwrites the stored media path columns for an article.
func (r *ArticleRepository) SetMediaPaths(id string, thumbnail, video *string, gallery, documents []string) error {
	galleryJSON, _ := json.Marshal(gallery)
	documentsJSON, _ := json.Marshal(documents)

	const query = `UPDATE articles SET thumbnail_path = ?, video_path = ?, gallery_paths = ?, document_paths = ? WHERE id = ?`

	_, err := r.db.Exec(query, thumbnail, video, string(galleryJSON), string(documentsJSON), id)
	if err != nil {
		r.logger.Database().Error("Article media update failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to update article media: %w", err)
	}
	return r.touch(id)
}

// Delete removes an article.
func (r *ArticleRepository) Delete(id string) error {
	return deleteByID(r.db, r.logger, "articles", id)
}

// Reorder rewrites position values from the supplied order.
func (r *ArticleRepository) Reorder(orderedIDs []string) error {
	return reorderPositions(r.db, r.logger, "articles", orderedIDs)
}

// ClearFeatured unsets is_featured on every article. Part one of the
// clear-then-set sequence; a crash between the two writes leaves zero
// featured articles, which is an accepted risk.
func (r *ArticleRepository) ClearFeatured() error {
	const query = `UPDATE articles SET is_featured = 0`

	if _, err := r.db.Exec(query); err != nil {
		r.logger.Database().Error("Clear featured failed", "error", err.Error())
		return fmt.Errorf("failed to clear featured flags: %w", err)
	}
	return nil
}

// SetFeatured sets is_featured on the selected ids. Part two of the
// clear-then-set sequence.
func (r *ArticleRepository) SetFeatured(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`UPDATE articles SET is_featured = 1 WHERE id IN (%s)`, placeholders)

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	if _, err := r.db.Exec(query, args...); err != nil {
		r.logger.Database().Error("Set featured failed", "error", err.Error())
		return fmt.Errorf("failed to set featured flags: %w", err)
	}
	return nil
}

func (r *ArticleRepository) touch(id string) error {
	const query = `UPDATE articles SET changed = ? WHERE id = ?`
	if _, err := r.db.Exec(query, time.Now().UTC().Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("failed to touch article: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*content.Article, error) {
	var article content.Article
	var excerpt, body sql.NullString
	var thumbnailPath, videoPath, changed sql.NullString
	var galleryJSON, documentsJSON, tagsJSON sql.NullString
	var isFeatured int
	var createdStr string

	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&excerpt,
		&body,
		&thumbnailPath,
		&galleryJSON,
		&videoPath,
		&documentsJSON,
		&tagsJSON,
		&isFeatured,
		&article.Position,
		&createdStr,
		&changed,
	)
	if err != nil {
		return nil, err
	}

	article.Excerpt = excerpt.String
	article.Body = body.String
	if thumbnailPath.Valid {
		article.ThumbnailPath = &thumbnailPath.String
	}
	if videoPath.Valid {
		article.VideoPath = &videoPath.String
	}
	if galleryJSON.Valid && galleryJSON.String != "" {
		json.Unmarshal([]byte(galleryJSON.String), &article.GalleryPaths)
	}
	if documentsJSON.Valid && documentsJSON.String != "" {
		json.Unmarshal([]byte(documentsJSON.String), &article.DocumentPaths)
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		json.Unmarshal([]byte(tagsJSON.String), &article.TagIDs)
	}
	article.IsFeatured = isFeatured != 0
	if parsed, err := time.Parse(time.RFC3339, createdStr); err == nil {
		article.Created = parsed
	}
	if changed.Valid {
		if parsed, err := time.Parse(time.RFC3339, changed.String); err == nil {
			article.Changed = &parsed
		}
	}

	return &article, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
