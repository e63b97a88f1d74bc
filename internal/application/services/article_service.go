package services

import (
	"fmt"
	"io"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/media"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/security"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

// MediaUpload is one uploaded file destined for article storage.
type MediaUpload struct {
	Filename string
	Reader   io.Reader
}

// ArticleService manages the article collection, including media uploads
// and the exclusive featured flag.
type ArticleService struct {
	articleRepo *persistence.ArticleRepository
	processor   *media.Processor
	logger      *logging.ChanneledLogger
}

// NewArticleService creates a new article service.
func NewArticleService(articleRepo *persistence.ArticleRepository, processor *media.Processor, logger *logging.ChanneledLogger) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		processor:   processor,
		logger:      logger,
	}
}

// List returns every article ordered by position.
func (s *ArticleService) List() ([]*content.Article, error) {
	articles, err := s.articleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []*content.Article{}
	}
	return articles, nil
}

// Get returns one article, nil when absent.
func (s *ArticleService) Get(id string) (*content.Article, error) {
	return s.articleRepo.FindByID(id)
}

// Create appends a new article at the next position.
func (s *ArticleService) Create(article *content.Article) (*content.Article, error) {
	if article.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	article.ID = security.GenerateULID()
	if err := s.articleRepo.Store(article); err != nil {
		return nil, err
	}

	s.logger.Content().Info("Created article", "id", article.ID, "slug", article.Slug)
	return article, nil
}

// Update patches named fields on an article.
func (s *ArticleService) Update(id string, fields map[string]any) error {
	return s.articleRepo.Update(id, fields)
}

// Delete removes an article and its stored media.
func (s *ArticleService) Delete(id string) error {
	if err := s.articleRepo.Delete(id); err != nil {
		return err
	}
	if err := s.processor.RemoveArticleMedia(id); err != nil {
		s.logger.Content().Warn("Failed to remove article media", "id", id, "error", err.Error())
	}
	s.logger.Content().Info("Deleted article", "id", id)
	return nil
}

// Reorder rewrites article positions from the supplied id order.
func (s *ArticleService) Reorder(orderedIDs []string) error {
	return s.articleRepo.Reorder(orderedIDs)
}

// SetFeatured marks the given articles as featured, after clearing the flag
// everywhere. The two writes are independent; a crash between them leaves
// zero featured articles.
func (s *ArticleService) SetFeatured(ids []string) error {
	if len(ids) > config.MaxFeaturedCount {
		return fmt.Errorf("at most %d articles can be featured", config.MaxFeaturedCount)
	}

	if err := s.articleRepo.ClearFeatured(); err != nil {
		return err
	}
	if err := s.articleRepo.SetFeatured(ids); err != nil {
		return err
	}

	s.logger.Content().Info("Updated featured articles", "count", len(ids))
	return nil
}

// AttachMedia stores the uploaded files for an article and records their
// paths. The thumbnail is required; gallery, video, and documents are
// optional. Existing media paths are overwritten wholesale.
func (s *ArticleService) AttachMedia(articleID string, thumbnail *MediaUpload, gallery []MediaUpload, video *MediaUpload, documents []MediaUpload) (*content.Article, error) {
	article, err := s.articleRepo.FindByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("no article with id %s", articleID)
	}
	if thumbnail == nil {
		return nil, fmt.Errorf("thumbnail is required")
	}

	thumbnailPath, err := s.processor.StoreThumbnail(articleID, thumbnail.Filename, thumbnail.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to store thumbnail: %w", err)
	}

	galleryPaths := make([]string, 0, len(gallery))
	for i, upload := range gallery {
		path, err := s.processor.StoreFile(articleID, "gallery", i, upload.Filename, upload.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store gallery file: %w", err)
		}
		galleryPaths = append(galleryPaths, path)
	}

	var videoPath *string
	if video != nil {
		path, err := s.processor.StoreFile(articleID, "video", 0, video.Filename, video.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store video: %w", err)
		}
		videoPath = &path
	}

	documentPaths := make([]string, 0, len(documents))
	for i, upload := range documents {
		path, err := s.processor.StoreFile(articleID, "documents", i, upload.Filename, upload.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to store document: %w", err)
		}
		documentPaths = append(documentPaths, path)
	}

	if err := s.articleRepo.SetMediaPaths(articleID, &thumbnailPath, videoPath, galleryPaths, documentPaths); err != nil {
		return nil, err
	}

	s.logger.Content().Info("Attached article media", "id", articleID, "gallery", len(galleryPaths), "documents", len(documentPaths))
	return s.articleRepo.FindByID(articleID)
}
