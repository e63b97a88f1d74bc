package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/application/services"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/content"
)

// ReorderRequest carries a full replacement ordering for a collection.
type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIds" binding:"required"`
}

// FeaturedRequest selects the featured article set.
type FeaturedRequest struct {
	ArticleIDs []string `json:"articleIds"`
}

// ArticleHandlers serves the article CRUD, ordering, featured, and media
// endpoints.
type ArticleHandlers struct {
	articleService *services.ArticleService
	logger         *logging.ChanneledLogger
}

// NewArticleHandlers creates article endpoint handlers.
func NewArticleHandlers(articleService *services.ArticleService, logger *logging.ChanneledLogger) *ArticleHandlers {
	return &ArticleHandlers{
		articleService: articleService,
		logger:         logger,
	}
}

// List handles GET /api/articles.
func (h *ArticleHandlers) List(c *gin.Context) {
	articles, err := h.articleService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Get handles GET /api/articles/:id.
func (h *ArticleHandlers) Get(c *gin.Context) {
	article, err := h.articleService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// Create handles POST /api/articles.
func (h *ArticleHandlers) Create(c *gin.Context) {
	var article content.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.articleService.Create(&article)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/articles/:id with a partial field patch.
func (h *ArticleHandlers) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.articleService.Update(c.Param("id"), fields); err != nil {
		writePatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete handles DELETE /api/articles/:id.
func (h *ArticleHandlers) Delete(c *gin.Context) {
	if err := h.articleService.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reorder handles PUT /api/articles/order.
func (h *ArticleHandlers) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.articleService.Reorder(req.OrderedIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// SetFeatured handles PUT /api/articles/featured.
func (h *ArticleHandlers) SetFeatured(c *gin.Context) {
	var req FeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.articleService.SetFeatured(req.ArticleIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AttachMedia handles POST /api/articles/:id/media as a multipart form with
// a required "thumbnail" file and optional "gallery", "video", and
// "documents" files.
func (h *ArticleHandlers) AttachMedia(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form", "details": err.Error()})
		return
	}

	var thumbnail *services.MediaUpload
	if files := form.File["thumbnail"]; len(files) > 0 {
		reader, err := files[0].Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read thumbnail upload"})
			return
		}
		defer reader.Close()
		thumbnail = &services.MediaUpload{Filename: files[0].Filename, Reader: reader}
	}

	gallery := make([]services.MediaUpload, 0, len(form.File["gallery"]))
	for _, file := range form.File["gallery"] {
		reader, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read gallery upload"})
			return
		}
		defer reader.Close()
		gallery = append(gallery, services.MediaUpload{Filename: file.Filename, Reader: reader})
	}

	var video *services.MediaUpload
	if files := form.File["video"]; len(files) > 0 {
		reader, err := files[0].Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read video upload"})
			return
		}
		defer reader.Close()
		video = &services.MediaUpload{Filename: files[0].Filename, Reader: reader}
	}

	documents := make([]services.MediaUpload, 0, len(form.File["documents"]))
	for _, file := range form.File["documents"] {
		reader, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read document upload"})
			return
		}
		defer reader.Close()
		documents = append(documents, services.MediaUpload{Filename: file.Filename, Reader: reader})
	}

	article, err := h.articleService.AttachMedia(c.Param("id"), thumbnail, gallery, video, documents)
	if err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "failed to") {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, article)
}

// writePatchError maps patch-update failures onto HTTP statuses: empty
// patches and unknown ids are client errors, the rest are server errors.
func writePatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, persistence.ErrEmptyPatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case strings.Contains(err.Error(), "no "):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
