package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/application/services"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
)

// DirectoryHandlers serves the CRUD and ordering endpoints for the
// non-article directory collections.
type DirectoryHandlers struct {
	directoryService *services.DirectoryService
	logger           *logging.ChanneledLogger
}

// NewDirectoryHandlers creates directory endpoint handlers.
func NewDirectoryHandlers(directoryService *services.DirectoryService, logger *logging.ChanneledLogger) *DirectoryHandlers {
	return &DirectoryHandlers{
		directoryService: directoryService,
		logger:           logger,
	}
}

func writeList[T any](c *gin.Context, items []T, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func writeCreated[T any](c *gin.Context, item T, err error) {
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func writeOutcome(c *gin.Context, err error) {
	if err != nil {
		writePatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// bindPatch reads a partial field patch body.
func bindPatch(c *gin.Context) (map[string]any, bool) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return nil, false
	}
	return fields, true
}

// bindReorder reads a full replacement ordering body.
func bindReorder(c *gin.Context) ([]string, bool) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return nil, false
	}
	return req.OrderedIDs, true
}

// Tags

func (h *DirectoryHandlers) ListTags(c *gin.Context) {
	tags, err := h.directoryService.ListTags()
	writeList(c, tags, err)
}

func (h *DirectoryHandlers) CreateTag(c *gin.Context) {
	var tag content.Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	created, err := h.directoryService.CreateTag(&tag)
	writeCreated(c, created, err)
}

func (h *DirectoryHandlers) UpdateTag(c *gin.Context) {
	if fields, ok := bindPatch(c); ok {
		writeOutcome(c, h.directoryService.UpdateTag(c.Param("id"), fields))
	}
}

func (h *DirectoryHandlers) DeleteTag(c *gin.Context) {
	writeOutcome(c, h.directoryService.DeleteTag(c.Param("id")))
}

func (h *DirectoryHandlers) ReorderTags(c *gin.Context) {
	if ids, ok := bindReorder(c); ok {
		writeOutcome(c, h.directoryService.ReorderTags(ids))
	}
}

// Partners

func (h *DirectoryHandlers) ListPartners(c *gin.Context) {
	partners, err := h.directoryService.ListPartners()
	writeList(c, partners, err)
}

func (h *DirectoryHandlers) CreatePartner(c *gin.Context) {
	var partner content.Partner
	if err := c.ShouldBindJSON(&partner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	created, err := h.directoryService.CreatePartner(&partner)
	writeCreated(c, created, err)
}

func (h *DirectoryHandlers) UpdatePartner(c *gin.Context) {
	if fields, ok := bindPatch(c); ok {
		writeOutcome(c, h.directoryService.UpdatePartner(c.Param("id"), fields))
	}
}

func (h *DirectoryHandlers) DeletePartner(c *gin.Context) {
	writeOutcome(c, h.directoryService.DeletePartner(c.Param("id")))
}

func (h *DirectoryHandlers) ReorderPartners(c *gin.Context) {
	if ids, ok := bindReorder(c); ok {
		writeOutcome(c, h.directoryService.ReorderPartners(ids))
	}
}

// Team members

func (h *DirectoryHandlers) ListTeamMembers(c *gin.Context) {
	members, err := h.directoryService.ListTeamMembers()
	writeList(c, members, err)
}

func (h *DirectoryHandlers) CreateTeamMember(c *gin.Context) {
	var member content.TeamMember
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	created, err := h.directoryService.CreateTeamMember(&member)
	writeCreated(c, created, err)
}

func (h *DirectoryHandlers) UpdateTeamMember(c *gin.Context) {
	if fields, ok := bindPatch(c); ok {
		writeOutcome(c, h.directoryService.UpdateTeamMember(c.Param("id"), fields))
	}
}

func (h *DirectoryHandlers) DeleteTeamMember(c *gin.Context) {
	writeOutcome(c, h.directoryService.DeleteTeamMember(c.Param("id")))
}

func (h *DirectoryHandlers) ReorderTeamMembers(c *gin.Context) {
	if ids, ok := bindReorder(c); ok {
		writeOutcome(c, h.directoryService.ReorderTeamMembers(ids))
	}
}

// Services

func (h *DirectoryHandlers) ListServices(c *gin.Context) {
	items, err := h.directoryService.ListServices()
	writeList(c, items, err)
}

func (h *DirectoryHandlers) CreateService(c *gin.Context) {
	var service content.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	created, err := h.directoryService.CreateService(&service)
	writeCreated(c, created, err)
}

func (h *DirectoryHandlers) UpdateService(c *gin.Context) {
	if fields, ok := bindPatch(c); ok {
		writeOutcome(c, h.directoryService.UpdateService(c.Param("id"), fields))
	}
}

func (h *DirectoryHandlers) DeleteService(c *gin.Context) {
	writeOutcome(c, h.directoryService.DeleteService(c.Param("id")))
}

func (h *DirectoryHandlers) ReorderServices(c *gin.Context) {
	if ids, ok := bindReorder(c); ok {
		writeOutcome(c, h.directoryService.ReorderServices(ids))
	}
}

// Technologies

func (h *DirectoryHandlers) ListTechnologies(c *gin.Context) {
	technologies, err := h.directoryService.ListTechnologies()
	writeList(c, technologies, err)
}

func (h *DirectoryHandlers) CreateTechnology(c *gin.Context) {
	var technology content.Technology
	if err := c.ShouldBindJSON(&technology); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	created, err := h.directoryService.CreateTechnology(&technology)
	writeCreated(c, created, err)
}

func (h *DirectoryHandlers) UpdateTechnology(c *gin.Context) {
	if fields, ok := bindPatch(c); ok {
		writeOutcome(c, h.directoryService.UpdateTechnology(c.Param("id"), fields))
	}
}

func (h *DirectoryHandlers) DeleteTechnology(c *gin.Context) {
	writeOutcome(c, h.directoryService.DeleteTechnology(c.Param("id")))
}

func (h *DirectoryHandlers) ReorderTechnologies(c *gin.Context) {
	if ids, ok := bindReorder(c); ok {
		writeOutcome(c, h.directoryService.ReorderTechnologies(ids))
	}
}

// FAQs

func (h *DirectoryHandlers) ListFAQs(c *gin.Context) {
	faqs, err := h.directoryService.ListFAQs()
	writeList(c, faqs, err)
}

func (h *DirectoryHandlers) CreateFAQ(c *gin.Context) {
	var faq content.FAQ
	if err := c.ShouldBindJSON(&faq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	created, err := h.directoryService.CreateFAQ(&faq)
	writeCreated(c, created, err)
}

func (h *DirectoryHandlers) UpdateFAQ(c *gin.Context) {
	if fields, ok := bindPatch(c); ok {
		writeOutcome(c, h.directoryService.UpdateFAQ(c.Param("id"), fields))
	}
}

func (h *DirectoryHandlers) DeleteFAQ(c *gin.Context) {
	writeOutcome(c, h.directoryService.DeleteFAQ(c.Param("id")))
}

func (h *DirectoryHandlers) ReorderFAQs(c *gin.Context) {
	if ids, ok := bindReorder(c); ok {
		writeOutcome(c, h.directoryService.ReorderFAQs(ids))
	}
}
