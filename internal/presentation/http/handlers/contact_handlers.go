package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/application/services"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
)

// ContactHandlers serves the contact-form endpoint.
type ContactHandlers struct {
	contactService *services.ContactService
	logger         *logging.ChanneledLogger
}

// NewContactHandlers creates contact endpoint handlers.
func NewContactHandlers(contactService *services.ContactService, logger *logging.ChanneledLogger) *ContactHandlers {
	return &ContactHandlers{
		contactService: contactService,
		logger:         logger,
	}
}

// PostMessage handles POST /api/contact.
func (h *ContactHandlers) PostMessage(c *gin.Context) {
	var input services.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, and message are required"})
		return
	}

	if err := h.contactService.Submit(c.ClientIP(), &input); err != nil {
		if errors.Is(err, services.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, please try again later"})
			return
		}
		if errors.Is(err, services.ErrRelayFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "message saved but notification delivery failed, please try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
