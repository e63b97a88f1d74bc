package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/email"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	persistence "github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/persistence/contact"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/ratelimit"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/security"
)

// ErrRateLimited is returned when a client IP exceeds its submission budget.
var ErrRateLimited = errors.New("too many contact requests")

// ErrRelayFailed is returned when a submission was stored but the email
// notification could not be sent.
var ErrRelayFailed = errors.New("contact notification failed")

// ContactInput is one contact-form submission. Website is the honeypot
// field: any bot that fills it gets a silent success with no side effects.
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Company string `json:"company"`
	Message string `json:"message" binding:"required"`
	Website string `json:"website"`
}

// ContactService stores contact-form submissions and relays them by email.
type ContactService struct {
	messageRepo *persistence.SQLMessageRepository
	emailSvc    email.Service
	limiter     ratelimit.Limiter
	logger      *logging.ChanneledLogger
}

// NewContactService creates a new contact service. emailSvc may be nil when
// no relay is configured; submissions are then stored without notification.
func NewContactService(messageRepo *persistence.SQLMessageRepository, emailSvc email.Service, limiter ratelimit.Limiter, logger *logging.ChanneledLogger) *ContactService {
	return &ContactService{
		messageRepo: messageRepo,
		emailSvc:    emailSvc,
		limiter:     limiter,
		logger:      logger,
	}
}

// Submit processes one contact-form submission from clientIP.
func (s *ContactService) Submit(clientIP string, input *ContactInput) error {
	if strings.TrimSpace(input.Website) != "" {
		s.logger.System().Info("Dropping contact submission with filled honeypot", "ip", clientIP)
		return nil
	}

	if !s.limiter.Allow(clientIP) {
		s.logger.System().Warn("Contact submission rate limited", "ip", clientIP)
		return ErrRateLimited
	}

	message := &content.ContactMessage{
		ID:        security.GenerateULID(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Company:   strings.TrimSpace(input.Company),
		Message:   strings.TrimSpace(input.Message),
		CreatedAt: time.Now().UTC(),
	}
	if message.Name == "" || message.Email == "" || message.Message == "" {
		return fmt.Errorf("name, email, and message are required")
	}

	if err := s.messageRepo.Store(message); err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}

	if s.emailSvc != nil {
		if err := s.emailSvc.SendContactNotification(message); err != nil {
			s.logger.Email().Error("Contact notification failed", "id", message.ID, "error", err.Error())
			return ErrRelayFailed
		}
		s.logger.Email().Info("Sent contact notification", "id", message.ID)
	}

	return nil
}
