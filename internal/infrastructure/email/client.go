// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/domain/entities/content"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/email/templates"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
	"github.com/resendlabs/resend-go"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendContactNotification(msg *content.ContactMessage) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	fromName  string
	toEmail   string
}

// NewService creates a new email service client, returning the Service interface.
func NewService() (Service, error) {
	if config.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	return &ResendClient{
		client:    resend.NewClient(config.ResendAPIKey),
		fromEmail: config.ContactEmailFrom,
		fromName:  config.ContactEmailFromName,
		toEmail:   config.ContactEmailTo,
	}, nil
}

// SendContactNotification composes and sends the inbox notification for a
// contact-form submission.
func (c *ResendClient) SendContactNotification(msg *content.ContactMessage) error {
	subject := fmt.Sprintf("New contact request from %s", msg.Name)

	htmlContent := templates.GetContactNotificationContent(templates.ContactNotificationProps{
		Name:    msg.Name,
		Email:   msg.Email,
		Company: msg.Company,
		Message: msg.Message,
	})

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{c.toEmail},
		Subject: subject,
		Html:    htmlContent,
	}

	_, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send contact notification via Resend: %w", err)
	}

	return nil
}
