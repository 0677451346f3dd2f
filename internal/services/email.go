package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventbooking/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendWelcomeMessage sends a welcome email using the welcome template and the given data.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	if err := s.send(ctx, domain.TemplateWelcome, data.Email, data); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	s.logger.InfoContext(ctx, "welcome email sent", "to", data.Email)
	return nil
}

// SendBookingConfirmation sends the ticket email using the booking confirmation template.
func (s *emailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("booking confirmation data is nil")
	}
	if err := s.send(ctx, domain.TemplateBookingConfirmation, data.Email, data); err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}
	s.logger.InfoContext(ctx, "booking confirmation sent", "to", data.Email, "code", data.Code)
	return nil
}

func (s *emailService) send(ctx context.Context, template, to string, data any) error {
	if to == "" {
		return fmt.Errorf("recipient is empty")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("render %s template: %w", template, err)
	}
	return s.mailer.Send(ctx, to, subject, htmlBody, textBody)
}
