package services

import (
	"context"
	"fmt"
	"log"

	"trainingscheduler/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcomeMessage sends a welcome email using the "welcome" template and the given data.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	log.Printf("[EMAIL] Welcome email sent to %s", data.Email)
	return nil
}

// SendSessionBooked notifies an expert of a new or rescheduled session using
// the "session_booked" template.
func (s *emailService) SendSessionBooked(ctx context.Context, data *domain.SessionBookedEmailData) error {
	if data == nil {
		return fmt.Errorf("session booked email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("session_booked", data)
	if err != nil {
		return fmt.Errorf("failed to render session_booked template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send session booked email: %w", err)
	}
	log.Printf("[EMAIL] Session booked email sent to %s", data.Email)
	return nil
}
