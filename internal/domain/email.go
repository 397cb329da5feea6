package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeMessageEmailData holds data for the welcome email.
type WelcomeMessageEmailData struct {
	Email     string
	FirstName string
}

// SessionBookedEmailData holds data for the session notification sent to an
// expert when one of their sessions is created or rescheduled.
type SessionBookedEmailData struct {
	Email       string
	ExpertName  string
	CourseTitle string
	SchoolName  string
	Date        string
	StartTime   string
	EndTime     string
	Hours       float64
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendSessionBooked(ctx context.Context, data *SessionBookedEmailData) error
}
