package domain

import "context"

// Mailer sends an email with both HTML and plain-text bodies.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template with data, producing
// the subject line and both bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// RegistrationConfirmationEmailData is the data for the registration
// confirmation template.
type RegistrationConfirmationEmailData struct {
	Email      string
	Name       string
	EventTitle string
	EventDate  string
	Location   string
}

// EmailService defines the outbound email operations.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationConfirmationEmailData) error
}
