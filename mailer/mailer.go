// Package mailer delivers transactional e-mail through SendGrid.
package mailer

// go generate: mockery --name Mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

const senderName = "Lawyer Services"

// ErrNoRecipient is returned when a message has no address to go to
var ErrNoRecipient = errors.New("recipient has no e-mail address")

// Recipient is who an e-mail goes to
type Recipient struct {
	Name  string
	Email string
}

// Mailer sends a single e-mail
type Mailer interface {
	Send(ctx context.Context, to Recipient, subject, htmlContent, plainText string) error
}

// SendGrid is a Mailer backed by the SendGrid v3 api
type SendGrid struct {
	client *sendgrid.Client
	from   string
}

// NewSendGrid returns a SendGrid mailer, or nil when apiKey is empty so callers can treat
// mail as disabled
func NewSendGrid(apiKey, from string) *SendGrid {
	if apiKey == "" {
		return nil
	}
	return &SendGrid{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

// Send delivers one e-mail and fails on any non 2xx/3xx response
func (s *SendGrid) Send(ctx context.Context, to Recipient, subject, htmlContent, plainText string) error {
	message, err := buildMessage(s.from, to, subject, htmlContent, plainText)
	if err != nil {
		return err
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		zap.S().Errorw("failed to send email", "error", err, "to", to.Email)
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", to.Email)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	zap.S().Infow("email sent successfully", "to", to.Email, "subject", subject)
	return nil
}

func buildMessage(from string, to Recipient, subject, htmlContent, plainText string) (*mail.SGMailV3, error) {
	if to.Email == "" {
		return nil, ErrNoRecipient
	}
	return mail.NewSingleEmail(
		mail.NewEmail(senderName, from),
		subject,
		mail.NewEmail(to.Name, to.Email),
		plainText,
		htmlContent,
	), nil
}
