package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dtroode/codepad-server/internal/model"
)

// client is the part of the SendGrid client used for dispatch.
type client interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

var _ model.Mailer = (*SendGrid)(nil)

// SendGrid dispatches mail through the SendGrid v3 API.
type SendGrid struct {
	client client
	from   *sgmail.Email
}

// NewSendGrid creates a mailer sending from the given address.
func NewSendGrid(apiKey, senderName, senderEmail string) *SendGrid {
	return &SendGrid{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(senderName, senderEmail),
	}
}

// Send delivers the message. Any non-2xx API response is reported as an error.
func (s *SendGrid) Send(ctx context.Context, message model.Message) error {
	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail("", message.To))

	email := sgmail.NewV3Mail()
	email.SetFrom(s.from)
	email.Subject = message.Subject
	email.AddPersonalizations(p)
	email.AddContent(sgmail.NewContent("text/plain", message.Body))

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send mail: sendgrid responded with status %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}
