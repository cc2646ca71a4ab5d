package service

import (
	"context"
	"fmt"
	"strings"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailSender is the part of the SendGrid client the email service uses.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type emailService struct {
	client    mailSender
	fromEmail string
	fromName  string
	opsDesk   string
}

func NewEmailService(apiKey, fromEmail, fromName, opsDeskEmail string) EmailService {
	return newEmailService(sendgrid.NewSendClient(apiKey), fromEmail, fromName, opsDeskEmail)
}

func newEmailService(client mailSender, fromEmail, fromName, opsDeskEmail string) *emailService {
	return &emailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		opsDesk:   opsDeskEmail,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	logger.ExternalServiceCall("sendgrid", "Send", "subject", subject)
	resp, err := s.client.SendWithContext(ctx, message)
	if err == nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult("sendgrid", "Send", err, "subject", subject)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendActivationNotice(ctx context.Context, b *domain.Booking) error {
	if b.CustomerEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("Your rental #%d is active", b.ID)
	body := fmt.Sprintf("Hello %s,\n\nYour rental is now active. Please return the vehicle by %s.\n\nSafe travels!",
		b.CustomerName, b.EndAt.Format("Mon Jan 2, 3:04 PM"))
	return s.send(ctx, b.CustomerEmail, b.CustomerName, subject, body)
}

func (s *emailService) SendUnreadyPickupAlert(ctx context.Context, b *domain.Booking, issues []string) error {
	if s.opsDesk == "" {
		return nil
	}
	subject := fmt.Sprintf("Booking #%d is not ready for pickup at %s", b.ID, b.StartAt.Format("Jan 2 3:04 PM"))
	body := fmt.Sprintf("Booking #%d for %s starts at %s and still has open items:\n\n- %s\n",
		b.ID, b.CustomerName, b.StartAt.Format("Mon Jan 2, 3:04 PM"), strings.Join(issues, "\n- "))
	return s.send(ctx, s.opsDesk, "Ops Desk", subject, body)
}
