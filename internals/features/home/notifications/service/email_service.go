package service

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender delivers notification emails. The sendgrid client is the
// only implementation; tests use a stub.
type EmailSender interface {
	Send(toEmail, toName, subject, body string) error
}

type SendgridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendgridSender(apiKey, fromEmail string) *SendgridSender {
	return &SendgridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  "EduaAI",
	}
}

func (s *SendgridSender) Send(toEmail, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, body, BuildEmailHTML(toName, subject, body))

	resp, err := s.client.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}
	return nil
}

// BuildEmailHTML wraps the plain message in the notification template.
func BuildEmailHTML(name, subject, body string) string {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}
	return fmt.Sprintf(
		`<div style="font-family:sans-serif;max-width:560px;margin:0 auto">`+
			`<h2>%s</h2><p>%s,</p><p>%s</p>`+
			`<p style="color:#888;font-size:12px">Sent by EduaAI. Do not reply to this email.</p>`+
			`</div>`,
		subject, greeting, body,
	)
}

// SendAsync fires the email off in a goroutine. Delivery failures are
// logged, never surfaced to the caller.
func SendAsync(sender EmailSender, toEmail, toName, subject, body string) {
	go func() {
		if err := sender.Send(toEmail, toName, subject, body); err != nil {
			log.Printf("⚠️ Email to %s failed: %v", toEmail, err)
		}
	}()
}
