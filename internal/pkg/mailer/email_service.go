package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

// Field is one labelled row in a lead notification.
type Field struct {
	Label string
	Value string
}

type IEmailService interface {
	SendLeadNotification(toEmail, subject string, fields []Field) error
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return NewEmailServiceWithDialer(gomail.NewDialer(host, port, username, password), senderEmail, senderName)
}

func NewEmailServiceWithDialer(dialer Dialer, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      dialer,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendLeadNotification(toEmail, subject string, fields []Field) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)

	m.SetBody("text/html", renderLeadBody(subject, fields))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send lead notification to %s: %w", toEmail, err)
	}
	return nil
}

func renderLeadBody(subject string, fields []Field) string {
	var rows strings.Builder
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		fmt.Fprintf(&rows, `<tr><td style="padding: 4px 12px 4px 0; color: #666;">%s</td><td style="padding: 4px 0;">%s</td></tr>`,
			html.EscapeString(f.Label), html.EscapeString(f.Value))
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<table>%s</table>
			<p>Reply within 24 hours; the visitor was told to expect it.</p>
		</div>
	`, html.EscapeString(subject), rows.String())
}
