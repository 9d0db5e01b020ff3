package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/caffeinepress/ipn-processing/settings"
)

// Mailer sends the new-account message to a customer whose account was just
// provisioned. Sending is best-effort: the reconciliation engine logs a
// failure and continues, it never aborts order processing because of mail.
type Mailer interface {
	SendNewAccountEmail(name, email, username, password string) error
}

// NewMailer creates a Mailer from settings. When mail.smtp.address is unset,
// a mailer that only logs the message is returned, which keeps single-binary
// deployments without an SMTP relay working.
func NewMailer(s settings.Settings) Mailer {
	smtpAddress := s.GetString("mail.smtp.address")
	templates := NewAccountMessageTemplates{
		Subject: s.GetString("mail.new_account.subject"),
		Body:    s.GetString("mail.new_account.body"),
	}
	from := s.GetString("mail.from")

	if smtpAddress == "" {
		log.Print("Warning: mail.smtp.address is not set, new-account " +
			"emails will only be logged")
		return &logMailer{templates: templates}
	}
	return &smtpMailer{
		smtpAddress: smtpAddress,
		from:        from,
		templates:   templates,
	}
}

type smtpMailer struct {
	smtpAddress string
	from        string
	templates   NewAccountMessageTemplates
}

func (m *smtpMailer) SendNewAccountEmail(name, email, username, password string) error {
	subject, body := m.templates.Render(name, email, username, password)

	var message strings.Builder
	fmt.Fprintf(&message, "From: %s\r\n", m.from)
	fmt.Fprintf(&message, "To: %s\r\n", email)
	fmt.Fprintf(&message, "Subject: %s\r\n", subject)
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	message.WriteString("\r\n")
	message.WriteString(body)

	return smtp.SendMail(
		m.smtpAddress,
		nil,
		m.from,
		[]string{email},
		[]byte(message.String()),
	)
}

type logMailer struct {
	templates NewAccountMessageTemplates
}

func (m *logMailer) SendNewAccountEmail(name, email, username, password string) error {
	subject, _ := m.templates.Render(name, email, username, password)
	log.Printf("Would send new-account email %q to %s", subject, email)
	return nil
}
