package email

import (
	"errors"
	"fmt"
	"net/mail"

	"gopkg.in/gomail.v2"

	"github.com/tiffin-inc/tiffin/internal/shared/config"
)

// Sender delivers one message with a plain text body and an HTML alternative.
type Sender interface {
	Send(to, subject, htmlBody, plainBody string) error
}

var ErrNoRecipient = errors.New("email: recipient address is empty")

// SMTPMailer sends through a single SMTP relay. Port 465 uses implicit TLS;
// other ports upgrade with STARTTLS when the server offers it.
type SMTPMailer struct {
	from   string
	name   string
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.SSL = cfg.SMTPPort == 465
	return &SMTPMailer{from: cfg.FromAddress, name: cfg.FromName, dialer: d}
}

func (m *SMTPMailer) Send(to, subject, htmlBody, plainBody string) error {
	if to == "" {
		return ErrNoRecipient
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("email: invalid recipient %q: %w", to, err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.name)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("email: send to %s: %w", to, err)
	}
	return nil
}

// NopSender discards messages. Used when email is disabled.
type NopSender struct{}

func (NopSender) Send(string, string, string, string) error { return nil }
