package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer sends a plain-text transactional email. Dispatch is attempt-once:
// there are no retries anywhere in the system.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// SMTPConfig configures the SMTP transport.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
}

// SMTPMailer delivers mail over SMTP via gomail.
type SMTPMailer struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

// Ensure SMTPMailer implements Mailer
var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer for the given SMTP endpoint.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

// Send delivers one message to all recipients in a single dial.
func (m *SMTPMailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.FromAddress)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// NopMailer drops all mail. Used when email is disabled by configuration.
type NopMailer struct{}

// Ensure NopMailer implements Mailer
var _ Mailer = (*NopMailer)(nil)

// Send discards the message.
func (NopMailer) Send(to []string, subject, body string) error {
	return nil
}
