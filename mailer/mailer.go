// Package mailer wraps SMTP delivery of plain-text messages.
package mailer

import (
	"fmt"

	"github.com/wneessen/go-mail"
)

// Options configures the SMTP transport.
type Options struct {
	Host     string
	Port     int
	From     string
	Password string
}

// SMTP sends plain-text mail through a single configured account. STARTTLS
// is negotiated when the server offers it, matching the usual submission
// port setup.
type SMTP struct {
	opts Options
}

// New creates an SMTP mailer from the given options.
func New(opts Options) (*SMTP, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if opts.From == "" {
		return nil, fmt.Errorf("from address is required")
	}
	if opts.Port == 0 {
		opts.Port = 587
	}
	return &SMTP{opts: opts}, nil
}

// Send delivers one plain-text message.
func (s *SMTP) Send(subject, body, to string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.opts.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(s.opts.Host,
		mail.WithPort(s.opts.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.opts.From),
		mail.WithPassword(s.opts.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
