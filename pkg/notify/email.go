package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Subject of every notification email
const Subject = "Alert from RSS Scraper Notifier"

// SMTPConfig defines mail server connection
type SMTPConfig struct {
	Host     string
	Port     int
	Login    string
	Password string
	From     string // sender address, login is used if empty
	Timeout  time.Duration
}

type mailClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Email sends plain text notifications over SMTP with STARTTLS and login auth.
// Every Send opens its own connection and closes it when done.
type Email struct {
	cfg       SMTPConfig
	newClient func(cfg SMTPConfig) (mailClient, error)
}

// NewEmail makes email sender
func NewEmail(cfg SMTPConfig) *Email {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.From == "" {
		cfg.From = cfg.Login
	}
	return &Email{cfg: cfg, newClient: smtpClient}
}

// Send composes text/plain message and delivers it to recipient
func (e *Email) Send(ctx context.Context, recipient, message string) error {
	msg, err := e.compose(recipient, message)
	if err != nil {
		return &DeliveryError{Recipient: recipient, Err: err}
	}

	client, err := e.newClient(e.cfg)
	if err != nil {
		return &DeliveryError{Recipient: recipient, Err: fmt.Errorf("make smtp client: %w", err)}
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return &DeliveryError{Recipient: recipient, Err: fmt.Errorf("send: %w", err)}
	}
	return nil
}

func (e *Email) compose(recipient, message string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(e.cfg.From); err != nil {
		return nil, fmt.Errorf("set from %q: %w", e.cfg.From, err)
	}
	if err := msg.To(recipient); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	msg.Subject(Subject)
	msg.SetBodyString(mail.TypeTextPlain, message)
	return msg, nil
}

func smtpClient(cfg SMTPConfig) (mailClient, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(cfg.Timeout),
	}
	if cfg.Login != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Login), mail.WithPassword(cfg.Password))
	}
	return mail.NewClient(cfg.Host, opts...)
}
