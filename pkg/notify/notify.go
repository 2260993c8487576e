// Package notify delivers short text notices to feed owners.
// The delivery channel is selected by name at construction, "email" is the only working variant,
// "sms" is reserved and fails on every send.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedVariant returned on send through a declared but unimplemented variant
	ErrUnsupportedVariant = errors.New("unsupported notification variant")
	// ErrInvalidVariant returned on send when the configured variant name is unknown
	ErrInvalidVariant = errors.New("invalid notification variant")
)

// variant names
const (
	VariantEmail = "email"
	VariantSMS   = "sms"
)

// DeliveryError is returned when a message could not be delivered to the recipient
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %s: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Config defines notification channel
type Config struct {
	Type string // variant name, email or sms
	SMTP SMTPConfig
}

type sender interface {
	Send(ctx context.Context, recipient, message string) error
}

// Dispatcher sends messages through the configured variant.
// A bad variant name is not reported at construction, only on Send.
type Dispatcher struct {
	variant string
	sender  sender
	err     error
}

// New makes dispatcher for cfg.Type
func New(cfg Config) *Dispatcher {
	variant := strings.ToLower(strings.TrimSpace(cfg.Type))
	switch variant {
	case VariantEmail:
		return &Dispatcher{variant: variant, sender: NewEmail(cfg.SMTP)}
	case VariantSMS:
		return &Dispatcher{variant: variant, sender: SMS{}}
	default:
		return &Dispatcher{variant: variant, err: fmt.Errorf("%q: %w", cfg.Type, ErrInvalidVariant)}
	}
}

// Variant returns normalized variant name
func (d *Dispatcher) Variant() string { return d.variant }

// Send delivers message to the recipient
func (d *Dispatcher) Send(ctx context.Context, recipient, message string) error {
	if d.err != nil {
		return d.err
	}
	return d.sender.Send(ctx, recipient, message)
}

// SMS is a placeholder for text message delivery
type SMS struct{}

// Send always fails with ErrUnsupportedVariant
func (SMS) Send(context.Context, string, string) error {
	return fmt.Errorf("%s: %w", VariantSMS, ErrUnsupportedVariant)
}
