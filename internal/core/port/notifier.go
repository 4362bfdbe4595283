package port

import (
	"context"
	"fmt"
)

// Notifier delivers outbound messages. Transport failures are reported
// as *DeliveryError; the core never retries.
type Notifier interface {
	SendPlain(ctx context.Context, to, subject, text string) error
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
	SendWithAttachment(ctx context.Context, to, subject, text string, attachment []byte, filename string) error
}

// DeliveryError wraps a mail transport failure.
type DeliveryError struct {
	To  string
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver mail to %s: %v", e.To, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
