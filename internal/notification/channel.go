package notification

import (
	"context"
	"errors"
	"fmt"
)

// Channel names, also recorded on delivery logs and invitation rows
const (
	CanalCorreo   = "correo"
	CanalWhatsApp = "whatsapp"
)

// Message is a rendered outbound message. QRPath points at the stored QR
// artifact; email embeds it by content id, WhatsApp uploads the binary.
type Message struct {
	Subject  string
	Body     string // HTML body for email
	TextBody string // plain text alternative, primary body for WhatsApp
	QRPath   string
}

// Channel adapts one provider transport. Implementations classify failures
// as transient or permanent via ChannelError so the dispatcher knows what
// to retry.
type Channel interface {
	Name() string
	Send(ctx context.Context, destino string, msg Message) error
}

type errorKind int

const (
	errTransient errorKind = iota
	errPermanent
)

// ChannelError is a typed send failure. Transient errors are retried,
// permanent ones (invalid destination, rejected template) are not.
type ChannelError struct {
	kind errorKind
	err  error
}

func (e *ChannelError) Error() string {
	if e.kind == errPermanent {
		return fmt.Sprintf("error permanente del canal: %v", e.err)
	}
	return fmt.Sprintf("error transitorio del canal: %v", e.err)
}

func (e *ChannelError) Unwrap() error { return e.err }

func NewTransientError(err error) error {
	return &ChannelError{kind: errTransient, err: err}
}

func NewPermanentError(err error) error {
	return &ChannelError{kind: errPermanent, err: err}
}

// IsPermanent reports whether err is a ChannelError marked permanent.
// Anything else, including plain errors and timeouts, counts as transient.
func IsPermanent(err error) bool {
	var ce *ChannelError
	if errors.As(err, &ce) {
		return ce.kind == errPermanent
	}
	return false
}
