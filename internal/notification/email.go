package notification

import (
	"context"
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/mmartinez10/event-invitations-backend/config"
)

// EmailSender implements Channel over SMTP via gomail
type EmailSender struct {
	dialer   *gomail.Dialer
	fromName string
	fromAddr string
}

// ✅ Accept config instead of using os.Getenv
func NewEmailSender(cfg *config.Config) *EmailSender {
	return &EmailSender{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		fromName: cfg.SMTPFromName,
		fromAddr: cfg.SMTPFromEmail,
	}
}

func (e *EmailSender) Name() string { return CanalCorreo }

// Send builds the MIME message, embedding the QR artifact inline when
// present, and pushes it through SMTP. The template body references the
// embedded image by its filename cid.
func (e *EmailSender) Send(ctx context.Context, destino string, msg Message) error {
	if !strings.Contains(destino, "@") {
		return NewPermanentError(fmt.Errorf("direccion de correo invalida: %q", destino))
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(e.fromAddr, e.fromName))
	m.SetHeader("To", destino)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)
	if msg.TextBody != "" {
		m.AddAlternative("text/plain", msg.TextBody)
	}
	if msg.QRPath != "" {
		m.Embed(msg.QRPath)
	}

	if err := e.dialer.DialAndSend(m); err != nil {
		return clasificarErrorSMTP(err)
	}

	fmt.Println("✅ Correo enviado a:", destino)
	return nil
}

// clasificarErrorSMTP maps SMTP failures onto the retry taxonomy: 5xx reply
// codes are rejections that retrying cannot fix, everything else (dial
// failures, 4xx, dropped connections) is worth another attempt.
func clasificarErrorSMTP(err error) error {
	s := err.Error()
	for _, code := range []string{"550", "551", "553", "554", "535"} {
		if strings.Contains(s, code) {
			return NewPermanentError(err)
		}
	}
	return NewTransientError(err)
}
