package notification

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"

	"github.com/mmartinez10/event-invitations-backend/config"
)

// WhatsAppSender implements Channel over a linked whatsmeow session.
// The session must have been linked beforehand (device pairing); an
// unlinked store is reported as a permanent error on send.
type WhatsAppSender struct {
	client *whatsmeow.Client
}

func NewWhatsAppSender(ctx context.Context, cfg *config.Config) (*WhatsAppSender, error) {
	if err := os.MkdirAll(cfg.WhatsAppDataDir, 0755); err != nil {
		return nil, fmt.Errorf("no se pudo crear el directorio de sesion WhatsApp: %w", err)
	}

	dsn := fmt.Sprintf("file:%s/whatsmeow.db?_foreign_keys=on", cfg.WhatsAppDataDir)
	container, err := sqlstore.New(ctx, "sqlite3", dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("no se pudo abrir el almacen de sesion WhatsApp: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("no se pudo obtener el dispositivo WhatsApp: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, nil)
	if client.Store.ID != nil {
		if err := client.Connect(); err != nil {
			return nil, fmt.Errorf("no se pudo conectar a WhatsApp: %w", err)
		}
		fmt.Println("✅ Sesion WhatsApp conectada")
	} else {
		fmt.Println("⚠️ Sesion WhatsApp no vinculada; los envios por WhatsApp fallaran hasta vincular el dispositivo")
	}

	return &WhatsAppSender{client: client}, nil
}

func (w *WhatsAppSender) Name() string { return CanalWhatsApp }

// Send verifies the destination number is on WhatsApp and delivers the text
// body, attaching the QR artifact as an image message when present.
func (w *WhatsAppSender) Send(ctx context.Context, destino string, msg Message) error {
	if w.client == nil || w.client.Store.ID == nil {
		return NewPermanentError(fmt.Errorf("sesion WhatsApp no vinculada"))
	}

	telefono := NormalizarTelefono(destino)
	if telefono == "" {
		return NewPermanentError(fmt.Errorf("numero de telefono invalido: %q", destino))
	}

	resp, err := w.client.IsOnWhatsApp(ctx, []string{telefono})
	if err != nil {
		return NewTransientError(fmt.Errorf("no se pudo verificar el numero en WhatsApp: %w", err))
	}
	if len(resp) == 0 || !resp[0].IsIn {
		return NewPermanentError(fmt.Errorf("el numero %s no esta registrado en WhatsApp", telefono))
	}
	jid := resp[0].JID

	body := msg.TextBody
	if body == "" {
		body = msg.Body
	}

	if msg.QRPath != "" {
		if err := w.sendImage(ctx, jid, msg.QRPath, body); err != nil {
			return err
		}
		return nil
	}

	_, err = w.client.SendMessage(ctx, jid, &waE2E.Message{Conversation: &body})
	if err != nil {
		return NewTransientError(fmt.Errorf("no se pudo enviar el mensaje: %w", err))
	}
	fmt.Println("✅ WhatsApp enviado a:", telefono)
	return nil
}

func (w *WhatsAppSender) sendImage(ctx context.Context, jid types.JID, path, caption string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewPermanentError(fmt.Errorf("no se pudo leer el QR %s: %w", path, err))
	}

	uploaded, err := w.client.Upload(ctx, data, whatsmeow.MediaImage)
	if err != nil {
		return NewTransientError(fmt.Errorf("no se pudo subir la imagen: %w", err))
	}

	imageMsg := &waE2E.ImageMessage{
		Caption:       proto.String(caption),
		Mimetype:      proto.String("image/png"),
		URL:           proto.String(uploaded.URL),
		DirectPath:    proto.String(uploaded.DirectPath),
		MediaKey:      uploaded.MediaKey,
		FileEncSHA256: uploaded.FileEncSHA256,
		FileSHA256:    uploaded.FileSHA256,
		FileLength:    proto.Uint64(uploaded.FileLength),
	}

	_, err = w.client.SendMessage(ctx, jid, &waE2E.Message{ImageMessage: imageMsg})
	if err != nil {
		return NewTransientError(fmt.Errorf("no se pudo enviar la imagen: %w", err))
	}
	return nil
}

// Disconnect closes the WhatsApp session
func (w *WhatsAppSender) Disconnect() {
	if w.client != nil {
		w.client.Disconnect()
	}
}

// NormalizarTelefono brings phone numbers to international format.
// Local Ecuadorian mobile numbers (09XXXXXXXX) become 5939XXXXXXXX.
func NormalizarTelefono(telefono string) string {
	var b strings.Builder
	for _, r := range telefono {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	t := b.String()

	if strings.HasPrefix(t, "0") && len(t) == 10 {
		t = "593" + t[1:]
	}
	if strings.HasPrefix(t, "5930") {
		t = "593" + t[4:]
	}
	if len(t) < 8 {
		return ""
	}
	return t
}
