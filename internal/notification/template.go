package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*
var templateFS embed.FS

// Template names
const (
	PlantillaInvitacion  = "invitacion"
	PlantillaFormulario  = "formulario"
	PlantillaAcompanante = "acompanante"
)

// DatosInvitacion is the typed record every message template renders from.
// QRCid is the content id of the embedded QR image inside email bodies;
// QRPath is the stored artifact the channels attach.
type DatosInvitacion struct {
	Nombre       string
	EventoNombre string
	FechaEvento  string
	LugarEvento  string
	CodigoUnico  string
	QRCid        string
	QRPath       string
	FormURL      string
}

// NuevosDatos fills QRCid from the stored artifact path so the HTML body
// can reference the image gomail embeds under its base filename.
func NuevosDatos(nombre, eventoNombre, fechaEvento, lugarEvento, codigo, qrPath, formURL string) DatosInvitacion {
	cid := ""
	if qrPath != "" {
		cid = filepath.Base(qrPath)
	}
	return DatosInvitacion{
		Nombre:       nombre,
		EventoNombre: eventoNombre,
		FechaEvento:  fechaEvento,
		LugarEvento:  lugarEvento,
		CodigoUnico:  codigo,
		QRCid:        cid,
		QRPath:       qrPath,
		FormURL:      formURL,
	}
}

type Renderer interface {
	Render(plantilla string, datos DatosInvitacion) (subject, htmlBody, textBody string, err error)
}

type renderer struct{}

// NewRenderer returns a Renderer backed by the embedded templates folder.
func NewRenderer() Renderer {
	return &renderer{}
}

func (r *renderer) Render(plantilla string, datos DatosInvitacion) (string, string, string, error) {
	subject, err := r.renderFile(plantilla+"_subject.txt", datos, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err := r.renderFile(plantilla+".html", datos, true)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err := r.renderFile(plantilla+".txt", datos, false)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *renderer) renderFile(name string, datos DatosInvitacion, html bool) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if html {
		t, err := template.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, datos); err != nil {
			return "", err
		}
	} else {
		t, err := texttemplate.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, datos); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
