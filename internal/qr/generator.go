package qr

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrGeneracion marks a failed QR generation. Workflows treat it as fatal:
// an invitation is never recorded as sent without its QR artifact.
var ErrGeneracion = fmt.Errorf("fallo al generar codigo QR")

// Resultado holds both representations of a generated QR:
// Inline is a base64 PNG suitable for embedding in outbound messages,
// Path is the stored artifact location, keyed by the code itself.
type Resultado struct {
	Inline string
	Path   string
}

type Generator interface {
	Generate(codigo string) (*Resultado, error)
}

type generator struct {
	dir  string
	size int
}

// NewGenerator returns a Generator that stores artifacts under dir as <codigo>.png
func NewGenerator(dir string) Generator {
	return &generator{dir: dir, size: 256}
}

// Generate encodes the code as a PNG, persists it content-addressed and
// returns the inline base64 form. Re-generating the same code overwrites
// the file with identical bytes, so concurrent writers are safe.
func (g *generator) Generate(codigo string) (*Resultado, error) {
	if codigo == "" {
		return nil, fmt.Errorf("%w: codigo vacio", ErrGeneracion)
	}

	png, err := qrcode.Encode(codigo, qrcode.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneracion, err)
	}

	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneracion, err)
	}

	path := filepath.Join(g.dir, codigo+".png")
	if err := os.WriteFile(path, png, 0644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneracion, err)
	}

	return &Resultado{
		Inline: base64.StdEncoding.EncodeToString(png),
		Path:   path,
	}, nil
}
