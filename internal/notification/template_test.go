package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvitacion(t *testing.T) {
	r := NewRenderer()
	datos := NuevosDatos("Juan Pérez", "Gala Anual", "2026-11-20", "Centro de Convenciones", "GA678JP", "temp/GA678JP.png", "")

	subject, html, text, err := r.Render(PlantillaInvitacion, datos)
	require.NoError(t, err)

	assert.Equal(t, "Invitación a Gala Anual", subject)
	assert.Contains(t, html, "Juan Pérez")
	assert.Contains(t, html, "GA678JP")
	assert.Contains(t, html, "cid:GA678JP.png")
	assert.Contains(t, text, "GA678JP")
	assert.Contains(t, text, "Centro de Convenciones")
}

func TestRenderFormularioSinNombre(t *testing.T) {
	r := NewRenderer()
	datos := NuevosDatos("", "Gala Anual", "2026-11-20", "Centro de Convenciones", "", "", "http://localhost:5173/confirmar?evento=7")

	subject, html, text, err := r.Render(PlantillaFormulario, datos)
	require.NoError(t, err)

	assert.Equal(t, "Registro para Gala Anual", subject)
	assert.Contains(t, html, "invitado/a")
	assert.Contains(t, html, "http://localhost:5173/confirmar?evento=7")
	assert.Contains(t, text, "http://localhost:5173/confirmar?evento=7")
	// stage 1 carries no code
	assert.NotContains(t, html, "cid:")
}

func TestRenderAcompanante(t *testing.T) {
	r := NewRenderer()
	datos := NuevosDatos("Ana Mora", "Gala Anual", "2026-11-20", "Centro de Convenciones", "GA67801", "temp/GA67801.png", "")

	subject, html, _, err := r.Render(PlantillaAcompanante, datos)
	require.NoError(t, err)

	assert.Contains(t, subject, "acompañante")
	assert.Contains(t, html, "GA67801")
	assert.Contains(t, html, "cid:GA67801.png")
}

func TestNuevosDatosQRCid(t *testing.T) {
	datos := NuevosDatos("Ana", "Gala", "f", "l", "GA67801", "/srv/temp/GA67801.png", "")
	assert.Equal(t, "GA67801.png", datos.QRCid)
	assert.Equal(t, "/srv/temp/GA67801.png", datos.QRPath)

	sinQR := NuevosDatos("Ana", "Gala", "f", "l", "", "", "")
	assert.Empty(t, sinQR.QRCid)
}

func TestCanalesParaMetodo(t *testing.T) {
	assert.Equal(t, []string{CanalCorreo}, CanalesParaMetodo(1))
	assert.Equal(t, []string{CanalWhatsApp}, CanalesParaMetodo(2))
	assert.Equal(t, []string{CanalCorreo, CanalWhatsApp}, CanalesParaMetodo(3))
	assert.Nil(t, CanalesParaMetodo(9))
}
