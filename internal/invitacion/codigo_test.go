package invitacion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveCode(t *testing.T) {
	tests := []struct {
		name     string
		evento   string
		cedula   string
		nombre   string
		expected string
	}{
		{
			name:     "caso documentado",
			evento:   "Gala Anual",
			cedula:   "0912345678",
			nombre:   "Juan Pérez",
			expected: "GA678JP",
		},
		{
			name:     "evento de una palabra",
			evento:   "Congreso",
			cedula:   "1712345001",
			nombre:   "Maria Lopez",
			expected: "CO001ML",
		},
		{
			name:     "prefijo salta espacios iniciales",
			evento:   "  Feria  del Libro",
			cedula:   "123",
			nombre:   "Ana Gomez Ruiz",
			expected: "FE123AR",
		},
		{
			name:     "evento demasiado corto usa EV",
			evento:   "X",
			cedula:   "456",
			nombre:   "Pedro Paz",
			expected: "EV456PP",
		},
		{
			name:     "evento vacio usa EV",
			evento:   "",
			cedula:   "789",
			nombre:   "Luis Vega",
			expected: "EV789LV",
		},
		{
			name:     "cedula corta se rellena con ceros",
			evento:   "Gala Anual",
			cedula:   "7",
			nombre:   "Juan Pérez",
			expected: "GA007JP",
		},
		{
			name:     "cedula con guiones se limpia",
			evento:   "Gala Anual",
			cedula:   "09-1234-5678",
			nombre:   "Juan Pérez",
			expected: "GA678JP",
		},
		{
			name:     "cedula vacia son tres ceros",
			evento:   "Gala Anual",
			cedula:   "",
			nombre:   "Juan Pérez",
			expected: "GA000JP",
		},
		{
			name:     "nombre de un solo token",
			evento:   "Gala Anual",
			cedula:   "0912345678",
			nombre:   "Juan",
			expected: "GA678JX",
		},
		{
			name:     "nombre vacio usa XX",
			evento:   "Gala Anual",
			cedula:   "0912345678",
			nombre:   "",
			expected: "GA678XX",
		},
		{
			name:     "minusculas se elevan",
			evento:   "gala anual",
			cedula:   "0912345678",
			nombre:   "juan pérez",
			expected: "GA678JP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveCode(tt.evento, tt.cedula, tt.nombre))
		})
	}
}

func TestDeriveCodeEsDeterminista(t *testing.T) {
	a := DeriveCode("Gala Anual", "0912345678", "Juan Pérez")
	b := DeriveCode("Gala Anual", "0912345678", "Juan Pérez")
	assert.Equal(t, a, b)
}

func TestDeriveCompanionCode(t *testing.T) {
	assert.Equal(t, "GA67801", DeriveCompanionCode("GA678JP", 1))
	assert.Equal(t, "GA67802", DeriveCompanionCode("GA678JP", 2))
	assert.Equal(t, "GA67815", DeriveCompanionCode("GA678JP", 15))
}

func TestDeriveCompanionCodeSinColisiones(t *testing.T) {
	vistos := make(map[string]bool)
	for i := 1; i < 100; i++ {
		codigo := DeriveCompanionCode("GA678JP", i)
		assert.False(t, vistos[codigo], "codigo repetido: %s", codigo)
		vistos[codigo] = true
	}
}
