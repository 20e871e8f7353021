package invitacion

import (
	"fmt"
	"strings"
	"unicode"
)

// DeriveCode builds the access code for an invitation:
// two event letters + last three cedula digits + the invitee's initials.
// "Gala Anual", "0912345678", "Juan Pérez" → "GA678JP".
// Deterministic, not random: the unique index on invitaciones.codigo is the
// actual collision guard.
func DeriveCode(eventoNombre, cedula, nombre string) string {
	return prefijoEvento(eventoNombre) + digitosCedula(cedula) + iniciales(nombre)
}

// DeriveCompanionCode derives the code for the i-th companion (1-based)
// from the principal's code: the two trailing initials are replaced by the
// zero-padded index. "GA678JP", 1 → "GA67801".
func DeriveCompanionCode(codigoPrincipal string, indice int) string {
	base := codigoPrincipal
	if len(base) >= 2 {
		base = base[:len(base)-2]
	}
	return fmt.Sprintf("%s%02d", base, indice)
}

// prefijoEvento takes the first two non-space characters of the event name,
// uppercased. Shorter names fall back to "EV".
func prefijoEvento(nombre string) string {
	var letras []rune
	for _, r := range nombre {
		if unicode.IsSpace(r) {
			continue
		}
		letras = append(letras, unicode.ToUpper(r))
		if len(letras) == 2 {
			return string(letras)
		}
	}
	return "EV"
}

// digitosCedula strips non-digits and keeps the last three, zero-left-padded.
func digitosCedula(cedula string) string {
	var digitos []rune
	for _, r := range cedula {
		if r >= '0' && r <= '9' {
			digitos = append(digitos, r)
		}
	}
	if len(digitos) > 3 {
		digitos = digitos[len(digitos)-3:]
	}
	s := string(digitos)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// iniciales returns the first letter of the first and last name tokens,
// uppercased, with X standing in for a missing token.
func iniciales(nombre string) string {
	tokens := strings.Fields(nombre)

	primera := "X"
	ultima := "X"
	if len(tokens) > 0 {
		primera = letraInicial(tokens[0])
	}
	if len(tokens) > 1 {
		ultima = letraInicial(tokens[len(tokens)-1])
	}
	return primera + ultima
}

func letraInicial(token string) string {
	for _, r := range token {
		return string(unicode.ToUpper(r))
	}
	return "X"
}
