package invitacion

import "errors"

var (
	// ErrInvitacionDuplicada signals an invitation already exists for the
	// (usuario, evento) pair. A duplicate guard, not malformed input.
	ErrInvitacionDuplicada = errors.New("ya existe una invitacion para este usuario y evento")

	// ErrCodigoDuplicado signals a derived code collided with an existing
	// one. Distinct from ErrInvitacionDuplicada: same code, different pair.
	ErrCodigoDuplicado = errors.New("el codigo derivado ya existe para otra invitacion")

	// ErrNoEncontrada signals no invitation matches the lookup.
	ErrNoEncontrada = errors.New("invitacion no encontrada")

	// ErrConfirmacionNoEncontrada signals no confirmation matches the lookup.
	ErrConfirmacionNoEncontrada = errors.New("confirmacion no encontrada")

	// ErrYaConfirmada signals the invitation already carries its principal
	// confirmation row.
	ErrYaConfirmada = errors.New("la invitacion ya fue confirmada")

	// ErrValidacion marks missing or malformed required fields.
	ErrValidacion = errors.New("datos de invitacion invalidos")
)
