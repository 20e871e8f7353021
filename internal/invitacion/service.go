package invitacion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmartinez10/event-invitations-backend/internal/auditlog"
	"github.com/mmartinez10/event-invitations-backend/internal/evento"
	"github.com/mmartinez10/event-invitations-backend/internal/notification"
	"github.com/mmartinez10/event-invitations-backend/internal/qr"
	"github.com/mmartinez10/event-invitations-backend/internal/usuario"
	"github.com/mmartinez10/event-invitations-backend/utils"
)

// EventoStore is the slice of the evento repository the workflows need.
type EventoStore interface {
	GetEventoByID(id uint) (*evento.Evento, error)
}

// Service orchestrates the invitation, confirmation and two-stage dispatch
// workflows.
type Service struct {
	Repo     Repository
	Usuarios usuario.Repository
	Eventos  EventoStore
	QR       qr.Generator
	Notif    notification.Service
	AuditSvc auditlog.Service

	FormBaseURL string
}

func NewService(repo Repository, usuarios usuario.Repository, eventos EventoStore, qrGen qr.Generator, notif notification.Service, auditSvc auditlog.Service, formBaseURL string) *Service {
	return &Service{
		Repo:        repo,
		Usuarios:    usuarios,
		Eventos:     eventos,
		QR:          qrGen,
		Notif:       notif,
		AuditSvc:    auditSvc,
		FormBaseURL: formBaseURL,
	}
}

// ===========================
// 🎯 Crear Invitacion — full workflow
//
// Resolves (or creates) the usuario by cedula, derives the code, generates
// the QR, persists the row and then dispatches over the requested channels.
// The row is inserted before dispatching so the unique indexes arbitrate
// concurrent duplicates before anything leaves the building.
func (s *Service) CrearInvitacion(ctx context.Context, req *CreateInvitacionRequest, imagen string) (*Invitacion, []notification.ResultadoCanal, error) {
	ev, err := s.Eventos.GetEventoByID(req.IDEvento)
	if err != nil {
		return nil, nil, err
	}

	u, creado, err := s.resolverUsuario(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if creado {
		fmt.Printf("✅ Usuario creado al invitar: cedula=%s\n", u.Cedula)
	}

	// Advisory pre-check; the composite unique index is the real guard.
	if _, err := s.Repo.GetByUsuarioEvento(ctx, u.ID, ev.ID); err == nil {
		return nil, nil, ErrInvitacionDuplicada
	} else if !errors.Is(err, ErrNoEncontrada) {
		return nil, nil, err
	}

	codigo := DeriveCode(ev.Nombre, u.Cedula, u.Nombre)

	qrRes, err := s.QR.Generate(codigo)
	if err != nil {
		return nil, nil, err
	}

	estado, err := s.Repo.GetEstadoPorNombre(ctx, EstadoPendiente)
	if err != nil {
		return nil, nil, err
	}

	inv := &Invitacion{
		UsuarioID:           u.ID,
		EventoID:            ev.ID,
		Codigo:              codigo,
		QrPath:              qrRes.Path,
		Imagen:              imagen,
		MetodoEnvio:         req.IDMetodoEnvio,
		EstadoID:            estado.ID,
		EstadoEnvioCorreo:   EnvioPendiente,
		EstadoEnvioWhatsapp: EnvioPendiente,
	}

	if err := s.Repo.CreateInvitacion(ctx, inv); err != nil {
		return nil, nil, err
	}

	resultados := s.despacharCodigo(ctx, inv, u, ev)

	inv.Usuario = u
	inv.Evento = ev
	return inv, resultados, nil
}

// resolverUsuario looks the invitee up by cedula and creates the record
// when it does not exist yet. Creating a usuario while inviting them is a
// documented workflow step, not an accident.
func (s *Service) resolverUsuario(ctx context.Context, req *CreateInvitacionRequest) (*usuario.Usuario, bool, error) {
	u, err := s.Usuarios.GetByCedula(ctx, req.Cedula)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, usuario.ErrNoEncontrado) {
		return nil, false, err
	}

	if req.Nombre == "" || req.Correo == "" {
		return nil, false, fmt.Errorf("%w: nombre y correo son obligatorios para un usuario nuevo", ErrValidacion)
	}

	nuevo := &usuario.Usuario{
		Cedula:   req.Cedula,
		Nombre:   req.Nombre,
		Correo:   strings.ToLower(strings.TrimSpace(req.Correo)),
		Telefono: req.Telefono,
	}
	if err := s.Usuarios.Create(ctx, nuevo); err != nil {
		return nil, false, err
	}
	return nuevo, true, nil
}

// despacharCodigo sends the code + QR over every channel the invitation
// requests and folds the outcomes back into the row. One channel failing
// never blocks the other; the invitation counts as Enviada when at least
// one channel got through.
func (s *Service) despacharCodigo(ctx context.Context, inv *Invitacion, u *usuario.Usuario, ev *evento.Evento) []notification.ResultadoCanal {
	canales := notification.CanalesParaMetodo(inv.MetodoEnvio)
	destino := notification.Destino{Correo: u.Correo, Telefono: u.Telefono}
	datos := notification.NuevosDatos(u.Nombre, ev.Nombre, ev.Fecha.Format("02/01/2006"), ev.Lugar, inv.Codigo, inv.QrPath, "")

	resultados := s.Notif.EnviarCodigo(ctx, destino, canales, datos)

	alguno := false
	for _, r := range resultados {
		estado := EnvioFallido
		if r.Estado == notification.EstadoEnvioEnviado {
			estado = EnvioEnviado
			alguno = true
		}
		switch r.Canal {
		case notification.CanalCorreo:
			inv.EstadoEnvioCorreo = estado
		case notification.CanalWhatsApp:
			inv.EstadoEnvioWhatsapp = estado
		}
	}

	if alguno {
		if estado, err := s.Repo.GetEstadoPorNombre(ctx, EstadoEnviada); err == nil {
			inv.EstadoID = estado.ID
		}
		ahora := time.Now()
		inv.FechaEnvio = &ahora
	}

	if err := s.Repo.UpdateInvitacion(ctx, inv); err != nil {
		fmt.Printf("❌ No se pudo actualizar el estado de envio de %s: %v\n", inv.Codigo, err)
	}

	return resultados
}

// ===========================
// 🔍 Lookups
func (s *Service) GetByID(ctx context.Context, id uint) (*Invitacion, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) ListByUsuario(ctx context.Context, usuarioID uint) ([]Invitacion, error) {
	return s.Repo.ListByUsuario(ctx, usuarioID)
}

func (s *Service) ListByEvento(ctx context.Context, eventoID uint) ([]Invitacion, error) {
	if _, err := s.Eventos.GetEventoByID(eventoID); err != nil {
		return nil, err
	}
	return s.Repo.ListByEvento(ctx, eventoID)
}

// ListConfirmaciones returns the principal and companion rows of one
// invitation, principal first.
func (s *Service) ListConfirmaciones(ctx context.Context, invitacionID uint) ([]Confirmacion, error) {
	if _, err := s.Repo.GetByID(ctx, invitacionID); err != nil {
		return nil, err
	}
	return s.Repo.ListConfirmaciones(ctx, invitacionID)
}

// ===========================
// ❌ Delete Invitacion (cascades to confirmations and companions)
func (s *Service) DeleteInvitacion(ctx context.Context, id uint, adminID *uint, ip string) error {
	inv, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteInvitacion(ctx, id); err != nil {
		return err
	}

	s.AuditSvc.LogAction(ctx, adminID, "INVITACION_ELIMINADA", map[string]interface{}{
		"invitacion_id": id,
		"codigo":        inv.Codigo,
		"usuario_id":    inv.UsuarioID,
		"evento_id":     inv.EventoID,
	}, ip, "success")

	return nil
}

// ===========================
// ✅ Confirmar — confirmation workflow
//
// Records the principal confirmation as a snapshot of the submitted fields
// and processes every companion independently: derive code, generate QR,
// persist row, notify. A companion whose QR cannot be produced is skipped
// (no row without its code+QR pair); a failed notification is recorded on
// the row and never stops the siblings.
func (s *Service) Confirmar(ctx context.Context, codigo string, req *ConfirmarRequest) (*ResultadoConfirmacion, error) {
	inv, err := s.Repo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetConfirmacionPrincipal(ctx, inv.ID); err == nil {
		return nil, ErrYaConfirmada
	} else if !errors.Is(err, ErrConfirmacionNoEncontrada) {
		return nil, err
	}

	principal := &Confirmacion{
		InvitacionID:     inv.ID,
		TipoParticipante: ParticipantePrincipal,
		Nombre:           req.Nombre,
		Correo:           req.Correo,
		Telefono:         req.Telefono,
		Cargo:            req.Cargo,
		Direccion:        req.Direccion,
		Codigo:           inv.Codigo,
		QrPath:           inv.QrPath,
	}
	if inv.Usuario != nil {
		if principal.Nombre == "" {
			principal.Nombre = inv.Usuario.Nombre
		}
		if principal.Correo == "" {
			principal.Correo = inv.Usuario.Correo
		}
		if principal.Telefono == "" {
			principal.Telefono = inv.Usuario.Telefono
		}
	}
	if principal.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre del confirmante es obligatorio", ErrValidacion)
	}

	if err := s.Repo.CreateConfirmacion(ctx, principal); err != nil {
		return nil, err
	}

	acompanantes := make([]Confirmacion, 0, len(req.Acompanantes))
	for i, a := range req.Acompanantes {
		conf, err := s.procesarAcompanante(ctx, inv, principal, i+1, a)
		if err != nil {
			fmt.Printf("❌ Acompanante %d de %s omitido: %v\n", i+1, inv.Codigo, err)
			continue
		}
		acompanantes = append(acompanantes, *conf)
	}

	if estado, err := s.Repo.GetEstadoPorNombre(ctx, EstadoConfirmada); err == nil {
		inv.EstadoID = estado.ID
		if err := s.Repo.UpdateInvitacion(ctx, inv); err != nil {
			fmt.Printf("❌ No se pudo marcar %s como confirmada: %v\n", inv.Codigo, err)
		}
	}

	utils.Publish(ctx, fmt.Sprintf("evento:%d:confirmaciones", inv.EventoID), map[string]interface{}{
		"codigo":       inv.Codigo,
		"nombre":       principal.Nombre,
		"acompanantes": len(acompanantes),
		"timestamp":    time.Now(),
	})

	return &ResultadoConfirmacion{Principal: principal, Acompanantes: acompanantes}, nil
}

// procesarAcompanante creates one companion row with its own code and QR.
// The QR must exist before the row does.
func (s *Service) procesarAcompanante(ctx context.Context, inv *Invitacion, principal *Confirmacion, indice int, req AcompananteRequest) (*Confirmacion, error) {
	if req.Nombre == "" {
		return nil, fmt.Errorf("%w: nombre del acompanante es obligatorio", ErrValidacion)
	}

	codigo := DeriveCompanionCode(inv.Codigo, indice)

	qrRes, err := s.QR.Generate(codigo)
	if err != nil {
		return nil, err
	}

	conf := &Confirmacion{
		InvitacionID:        inv.ID,
		ConfirmacionPadreID: &principal.ID,
		TipoParticipante:    ParticipanteAcompanante,
		Nombre:              req.Nombre,
		Correo:              req.Correo,
		Telefono:            req.Telefono,
		Cargo:               req.Cargo,
		Direccion:           req.Direccion,
		Codigo:              codigo,
		QrPath:              qrRes.Path,
	}

	if err := s.Repo.CreateConfirmacion(ctx, conf); err != nil {
		return nil, err
	}

	conf.NotificacionEnviada = s.notificarAcompanante(ctx, inv, conf)
	return conf, nil
}

// notificarAcompanante sends the companion their own code over whatever
// contact addresses they submitted. No address, no send.
func (s *Service) notificarAcompanante(ctx context.Context, inv *Invitacion, conf *Confirmacion) bool {
	var canales []string
	if conf.Correo != "" {
		canales = append(canales, notification.CanalCorreo)
	}
	if conf.Telefono != "" {
		canales = append(canales, notification.CanalWhatsApp)
	}
	if len(canales) == 0 {
		return false
	}

	eventoNombre, fecha, lugar := s.datosEvento(inv)
	destino := notification.Destino{Correo: conf.Correo, Telefono: conf.Telefono}
	datos := notification.NuevosDatos(conf.Nombre, eventoNombre, fecha, lugar, conf.Codigo, conf.QrPath, "")

	resultados := s.Notif.EnviarAcompanante(ctx, destino, canales, datos)

	enviado := false
	for _, r := range resultados {
		if r.Estado == notification.EstadoEnvioEnviado {
			enviado = true
		}
	}
	if enviado {
		conf.NotificacionEnviada = true
		if err := s.Repo.UpdateConfirmacion(ctx, conf); err != nil {
			fmt.Printf("⚠️ No se pudo marcar la notificacion de %s: %v\n", conf.Codigo, err)
		}
	}
	return enviado
}

func (s *Service) datosEvento(inv *Invitacion) (nombre, fecha, lugar string) {
	if inv.Evento != nil {
		return inv.Evento.Nombre, inv.Evento.Fecha.Format("02/01/2006"), inv.Evento.Lugar
	}
	ev, err := s.Eventos.GetEventoByID(inv.EventoID)
	if err != nil {
		return "", "", ""
	}
	return ev.Nombre, ev.Fecha.Format("02/01/2006"), ev.Lugar
}

// ===========================
// 📨 EnviarFormulario — stage 1 of the two-stage protocol
//
// Sends each usuario a link to the public confirmation form. No code or QR
// exists at this point.
func (s *Service) EnviarFormulario(ctx context.Context, req *EnvioMasivoRequest) ([]ResultadoEnvio, error) {
	ev, err := s.Eventos.GetEventoByID(req.IDEvento)
	if err != nil {
		return nil, err
	}

	canales := notification.CanalesParaMetodo(req.IDMetodoEnvio)
	resultados := make([]ResultadoEnvio, 0, len(req.Usuarios))

	for _, usuarioID := range req.Usuarios {
		u, err := s.Usuarios.GetByID(ctx, usuarioID)
		if err != nil {
			resultados = append(resultados, ResultadoEnvio{UsuarioID: usuarioID, Estado: EnvioFallido, Error: err.Error()})
			continue
		}

		formURL := fmt.Sprintf("%s?evento=%d&cedula=%s", s.FormBaseURL, ev.ID, u.Cedula)
		destino := notification.Destino{Correo: u.Correo, Telefono: u.Telefono}
		datos := notification.NuevosDatos(u.Nombre, ev.Nombre, ev.Fecha.Format("02/01/2006"), ev.Lugar, "", "", formURL)

		canalRes := s.Notif.EnviarFormulario(ctx, destino, canales, datos)
		resultados = append(resultados, resumenEnvio(usuarioID, "", canalRes))
	}

	return resultados, nil
}

// ===========================
// 📨 EnviarCodigos — stage 2 of the two-stage protocol
//
// For each usuario: when the invitation already exists its QR is
// regenerated (idempotent by code) and the code re-dispatched; otherwise
// the full invitation workflow runs. Stages are independent and may use
// different channels.
func (s *Service) EnviarCodigos(ctx context.Context, req *EnvioMasivoRequest) ([]ResultadoEnvio, error) {
	ev, err := s.Eventos.GetEventoByID(req.IDEvento)
	if err != nil {
		return nil, err
	}

	resultados := make([]ResultadoEnvio, 0, len(req.Usuarios))

	for _, usuarioID := range req.Usuarios {
		u, err := s.Usuarios.GetByID(ctx, usuarioID)
		if err != nil {
			resultados = append(resultados, ResultadoEnvio{UsuarioID: usuarioID, Estado: EnvioFallido, Error: err.Error()})
			continue
		}

		inv, err := s.Repo.GetByUsuarioEvento(ctx, u.ID, ev.ID)
		switch {
		case err == nil:
			inv.MetodoEnvio = req.IDMetodoEnvio
			if _, qrErr := s.QR.Generate(inv.Codigo); qrErr != nil {
				resultados = append(resultados, ResultadoEnvio{UsuarioID: usuarioID, Codigo: inv.Codigo, Estado: EnvioFallido, Error: qrErr.Error()})
				continue
			}
			canalRes := s.despacharCodigo(ctx, inv, u, ev)
			resultados = append(resultados, resumenEnvio(usuarioID, inv.Codigo, canalRes))

		case errors.Is(err, ErrNoEncontrada):
			nueva := &CreateInvitacionRequest{
				Cedula:        u.Cedula,
				Nombre:        u.Nombre,
				Correo:        u.Correo,
				Telefono:      u.Telefono,
				IDEvento:      ev.ID,
				IDMetodoEnvio: req.IDMetodoEnvio,
			}
			inv, canalRes, crearErr := s.CrearInvitacion(ctx, nueva, "")
			if crearErr != nil {
				resultados = append(resultados, ResultadoEnvio{UsuarioID: usuarioID, Estado: EnvioFallido, Error: crearErr.Error()})
				continue
			}
			resultados = append(resultados, resumenEnvio(usuarioID, inv.Codigo, canalRes))

		default:
			resultados = append(resultados, ResultadoEnvio{UsuarioID: usuarioID, Estado: EnvioFallido, Error: err.Error()})
		}
	}

	return resultados, nil
}

func resumenEnvio(usuarioID uint, codigo string, canales []notification.ResultadoCanal) ResultadoEnvio {
	estado := EnvioFallido
	for _, r := range canales {
		if r.Estado == notification.EstadoEnvioEnviado {
			estado = EnvioEnviado
			break
		}
	}
	return ResultadoEnvio{
		UsuarioID: usuarioID,
		Codigo:    codigo,
		Estado:    estado,
		Canales:   canales,
	}
}
