package evento

import (
	"context"
	"errors"
	"time"

	"github.com/mmartinez10/event-invitations-backend/internal/auditlog"
)

// Service wraps business logic for eventos
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 🎯 Create Evento
func (s *Service) CreateEvento(req *CreateEventoRequest, adminID *uint, ip string) (*Evento, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, errors.New("formato de fecha invalido, use YYYY-MM-DD")
	}

	horaInicio, err := parseHora(req.HoraInicio)
	if err != nil {
		return nil, errors.New("formato de hora_inicio invalido, use HH:MM")
	}
	horaFin, err := parseHora(req.HoraFin)
	if err != nil {
		return nil, errors.New("formato de hora_fin invalido, use HH:MM")
	}

	activo := true
	if req.Activo != nil {
		activo = *req.Activo
	}

	e := &Evento{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		Tematica:    req.Tematica,
		Fecha:       fecha,
		HoraInicio:  horaInicio,
		HoraFin:     horaFin,
		Lugar:       req.Lugar,
		Vestimenta:  req.Vestimenta,
		Organizador: req.Organizador,
		Activo:      activo,
	}

	if err := s.Repo.CreateEvento(e); err != nil {
		s.AuditSvc.LogAction(context.Background(), adminID, "EVENTO_CREADO", map[string]interface{}{
			"nombre":    req.Nombre,
			"categoria": req.Categoria,
			"error":     err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), adminID, "EVENTO_CREADO", map[string]interface{}{
		"evento_id": e.ID,
		"nombre":    e.Nombre,
		"categoria": e.Categoria,
		"fecha":     e.Fecha.Format("2006-01-02"),
		"lugar":     e.Lugar,
	}, ip, "success")

	return e, nil
}

// ===========================
// 🔍 Get Evento by ID
func (s *Service) GetEventoByID(id uint) (*Evento, error) {
	return s.Repo.GetEventoByID(id)
}

// ===========================
// 📆 Get Upcoming Eventos
func (s *Service) GetProximosEventos() ([]Evento, error) {
	return s.Repo.GetProximosEventos()
}

// ===========================
// 📄 List Eventos with Pagination
func (s *Service) ListEventos(limit, offset int, search, categoria string) ([]Evento, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListEventos(limit, offset, search, categoria)
}

// ===========================
// 📊 Dashboard Stats
func (s *Service) GetEventoStats() (*EventoStatsResponse, error) {
	return s.Repo.GetEventoStats()
}

// ===========================
// 🛠 Update Evento
func (s *Service) UpdateEvento(id uint, req *UpdateEventoRequest, adminID *uint, ip string) (*Evento, error) {
	e, err := s.Repo.GetEventoByID(id)
	if err != nil {
		return nil, err
	}

	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, errors.New("formato de fecha invalido, use YYYY-MM-DD")
	}

	horaInicio, err := parseHora(req.HoraInicio)
	if err != nil {
		return nil, errors.New("formato de hora_inicio invalido, use HH:MM")
	}
	horaFin, err := parseHora(req.HoraFin)
	if err != nil {
		return nil, errors.New("formato de hora_fin invalido, use HH:MM")
	}

	nombreOriginal := e.Nombre

	e.Nombre = req.Nombre
	e.Descripcion = req.Descripcion
	e.Categoria = req.Categoria
	e.Tematica = req.Tematica
	e.Fecha = fecha
	e.HoraInicio = horaInicio
	e.HoraFin = horaFin
	e.Lugar = req.Lugar
	e.Vestimenta = req.Vestimenta
	e.Organizador = req.Organizador
	if req.Activo != nil {
		e.Activo = *req.Activo
	}

	if err := s.Repo.UpdateEvento(e); err != nil {
		s.AuditSvc.LogAction(context.Background(), adminID, "EVENTO_ACTUALIZADO", map[string]interface{}{
			"evento_id": id,
			"nombre":    nombreOriginal,
			"error":     err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(context.Background(), adminID, "EVENTO_ACTUALIZADO", map[string]interface{}{
		"evento_id": e.ID,
		"nombre":    e.Nombre,
	}, ip, "success")

	return e, nil
}

// ===========================
// ❌ Delete Evento
func (s *Service) DeleteEvento(id uint, adminID *uint, ip string) error {
	e, err := s.Repo.GetEventoByID(id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteEvento(id); err != nil {
		s.AuditSvc.LogAction(context.Background(), adminID, "EVENTO_ELIMINADO", map[string]interface{}{
			"evento_id": id,
			"nombre":    e.Nombre,
			"error":     err.Error(),
		}, ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(context.Background(), adminID, "EVENTO_ELIMINADO", map[string]interface{}{
		"evento_id": id,
		"nombre":    e.Nombre,
		"categoria": e.Categoria,
		"fecha":     e.Fecha.Format("2006-01-02"),
	}, ip, "success")

	return nil
}

func parseHora(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	parsed, err := time.Parse("15:04", v)
	if err != nil {
		return nil, err
	}
	normalized := time.Date(0, 1, 1, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	return &normalized, nil
}
