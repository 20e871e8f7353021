package reportes

import (
	"context"

	"github.com/mmartinez10/event-invitations-backend/internal/auditlog"
	"github.com/mmartinez10/event-invitations-backend/internal/evento"
)

// Service performs business logic and coordinates repo + exporter.
type Service interface {
	GetAsistencia(eventoID uint) (*ResumenEvento, []AsistenciaRow, error)
	ExportAsistencia(ctx context.Context, eventoID uint, format string, adminID *uint, ip string) ([]byte, string, string, error)

	GetInvitaciones(eventoID uint) (*ResumenEvento, []InvitacionRow, error)
	ExportInvitaciones(ctx context.Context, eventoID uint, format string, adminID *uint, ip string) ([]byte, string, string, error)
}

type service struct {
	repo     Repository
	eventos  *evento.Repository
	exporter Exporter
	auditSvc auditlog.Service
}

func NewService(repo Repository, eventos *evento.Repository, exporter Exporter, auditSvc auditlog.Service) Service {
	return &service{
		repo:     repo,
		eventos:  eventos,
		exporter: exporter,
		auditSvc: auditSvc,
	}
}

func (s *service) GetAsistencia(eventoID uint) (*ResumenEvento, []AsistenciaRow, error) {
	if _, err := s.eventos.GetEventoByID(eventoID); err != nil {
		return nil, nil, err
	}
	resumen, err := s.repo.GetResumenEvento(eventoID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.repo.GetAsistencia(eventoID)
	if err != nil {
		return nil, nil, err
	}
	return resumen, rows, nil
}

func (s *service) ExportAsistencia(ctx context.Context, eventoID uint, format string, adminID *uint, ip string) ([]byte, string, string, error) {
	resumen, rows, err := s.GetAsistencia(eventoID)
	if err != nil {
		s.logExport(ctx, adminID, ip, ReporteAsistencia, format, eventoID, "", err)
		return nil, "", "", err
	}

	data, filename, mimeType, err := s.exporter.ExportAsistencia(resumen.EventoNombre, rows, format)
	s.logExport(ctx, adminID, ip, ReporteAsistencia, format, eventoID, filename, err)
	if err != nil {
		return nil, "", "", err
	}
	return data, filename, mimeType, nil
}

func (s *service) GetInvitaciones(eventoID uint) (*ResumenEvento, []InvitacionRow, error) {
	if _, err := s.eventos.GetEventoByID(eventoID); err != nil {
		return nil, nil, err
	}
	resumen, err := s.repo.GetResumenEvento(eventoID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.repo.GetInvitaciones(eventoID)
	if err != nil {
		return nil, nil, err
	}
	return resumen, rows, nil
}

func (s *service) ExportInvitaciones(ctx context.Context, eventoID uint, format string, adminID *uint, ip string) ([]byte, string, string, error) {
	resumen, rows, err := s.GetInvitaciones(eventoID)
	if err != nil {
		s.logExport(ctx, adminID, ip, ReporteInvitaciones, format, eventoID, "", err)
		return nil, "", "", err
	}

	data, filename, mimeType, err := s.exporter.ExportInvitaciones(resumen.EventoNombre, rows, format)
	s.logExport(ctx, adminID, ip, ReporteInvitaciones, format, eventoID, filename, err)
	if err != nil {
		return nil, "", "", err
	}
	return data, filename, mimeType, nil
}

func (s *service) logExport(ctx context.Context, adminID *uint, ip, tipo, format string, eventoID uint, filename string, err error) {
	details := map[string]interface{}{
		"tipo":      tipo,
		"formato":   format,
		"evento_id": eventoID,
	}
	status := "success"
	action := "REPORTE_DESCARGADO"
	if err != nil {
		details["error"] = err.Error()
		status = "failure"
		action = "REPORTE_DESCARGA_FALLIDA"
	} else if filename != "" {
		details["filename"] = filename
	}
	s.auditSvc.LogAction(ctx, adminID, action, details, ip, status)
}
