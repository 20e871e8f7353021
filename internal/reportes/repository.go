package reportes

import (
	"gorm.io/gorm"
)

// Repository defines the database reads required by the report service.
type Repository interface {
	GetAsistencia(eventoID uint) ([]AsistenciaRow, error)
	GetInvitaciones(eventoID uint) ([]InvitacionRow, error)
	GetResumenEvento(eventoID uint) (*ResumenEvento, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ======================
// Reportes
// ======================

func (r *repository) GetAsistencia(eventoID uint) ([]AsistenciaRow, error) {
	var out []AsistenciaRow

	err := r.db.Table("confirmaciones c").
		Select(`
			c.codigo,
			c.nombre,
			c.correo,
			c.telefono,
			c.cargo,
			c.tipo_participante,
			COALESCE(cp.codigo, c.codigo) as codigo_principal,
			c.fecha_confirmacion
		`).
		Joins("JOIN invitaciones i ON c.invitacion_id = i.id").
		Joins("LEFT JOIN confirmaciones cp ON c.confirmacion_padre_id = cp.id").
		Where("i.evento_id = ?", eventoID).
		Order("codigo_principal, c.tipo_participante DESC, c.codigo").
		Scan(&out).Error

	return out, err
}

func (r *repository) GetInvitaciones(eventoID uint) ([]InvitacionRow, error) {
	var out []InvitacionRow

	err := r.db.Table("invitaciones i").
		Select(`
			i.codigo,
			u.cedula,
			u.nombre,
			u.correo,
			u.telefono,
			e.nombre as estado,
			i.estado_envio_correo,
			i.estado_envio_whatsapp,
			i.fecha_envio,
			(SELECT COUNT(*) FROM confirmaciones c
			 WHERE c.invitacion_id = i.id AND c.confirmacion_padre_id IS NOT NULL) as acompanantes,
			i.created_at
		`).
		Joins("JOIN usuarios u ON i.usuario_id = u.id").
		Joins("LEFT JOIN estados e ON i.estado_id = e.id").
		Where("i.evento_id = ?", eventoID).
		Order("i.created_at ASC").
		Scan(&out).Error

	return out, err
}

func (r *repository) GetResumenEvento(eventoID uint) (*ResumenEvento, error) {
	var resumen ResumenEvento
	resumen.EventoID = eventoID

	if err := r.db.Table("eventos").
		Select("nombre").
		Where("id = ?", eventoID).
		Scan(&resumen.EventoNombre).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("invitaciones").
		Where("evento_id = ?", eventoID).
		Count(&resumen.TotalInvitaciones).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("invitaciones i").
		Joins("JOIN estados e ON i.estado_id = e.id").
		Where("i.evento_id = ? AND e.nombre IN ?", eventoID, []string{"Enviada", "Confirmada"}).
		Count(&resumen.TotalEnviadas).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("invitaciones i").
		Joins("JOIN estados e ON i.estado_id = e.id").
		Where("i.evento_id = ? AND e.nombre = ?", eventoID, "Confirmada").
		Count(&resumen.TotalConfirmadas).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("confirmaciones c").
		Joins("JOIN invitaciones i ON c.invitacion_id = i.id").
		Where("i.evento_id = ? AND c.confirmacion_padre_id IS NOT NULL", eventoID).
		Count(&resumen.TotalAcompanantes).Error; err != nil {
		return nil, err
	}

	resumen.TotalAsistentes = resumen.TotalConfirmadas + resumen.TotalAcompanantes
	return &resumen, nil
}
