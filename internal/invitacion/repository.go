package invitacion

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository interface {
	CreateInvitacion(ctx context.Context, inv *Invitacion) error
	GetByID(ctx context.Context, id uint) (*Invitacion, error)
	GetByCodigo(ctx context.Context, codigo string) (*Invitacion, error)
	GetByUsuarioEvento(ctx context.Context, usuarioID, eventoID uint) (*Invitacion, error)
	ListByUsuario(ctx context.Context, usuarioID uint) ([]Invitacion, error)
	ListByEvento(ctx context.Context, eventoID uint) ([]Invitacion, error)
	UpdateInvitacion(ctx context.Context, inv *Invitacion) error
	DeleteInvitacion(ctx context.Context, id uint) error

	CreateConfirmacion(ctx context.Context, conf *Confirmacion) error
	UpdateConfirmacion(ctx context.Context, conf *Confirmacion) error
	GetConfirmacionPrincipal(ctx context.Context, invitacionID uint) (*Confirmacion, error)
	ListConfirmaciones(ctx context.Context, invitacionID uint) ([]Confirmacion, error)

	GetEstadoPorNombre(ctx context.Context, nombre string) (*Estado, error)
	SeedEstados(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateInvitacion inserts the row and lets the unique indexes arbitrate
// races: the violated constraint name tells a duplicate (usuario, evento)
// pair apart from a derived-code collision.
func (r *repository) CreateInvitacion(ctx context.Context, inv *Invitacion) error {
	err := r.db.WithContext(ctx).Create(inv).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "usuario_evento"):
			return ErrInvitacionDuplicada
		case strings.Contains(pgErr.ConstraintName, "codigo"):
			return ErrCodigoDuplicado
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrInvitacionDuplicada
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Invitacion, error) {
	var inv Invitacion
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Evento").
		Preload("Estado").
		First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) GetByCodigo(ctx context.Context, codigo string) (*Invitacion, error) {
	var inv Invitacion
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Evento").
		Preload("Estado").
		Where("codigo = ?", codigo).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) GetByUsuarioEvento(ctx context.Context, usuarioID, eventoID uint) (*Invitacion, error) {
	var inv Invitacion
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND evento_id = ?", usuarioID, eventoID).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ===========================
// 📄 Invitations of one usuario, joined with event fields
func (r *repository) ListByUsuario(ctx context.Context, usuarioID uint) ([]Invitacion, error) {
	var invitaciones []Invitacion
	err := r.db.WithContext(ctx).
		Preload("Evento").
		Preload("Estado").
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Find(&invitaciones).Error
	return invitaciones, err
}

func (r *repository) ListByEvento(ctx context.Context, eventoID uint) ([]Invitacion, error) {
	var invitaciones []Invitacion
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Preload("Estado").
		Preload("Confirmaciones").
		Where("evento_id = ?", eventoID).
		Order("created_at ASC").
		Find(&invitaciones).Error
	return invitaciones, err
}

func (r *repository) UpdateInvitacion(ctx context.Context, inv *Invitacion) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

// DeleteInvitacion removes the invitation and, through the FK cascade, every
// confirmation and companion row hanging off it.
func (r *repository) DeleteInvitacion(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Invitacion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrada
	}
	return nil
}

// CreateConfirmacion inserts the row. Two confirms racing past the
// application pre-check both reach the insert; the loser hits the unique
// code index and gets the same ErrYaConfirmada the pre-check would return.
func (r *repository) CreateConfirmacion(ctx context.Context, conf *Confirmacion) error {
	err := r.db.WithContext(ctx).Create(conf).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" &&
		strings.Contains(pgErr.ConstraintName, "codigo") {
		return ErrYaConfirmada
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrYaConfirmada
	}
	return err
}

func (r *repository) UpdateConfirmacion(ctx context.Context, conf *Confirmacion) error {
	return r.db.WithContext(ctx).Save(conf).Error
}

func (r *repository) GetConfirmacionPrincipal(ctx context.Context, invitacionID uint) (*Confirmacion, error) {
	var conf Confirmacion
	err := r.db.WithContext(ctx).
		Where("invitacion_id = ? AND tipo_participante = ?", invitacionID, ParticipantePrincipal).
		First(&conf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConfirmacionNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return &conf, nil
}

func (r *repository) ListConfirmaciones(ctx context.Context, invitacionID uint) ([]Confirmacion, error) {
	var confs []Confirmacion
	err := r.db.WithContext(ctx).
		Where("invitacion_id = ?", invitacionID).
		Order("id ASC").
		Find(&confs).Error
	return confs, err
}

func (r *repository) GetEstadoPorNombre(ctx context.Context, nombre string) (*Estado, error) {
	var e Estado
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SeedEstados makes sure the estado catalog exists before any workflow runs
func (r *repository) SeedEstados(ctx context.Context) error {
	for _, nombre := range []string{EstadoPendiente, EstadoEnviada, EstadoConfirmada, EstadoCancelada} {
		err := r.db.WithContext(ctx).
			Where(Estado{Nombre: nombre}).
			FirstOrCreate(&Estado{}, Estado{Nombre: nombre}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
