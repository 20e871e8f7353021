package usuario

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNoEncontrado is returned when no usuario matches the lookup
var ErrNoEncontrado = errors.New("usuario no encontrado")

// ErrConInvitaciones is returned when deleting a usuario that invitations
// still reference
var ErrConInvitaciones = errors.New("el usuario tiene invitaciones asociadas")

type Repository interface {
	Create(ctx context.Context, u *Usuario) error
	GetByID(ctx context.Context, id uint) (*Usuario, error)
	GetByCedula(ctx context.Context, cedula string) (*Usuario, error)
	Update(ctx context.Context, u *Usuario) error
	List(ctx context.Context, limit, offset int, search string) ([]Usuario, int64, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Usuario, error) {
	var u Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByCedula(ctx context.Context, cedula string) (*Usuario, error) {
	var u Usuario
	err := r.db.WithContext(ctx).Where("cedula = ?", cedula).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, u *Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// ===========================
// 📄 List with pagination & search
func (r *repository) List(ctx context.Context, limit, offset int, search string) ([]Usuario, int64, error) {
	var usuarios []Usuario
	var total int64

	query := r.db.WithContext(ctx).Model(&Usuario{})
	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("nombre ILIKE ? OR correo ILIKE ? OR cedula ILIKE ?", ilike, ilike, ilike)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("nombre ASC").
		Limit(limit).
		Offset(offset).
		Find(&usuarios).Error
	return usuarios, total, err
}

// Delete refuses while invitations reference the usuario; the record is
// never removed from under an existing invitation.
func (r *repository) Delete(ctx context.Context, id uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Table("invitaciones").Where("usuario_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConInvitaciones
	}
	return r.db.WithContext(ctx).Delete(&Usuario{}, id).Error
}
