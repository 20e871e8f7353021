package auth

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNoEncontrado = errors.New("cuenta no encontrada")

type Repository interface {
	Create(user *AdminUser) error
	FindByCorreo(correo string) (*AdminUser, error)
	FindByID(id uint) (*AdminUser, error)
	Update(user *AdminUser) error
	Count() (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *AdminUser) error {
	return r.db.Create(user).Error
}

func (r *repository) FindByCorreo(correo string) (*AdminUser, error) {
	var u AdminUser
	err := r.db.Where("correo = ?", correo).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(id uint) (*AdminUser, error) {
	var u AdminUser
	err := r.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(user *AdminUser) error {
	return r.db.Save(user).Error
}

func (r *repository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&AdminUser{}).Count(&n).Error
	return n, err
}
