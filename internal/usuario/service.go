package usuario

import (
	"context"
	"errors"
	"strings"
)

// Service wraps business logic for invitee records
type Service struct {
	Repo Repository
}

func NewService(r Repository) *Service {
	return &Service{Repo: r}
}

// ===========================
// 🎯 Create Usuario
func (s *Service) Create(ctx context.Context, req *CreateUsuarioRequest) (*Usuario, error) {
	cedula := strings.TrimSpace(req.Cedula)
	if cedula == "" {
		return nil, errors.New("cedula requerida")
	}

	if _, err := s.Repo.GetByCedula(ctx, cedula); err == nil {
		return nil, errors.New("ya existe un usuario con esa cedula")
	}

	u := &Usuario{
		Cedula:       cedula,
		Nombre:       strings.TrimSpace(req.Nombre),
		Correo:       strings.ToLower(strings.TrimSpace(req.Correo)),
		Telefono:     strings.TrimSpace(req.Telefono),
		Organizacion: req.Organizacion,
		Cargo:        req.Cargo,
		Direccion:    req.Direccion,
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*Usuario, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) GetByCedula(ctx context.Context, cedula string) (*Usuario, error) {
	return s.Repo.GetByCedula(ctx, cedula)
}

// ===========================
// 🛠 Update Usuario
func (s *Service) Update(ctx context.Context, id uint, req *UpdateUsuarioRequest) (*Usuario, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Nombre = strings.TrimSpace(req.Nombre)
	u.Correo = strings.ToLower(strings.TrimSpace(req.Correo))
	u.Telefono = strings.TrimSpace(req.Telefono)
	u.Organizacion = req.Organizacion
	u.Cargo = req.Cargo
	u.Direccion = req.Direccion

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, limit, offset int, search string) ([]Usuario, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(ctx, limit, offset, search)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.Repo.Delete(ctx, id)
}
