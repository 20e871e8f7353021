package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmartinez10/event-invitations-backend/config"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

var ErrCredenciales = errors.New("credenciales invalidas")

type Service interface {
	Login(correo, password string) (*TokenPair, *AdminUser, error)
	Refresh(refreshToken string) (string, error)
	GetByID(id uint) (*AdminUser, error)
	SeedAdmin(correo, password string) error
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	accessTTL := time.Duration(cfg.JWTAccessTTLHours) * time.Hour
	if accessTTL == 0 {
		accessTTL = time.Hour
	}
	refreshTTL := time.Duration(cfg.JWTRefreshTTLHours) * time.Hour
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// =============================
// Login
// =============================

func (s *service) Login(correo, password string) (*TokenPair, *AdminUser, error) {
	user, err := s.repo.FindByCorreo(strings.ToLower(strings.TrimSpace(correo)))
	if err != nil {
		if errors.Is(err, ErrNoEncontrado) {
			return nil, nil, ErrCredenciales
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrCredenciales
	}

	if !user.Activo {
		return nil, nil, errors.New("la cuenta esta inactiva")
	}

	accessToken, err := s.generateToken(user, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateToken(user, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

func (s *service) generateToken(user *AdminUser, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": user.ID,
		"rol":      user.Rol,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("refresh token invalido")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["admin_id"] == nil {
		return "", errors.New("claims invalidos")
	}

	id := uint(claims["admin_id"].(float64))
	user, err := s.repo.FindByID(id)
	if err != nil {
		return "", errors.New("cuenta no encontrada")
	}

	return s.generateToken(user, s.accessSecret, s.accessTTL)
}

func (s *service) GetByID(id uint) (*AdminUser, error) {
	return s.repo.FindByID(id)
}

// =============================
// SeedAdmin creates the initial admin account when the table is empty
// =============================

func (s *service) SeedAdmin(correo, password string) error {
	if correo == "" || password == "" {
		return nil
	}

	n, err := s.repo.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &AdminUser{
		Nombre:       "Administrador",
		Correo:       strings.ToLower(correo),
		PasswordHash: string(hash),
		Rol:          RolAdmin,
		Activo:       true,
	}
	if err := s.repo.Create(admin); err != nil {
		return err
	}

	fmt.Printf("✅ Cuenta admin inicial creada: %s\n", admin.Correo)
	return nil
}
