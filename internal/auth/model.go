package auth

import (
	"time"
)

// ============================
// 🗂 Roles
const (
	RolAdmin    = "admin"
	RolOperador = "operador"
)

// ============================
// 🔷 GORM AdminUser Model — backoffice accounts, not invitees
type AdminUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nombre       string    `gorm:"type:varchar(255);not null" json:"nombre"`
	Correo       string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"correo"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Rol          string    `gorm:"type:varchar(50);not null;default:operador" json:"rol"`
	Activo       bool      `gorm:"default:true" json:"activo"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
