package usuario

import (
	"time"
)

// ============================
// 🔷 GORM Usuario Model
type Usuario struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Cedula       string    `gorm:"type:varchar(13);not null;uniqueIndex:idx_usuarios_cedula" json:"cedula"`
	Nombre       string    `gorm:"type:varchar(255);not null" json:"nombre"`
	Correo       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_usuarios_correo" json:"correo"`
	Telefono     string    `gorm:"type:varchar(20)" json:"telefono"`
	Organizacion string    `gorm:"type:varchar(255)" json:"organizacion"`
	Cargo        string    `gorm:"type:varchar(255)" json:"cargo"`
	Direccion    string    `gorm:"type:text" json:"direccion"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// ============================
// 🟡 Create Usuario Request
type CreateUsuarioRequest struct {
	Cedula       string `json:"cedula" binding:"required"`
	Nombre       string `json:"nombre" binding:"required"`
	Correo       string `json:"correo" binding:"required,email"`
	Telefono     string `json:"telefono"`
	Organizacion string `json:"organizacion"`
	Cargo        string `json:"cargo"`
	Direccion    string `json:"direccion"`
}

// ============================
// 🟠 Update Usuario Request
type UpdateUsuarioRequest struct {
	Nombre       string `json:"nombre" binding:"required"`
	Correo       string `json:"correo" binding:"required,email"`
	Telefono     string `json:"telefono"`
	Organizacion string `json:"organizacion"`
	Cargo        string `json:"cargo"`
	Direccion    string `json:"direccion"`
}
