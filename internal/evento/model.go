package evento

import (
	"time"
)

// ============================
// 🗂 Categorías de evento
const (
	CategoriaMacroevento = "Macroevento"
	CategoriaAdicional   = "Adicional"
	CategoriaEspecial    = "Especial"
)

// ============================
// 🔷 GORM Evento Model
type Evento struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Nombre      string     `gorm:"type:varchar(255);not null" json:"nombre"`
	Descripcion string     `gorm:"type:text" json:"descripcion"`
	Categoria   string     `gorm:"type:varchar(50);not null" json:"categoria"`
	Tematica    string     `gorm:"type:varchar(255)" json:"tematica"`
	Fecha       time.Time  `gorm:"not null;index" json:"fecha"`
	HoraInicio  *time.Time `json:"hora_inicio,omitempty"`
	HoraFin     *time.Time `json:"hora_fin,omitempty"`
	Lugar       string     `gorm:"type:text;not null" json:"lugar"`
	Vestimenta  string     `gorm:"type:varchar(255)" json:"vestimenta"`
	Organizador string     `gorm:"type:varchar(255)" json:"organizador"`
	Activo      bool       `gorm:"default:true" json:"activo"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	InvitacionCount int `gorm:"-" json:"invitacion_count"`
}

func (Evento) TableName() string {
	return "eventos"
}

// ============================
// 🟡 Create Evento Request
type CreateEventoRequest struct {
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
	Categoria   string `json:"categoria" binding:"required,oneof=Macroevento Adicional Especial"`
	Tematica    string `json:"tematica"`
	Fecha       string `json:"fecha" binding:"required"` // 🛠 string format: "2006-01-02"
	HoraInicio  string `json:"hora_inicio,omitempty"`    // 🛠 string format: "15:04"
	HoraFin     string `json:"hora_fin,omitempty"`       // 🛠 string format: "15:04"
	Lugar       string `json:"lugar" binding:"required"`
	Vestimenta  string `json:"vestimenta"`
	Organizador string `json:"organizador"`
	Activo      *bool  `json:"activo,omitempty"`
}

// ============================
// 🟠 Update Evento Request
type UpdateEventoRequest struct {
	ID          uint   `json:"-"`
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
	Categoria   string `json:"categoria" binding:"required,oneof=Macroevento Adicional Especial"`
	Tematica    string `json:"tematica"`
	Fecha       string `json:"fecha" binding:"required"` // 🛠 string
	HoraInicio  string `json:"hora_inicio,omitempty"`    // 🛠 string
	HoraFin     string `json:"hora_fin,omitempty"`       // 🛠 string
	Lugar       string `json:"lugar" binding:"required"`
	Vestimenta  string `json:"vestimenta"`
	Organizador string `json:"organizador"`
	Activo      *bool  `json:"activo,omitempty"`
}
