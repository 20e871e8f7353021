package invitacion

import (
	"time"

	"github.com/mmartinez10/event-invitations-backend/internal/evento"
	"github.com/mmartinez10/event-invitations-backend/internal/usuario"
)

// ============================
// 🗂 Estados de invitación (catalog, seeded at startup)
const (
	EstadoPendiente  = "Pendiente"
	EstadoEnviada    = "Enviada"
	EstadoConfirmada = "Confirmada"
	EstadoCancelada  = "Cancelada"
)

// ============================
// 📦 Métodos de envío
const (
	MetodoCorreo   uint = 1
	MetodoWhatsApp uint = 2
	MetodoAmbos    uint = 3
)

// ============================
// 📬 Estado de envío por canal
const (
	EnvioPendiente = "pendiente"
	EnvioEnviado   = "enviado"
	EnvioFallido   = "fallido"
)

// ============================
// 👥 Tipos de participante
const (
	ParticipantePrincipal   = "principal"
	ParticipanteAcompanante = "acompanante"
)

// ============================
// 🔷 Estado catalog
type Estado struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"type:varchar(50);not null;uniqueIndex" json:"nombre"`
}

func (Estado) TableName() string {
	return "estados"
}

// ============================
// 🔷 GORM Invitacion Model
//
// The two unique indexes are the authoritative duplicate guards: the
// composite (usuario, evento) index rejects duplicate invitations, the
// codigo index rejects derived-code collisions. The repository tells them
// apart by the violated constraint name.
type Invitacion struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UsuarioID uint `gorm:"not null;uniqueIndex:idx_invitacion_usuario_evento" json:"usuario_id"`
	EventoID  uint `gorm:"not null;uniqueIndex:idx_invitacion_usuario_evento" json:"evento_id"`

	Codigo      string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_invitaciones_codigo" json:"codigo"`
	QrPath      string     `gorm:"type:varchar(255)" json:"qr_path"`
	Imagen      string     `gorm:"type:varchar(255)" json:"imagen,omitempty"`
	MetodoEnvio uint       `gorm:"not null" json:"id_metodo_envio"`
	EstadoID    uint       `gorm:"not null;index" json:"id_estado"`
	FechaEnvio  *time.Time `json:"fecha_envio,omitempty"`

	EstadoEnvioCorreo   string `gorm:"type:varchar(20);default:pendiente" json:"estado_envio_correo"`
	EstadoEnvioWhatsapp string `gorm:"type:varchar(20);default:pendiente" json:"estado_envio_whatsapp"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Usuario        *usuario.Usuario `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	Evento         *evento.Evento   `gorm:"foreignKey:EventoID" json:"evento,omitempty"`
	Estado         *Estado          `gorm:"foreignKey:EstadoID" json:"estado,omitempty"`
	Confirmaciones []Confirmacion   `gorm:"foreignKey:InvitacionID;constraint:OnDelete:CASCADE" json:"confirmaciones,omitempty"`
}

func (Invitacion) TableName() string {
	return "invitaciones"
}

// ============================
// 🔷 GORM Confirmacion Model
//
// One principal row per invitation; companion rows point at the principal
// through ConfirmacionPadreID and carry their own code and QR. Contact
// fields are snapshots taken at confirmation time.
type Confirmacion struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	InvitacionID        uint   `gorm:"not null;index" json:"invitacion_id"`
	ConfirmacionPadreID *uint  `gorm:"index" json:"confirmacion_padre_id,omitempty"`
	TipoParticipante    string `gorm:"type:varchar(20);not null" json:"tipo_participante"`

	Nombre    string `gorm:"type:varchar(255);not null" json:"nombre"`
	Correo    string `gorm:"type:varchar(255)" json:"correo,omitempty"`
	Telefono  string `gorm:"type:varchar(20)" json:"telefono,omitempty"`
	Cargo     string `gorm:"type:varchar(255)" json:"cargo,omitempty"`
	Direccion string `gorm:"type:text" json:"direccion,omitempty"`

	Codigo              string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_confirmaciones_codigo" json:"codigo"`
	QrPath              string    `gorm:"type:varchar(255)" json:"qr_path"`
	FechaConfirmacion   time.Time `gorm:"autoCreateTime" json:"fecha_confirmacion"`
	NotificacionEnviada bool      `gorm:"default:false" json:"notificacion_enviada"`

	Acompanantes []Confirmacion `gorm:"foreignKey:ConfirmacionPadreID;constraint:OnDelete:CASCADE" json:"acompanantes,omitempty"`
}

func (Confirmacion) TableName() string {
	return "confirmaciones"
}

// ============================
// 🟡 Create Invitacion Request (multipart form)
type CreateInvitacionRequest struct {
	Cedula        string `form:"cedula" binding:"required"`
	Nombre        string `form:"nombre"`
	Correo        string `form:"correo"`
	Telefono      string `form:"telefono"`
	IDEvento      uint   `form:"id_evento" binding:"required"`
	IDMetodoEnvio uint   `form:"id_metodo_envio" binding:"required,oneof=1 2 3"`
	IDEstado      uint   `form:"id_estado"`
}

// ============================
// 🟢 Acompanante en una confirmación
type AcompananteRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Correo    string `json:"correo"`
	Telefono  string `json:"telefono"`
	Cargo     string `json:"cargo"`
	Direccion string `json:"direccion"`
}

// ============================
// 🟢 Confirmar Invitacion Request
type ConfirmarRequest struct {
	Nombre       string               `json:"nombre"`
	Correo       string               `json:"correo"`
	Telefono     string               `json:"telefono"`
	Cargo        string               `json:"cargo"`
	Direccion    string               `json:"direccion"`
	Acompanantes []AcompananteRequest `json:"acompanantes"`
}

// ============================
// 🟣 Two-stage dispatch requests: a batch of usuarios for one evento
type EnvioMasivoRequest struct {
	IDEvento      uint   `json:"id_evento" binding:"required"`
	IDMetodoEnvio uint   `json:"id_metodo_envio" binding:"required,oneof=1 2 3"`
	Usuarios      []uint `json:"usuarios" binding:"required,min=1"`
}

// ============================
// 📊 Resultados
type ResultadoConfirmacion struct {
	Principal    *Confirmacion  `json:"principal"`
	Acompanantes []Confirmacion `json:"acompanantes"`
}

type ResultadoEnvio struct {
	UsuarioID uint        `json:"usuario_id"`
	Codigo    string      `json:"codigo,omitempty"`
	Estado    string      `json:"estado"`
	Error     string      `json:"error,omitempty"`
	Canales   interface{} `json:"canales,omitempty"`
}
