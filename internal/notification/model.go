package notification

import (
	"time"

	"gorm.io/datatypes"
)

// Delivery outcomes recorded on NotificationLog rows
const (
	EstadoEnvioPendiente = "pendiente"
	EstadoEnvioEnviado   = "enviado"
	EstadoEnvioFallido   = "fallido"
)

// NotificationLog records every outbound dispatch attempt result, one row
// per (message, channel). Fed by the Kafka delivery-event consumer when
// brokers are configured, written directly otherwise.
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Canal      string         `gorm:"size:20;not null;index" json:"canal"`
	Plantilla  string         `gorm:"size:30;not null" json:"plantilla"`
	Codigo     string         `gorm:"size:20;index" json:"codigo,omitempty"` // invitation or companion code
	Asunto     string         `gorm:"size:255" json:"asunto,omitempty"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"`
	Estado     string         `gorm:"size:20;default:'pendiente'" json:"estado"`
	Error      *string        `json:"error,omitempty"`
	Intentos   int            `gorm:"default:0" json:"intentos"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}
