package reportes

import "time"

// Export formats supported by the exporter.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Report types.
const (
	ReporteAsistencia   = "asistencia"
	ReporteInvitaciones = "invitaciones"
)

// AsistenciaRow is one confirmed participant (principal or acompañante) of an event.
type AsistenciaRow struct {
	Codigo            string    `json:"codigo"`
	Nombre            string    `json:"nombre"`
	Correo            string    `json:"correo"`
	Telefono          string    `json:"telefono"`
	Cargo             string    `json:"cargo"`
	TipoParticipante  string    `json:"tipo_participante"`
	CodigoPrincipal   string    `json:"codigo_principal"`
	FechaConfirmacion time.Time `json:"fecha_confirmacion"`
}

// InvitacionRow is one invitation of an event with its delivery and confirmation state.
type InvitacionRow struct {
	Codigo              string     `json:"codigo"`
	Cedula              string     `json:"cedula"`
	Nombre              string     `json:"nombre"`
	Correo              string     `json:"correo"`
	Telefono            string     `json:"telefono"`
	Estado              string     `json:"estado"`
	EstadoEnvioCorreo   string     `json:"estado_envio_correo"`
	EstadoEnvioWhatsapp string     `json:"estado_envio_whatsapp"`
	FechaEnvio          *time.Time `json:"fecha_envio"`
	Acompanantes        int        `json:"acompanantes"`
	CreatedAt           time.Time  `json:"created_at"`
}

// ResumenEvento aggregates the headline numbers shown alongside a report.
type ResumenEvento struct {
	EventoID          uint   `json:"evento_id"`
	EventoNombre      string `json:"evento_nombre"`
	TotalInvitaciones int64  `json:"total_invitaciones"`
	TotalEnviadas     int64  `json:"total_enviadas"`
	TotalConfirmadas  int64  `json:"total_confirmadas"`
	TotalAcompanantes int64  `json:"total_acompanantes"`
	TotalAsistentes   int64  `json:"total_asistentes"`
}
