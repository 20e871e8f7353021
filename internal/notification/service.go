package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Destino carries the contact addresses a message can be routed to.
// Each channel picks the address it understands.
type Destino struct {
	Correo   string
	Telefono string
}

// ResultadoCanal is the per-channel outcome of one dispatch. Channels are
// independent: one failing never blocks the others.
type ResultadoCanal struct {
	Canal    string `json:"canal"`
	Estado   string `json:"estado"` // enviado | fallido
	Error    string `json:"error,omitempty"`
	Intentos int    `json:"intentos"`
}

type Service interface {
	EnviarCodigo(ctx context.Context, destino Destino, canales []string, datos DatosInvitacion) []ResultadoCanal
	EnviarFormulario(ctx context.Context, destino Destino, canales []string, datos DatosInvitacion) []ResultadoCanal
	EnviarAcompanante(ctx context.Context, destino Destino, canales []string, datos DatosInvitacion) []ResultadoCanal

	RegistrarEnvio(ctx context.Context, evt DeliveryEvent) error
	ListarEnvios(ctx context.Context, canal string, limit, offset int) ([]NotificationLog, error)
	ListarEnviosPorCodigo(ctx context.Context, codigo string) ([]NotificationLog, error)
}

type service struct {
	repo       Repository
	dispatcher *Dispatcher
	renderer   Renderer
	canales    map[string]Channel
	publisher  EventPublisher
}

func NewService(repo Repository, dispatcher *Dispatcher, renderer Renderer, canales map[string]Channel, publisher EventPublisher) Service {
	return &service{
		repo:       repo,
		dispatcher: dispatcher,
		renderer:   renderer,
		canales:    canales,
		publisher:  publisher,
	}
}

// EnviarCodigo delivers the access code plus QR over every requested channel
func (s *service) EnviarCodigo(ctx context.Context, destino Destino, canales []string, datos DatosInvitacion) []ResultadoCanal {
	return s.enviar(ctx, PlantillaInvitacion, destino, canales, datos, true)
}

// EnviarFormulario delivers the stage-1 registration link; no code exists yet
func (s *service) EnviarFormulario(ctx context.Context, destino Destino, canales []string, datos DatosInvitacion) []ResultadoCanal {
	return s.enviar(ctx, PlantillaFormulario, destino, canales, datos, false)
}

// EnviarAcompanante delivers a companion's own code and QR
func (s *service) EnviarAcompanante(ctx context.Context, destino Destino, canales []string, datos DatosInvitacion) []ResultadoCanal {
	return s.enviar(ctx, PlantillaAcompanante, destino, canales, datos, true)
}

func (s *service) enviar(ctx context.Context, plantilla string, destino Destino, canales []string, datos DatosInvitacion, adjuntarQR bool) []ResultadoCanal {
	resultados := make([]ResultadoCanal, 0, len(canales))

	for _, nombre := range canales {
		resultado := s.enviarPorCanal(ctx, plantilla, nombre, destino, datos, adjuntarQR)
		resultados = append(resultados, resultado)
		s.registrarResultado(ctx, plantilla, nombre, direccionPara(nombre, destino), datos.CodigoUnico, resultado)
	}

	return resultados
}

func (s *service) enviarPorCanal(ctx context.Context, plantilla, nombre string, destino Destino, datos DatosInvitacion, adjuntarQR bool) ResultadoCanal {
	canal, ok := s.canales[nombre]
	if !ok {
		return ResultadoCanal{Canal: nombre, Estado: EstadoEnvioFallido, Error: fmt.Sprintf("canal no soportado: %s", nombre)}
	}

	direccion := direccionPara(nombre, destino)
	if direccion == "" {
		return ResultadoCanal{Canal: nombre, Estado: EstadoEnvioFallido, Error: "destino sin direccion para el canal"}
	}

	subject, htmlBody, textBody, err := s.renderer.Render(plantilla, datos)
	if err != nil {
		return ResultadoCanal{Canal: nombre, Estado: EstadoEnvioFallido, Error: fmt.Sprintf("no se pudo renderizar la plantilla: %v", err)}
	}

	msg := Message{
		Subject:  subject,
		Body:     htmlBody,
		TextBody: textBody,
	}
	if adjuntarQR {
		msg.QRPath = datos.QRPath
	}

	intentos, err := s.dispatcher.DispatchWithRetry(ctx, canal, direccion, msg)
	if err != nil {
		return ResultadoCanal{Canal: nombre, Estado: EstadoEnvioFallido, Error: err.Error(), Intentos: intentos}
	}
	return ResultadoCanal{Canal: nombre, Estado: EstadoEnvioEnviado, Intentos: intentos}
}

// registrarResultado publishes the outcome to the delivery topic, falling
// back to a direct log write when Kafka is not configured. Best effort in
// both cases: a logging failure never fails the dispatch.
func (s *service) registrarResultado(ctx context.Context, plantilla, canal, direccion, codigo string, resultado ResultadoCanal) {
	evt := DeliveryEvent{
		Canal:     canal,
		Plantilla: plantilla,
		Codigo:    codigo,
		Destino:   direccion,
		Estado:    resultado.Estado,
		Error:     resultado.Error,
		Intentos:  resultado.Intentos,
		Timestamp: time.Now(),
	}

	if s.publisher != nil && s.publisher.Enabled() {
		if err := s.publisher.Publish(ctx, evt); err != nil {
			fmt.Printf("⚠️ No se pudo publicar el evento de envio: %v\n", err)
		}
		return
	}

	if err := s.RegistrarEnvio(ctx, evt); err != nil {
		fmt.Printf("⚠️ No se pudo registrar el envio: %v\n", err)
	}
}

// RegistrarEnvio persists one delivery outcome as a NotificationLog row
func (s *service) RegistrarEnvio(ctx context.Context, evt DeliveryEvent) error {
	recipients, _ := json.Marshal([]string{evt.Destino})

	log := &NotificationLog{
		Canal:      evt.Canal,
		Plantilla:  evt.Plantilla,
		Codigo:     evt.Codigo,
		Asunto:     evt.Asunto,
		Recipients: datatypes.JSON(recipients),
		Estado:     evt.Estado,
		Intentos:   evt.Intentos,
	}
	if evt.Error != "" {
		errMsg := evt.Error
		log.Error = &errMsg
	}

	return s.repo.CreateLog(ctx, log)
}

func (s *service) ListarEnvios(ctx context.Context, canal string, limit, offset int) ([]NotificationLog, error) {
	return s.repo.ListLogs(ctx, canal, limit, offset)
}

func (s *service) ListarEnviosPorCodigo(ctx context.Context, codigo string) ([]NotificationLog, error) {
	return s.repo.ListLogsByCodigo(ctx, codigo)
}

func direccionPara(canal string, destino Destino) string {
	switch canal {
	case CanalCorreo:
		return destino.Correo
	case CanalWhatsApp:
		return destino.Telefono
	default:
		return ""
	}
}

// CanalesParaMetodo maps the delivery-method selector of an invitation
// (1 correo, 2 whatsapp, 3 ambos) onto channel names.
func CanalesParaMetodo(metodo uint) []string {
	switch metodo {
	case 1:
		return []string{CanalCorreo}
	case 2:
		return []string{CanalWhatsApp}
	case 3:
		return []string{CanalCorreo, CanalWhatsApp}
	default:
		return nil
	}
}
