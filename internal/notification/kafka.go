package notification

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	kafka "github.com/segmentio/kafka-go"

	"github.com/mmartinez10/event-invitations-backend/config"
)

// DeliveryEvent is one dispatch outcome, published to the delivery topic
// and consumed into notification_logs.
type DeliveryEvent struct {
	Canal     string    `json:"canal"`
	Plantilla string    `json:"plantilla"`
	Codigo    string    `json:"codigo,omitempty"`
	Destino   string    `json:"destino"`
	Asunto    string    `json:"asunto,omitempty"`
	Estado    string    `json:"estado"`
	Error     string    `json:"error,omitempty"`
	Intentos  int       `json:"intentos"`
	Timestamp time.Time `json:"timestamp"`
}

type EventPublisher interface {
	Publish(ctx context.Context, evt DeliveryEvent) error
	Enabled() bool
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds the delivery-event publisher. With no brokers
// configured it returns a disabled publisher and the service persists
// outcomes directly instead.
func NewKafkaPublisher(cfg *config.Config) EventPublisher {
	if cfg.KafkaBrokers == "" {
		log.Println("⚠️ Kafka no configurado, los envios se registran de forma directa")
		return &kafkaPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        cfg.KafkaDeliveryTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // publishing never blocks the request path
	}

	log.Printf("✅ Kafka configurado, topico de envios: %s", cfg.KafkaDeliveryTopic)
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) Enabled() bool { return p.writer != nil }

func (p *kafkaPublisher) Publish(ctx context.Context, evt DeliveryEvent) error {
	if p.writer == nil {
		return nil
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.Codigo),
		Value: payload,
	})
}

// StartKafkaConsumer drains the delivery topic into notification_logs.
// Runs until the process exits; consume errors are logged and retried.
func StartKafkaConsumer(cfg *config.Config, svc Service) {
	if cfg.KafkaBrokers == "" {
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(cfg.KafkaBrokers, ","),
		Topic:   cfg.KafkaDeliveryTopic,
		GroupID: "invitaciones-envios",
	})

	go func() {
		log.Println("🔄 Consumidor Kafka de envios iniciado")
		for {
			m, err := reader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("❌ Error leyendo del topico de envios: %v", err)
				time.Sleep(5 * time.Second)
				continue
			}

			var evt DeliveryEvent
			if err := json.Unmarshal(m.Value, &evt); err != nil {
				log.Printf("⚠️ Evento de envio invalido, descartado: %v", err)
				continue
			}

			if err := svc.RegistrarEnvio(context.Background(), evt); err != nil {
				log.Printf("❌ No se pudo registrar el envio %s/%s: %v", evt.Canal, evt.Destino, err)
			}
		}
	}()
}
