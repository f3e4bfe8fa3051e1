package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/zonafranca-api/internal/application/ledger"
	"github.com/jhoicas/zonafranca-api/pkg/logger"
)

var _ ledger.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher implementa el puerto de notificaciones sobre Kafka.
// Fire-and-forget: la publicación va en una goroutine con timeout y los fallos
// solo se registran; la corrección del libro mayor no depende de la entrega.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaPublisher construye el publicador. Los mensajes se particionan por
// nombre de evento para preservar orden por tipo.
func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		log: log,
	}
}

// Publish serializa el payload y lo envía sin bloquear al caller.
func (p *KafkaPublisher) Publish(eventName string, payload map[string]any) {
	body, err := json.Marshal(map[string]any{
		"event":   eventName,
		"payload": payload,
		"ts":      time.Now().UTC(),
	})
	if err != nil {
		p.log.Error().Err(err).Str("event", eventName).Msg("serializar evento")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(eventName),
			Value: body,
		}); err != nil {
			// At-most-once desde la perspectiva del motor: no se reintenta aquí
			p.log.Warn().Err(err).Str("event", eventName).Msg("publicar evento")
		}
	}()
}

// Close cierra el writer subyacente.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
