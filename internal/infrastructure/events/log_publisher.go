package events

import (
	"github.com/jhoicas/zonafranca-api/internal/application/ledger"
	"github.com/jhoicas/zonafranca-api/pkg/logger"
)

var _ ledger.EventPublisher = (*LogPublisher)(nil)

// LogPublisher escribe los eventos al log estructurado. Se usa en desarrollo
// o cuando no hay brokers de Kafka configurados.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(eventName string, payload map[string]any) {
	p.log.Info().Str("event", eventName).Interface("payload", payload).Msg("evento de inventario")
}
