package ledger

import (
	"context"

	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que {lote, transacción, audit, historial} se escriben
// como una sola unidad atómica: nunca uno sin el otro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		txRepo repository.TransactionRepository,
		auditRepo repository.AuditLogRepository,
		historyRepo repository.StatusHistoryRepository,
	) error) error
}

// EventPublisher publica eventos de dominio hacia consumidores en tiempo real.
// Fire-and-forget: el motor no bloquea por la entrega ni reintenta fallos de
// publicación (eso es asunto del transporte, no del libro mayor).
type EventPublisher interface {
	Publish(eventName string, payload map[string]any)
}

// CertificatePDFGenerator genera la representación gráfica del acta de admisión de un lote.
type CertificatePDFGenerator interface {
	GenerateAdmissionCertificate(
		ctx context.Context,
		lot *entity.Lot,
		part *entity.Part,
		customer *entity.Customer,
		transactions []*entity.LotTransaction,
	) ([]byte, error)
}
