package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/zonafranca-api/internal/domain"
	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/ledger"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

// ReconcileUseCase repara la columna cacheada current_quantity contra la suma
// del libro de transacciones. La suma es la fuente de verdad; la columna es
// solo una optimización de lectura. No escribe transacciones nuevas: el libro
// ya es correcto, lo que se corrige es el caché.
type ReconcileUseCase struct {
	txRunner TxRunner
	lotRepo  repository.LotRepository
	txRepo   repository.TransactionRepository
}

// NewReconcileUseCase construye el caso de uso de reconciliación.
func NewReconcileUseCase(
	txRunner TxRunner,
	lotRepo repository.LotRepository,
	txRepo repository.TransactionRepository,
) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, lotRepo: lotRepo, txRepo: txRepo}
}

// ReconcileResult resultado de una reconciliación.
type ReconcileResult struct {
	Lot       *entity.Lot
	LedgerSum int64
	Adjusted  bool // true si la columna cacheada divergía y fue corregida
}

// Reconcile recalcula la suma del libro y, si la columna cacheada diverge,
// la sobreescribe (CAS sobre el valor divergente) dejando constancia en el
// audit trail. Divergencia cero es un no-op sin escrituras.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, lotID, userID string) (*ReconcileResult, error) {
	if lotID == "" {
		return nil, fmt.Errorf("%w: lot_id es obligatorio", domain.ErrInvalidInput)
	}

	lot, err := uc.lotRepo.GetByID(lotID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, lotID)
	}

	sum, err := uc.txRepo.SumByLot(lotID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if sum == lot.CurrentQuantity {
		return &ReconcileResult{Lot: lot, LedgerSum: sum}, nil
	}

	now := time.Now()
	cached := lot.CurrentQuantity
	updated := *lot
	updated.CurrentQuantity = sum
	updated.Status = ledger.DeriveStatus(sum, lot.Voided, lot.Status)
	updated.UpdatedAt = now
	updated.UpdatedBy = userID

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.TransactionRepository,
		auditRepo repository.AuditLogRepository,
		_ repository.StatusHistoryRepository,
	) error {
		if err := lotRepo.UpdateQuantityCAS(&updated, cached); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLogEntry{
			ID:     uuid.New().String(),
			Action: entity.AuditActionQuantityReconciled,
			Reason: "reconciliación contra el libro de transacciones",
			Details: map[string]any{
				"lot_id":     lot.ID,
				"cached":     cached,
				"ledger_sum": sum,
			},
			UserID:    userID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, wrapPersistence(err)
	}

	return &ReconcileResult{Lot: &updated, LedgerSum: sum, Adjusted: true}, nil
}
