package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/zonafranca-api/internal/domain"
	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/ledger"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

// LedgerUseCase es el motor transaccional del libro mayor de inventario:
// admisión de lotes, ajuste de cantidad, anulación, cambio de estado y
// reconciliación. Cada mutación escribe {lote, transacción, audit} en una sola
// unidad atómica vía TxRunner y publica el evento de dominio correspondiente.
//
// Concurrencia: optimista. La escritura del lote es un compare-and-swap sobre
// la cantidad previa; el perdedor de una carrera recibe ErrConcurrentModification
// y debe releer y reintentar. Ningún lock en proceso cruza una frontera de I/O.
type LedgerUseCase struct {
	txRunner     TxRunner
	lotRepo      repository.LotRepository
	partRepo     repository.PartRepository
	customerRepo repository.CustomerRepository
	locationRepo repository.StorageLocationRepository
	publisher    EventPublisher
	threshold    int64
}

// NewLedgerUseCase construye el motor. threshold <= 0 usa el umbral por defecto.
func NewLedgerUseCase(
	txRunner TxRunner,
	lotRepo repository.LotRepository,
	partRepo repository.PartRepository,
	customerRepo repository.CustomerRepository,
	locationRepo repository.StorageLocationRepository,
	publisher EventPublisher,
	threshold int64,
) *LedgerUseCase {
	if threshold <= 0 {
		threshold = ledger.DefaultLowStockThreshold
	}
	return &LedgerUseCase{
		txRunner:     txRunner,
		lotRepo:      lotRepo,
		partRepo:     partRepo,
		customerRepo: customerRepo,
		locationRepo: locationRepo,
		publisher:    publisher,
		threshold:    threshold,
	}
}

// AdmissionInput entrada para RecordAdmission.
type AdmissionInput struct {
	PartID            string
	CustomerID        string
	StorageLocationID string
	OriginalQuantity  int64
	SourceDocument    string
	ManifestNumber    string
	BillOfLading      string
	TotalValue        decimal.Decimal
	AdmissionDate     time.Time // cero = ahora
	UserID            string
}

// AdjustmentInput entrada para AdjustQuantity. ExpectedOldQuantity es el guard
// opcional de compare-and-swap: si se envía y difiere del valor almacenado, la
// operación falla con ErrConcurrentModification sin escribir nada.
type AdjustmentInput struct {
	LotID               string
	NewQuantity         int64
	Reason              string
	ExpectedOldQuantity *int64
	UserID              string
}

// RecordAdmission admite un lote nuevo en la zona franca: crea el lote con
// current_quantity = original_quantity y estado IN_STOCK, escribe la transacción
// ADMISSION y la entrada de audit en la misma tx, y publica inventory.lot.created.
// Ningún error produce escrituras.
func (uc *LedgerUseCase) RecordAdmission(ctx context.Context, input AdmissionInput) (*entity.Lot, error) {
	if input.OriginalQuantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad de admisión debe ser un entero positivo", domain.ErrInvalidInput)
	}
	if input.PartID == "" || input.CustomerID == "" {
		return nil, fmt.Errorf("%w: part_id y customer_id son obligatorios", domain.ErrInvalidInput)
	}

	// Verificación de referencias contra colaboradores externos
	if ok, err := uc.partRepo.Exists(input.PartID); err != nil {
		return nil, wrapPersistence(err)
	} else if !ok {
		return nil, fmt.Errorf("%w: la referencia no existe", domain.ErrNotFound)
	}
	if ok, err := uc.customerRepo.Exists(input.CustomerID); err != nil {
		return nil, wrapPersistence(err)
	} else if !ok {
		return nil, fmt.Errorf("%w: el importador no existe", domain.ErrNotFound)
	}
	if input.StorageLocationID != "" {
		if ok, err := uc.locationRepo.Exists(input.StorageLocationID); err != nil {
			return nil, wrapPersistence(err)
		} else if !ok {
			return nil, fmt.Errorf("%w: la ubicación no existe", domain.ErrNotFound)
		}
	}

	now := time.Now()
	admissionDate := input.AdmissionDate
	if admissionDate.IsZero() {
		admissionDate = now
	}
	sourceDoc := input.SourceDocument
	if strings.TrimSpace(sourceDoc) == "" {
		sourceDoc = "Initial Admission"
	}

	lot := &entity.Lot{
		ID:                uuid.New().String(),
		PartID:            input.PartID,
		CustomerID:        input.CustomerID,
		StorageLocationID: input.StorageLocationID,
		Status:            entity.StatusInStock,
		OriginalQuantity:  input.OriginalQuantity,
		CurrentQuantity:   input.OriginalQuantity,
		AdmissionDate:     admissionDate,
		ManifestNumber:    input.ManifestNumber,
		BillOfLading:      input.BillOfLading,
		TotalValue:        input.TotalValue,
		CreatedAt:         now,
		UpdatedAt:         now,
		CreatedBy:         input.UserID,
		UpdatedBy:         input.UserID,
	}

	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		txRepo repository.TransactionRepository,
		auditRepo repository.AuditLogRepository,
		_ repository.StatusHistoryRepository,
	) error {
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
		if err := txRepo.Create(&entity.LotTransaction{
			ID:             uuid.New().String(),
			LotID:          lot.ID,
			Type:           entity.TransactionTypeAdmission,
			Quantity:       input.OriginalQuantity,
			SourceDocument: sourceDoc,
			CreatedAt:      now,
			CreatedBy:      input.UserID,
		}); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLogEntry{
			ID:     uuid.New().String(),
			Action: entity.AuditActionLotAdmitted,
			Reason: sourceDoc,
			Details: map[string]any{
				"lot_id":            lot.ID,
				"part_id":           lot.PartID,
				"customer_id":       lot.CustomerID,
				"original_quantity": lot.OriginalQuantity,
			},
			UserID:    input.UserID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, wrapPersistence(err)
	}

	uc.publisher.Publish(EventLotCreated, lotCreatedPayload(lot))
	return lot, nil
}

// AdjustQuantity fija la cantidad vigente del lote en newQuantity escribiendo
// una transacción ADJUSTMENT con el delta. delta == 0 es un no-op idempotente:
// devuelve el lote sin escribir transacción ni audit (intencional, para no
// ensuciar el libro con cambios nulos). El estado se re-deriva y, si la nueva
// cantidad cruza el umbral de stock bajo hacia abajo, se emite la alerta.
func (uc *LedgerUseCase) AdjustQuantity(ctx context.Context, input AdjustmentInput) (*entity.Lot, error) {
	if input.LotID == "" {
		return nil, fmt.Errorf("%w: lot_id es obligatorio", domain.ErrInvalidInput)
	}
	if input.NewQuantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, fmt.Errorf("%w: el motivo es obligatorio", domain.ErrInvalidInput)
	}

	lot, err := uc.lotRepo.GetByID(input.LotID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, input.LotID)
	}
	if lot.Voided {
		return nil, domain.ErrAlreadyVoided
	}

	// Guard optimista: el caller declara la cantidad previa que espera
	if input.ExpectedOldQuantity != nil && *input.ExpectedOldQuantity != lot.CurrentQuantity {
		return nil, domain.ErrConcurrentModification
	}
	actualOld := lot.CurrentQuantity

	delta := input.NewQuantity - actualOld
	if delta == 0 {
		return lot, nil
	}

	now := time.Now()
	updated := *lot
	updated.CurrentQuantity = input.NewQuantity
	updated.Status = ledger.DeriveStatus(input.NewQuantity, false, lot.Status)
	updated.UpdatedAt = now
	updated.UpdatedBy = input.UserID

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		txRepo repository.TransactionRepository,
		auditRepo repository.AuditLogRepository,
		historyRepo repository.StatusHistoryRepository,
	) error {
		// CAS: solo escribe si la cantidad almacenada sigue siendo actualOld
		if err := lotRepo.UpdateQuantityCAS(&updated, actualOld); err != nil {
			return err
		}
		if err := txRepo.Create(&entity.LotTransaction{
			ID:             uuid.New().String(),
			LotID:          lot.ID,
			Type:           entity.TransactionTypeAdjustment,
			Quantity:       delta,
			SourceDocument: input.Reason,
			CreatedAt:      now,
			CreatedBy:      input.UserID,
		}); err != nil {
			return err
		}
		if updated.Status != lot.Status {
			if err := historyRepo.Create(&entity.StatusHistory{
				ID:             uuid.New().String(),
				LotID:          lot.ID,
				PreviousStatus: lot.Status,
				NewStatus:      updated.Status,
				ChangeReason:   input.Reason,
				CreatedAt:      now,
				CreatedBy:      input.UserID,
			}); err != nil {
				return err
			}
		}
		return auditRepo.Create(&entity.AuditLogEntry{
			ID:     uuid.New().String(),
			Action: entity.AuditActionQuantityAdjusted,
			Reason: input.Reason,
			Details: map[string]any{
				"lot_id": lot.ID,
				"from":   actualOld,
				"to":     input.NewQuantity,
				"delta":  delta,
			},
			UserID:    input.UserID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, wrapPersistence(err)
	}

	uc.publisher.Publish(EventLotUpdated,
		lotUpdatedPayload(lot.ID, actualOld, input.NewQuantity, input.Reason, input.UserID))
	if ledger.LowStockCrossed(actualOld, input.NewQuantity, uc.threshold) {
		uc.publisher.Publish(EventLowStockAlert, lowStockPayload(&updated))
	}
	return &updated, nil
}

// VoidLot anula un lote de forma irreversible: transacción REMOVAL por
// -current_quantity, voided = true y estado VOIDED. Re-anular se rechaza con
// ErrAlreadyVoided (a diferencia del no-op de ajuste, anular es una acción
// deliberada de una sola vez).
func (uc *LedgerUseCase) VoidLot(ctx context.Context, lotID, reason, userID string) (*entity.Lot, error) {
	if lotID == "" {
		return nil, fmt.Errorf("%w: lot_id es obligatorio", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: el motivo es obligatorio", domain.ErrInvalidInput)
	}

	lot, err := uc.lotRepo.GetByID(lotID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, lotID)
	}
	if lot.Voided {
		return nil, domain.ErrAlreadyVoided
	}

	now := time.Now()
	oldQty := lot.CurrentQuantity
	updated := *lot
	updated.CurrentQuantity = 0
	updated.Voided = true
	updated.Status = entity.StatusVoided
	updated.UpdatedAt = now
	updated.UpdatedBy = userID

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		txRepo repository.TransactionRepository,
		auditRepo repository.AuditLogRepository,
		historyRepo repository.StatusHistoryRepository,
	) error {
		if err := lotRepo.UpdateQuantityCAS(&updated, oldQty); err != nil {
			return err
		}
		if err := txRepo.Create(&entity.LotTransaction{
			ID:             uuid.New().String(),
			LotID:          lot.ID,
			Type:           entity.TransactionTypeRemoval,
			Quantity:       -oldQty,
			SourceDocument: reason,
			CreatedAt:      now,
			CreatedBy:      userID,
		}); err != nil {
			return err
		}
		if err := historyRepo.Create(&entity.StatusHistory{
			ID:             uuid.New().String(),
			LotID:          lot.ID,
			PreviousStatus: lot.Status,
			NewStatus:      entity.StatusVoided,
			ChangeReason:   reason,
			CreatedAt:      now,
			CreatedBy:      userID,
		}); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLogEntry{
			ID:     uuid.New().String(),
			Action: entity.AuditActionLotVoided,
			Reason: reason,
			Details: map[string]any{
				"lot_id": lot.ID,
				"from":   oldQty,
				"to":     int64(0),
			},
			UserID:    userID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, wrapPersistence(err)
	}

	uc.publisher.Publish(EventLotVoided, lotVoidedPayload(lot.ID, reason, userID))
	return &updated, nil
}

// ChangeStatus ejecuta una transición explícita entre IN_STOCK/RESERVED/ON_HOLD.
// Se rechaza cuando el lote está anulado o agotado por cantidad: esos estados
// los controla la cantidad/anulación, no el operador.
func (uc *LedgerUseCase) ChangeStatus(ctx context.Context, lotID, newStatus, reason, userID string) (*entity.Lot, error) {
	if lotID == "" {
		return nil, fmt.Errorf("%w: lot_id es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.IsExplicitStatus(newStatus) {
		return nil, fmt.Errorf("%w: estado %q no es asignable", domain.ErrInvalidInput, newStatus)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: el motivo es obligatorio", domain.ErrInvalidInput)
	}

	lot, err := uc.lotRepo.GetByID(lotID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, lotID)
	}
	if lot.Voided || lot.CurrentQuantity == 0 {
		return nil, domain.ErrStatusLocked
	}
	if lot.Status == newStatus {
		return lot, nil
	}

	now := time.Now()
	updated := *lot
	updated.Status = newStatus
	updated.UpdatedAt = now
	updated.UpdatedBy = userID

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		_ repository.TransactionRepository,
		auditRepo repository.AuditLogRepository,
		historyRepo repository.StatusHistoryRepository,
	) error {
		if err := lotRepo.UpdateStatus(lot.ID, newStatus, userID); err != nil {
			return err
		}
		if err := historyRepo.Create(&entity.StatusHistory{
			ID:             uuid.New().String(),
			LotID:          lot.ID,
			PreviousStatus: lot.Status,
			NewStatus:      newStatus,
			ChangeReason:   reason,
			CreatedAt:      now,
			CreatedBy:      userID,
		}); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLogEntry{
			ID:     uuid.New().String(),
			Action: entity.AuditActionStatusChanged,
			Reason: reason,
			Details: map[string]any{
				"lot_id": lot.ID,
				"from":   lot.Status,
				"to":     newStatus,
			},
			UserID:    userID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, wrapPersistence(err)
	}

	uc.publisher.Publish(EventLotStatusChanged,
		lotStatusChangedPayload(lot.ID, lot.Status, newStatus, reason, userID))
	return &updated, nil
}

// wrapPersistence clasifica errores salidos de los puertos de persistencia:
// los del conjunto de dominio pasan tal cual; cualquier otro se reporta como
// ErrPersistence para que el caller nunca vea éxito sin commit durable.
func wrapPersistence(err error) error {
	if err == nil {
		return nil
	}
	if domain.Code(err) != "INTERNAL" {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}
