package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/jhoicas/zonafranca-api/internal/application/ledger"
	"github.com/jhoicas/zonafranca-api/internal/domain"
	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
)

func admit(t *testing.T, eng *testEngine, qty int64) *entity.Lot {
	t.Helper()
	lot, err := eng.uc.RecordAdmission(context.Background(), appledger.AdmissionInput{
		PartID:           "part-1",
		CustomerID:       "cust-1",
		OriginalQuantity: qty,
		UserID:           "user-1",
	})
	require.NoError(t, err, "la admisión de referencia debe funcionar")
	return lot
}

func adjust(t *testing.T, eng *testEngine, lotID string, newQty int64, reason string) (*entity.Lot, error) {
	t.Helper()
	return eng.uc.AdjustQuantity(context.Background(), appledger.AdjustmentInput{
		LotID:       lotID,
		NewQuantity: newQty,
		Reason:      reason,
		UserID:      "user-1",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Admisión
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordAdmission_Exitosa(t *testing.T) {
	eng := newTestEngine(0)

	lot, err := eng.uc.RecordAdmission(context.Background(), appledger.AdmissionInput{
		PartID:            "part-1",
		CustomerID:        "cust-1",
		StorageLocationID: "loc-1",
		OriginalQuantity:  100,
		ManifestNumber:    "MAN-2026-001",
		UserID:            "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, lot)

	assert.Equal(t, int64(100), lot.OriginalQuantity)
	assert.Equal(t, int64(100), lot.CurrentQuantity,
		"la cantidad vigente inicial debe ser la admitida")
	assert.Equal(t, entity.StatusInStock, lot.Status)
	assert.False(t, lot.Voided)

	// El libro mayor nace con exactamente una ADMISSION por la cantidad completa
	txs := eng.store.txsForLot(lot.ID)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TransactionTypeAdmission, txs[0].Type)
	assert.Equal(t, int64(100), txs[0].Quantity)
	assert.Equal(t, "Initial Admission", txs[0].SourceDocument,
		"sin documento fuente debe registrarse el valor por defecto")

	// Audit trail y evento
	require.Len(t, eng.store.auditsByAction(entity.AuditActionLotAdmitted), 1)
	created := eng.publisher.byName(appledger.EventLotCreated)
	require.Len(t, created, 1)
	assert.Equal(t, "user-1", created[0].Payload["created_by"])
}

func TestRecordAdmission_CantidadInvalida(t *testing.T) {
	eng := newTestEngine(0)

	for _, qty := range []int64{0, -5} {
		_, err := eng.uc.RecordAdmission(context.Background(), appledger.AdmissionInput{
			PartID:           "part-1",
			CustomerID:       "cust-1",
			OriginalQuantity: qty,
			UserID:           "user-1",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	assert.Zero(t, eng.store.writeCount(), "una admisión rechazada no debe escribir nada")
	assert.Zero(t, eng.publisher.count(), "una admisión rechazada no debe publicar eventos")
}

func TestRecordAdmission_ReferenciasInexistentes(t *testing.T) {
	eng := newTestEngine(0)

	cases := []appledger.AdmissionInput{
		{PartID: "no-existe", CustomerID: "cust-1", OriginalQuantity: 10, UserID: "user-1"},
		{PartID: "part-1", CustomerID: "no-existe", OriginalQuantity: 10, UserID: "user-1"},
		{PartID: "part-1", CustomerID: "cust-1", StorageLocationID: "no-existe", OriginalQuantity: 10, UserID: "user-1"},
	}
	for _, in := range cases {
		_, err := eng.uc.RecordAdmission(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	assert.Zero(t, eng.store.writeCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste de cantidad
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustQuantity_EscribeDeltaYConservaInvariante(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 100)

	updated, err := adjust(t, eng, lot.ID, 85, "despacho parcial")
	require.NoError(t, err)
	assert.Equal(t, int64(85), updated.CurrentQuantity)

	txs := eng.store.txsForLot(lot.ID)
	require.Len(t, txs, 2)
	assert.Equal(t, entity.TransactionTypeAdjustment, txs[1].Type)
	assert.Equal(t, int64(-15), txs[1].Quantity, "el delta debe ser new - old")
	assert.Equal(t, "despacho parcial", txs[1].SourceDocument)

	// Invariante: la suma del libro es la cantidad vigente
	sum, err := eng.txRepo.SumByLot(lot.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.CurrentQuantity, sum)

	// Audit con valores antes/después
	audits := eng.store.auditsByAction(entity.AuditActionQuantityAdjusted)
	require.Len(t, audits, 1)
	assert.Equal(t, int64(100), audits[0].Details["from"])
	assert.Equal(t, int64(85), audits[0].Details["to"])
	assert.Equal(t, int64(-15), audits[0].Details["delta"])
}

func TestAdjustQuantity_DeltaCeroEsNoOp(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 50)
	writesBefore := eng.store.writeCount()
	eventsBefore := eng.publisher.count()

	updated, err := adjust(t, eng, lot.ID, 50, "conteo físico sin novedad")
	require.NoError(t, err)
	assert.Equal(t, int64(50), updated.CurrentQuantity)

	assert.Equal(t, writesBefore, eng.store.writeCount(),
		"ajustar a la misma cantidad no debe escribir transacción ni audit")
	assert.Equal(t, eventsBefore, eng.publisher.count(),
		"ajustar a la misma cantidad no debe publicar eventos")
}

func TestAdjustQuantity_Validaciones(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 50)
	writesBefore := eng.store.writeCount()

	_, err := adjust(t, eng, lot.ID, -1, "negativo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = adjust(t, eng, lot.ID, 40, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el motivo en blanco debe rechazarse")

	_, err = adjust(t, eng, "no-existe", 40, "motivo")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, writesBefore, eng.store.writeCount(),
		"ningún ajuste rechazado debe dejar escrituras")
}

func TestAdjustQuantity_GuardOptimistaRechazaCantidadObsoleta(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 100)

	// Otro operador ya bajó la cantidad a 80
	_, err := adjust(t, eng, lot.ID, 80, "primer despacho")
	require.NoError(t, err)

	stale := int64(100)
	_, err = eng.uc.AdjustQuantity(context.Background(), appledger.AdjustmentInput{
		LotID:               lot.ID,
		NewQuantity:         60,
		Reason:              "segundo despacho",
		ExpectedOldQuantity: &stale,
		UserID:              "user-2",
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)

	// El perdedor no debe haber tocado nada: la cantidad sigue en 80
	current, _ := eng.lotRepo.GetByID(lot.ID)
	assert.Equal(t, int64(80), current.CurrentQuantity)
	assert.Len(t, eng.store.txsForLot(lot.ID), 2, "solo admisión + primer ajuste")
}

func TestAdjustQuantity_ConcurrenciaSoloUnoGana(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 100)

	expected := int64(100)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int, newQty int64) {
			defer wg.Done()
			_, errs[i] = eng.uc.AdjustQuantity(context.Background(), appledger.AdjustmentInput{
				LotID:               lot.ID,
				NewQuantity:         newQty,
				Reason:              "ajuste concurrente",
				ExpectedOldQuantity: &expected,
				UserID:              "user-1",
			})
		}(i, int64(90-i*5))
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, domain.ErrConcurrentModification)
		}
	}
	assert.Equal(t, 1, winners, "exactamente un ajuste concurrente debe ganar el CAS")

	// El invariante sobrevive a la carrera
	current, _ := eng.lotRepo.GetByID(lot.ID)
	sum, _ := eng.txRepo.SumByLot(lot.ID)
	assert.Equal(t, current.CurrentQuantity, sum)
}

func TestAdjustQuantity_EstadoDerivado(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 20)

	// A cero: DEPLETED automático + transición registrada
	updated, err := adjust(t, eng, lot.ID, 0, "despacho total")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDepleted, updated.Status)

	hs, err := (&memHistoryRepo{eng.store}).ListByLot(lot.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, hs, 1)
	assert.Equal(t, entity.StatusInStock, hs[0].PreviousStatus)
	assert.Equal(t, entity.StatusDepleted, hs[0].NewStatus)

	// De vuelta a positivo: el lote revive como IN_STOCK
	updated, err = adjust(t, eng, lot.ID, 5, "reingreso por devolución")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInStock, updated.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alerta de stock bajo (disparo por flanco)
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustQuantity_AlertaPorFlanco(t *testing.T) {
	eng := newTestEngine(10)
	lot := admit(t, eng, 100)

	steps := []struct {
		newQty      int64
		wantAlertas int // acumulado tras el paso
	}{
		{9, 1},  // cruza el umbral hacia abajo → alerta
		{5, 1},  // sigue bajo el umbral → sin nueva alerta
		{15, 1}, // se recupera sobre el umbral → re-arma
		{4, 2},  // vuelve a cruzar → segunda alerta
	}
	for _, step := range steps {
		_, err := adjust(t, eng, lot.ID, step.newQty, "movimiento de prueba")
		require.NoError(t, err)
		assert.Len(t, eng.publisher.byName(appledger.EventLowStockAlert), step.wantAlertas,
			"alertas acumuladas tras ajustar a %d", step.newQty)
	}

	alerts := eng.publisher.byName(appledger.EventLowStockAlert)
	require.Len(t, alerts, 2)
	assert.Equal(t, lot.ID, alerts[0].Payload["lot_id"])
	assert.Equal(t, int64(9), alerts[0].Payload["current_quantity"])
	assert.Equal(t, "part-1", alerts[0].Payload["part_id"])
	assert.Equal(t, "cust-1", alerts[0].Payload["customer_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación
// ──────────────────────────────────────────────────────────────────────────────

func TestVoidLot_EscribeRemovalYEsTerminal(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 100)
	_, err := adjust(t, eng, lot.ID, 85, "despacho parcial")
	require.NoError(t, err)

	voided, err := eng.uc.VoidLot(context.Background(), lot.ID, "dañado en tránsito", "user-1")
	require.NoError(t, err)
	assert.True(t, voided.Voided)
	assert.Equal(t, entity.StatusVoided, voided.Status)
	assert.Zero(t, voided.CurrentQuantity)

	// REMOVAL por la cantidad vigente completa; el libro suma cero
	txs := eng.store.txsForLot(lot.ID)
	require.Len(t, txs, 3)
	last := txs[2]
	assert.Equal(t, entity.TransactionTypeRemoval, last.Type)
	assert.Equal(t, int64(-85), last.Quantity)
	assert.Equal(t, "dañado en tránsito", last.SourceDocument)

	sum, _ := eng.txRepo.SumByLot(lot.ID)
	assert.Zero(t, sum, "tras anular, el libro del lote debe sumar cero")

	require.Len(t, eng.publisher.byName(appledger.EventLotVoided), 1)

	// Re-anular es un error, no un no-op
	writesBefore := eng.store.writeCount()
	_, err = eng.uc.VoidLot(context.Background(), lot.ID, "anular otra vez", "user-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoided)
	assert.Equal(t, writesBefore, eng.store.writeCount())

	// Y ajustar un lote anulado también
	_, err = adjust(t, eng, lot.ID, 10, "intento sobre anulado")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoided)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambio de estado explícito
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_TransicionesExplicitas(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 30)

	updated, err := eng.uc.ChangeStatus(context.Background(), lot.ID, entity.StatusReserved, "reservado para despacho", "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReserved, updated.Status)

	hs, _ := (&memHistoryRepo{eng.store}).ListByLot(lot.ID, 20, 0)
	require.Len(t, hs, 1)
	assert.Equal(t, entity.StatusInStock, hs[0].PreviousStatus)
	assert.Equal(t, entity.StatusReserved, hs[0].NewStatus)

	require.Len(t, eng.publisher.byName(appledger.EventLotStatusChanged), 1)

	// Mismo estado: no-op sin escrituras nuevas
	writesBefore := eng.store.writeCount()
	_, err = eng.uc.ChangeStatus(context.Background(), lot.ID, entity.StatusReserved, "repetido", "user-1")
	require.NoError(t, err)
	assert.Equal(t, writesBefore, eng.store.writeCount())
}

func TestChangeStatus_RechazaEstadosDerivados(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 30)

	for _, status := range []string{entity.StatusDepleted, entity.StatusVoided, "INVENTADO"} {
		_, err := eng.uc.ChangeStatus(context.Background(), lot.ID, status, "motivo", "user-1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput,
			"el estado %s no debe ser asignable por un operador", status)
	}
}

func TestChangeStatus_BloqueadoPorCantidadOAnulacion(t *testing.T) {
	eng := newTestEngine(0)

	// Lote agotado por cantidad
	depleted := admit(t, eng, 10)
	_, err := adjust(t, eng, depleted.ID, 0, "despacho total")
	require.NoError(t, err)
	_, err = eng.uc.ChangeStatus(context.Background(), depleted.ID, entity.StatusOnHold, "motivo", "user-1")
	assert.ErrorIs(t, err, domain.ErrStatusLocked)

	// Lote anulado
	voided := admit(t, eng, 10)
	_, err = eng.uc.VoidLot(context.Background(), voided.ID, "daño", "user-1")
	require.NoError(t, err)
	_, err = eng.uc.ChangeStatus(context.Background(), voided.ID, entity.StatusInStock, "motivo", "user-1")
	assert.ErrorIs(t, err, domain.ErrStatusLocked)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de extremo a extremo: admitir → despachar → anular
// ──────────────────────────────────────────────────────────────────────────────

func TestCicloCompletoDeUnLote(t *testing.T) {
	eng := newTestEngine(0)

	lot := admit(t, eng, 100)
	_, err := adjust(t, eng, lot.ID, 85, "despacho parcial")
	require.NoError(t, err)
	final, err := eng.uc.VoidLot(context.Background(), lot.ID, "dañado en tránsito", "user-1")
	require.NoError(t, err)

	// El libro cuenta la historia completa: +100, -15, -85
	txs := eng.store.txsForLot(lot.ID)
	require.Len(t, txs, 3)
	assert.Equal(t, []int64{100, -15, -85},
		[]int64{txs[0].Quantity, txs[1].Quantity, txs[2].Quantity})

	// Tres acciones, tres entradas de auditoría
	audits, _ := (&memAuditRepo{eng.store}).ListByLot(lot.ID, 20, 0)
	assert.Len(t, audits, 3)

	assert.Equal(t, entity.StatusVoided, final.Status)
	sum, _ := eng.txRepo.SumByLot(lot.ID)
	assert.Equal(t, final.CurrentQuantity, sum)
}
