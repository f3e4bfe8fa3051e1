package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/jhoicas/zonafranca-api/internal/application/ledger"
	"github.com/jhoicas/zonafranca-api/internal/domain"
	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
)

func newReconcileUC(eng *testEngine) *appledger.ReconcileUseCase {
	return appledger.NewReconcileUseCase(&memTxRunner{eng.store}, eng.lotRepo, eng.txRepo)
}

func TestReconcile_SinDivergenciaEsNoOp(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 100)
	writesBefore := eng.store.writeCount()

	res, err := newReconcileUC(eng).Reconcile(context.Background(), lot.ID, "auditor-1")
	require.NoError(t, err)

	assert.False(t, res.Adjusted)
	assert.Equal(t, int64(100), res.LedgerSum)
	assert.Equal(t, writesBefore, eng.store.writeCount(),
		"sin divergencia no debe escribirse nada")
}

func TestReconcile_CorrigeColumnaCacheada(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 100)
	_, err := adjust(t, eng, lot.ID, 70, "despacho")
	require.NoError(t, err)

	// Corrupción simulada del caché: la columna diverge del libro
	eng.store.mu.Lock()
	eng.store.lots[lot.ID].CurrentQuantity = 55
	eng.store.mu.Unlock()

	res, err := newReconcileUC(eng).Reconcile(context.Background(), lot.ID, "auditor-1")
	require.NoError(t, err)

	assert.True(t, res.Adjusted)
	assert.Equal(t, int64(70), res.LedgerSum, "la suma del libro es la fuente de verdad")
	assert.Equal(t, int64(70), res.Lot.CurrentQuantity)

	stored, _ := eng.lotRepo.GetByID(lot.ID)
	assert.Equal(t, int64(70), stored.CurrentQuantity)

	// Queda constancia en el audit trail con ambos valores, sin transacción nueva
	audits := eng.store.auditsByAction(entity.AuditActionQuantityReconciled)
	require.Len(t, audits, 1)
	assert.Equal(t, int64(55), audits[0].Details["cached"])
	assert.Equal(t, int64(70), audits[0].Details["ledger_sum"])
	assert.Len(t, eng.store.txsForLot(lot.ID), 2,
		"reconciliar corrige el caché, no escribe transacciones")
}

func TestReconcile_RederivaEstado(t *testing.T) {
	eng := newTestEngine(0)
	lot := admit(t, eng, 40)
	_, err := adjust(t, eng, lot.ID, 0, "despacho total")
	require.NoError(t, err)

	// El caché quedó con cantidad positiva pero el libro suma cero
	eng.store.mu.Lock()
	eng.store.lots[lot.ID].CurrentQuantity = 12
	eng.store.lots[lot.ID].Status = entity.StatusInStock
	eng.store.mu.Unlock()

	res, err := newReconcileUC(eng).Reconcile(context.Background(), lot.ID, "auditor-1")
	require.NoError(t, err)

	assert.True(t, res.Adjusted)
	assert.Zero(t, res.Lot.CurrentQuantity)
	assert.Equal(t, entity.StatusDepleted, res.Lot.Status,
		"la reconciliación debe re-derivar el estado con la cantidad corregida")
}

func TestReconcile_LoteInexistente(t *testing.T) {
	eng := newTestEngine(0)
	_, err := newReconcileUC(eng).Reconcile(context.Background(), "no-existe", "auditor-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
