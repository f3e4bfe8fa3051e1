package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// DeriveStatus — la anulación domina, luego cantidad cero, luego el estado explícito
// ──────────────────────────────────────────────────────────────────────────────

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		voided   bool
		explicit string
		want     string
	}{
		{"anulado domina sobre todo", 50, true, entity.StatusReserved, entity.StatusVoided},
		{"anulado con cantidad cero", 0, true, entity.StatusInStock, entity.StatusVoided},
		{"cantidad cero deriva DEPLETED", 0, false, entity.StatusInStock, entity.StatusDepleted},
		{"cantidad cero pisa RESERVED", 0, false, entity.StatusReserved, entity.StatusDepleted},
		{"cantidad positiva conserva IN_STOCK", 100, false, entity.StatusInStock, entity.StatusInStock},
		{"cantidad positiva conserva RESERVED", 5, false, entity.StatusReserved, entity.StatusReserved},
		{"cantidad positiva conserva ON_HOLD", 1, false, entity.StatusOnHold, entity.StatusOnHold},
		{"sin estado explícito cae a IN_STOCK", 10, false, "", entity.StatusInStock},
		{"estado derivado previo no se conserva", 10, false, entity.StatusDepleted, entity.StatusInStock},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.DeriveStatus(tc.quantity, tc.voided, tc.explicit)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// LowStockCrossed — alerta por flanco: solo al cruzar el umbral hacia abajo
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStockCrossed(t *testing.T) {
	const threshold = 10

	tests := []struct {
		name string
		old  int64
		new_ int64
		want bool
	}{
		{"cruza el umbral hacia abajo", 100, 9, true},
		{"cae exactamente al umbral", 11, 10, true},
		{"ya estaba bajo el umbral", 9, 5, false},
		{"igual al umbral y baja más", 10, 4, false},
		{"sube por encima del umbral", 5, 15, false},
		{"se mantiene por encima", 50, 40, false},
		{"cae a cero desde arriba", 20, 0, true},
		{"cae a cero desde abajo", 3, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.LowStockCrossed(tc.old, tc.new_, threshold)
			assert.Equal(t, tc.want, got)
		})
	}
}

// La secuencia 100 → 9 → 5 → 15 → 4 debe producir exactamente dos alertas:
// una al primer cruce y otra tras recuperarse y volver a cruzar.
func TestLowStockCrossed_Rearme(t *testing.T) {
	const threshold = 10
	seq := []int64{100, 9, 5, 15, 4}

	alerts := 0
	for i := 1; i < len(seq); i++ {
		if ledger.LowStockCrossed(seq[i-1], seq[i], threshold) {
			alerts++
		}
	}
	assert.Equal(t, 2, alerts, "solo los cruces descendentes del umbral deben alertar")
}
