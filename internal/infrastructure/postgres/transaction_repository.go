package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: no hay UPDATE ni DELETE.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción del libro mayor.
func (r *TransactionRepo) Create(tx *entity.LotTransaction) error {
	query := `
		INSERT INTO lot_transactions (id, lot_id, type, quantity, source_document, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.LotID, tx.Type, tx.Quantity, tx.SourceDocument, tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create lot transaction: %w", err)
	}
	return nil
}

// ListByLot lista las transacciones de un lote, más antiguas primero (orden del libro).
func (r *TransactionRepo) ListByLot(lotID string, limit, offset int) ([]*entity.LotTransaction, error) {
	query := `
		SELECT id, lot_id, type, quantity, source_document, created_at, created_by
		FROM lot_transactions WHERE lot_id = $1
		ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, lotID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.LotTransaction
	for rows.Next() {
		var t entity.LotTransaction
		var createdBy *string
		if err := rows.Scan(&t.ID, &t.LotID, &t.Type, &t.Quantity,
			&t.SourceDocument, &t.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if createdBy != nil {
			t.CreatedBy = *createdBy
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SumByLot devuelve la suma de deltas del lote: la fuente de verdad de la cantidad vigente.
func (r *TransactionRepo) SumByLot(lotID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM lot_transactions WHERE lot_id = $1`, lotID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}
	return sum, nil
}
