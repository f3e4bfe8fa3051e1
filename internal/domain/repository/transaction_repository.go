package repository

import "github.com/jhoicas/zonafranca-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia para el libro mayor
// (append-only: no hay Update ni Delete). SumByLot devuelve la suma de deltas,
// que es la fuente de verdad de la cantidad vigente del lote.
type TransactionRepository interface {
	Create(tx *entity.LotTransaction) error
	ListByLot(lotID string, limit, offset int) ([]*entity.LotTransaction, error)
	SumByLot(lotID string) (int64, error)
}
