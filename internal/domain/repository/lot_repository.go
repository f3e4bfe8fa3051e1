package repository

import "github.com/jhoicas/zonafranca-api/internal/domain/entity"

// LotFilter filtros de listado de lotes.
type LotFilter struct {
	Status     string
	CustomerID string
	PartID     string
}

// LotRepository define el puerto de persistencia para lotes.
// UpdateQuantityCAS es el compare-and-swap que sostiene la concurrencia optimista:
// solo escribe si current_quantity almacenado sigue siendo expectedOld y devuelve
// domain.ErrConcurrentModification en caso contrario.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	List(filter LotFilter, limit, offset int) ([]*entity.Lot, error)
	UpdateQuantityCAS(lot *entity.Lot, expectedOld int64) error
	UpdateStatus(id, status, updatedBy string) error
}
