package repository

import "github.com/jhoicas/zonafranca-api/internal/domain/entity"

// StorageLocationRepository define el puerto de persistencia para ubicaciones de bodega.
type StorageLocationRepository interface {
	Create(location *entity.StorageLocation) error
	GetByID(id string) (*entity.StorageLocation, error)
	List(limit, offset int) ([]*entity.StorageLocation, error)
	Exists(id string) (bool, error)
}
