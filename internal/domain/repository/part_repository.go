package repository

import "github.com/jhoicas/zonafranca-api/internal/domain/entity"

// PartRepository define el puerto de persistencia para referencias de mercancía.
// Exists lo usa el motor del libro mayor como verificación de referencia en la admisión.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	List(limit, offset int) ([]*entity.Part, error)
	Exists(id string) (bool, error)
}
