package repository

import "github.com/jhoicas/zonafranca-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para importadores.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Exists(id string) (bool, error)
}
