package repository

import "github.com/jhoicas/zonafranca-api/internal/domain/entity"

// StatusHistoryRepository define el puerto de persistencia para el historial de estados.
type StatusHistoryRepository interface {
	Create(h *entity.StatusHistory) error
	ListByLot(lotID string, limit, offset int) ([]*entity.StatusHistory, error)
}
