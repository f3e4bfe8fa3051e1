package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/zonafranca-api/internal/application/dto"
	"github.com/jhoicas/zonafranca-api/internal/domain"
	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

// PartUseCase casos de uso CRUD para referencias de mercancía.
type PartUseCase struct {
	repo repository.PartRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository) *PartUseCase {
	return &PartUseCase{repo: repo}
}

// Create crea una referencia nueva.
func (uc *PartUseCase) Create(in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if strings.TrimSpace(in.SKU) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	part := &entity.Part{
		ID:              uuid.New().String(),
		SKU:             in.SKU,
		Description:     in.Description,
		CountryOfOrigin: in.CountryOfOrigin,
		HTSCode:         in.HTSCode,
		UnitValue:       in.UnitValue,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetByID obtiene una referencia por ID.
func (uc *PartUseCase) GetByID(id string) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return toPartResponse(part), nil
}

// List lista referencias paginadas.
func (uc *PartUseCase) List(limit, offset int) ([]*dto.PartResponse, error) {
	parts, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, toPartResponse(p))
	}
	return out, nil
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	return &dto.PartResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Description:     p.Description,
		CountryOfOrigin: p.CountryOfOrigin,
		HTSCode:         p.HTSCode,
		UnitValue:       p.UnitValue,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
