package usecase

import (
	"github.com/jhoicas/zonafranca-api/internal/application/dto"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

// AuditUseCase consultas de solo lectura sobre el audit trail.
type AuditUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List lista las entradas más recientes del audit trail.
func (uc *AuditUseCase) List(limit, offset int) ([]*dto.AuditLogResponse, error) {
	entries, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToAuditLogResponse(e))
	}
	return out, nil
}

// ListByLot lista las entradas del audit trail de un lote.
func (uc *AuditUseCase) ListByLot(lotID string, limit, offset int) ([]*dto.AuditLogResponse, error) {
	entries, err := uc.repo.ListByLot(lotID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToAuditLogResponse(e))
	}
	return out, nil
}
