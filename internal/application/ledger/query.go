package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/zonafranca-api/internal/domain"
	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

// LotQueryUseCase lecturas del libro mayor: lote, listado, transacciones,
// historial de estados y acta de admisión en PDF. Las lecturas son lock-free
// y pueden ser levemente obsoletas; nunca exponen cantidades negativas.
type LotQueryUseCase struct {
	lotRepo      repository.LotRepository
	txRepo       repository.TransactionRepository
	historyRepo  repository.StatusHistoryRepository
	partRepo     repository.PartRepository
	customerRepo repository.CustomerRepository
	pdfGenerator CertificatePDFGenerator
}

// NewLotQueryUseCase construye el caso de uso de consultas.
func NewLotQueryUseCase(
	lotRepo repository.LotRepository,
	txRepo repository.TransactionRepository,
	historyRepo repository.StatusHistoryRepository,
	partRepo repository.PartRepository,
	customerRepo repository.CustomerRepository,
	pdfGenerator CertificatePDFGenerator,
) *LotQueryUseCase {
	return &LotQueryUseCase{
		lotRepo:      lotRepo,
		txRepo:       txRepo,
		historyRepo:  historyRepo,
		partRepo:     partRepo,
		customerRepo: customerRepo,
		pdfGenerator: pdfGenerator,
	}
}

// GetLot obtiene un lote por ID.
func (uc *LotQueryUseCase) GetLot(id string) (*entity.Lot, error) {
	lot, err := uc.lotRepo.GetByID(id)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return lot, nil
}

// ListLots lista lotes con filtros opcionales.
func (uc *LotQueryUseCase) ListLots(filter repository.LotFilter, limit, offset int) ([]*entity.Lot, error) {
	lots, err := uc.lotRepo.List(filter, limit, offset)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	return lots, nil
}

// ListTransactions lista el libro mayor de un lote.
func (uc *LotQueryUseCase) ListTransactions(lotID string, limit, offset int) ([]*entity.LotTransaction, error) {
	if _, err := uc.GetLot(lotID); err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.ListByLot(lotID, limit, offset)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	return txs, nil
}

// ListStatusHistory lista las transiciones de estado de un lote.
func (uc *LotQueryUseCase) ListStatusHistory(lotID string, limit, offset int) ([]*entity.StatusHistory, error) {
	if _, err := uc.GetLot(lotID); err != nil {
		return nil, err
	}
	hs, err := uc.historyRepo.ListByLot(lotID, limit, offset)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	return hs, nil
}

// AdmissionCertificatePDF genera el acta de admisión del lote en PDF.
func (uc *LotQueryUseCase) AdmissionCertificatePDF(ctx context.Context, lotID string) ([]byte, error) {
	lot, err := uc.GetLot(lotID)
	if err != nil {
		return nil, err
	}
	part, err := uc.partRepo.GetByID(lot.PartID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	customer, err := uc.customerRepo.GetByID(lot.CustomerID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	txs, err := uc.txRepo.ListByLot(lotID, 100, 0)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	return uc.pdfGenerator.GenerateAdmissionCertificate(ctx, lot, part, customer, txs)
}
