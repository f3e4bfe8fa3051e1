package ledger_test

import (
	"context"
	"sync"

	appledger "github.com/jhoicas/zonafranca-api/internal/application/ledger"
	"github.com/jhoicas/zonafranca-api/internal/domain"
	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia. El CAS del lote respeta
// la misma semántica que la implementación de Postgres: bajo el mutex del
// store, solo escribe si la cantidad almacenada coincide con la esperada.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	lots      map[string]*entity.Lot
	txs       []*entity.LotTransaction
	audits    []*entity.AuditLogEntry
	history   []*entity.StatusHistory
	parts     map[string]bool
	customers map[string]bool
	locations map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		lots:      make(map[string]*entity.Lot),
		parts:     make(map[string]bool),
		customers: make(map[string]bool),
		locations: make(map[string]bool),
	}
}

// writeCount total de escrituras observables (lotes + transacciones + audit + historial).
func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lots) + len(s.txs) + len(s.audits) + len(s.history)
}

func (s *memStore) txsForLot(lotID string) []*entity.LotTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.LotTransaction
	for _, tx := range s.txs {
		if tx.LotID == lotID {
			out = append(out, tx)
		}
	}
	return out
}

func (s *memStore) auditsByAction(action string) []*entity.AuditLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.AuditLogEntry
	for _, e := range s.audits {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// ── LotRepository ─────────────────────────────────────────────────────────────

type memLotRepo struct{ s *memStore }

func (r *memLotRepo) Create(lot *entity.Lot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *lot
	r.s.lots[lot.ID] = &cp
	return nil
}

func (r *memLotRepo) GetByID(id string) (*entity.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *lot
	return &cp, nil
}

func (r *memLotRepo) List(filter repository.LotFilter, limit, offset int) ([]*entity.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Lot
	for _, lot := range r.s.lots {
		if filter.Status != "" && lot.Status != filter.Status {
			continue
		}
		if filter.CustomerID != "" && lot.CustomerID != filter.CustomerID {
			continue
		}
		if filter.PartID != "" && lot.PartID != filter.PartID {
			continue
		}
		cp := *lot
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memLotRepo) UpdateQuantityCAS(lot *entity.Lot, expectedOld int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.lots[lot.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.CurrentQuantity != expectedOld {
		return domain.ErrConcurrentModification
	}
	cp := *lot
	r.s.lots[lot.ID] = &cp
	return nil
}

func (r *memLotRepo) UpdateStatus(id, status, updatedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.lots[id]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = status
	stored.UpdatedBy = updatedBy
	return nil
}

// ── TransactionRepository ─────────────────────────────────────────────────────

type memTxRepo struct{ s *memStore }

func (r *memTxRepo) Create(tx *entity.LotTransaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *tx
	r.s.txs = append(r.s.txs, &cp)
	return nil
}

func (r *memTxRepo) ListByLot(lotID string, limit, offset int) ([]*entity.LotTransaction, error) {
	return r.s.txsForLot(lotID), nil
}

func (r *memTxRepo) SumByLot(lotID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for _, tx := range r.s.txs {
		if tx.LotID == lotID {
			sum += tx.Quantity
		}
	}
	return sum, nil
}

// ── AuditLogRepository ────────────────────────────────────────────────────────

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(entry *entity.AuditLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *entry
	r.s.audits = append(r.s.audits, &cp)
	return nil
}

func (r *memAuditRepo) List(limit, offset int) ([]*entity.AuditLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.AuditLogEntry(nil), r.s.audits...), nil
}

func (r *memAuditRepo) ListByLot(lotID string, limit, offset int) ([]*entity.AuditLogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.AuditLogEntry
	for _, e := range r.s.audits {
		if id, _ := e.Details["lot_id"].(string); id == lotID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ── StatusHistoryRepository ───────────────────────────────────────────────────

type memHistoryRepo struct{ s *memStore }

func (r *memHistoryRepo) Create(h *entity.StatusHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *h
	r.s.history = append(r.s.history, &cp)
	return nil
}

func (r *memHistoryRepo) ListByLot(lotID string, limit, offset int) ([]*entity.StatusHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StatusHistory
	for _, h := range r.s.history {
		if h.LotID == lotID {
			out = append(out, h)
		}
	}
	return out, nil
}

// ── Catálogos (solo Exists importa para el motor) ─────────────────────────────

type memRefRepo struct {
	s   *memStore
	set map[string]bool
}

func (r *memRefRepo) Exists(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.set[id], nil
}

type memPartRepo struct{ memRefRepo }

func (r *memPartRepo) Create(*entity.Part) error             { return nil }
func (r *memPartRepo) GetByID(string) (*entity.Part, error)  { return nil, nil }
func (r *memPartRepo) List(int, int) ([]*entity.Part, error) { return nil, nil }

type memCustomerRepo struct{ memRefRepo }

func (r *memCustomerRepo) Create(*entity.Customer) error             { return nil }
func (r *memCustomerRepo) GetByID(string) (*entity.Customer, error)  { return nil, nil }
func (r *memCustomerRepo) List(int, int) ([]*entity.Customer, error) { return nil, nil }

type memLocationRepo struct{ memRefRepo }

func (r *memLocationRepo) Create(*entity.StorageLocation) error             { return nil }
func (r *memLocationRepo) GetByID(string) (*entity.StorageLocation, error)  { return nil, nil }
func (r *memLocationRepo) List(int, int) ([]*entity.StorageLocation, error) { return nil, nil }

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

func (tr *memTxRunner) Run(_ context.Context, fn func(
	repository.LotRepository,
	repository.TransactionRepository,
	repository.AuditLogRepository,
	repository.StatusHistoryRepository,
) error) error {
	return fn(&memLotRepo{tr.s}, &memTxRepo{tr.s}, &memAuditRepo{tr.s}, &memHistoryRepo{tr.s})
}

// ── Publicador que graba eventos ──────────────────────────────────────────────

type publishedEvent struct {
	Name    string
	Payload map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventName string, payload map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Name: eventName, Payload: payload})
}

func (p *recordingPublisher) byName(name string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

// ── Armado del motor bajo prueba ──────────────────────────────────────────────

type testEngine struct {
	uc        *appledger.LedgerUseCase
	store     *memStore
	publisher *recordingPublisher
	lotRepo   *memLotRepo
	txRepo    *memTxRepo
}

func newTestEngine(threshold int64) *testEngine {
	store := newMemStore()
	store.parts["part-1"] = true
	store.customers["cust-1"] = true
	store.locations["loc-1"] = true

	pub := &recordingPublisher{}
	lotRepo := &memLotRepo{store}
	uc := appledger.NewLedgerUseCase(
		&memTxRunner{store},
		lotRepo,
		&memPartRepo{memRefRepo{store, store.parts}},
		&memCustomerRepo{memRefRepo{store, store.customers}},
		&memLocationRepo{memRefRepo{store, store.locations}},
		pub,
		threshold,
	)
	return &testEngine{
		uc:        uc,
		store:     store,
		publisher: pub,
		lotRepo:   lotRepo,
		txRepo:    &memTxRepo{store},
	}
}
