package stock_test

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Clinivet-api/internal/domain"
	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
	"github.com/jhoicas/Clinivet-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests del ledger. Emulan la semántica del
// adaptador PostgreSQL: snapshot/restore en el TxRunner hace las veces de
// Rollback, y los fallos transitorios se inyectan por contador.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	movements map[string]*entity.StockMovement

	// fallos transitorios pendientes por operación ("create", "update_stock"...)
	failures map[string]int
	calls    map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		movements: make(map[string]*entity.StockMovement),
		failures:  make(map[string]int),
		calls:     make(map[string]int),
	}
}

var errTransient = &transientError{}

type transientError struct{}

func (e *transientError) Error() string { return "conexión perdida" }

// failNext hace fallar las siguientes n llamadas a la operación op.
func (s *memStore) failNext(op string, n int) { s.failures[op] = n }

func (s *memStore) maybeFail(op string) error {
	s.calls[op]++
	if s.failures[op] > 0 {
		s.failures[op]--
		return errTransient
	}
	return nil
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, m := range s.movements {
		cm := *m
		c.movements[id] = &cm
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.movements = snap.movements
}

// memTxRunner implementa stock.TxRunner con rollback por snapshot.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snap := r.store.clone()
	err := fn(&memMovementRepo{store: r.store}, &memProductRepo{store: r.store})
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// ─── ProductRepository ────────────────────────────────────────────────────────

type memProductRepo struct {
	store *memStore
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(ctx context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if err := r.store.maybeFail("get_for_update"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(ctx context.Context, productID string, newStock int) error {
	if newStock < 0 {
		return domain.ErrInvalidInput
	}
	if err := r.store.maybeFail("update_stock"); err != nil {
		return err
	}
	p, ok := r.store.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = newStock
	return nil
}

func (r *memProductRepo) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.Barcode == barcode && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) FindLowStock(ctx context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.store.products {
		if p.IsActive && p.CurrentStock <= p.MinStock {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CurrentStock < list[j].CurrentStock })
	return list, nil
}

func (r *memProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	var list []*entity.Product
	for _, p := range r.store.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, len(list), nil
}

func (r *memProductRepo) Delete(ctx context.Context, id string) error {
	delete(r.store.products, id)
	return nil
}

// ─── StockMovementRepository ──────────────────────────────────────────────────

type memMovementRepo struct {
	store *memStore
}

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if err := r.store.maybeFail("create"); err != nil {
		return err
	}
	cm := *m
	r.store.movements[m.ID] = &cm
	return nil
}

func (r *memMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	cm := *m
	return &cm, nil
}

func (r *memMovementRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.store.movements[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.movements, id)
	return nil
}

func (r *memMovementRepo) matches(m *entity.StockMovement, f repository.MovementFilter) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.UserID != "" && m.UserID != f.UserID {
		return false
	}
	if f.DateFrom != nil && m.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && m.CreatedAt.After(*f.DateTo) {
		return false
	}
	if f.Reason != "" && !strings.Contains(strings.ToLower(m.Reason), strings.ToLower(f.Reason)) {
		return false
	}
	return true
}

func (r *memMovementRepo) filtered(f repository.MovementFilter) []*entity.StockMovement {
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if r.matches(m, f) {
			cm := *m
			list = append(list, &cm)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list
}

func (r *memMovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovementWithDetails, int, error) {
	all := r.filtered(f)
	// Orden created_at DESC, como el adaptador real
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	var out []*entity.StockMovementWithDetails
	for _, m := range all[offset:end] {
		d := &entity.StockMovementWithDetails{StockMovement: *m}
		if p, ok := r.store.products[m.ProductID]; ok {
			d.ProductName = p.Name
			d.ProductUnit = p.Unit
		}
		out = append(out, d)
	}
	return out, total, nil
}

func (r *memMovementRepo) ListForSummary(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	return r.filtered(f), nil
}
