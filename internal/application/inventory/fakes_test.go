package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/denta-stock-api/internal/application/access"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de inventario. El memTxRunner emula el
// bloqueo de fila de PostgreSQL con un mutex sostenido durante toda la
// secuencia leer-calcular-escribir, con rollback de ambas escrituras.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	items     map[string]entity.Item
	movements []entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{items: map[string]entity.Item{}}
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := it
	return &cp, nil
}

func (r *memItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *memItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.items[item.ID]; ok {
		// El stock no viaja por Update: se preserva el valor persistido.
		stock := existing.CurrentStock
		cp := *item
		cp.CurrentStock = stock
		r.s.items[item.ID] = cp
	}
	return nil
}

func (r *memItemRepo) UpdateStock(ctx context.Context, id string, newStock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil
	}
	it.CurrentStock = newStock
	r.s.items[id] = it
	return nil
}

func (r *memItemRepo) Archive(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil
	}
	it.Archived = true
	r.s.items[id] = it
	return nil
}

func (r *memItemRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)
	return nil
}

func (r *memItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.TeamID != filter.TeamID || it.Archived != filter.Archived {
			continue
		}
		if filter.CategoryID != "" && it.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(filter.Search)) {
			continue
		}
		cp := it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (r *memItemRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, it := range r.s.items {
		if it.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memItemRepo) CountByUnit(ctx context.Context, unitID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, it := range r.s.items {
		if it.UnitID == unitID {
			n++
		}
	}
	return n, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *memMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.TeamID != filter.TeamID {
			continue
		}
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		cp := m
		out = append(out, &cp)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByItemAsc(ctx context.Context, itemID string) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for i := range r.s.movements {
		if r.s.movements[i].ItemID == itemID {
			cp := r.s.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for i := range r.s.movements {
		if r.s.movements[i].ItemID == itemID {
			n++
		}
	}
	return n, nil
}

// memTxRunner serializa las transacciones con un mutex (equivale al FOR UPDATE
// por fila del adaptador real) y deshace ambas escrituras si fn falla.
type memTxRunner struct {
	s  *memStore
	tx sync.Mutex
}

func (r *memTxRunner) Run(ctx context.Context, fn func(repository.ItemRepository, repository.MovementRepository) error) error {
	r.tx.Lock()
	defer r.tx.Unlock()

	// Snapshot para rollback.
	r.s.mu.Lock()
	itemsBackup := make(map[string]entity.Item, len(r.s.items))
	for k, v := range r.s.items {
		itemsBackup[k] = v
	}
	movsBackup := len(r.s.movements)
	r.s.mu.Unlock()

	if err := fn(&memItemRepo{s: r.s}, &memMovementRepo{s: r.s}); err != nil {
		r.s.mu.Lock()
		r.s.items = itemsBackup
		r.s.movements = r.s.movements[:movsBackup]
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// memUnitRepo unidades en memoria, suficiente para validar referencias.
type memUnitRepo struct {
	units map[string]entity.Unit
}

func (r *memUnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	r.units[u.ID] = *u
	return nil
}

func (r *memUnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (r *memUnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	r.units[u.ID] = *u
	return nil
}

func (r *memUnitRepo) Delete(ctx context.Context, id string) error {
	delete(r.units, id)
	return nil
}

func (r *memUnitRepo) ListByTeam(ctx context.Context, teamID string) ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range r.units {
		if u.TeamID == teamID && !u.Archived {
			cp := u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUnitRepo) MaxSortOrder(ctx context.Context, teamID string) (int, error) {
	maxOrder := 0
	for _, u := range r.units {
		if u.TeamID == teamID && u.SortOrder > maxOrder {
			maxOrder = u.SortOrder
		}
	}
	return maxOrder, nil
}

// memCategoryRepo categorías en memoria, suficiente para validar referencias.
type memCategoryRepo struct {
	categories map[string]entity.Category
}

func (r *memCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *memCategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (r *memCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) ListByTeam(ctx context.Context, teamID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.TeamID == teamID && !c.Archived {
			cp := c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) MaxSortOrder(ctx context.Context, teamID string) (int, error) {
	maxOrder := 0
	for _, c := range r.categories {
		if c.TeamID == teamID && c.SortOrder > maxOrder {
			maxOrder = c.SortOrder
		}
	}
	return maxOrder, nil
}

// allowAllGate concede todo; los chequeos del gate tienen sus propios tests.
type allowAllGate struct{}

func (allowAllGate) Assert(ctx context.Context, ident access.Identity, permission string) error {
	return nil
}

// countingCache registra las invalidaciones de vistas.
type countingCache struct {
	mu    sync.Mutex
	calls int
}

func (c *countingCache) InvalidateTeam(ctx context.Context, teamID string) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}
