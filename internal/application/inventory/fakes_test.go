package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/metrologia-api/internal/application/inventory"
	"github.com/jhoicas/metrologia-api/internal/domain"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	"github.com/jhoicas/metrologia-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del almacén transaccional. El mutex del runner emula el
// bloqueo de fila: dos transacciones sobre el mismo store se serializan, igual
// que con SELECT FOR UPDATE en PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	items    map[string]*entity.Item
	movs     []*entity.Movement
	movCount int // total insertado, para asserts de "cero escrituras"
}

func newMemStore(items ...*entity.Item) *memStore {
	s := &memStore{items: map[string]*entity.Item{}}
	for _, item := range items {
		cp := *item
		s.items[item.ID] = &cp
	}
	return s
}

func (s *memStore) item(id string) entity.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.items[id]
}

func (s *memStore) movements() []*entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Movement, len(s.movs))
	copy(out, s.movs)
	return out
}

// fakeTxRunner serializa las transacciones y hace rollback si fn falla.
// conflictsLeft inyecta conflictos de commit; unavailable simula un begin fallido.
type fakeTxRunner struct {
	store         *memStore
	conflictsLeft int
	unavailable   bool
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
) error) error {
	if r.unavailable {
		return fmt.Errorf("%w: begin transaction", domain.ErrUnavailable)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return fmt.Errorf("%w: simulado", domain.ErrConflict)
	}

	// snapshot para rollback
	itemsBefore := map[string]entity.Item{}
	for id, item := range r.store.items {
		itemsBefore[id] = *item
	}
	movsBefore := len(r.store.movs)

	err := fn(&fakeMovRepo{store: r.store}, &fakeItemRepo{store: r.store})
	if err != nil {
		for id, item := range itemsBefore {
			cp := item
			r.store.items[id] = &cp
		}
		r.store.movs = r.store.movs[:movsBefore]
		return err
	}
	return nil
}

// fakeItemRepo opera sobre el store; el caller ya sostiene el lock.
type fakeItemRepo struct {
	store *memStore
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) Create(item *entity.Item) error {
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(category, id string) (*entity.Item, error) {
	return r.GetForUpdateByID(category, id)
}

func (r *fakeItemRepo) GetByCode(category, code string) (*entity.Item, error) {
	return r.GetForUpdateByCode(category, code)
}

func (r *fakeItemRepo) GetForUpdateByID(category, id string) (*entity.Item, error) {
	item, ok := r.store.items[id]
	if !ok || item.Category != category {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) GetForUpdateByCode(category, code string) (*entity.Item, error) {
	for _, item := range r.store.items {
		if item.Category == category && item.InternalCode == code {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) UpdateStock(id string, quantity int64, status *string, updatedAt time.Time) error {
	item, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Quantity = quantity
	if status != nil {
		item.Status = *status
	}
	item.UpdatedAt = updatedAt
	return nil
}

func (r *fakeItemRepo) UpdateDetails(item *entity.Item) error {
	stored, ok := r.store.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Name = item.Name
	stored.InternalCode = item.InternalCode
	stored.CalibrationDueAt = item.CalibrationDueAt
	stored.UpdatedAt = item.UpdatedAt
	return nil
}

func (r *fakeItemRepo) List(category, status string, limit int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, item := range r.store.items {
		if category != "" && item.Category != category {
			continue
		}
		if status != "" && item.Status != status {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) FindByCode(code string) (*entity.Item, error) {
	for _, item := range r.store.items {
		if item.InternalCode == code {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) ListCalibrationDue(before time.Time) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, item := range r.store.items {
		if item.Category == entity.CategoryInstrument &&
			item.CalibrationDueAt != nil && !item.CalibrationDueAt.After(before) {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeMovRepo libro append-only en memoria.
type fakeMovRepo struct {
	store *memStore
}

var _ repository.MovementRepository = (*fakeMovRepo)(nil)

func (r *fakeMovRepo) Create(movement *entity.Movement) error {
	cp := *movement
	r.store.movs = append(r.store.movs, &cp)
	r.store.movCount++
	return nil
}

func (r *fakeMovRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.store.movs {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.store.movs {
		if filter.ItemID != "" && m.ItemID != filter.ItemID {
			continue
		}
		if filter.InternalCode != "" && m.InternalCode != filter.InternalCode {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
