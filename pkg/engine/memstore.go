package engine

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/backoffice-kit/backoffice/pkg/view"
	"go.uber.org/zap"
)

// listSchema is the store-side search: name, email and role.
var listSchema = view.Schema[schema.Owner]{
	Fields: []view.Field[schema.Owner]{
		view.TextField("name", func(o schema.Owner) string { return o.Name }, true, false),
		view.TextField("email", func(o schema.Owner) string { return o.Email }, true, false),
		view.TextField("role", func(o schema.Owner) string { return string(o.Role) }, true, false),
	},
}

// MemStore is the thread-safe in-memory owner store. Records are kept in
// insertion order and handed out as copies.
type MemStore struct {
	mu     sync.RWMutex
	owners []schema.Owner
	nextID int
	now    func() time.Time
	log    *zap.Logger
}

// NewMemStore initializes a store with initial records. Duplicate ids after
// the first occurrence are dropped. The id counter continues after the
// highest numeric id present.
func NewMemStore(initial []schema.Owner, opts ...Option) *MemStore {
	o := buildOptions(opts)
	m := &MemStore{
		owners: make([]schema.Owner, 0, len(initial)),
		nextID: 1,
		now:    o.now,
		log:    o.log,
	}

	seen := make(map[string]bool, len(initial))
	for _, owner := range initial {
		if seen[owner.ID] {
			m.log.Warn("dropping duplicate seed owner", zap.String("id", owner.ID))
			continue
		}
		seen[owner.ID] = true
		m.owners = append(m.owners, owner)
		if n, err := strconv.Atoi(owner.ID); err == nil && n >= m.nextID {
			m.nextID = n + 1
		}
	}
	return m
}

// List returns one page of owners whose name, email or role contains
// q.Search, case-insensitively. Page and PageSize are echoed back as given;
// a page outside the filtered set, including one below 1, is empty.
func (m *MemStore) List(_ context.Context, q schema.ListQuery) (schema.PaginationResponse[schema.Owner], error) {
	m.mu.RLock()
	filtered := view.Filter(m.owners, listSchema, q.Search, nil)
	m.mu.RUnlock()

	return schema.PaginationResponse[schema.Owner]{
		Data:     view.Paginate(filtered, q.Page, q.PageSize),
		Page:     q.Page,
		PageSize: q.PageSize,
		Total:    len(filtered),
	}, nil
}

// All returns a copy of every owner in insertion order.
func (m *MemStore) All(_ context.Context) ([]schema.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]schema.Owner(nil), m.owners...), nil
}

func (m *MemStore) Get(_ context.Context, id string) (schema.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return schema.Owner{}, ownerNotFound(id)
	}
	return m.owners[i], nil
}

func (m *MemStore) Create(_ context.Context, in schema.OwnerCreate) (schema.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	owner := schema.Owner{
		ID:                  strconv.Itoa(m.nextID),
		Name:                in.Name,
		Email:               in.Email,
		OwnershipPercentage: in.OwnershipPercentage,
		Role:                in.Role,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	m.nextID++
	m.owners = append(m.owners, owner)

	m.log.Debug("owner created", zap.String("id", owner.ID))
	return owner, nil
}

func (m *MemStore) Update(ctx context.Context, id string, patch schema.OwnerPatch) (schema.Owner, error) {
	_, after, err := m.update(ctx, id, patch)
	return after, err
}

// update applies patch and returns the record before and after the change.
func (m *MemStore) update(_ context.Context, id string, patch schema.OwnerPatch) (before, after schema.Owner, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return schema.Owner{}, schema.Owner{}, ownerNotFound(id)
	}

	before = m.owners[i]
	after = patch.Apply(before)
	after.ID = before.ID
	after.CreatedAt = before.CreatedAt
	if now := m.now(); now.After(before.UpdatedAt) {
		after.UpdatedAt = now
	}
	m.owners[i] = after

	m.log.Debug("owner updated", zap.String("id", id))
	return before, after, nil
}

func (m *MemStore) Delete(ctx context.Context, id string) error {
	_, err := m.remove(ctx, id)
	return err
}

// remove deletes the record and returns it.
func (m *MemStore) remove(_ context.Context, id string) (schema.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return schema.Owner{}, ownerNotFound(id)
	}
	removed := m.owners[i]
	m.owners = append(m.owners[:i], m.owners[i+1:]...)

	m.log.Debug("owner deleted", zap.String("id", id))
	return removed, nil
}

// OwnershipSummary totals ownership across all owners.
func (m *MemStore) OwnershipSummary(_ context.Context) (schema.OwnershipSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return schema.SummarizeOwnership(m.owners), nil
}

// indexOf MUST be called while holding m.mu.
func (m *MemStore) indexOf(id string) int {
	for i, o := range m.owners {
		if o.ID == id {
			return i
		}
	}
	return -1
}
