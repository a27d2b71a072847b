package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errStore = errors.New("connection reset by peer")

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubOperatorRepo struct {
	mu      sync.Mutex
	byName  map[string]*domain.Operator
	findErr error
}

func newStubOperatorRepo() *stubOperatorRepo {
	return &stubOperatorRepo{byName: make(map[string]*domain.Operator)}
}

func (r *stubOperatorRepo) Create(_ context.Context, op *domain.Operator) (*domain.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// mirrors the unique index on username
	if _, exists := r.byName[op.Username]; exists {
		return nil, domain.ErrOperatorExists
	}
	clone := *op
	r.byName[op.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubOperatorRepo) FindByUsername(_ context.Context, username string) (*domain.Operator, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrOperatorNotFound
	}
	clone := *op
	return &clone, nil
}

func (r *stubOperatorRepo) FindByID(_ context.Context, id string) (*domain.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, op := range r.byName {
		if op.ID == id {
			clone := *op
			return &clone, nil
		}
	}
	return nil, domain.ErrOperatorNotFound
}

type stubShopRepo struct {
	shops     map[string]*domain.Shop
	err       error
	findCalls int
}

func newStubShopRepo(shops ...*domain.Shop) *stubShopRepo {
	r := &stubShopRepo{shops: make(map[string]*domain.Shop)}
	for _, s := range shops {
		r.shops[s.ID] = s
	}
	return r
}

func (r *stubShopRepo) Create(_ context.Context, shop *domain.Shop) (*domain.Shop, error) {
	if r.err != nil {
		return nil, r.err
	}
	clone := *shop
	r.shops[shop.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubShopRepo) List(_ context.Context) ([]*domain.Shop, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Shop, 0, len(r.shops))
	for _, s := range r.shops {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubShopRepo) FindOwned(_ context.Context, shopID, ownerID string) (*domain.Shop, error) {
	r.findCalls++
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.shops[shopID]
	if !ok || s.OwnerID != ownerID {
		return nil, domain.ErrShopNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubShopRepo) IDsByOwner(_ context.Context, ownerID string) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	var ids []string
	for _, s := range r.shops {
		if s.OwnerID == ownerID {
			ids = append(ids, s.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type stubItemRepo struct {
	items     []*domain.Item
	createErr error
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *item
	r.items = append(r.items, &clone)
	out := clone
	return &out, nil
}

func (r *stubItemRepo) ListByShop(_ context.Context, shopID string) ([]*domain.Item, error) {
	var out []*domain.Item
	for _, it := range r.items {
		if it.ShopID == shopID {
			clone := *it
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubInvoiceRepo struct {
	invoices   []*domain.Invoice
	lastFilter ports.InvoiceFilter
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	clone := *inv
	r.invoices = append(r.invoices, &clone)
	out := clone
	return &out, nil
}

// List applies the same filter semantics as the real repositories.
func (r *stubInvoiceRepo) List(_ context.Context, f ports.InvoiceFilter) ([]*domain.Invoice, error) {
	r.lastFilter = f
	shopSet := make(map[string]struct{}, len(f.ShopIDs))
	for _, id := range f.ShopIDs {
		shopSet[id] = struct{}{}
	}

	out := []*domain.Invoice{}
	for _, inv := range r.invoices {
		if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
			continue
		}
		if f.ScopeToShops {
			if _, ok := shopSet[inv.ShopID]; !ok {
				continue
			}
		}
		clone := *inv
		out = append(out, &clone)
	}
	return out, nil
}

type stubThrottle struct {
	max      int
	failures map[string]int
	err      error
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{max: max, failures: make(map[string]int)}
}

func (t *stubThrottle) Allowed(_ context.Context, username string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[username] < t.max, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	if t.err != nil {
		return t.err
	}
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	if t.err != nil {
		return t.err
	}
	delete(t.failures, username)
	return nil
}
