package cart

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"webgael/internal/domain"
	"webgael/internal/logger"
)

type memoryRepo struct {
	mu     sync.Mutex
	items  []domain.CartItem
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

type Option func(*memoryRepo)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *memoryRepo) { r.now = now }
}

// WithIDGenerator overrides cart item id generation.
func WithIDGenerator(gen func() string) Option {
	return func(r *memoryRepo) { r.newID = gen }
}

// NewMemory returns an empty process-local cart store.
func NewMemory(log *zap.Logger, opts ...Option) Repository {
	r := &memoryRepo{
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		logger: logger.OrNop(log),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *memoryRepo) List(_ context.Context) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items), nil
}

func (r *memoryRepo) Get(_ context.Context, id string) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	item := r.items[idx]
	return &item, nil
}

func (r *memoryRepo) AddOrMerge(_ context.Context, in AddItemInput) (domain.CartItem, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	idx := slices.IndexFunc(r.items, func(it domain.CartItem) bool {
		return it.ProductID == in.ProductID && it.Color == in.Color
	})
	if idx >= 0 {
		item := &r.items[idx]
		if item.Quantity > math.MaxInt-in.Quantity {
			return domain.CartItem{}, false, fmt.Errorf("%w: quantity overflow for item %s", domain.ErrValidation, item.ID)
		}
		item.Quantity += in.Quantity
		if in.Notes != "" {
			item.Notes = in.Notes
		}
		item.UpdatedAt = now
		r.logger.Debug("cart repo: merged item",
			logger.String("item_id", item.ID),
			logger.String("product_id", item.ProductID),
			logger.Int("quantity", item.Quantity),
		)
		return *item, true, nil
	}

	item := domain.CartItem{
		ID:        r.newID(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Color:     in.Color,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.items = append(r.items, item)
	r.logger.Debug("cart repo: added item",
		logger.String("item_id", item.ID),
		logger.String("product_id", item.ProductID),
		logger.Int("quantity", item.Quantity),
	)
	return item, false, nil
}

func (r *memoryRepo) SetQuantity(_ context.Context, id string, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false, domain.ErrNotFound
	}
	if quantity <= 0 {
		r.items = slices.Delete(r.items, idx, idx+1)
		r.logger.Debug("cart repo: removed item on zero quantity", logger.String("item_id", id))
		return true, nil
	}
	r.items[idx].Quantity = quantity
	r.items[idx].UpdatedAt = r.now()
	return false, nil
}

func (r *memoryRepo) Remove(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	r.items = slices.Delete(r.items, idx, idx+1)
	return true, nil
}

func (r *memoryRepo) Take(_ context.Context) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.items
	r.items = nil
	return items, nil
}

func (r *memoryRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	return nil
}

func (r *memoryRepo) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(it domain.CartItem) bool { return it.ID == id })
}
