package product

import (
	"context"

	"go.uber.org/zap"

	"webgael/internal/domain"
	"webgael/internal/logger"
)

type memoryRepo struct {
	products []domain.Product
	byID     map[string]int
	logger   *zap.Logger
}

// NewMemory returns a read-only catalog over products, kept in the given order.
func NewMemory(products []domain.Product, log *zap.Logger) Repository {
	r := &memoryRepo{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		logger:   logger.OrNop(log),
	}
	for _, p := range products {
		if _, dup := r.byID[p.ID]; dup {
			continue
		}
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, p.Clone())
	}
	return r
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	for i, p := range r.products {
		out[i] = p.Clone()
	}
	r.logger.Debug("product repo: list", logger.Int("count", len(out)))
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		r.logger.Debug("product repo: get not found", logger.String("product_id", id))
		return nil, domain.ErrNotFound
	}
	p := r.products[idx].Clone()
	return &p, nil
}
