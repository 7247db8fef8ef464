package product

import (
	"context"

	"webgael/internal/domain"
)

// Repository is the read side of the catalog.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
