package cart

import (
	"context"

	"webgael/internal/domain"
)

type AddItemInput struct {
	ProductID string
	Color     string
	Quantity  int
	Notes     string
}

// Repository stores cart items. At most one item exists per (ProductID, Color).
type Repository interface {
	List(ctx context.Context) ([]domain.CartItem, error)
	Get(ctx context.Context, id string) (*domain.CartItem, error)
	// AddOrMerge adds quantity to the existing (ProductID, Color) item, or creates one.
	AddOrMerge(ctx context.Context, in AddItemInput) (item domain.CartItem, merged bool, err error)
	// SetQuantity replaces an item's quantity; quantity <= 0 deletes the item.
	SetQuantity(ctx context.Context, id string, quantity int) (removed bool, err error)
	Remove(ctx context.Context, id string) (bool, error)
	// Take empties the store and returns what it held, in one step.
	Take(ctx context.Context) ([]domain.CartItem, error)
	Clear(ctx context.Context) error
}
