package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a single (product, color) line in the cart.
type CartItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Color     string    `json:"color"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartLine is a cart item joined with its catalog product. Product is nil
// when the item references a product that is no longer in the catalog.
type CartLine struct {
	CartItem
	Product *Product `json:"product,omitempty"`
}

// Subtotal is price × quantity, or zero for a dangling line.
func (l CartLine) Subtotal() decimal.Decimal {
	if l.Product == nil {
		return decimal.Zero
	}
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
