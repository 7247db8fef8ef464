package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Product is an immutable catalog record.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Material    string          `json:"material"`
	Time        string          `json:"time"`
	Rating      decimal.Decimal `json:"rating"`
	Image       string          `json:"image,omitempty"`
	Stock       int             `json:"stock"`
	Colors      []string        `json:"colors"`
	Dimensions  string          `json:"dimensions"`
	Weight      string          `json:"weight"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// HasColor reports whether color is one of the product's available colors.
func (p Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	p.Colors = slices.Clone(p.Colors)
	return p
}
