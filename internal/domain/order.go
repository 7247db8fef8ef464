package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerDetails are the shipping fields collected at checkout.
type CustomerDetails struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Notes      string `json:"notes"`
}

// Order is the confirmation produced by a simulated checkout.
type Order struct {
	ID       string          `json:"id"`
	Customer CustomerDetails `json:"customer"`
	Lines    []CartLine      `json:"lines"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	PlacedAt time.Time       `json:"placedAt"`
}
