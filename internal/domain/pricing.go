package domain

import "github.com/shopspring/decimal"

// Material is a printable material with its per-volume pricing factors.
type Material struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	BasePricePerCM3      decimal.Decimal `json:"basePricePerCm3"`
	TimeMultiplierPerCM3 decimal.Decimal `json:"timeMultiplierPerCm3"`
	Colors               []string        `json:"colors"`
	Description          string          `json:"description"`
}

// Finish is a post-processing option with flat per-unit add-ons.
type Finish struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Hours decimal.Decimal `json:"hours"`
}

// QuoteRequest is the transient pricing configuration for a custom print.
type QuoteRequest struct {
	MaterialID    string          `json:"material"`
	Color         string          `json:"color,omitempty"`
	FinishID      string          `json:"finish"`
	Quantity      int             `json:"quantity"`
	VolumeCM3     decimal.Decimal `json:"volume"`
	InfillPercent int             `json:"infill"`
}

// Quote is the priced result of a QuoteRequest.
type Quote struct {
	Material        string          `json:"material"`
	Finish          string          `json:"finish"`
	EffectiveVolume decimal.Decimal `json:"effectiveVolume"`
	MaterialCost    decimal.Decimal `json:"materialCost"`
	FinishCost      decimal.Decimal `json:"finishCost"`
	Price           decimal.Decimal `json:"price"`
	Hours           decimal.Decimal `json:"hours"`
	DisplayTime     string          `json:"displayTime"`
}
