package pricing

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"webgael/internal/domain"
)

const (
	MinInfill     = 10
	MaxInfill     = 100
	DefaultInfill = 20
)

var (
	// MinPrice and MinHours are business floors; a quote never goes below them.
	MinPrice = decimal.NewFromInt(5)
	MinHours = decimal.NewFromInt(1)

	hundred = decimal.NewFromInt(100)
)

// Engine computes quotes from a fixed table of materials and finishes.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	materials []domain.Material
	finishes  []domain.Finish
}

func NewEngine() *Engine {
	return &Engine{materials: DefaultMaterials(), finishes: DefaultFinishes()}
}

// NewEngineWith builds an engine over custom tables; used by tests and tooling.
func NewEngineWith(materials []domain.Material, finishes []domain.Finish) *Engine {
	return &Engine{materials: materials, finishes: finishes}
}

func (e *Engine) Materials() []domain.Material {
	return lo.Map(e.materials, func(m domain.Material, _ int) domain.Material {
		m.Colors = append([]string(nil), m.Colors...)
		return m
	})
}

func (e *Engine) Finishes() []domain.Finish {
	return append([]domain.Finish(nil), e.finishes...)
}

func (e *Engine) Material(id string) (domain.Material, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	return lo.Find(e.materials, func(m domain.Material) bool { return m.ID == id })
}

func (e *Engine) Finish(id string) (domain.Finish, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	return lo.Find(e.finishes, func(f domain.Finish) bool { return f.ID == id })
}

// DefaultRequest is the starting selection for a design of the given volume:
// the first material in its first color, the first finish, one unit and
// default infill.
func (e *Engine) DefaultRequest(volume decimal.Decimal) (domain.QuoteRequest, error) {
	if len(e.materials) == 0 || len(e.finishes) == 0 {
		return domain.QuoteRequest{}, fmt.Errorf("%w: pricing needs at least one material and one finish", domain.ErrValidation)
	}
	first := e.materials[0]
	return domain.QuoteRequest{
		MaterialID:    first.ID,
		Color:         firstColor(first),
		FinishID:      e.finishes[0].ID,
		Quantity:      1,
		VolumeCM3:     volume,
		InfillPercent: DefaultInfill,
	}, nil
}

// Quote prices a configuration:
//
//	effectiveVolume = volume × infill/100
//	price = max(effectiveVolume × basePrice × qty + finish.price × qty, MinPrice)
//	hours = max(effectiveVolume × timeMultiplier × qty + finish.hours × qty, MinHours)
//
// Color is accepted but never affects the result.
func (e *Engine) Quote(req domain.QuoteRequest) (domain.Quote, error) {
	m, ok := e.Material(req.MaterialID)
	if !ok {
		return domain.Quote{}, fmt.Errorf("%w: unknown material %q", domain.ErrValidation, req.MaterialID)
	}
	f, ok := e.Finish(req.FinishID)
	if !ok {
		return domain.Quote{}, fmt.Errorf("%w: unknown finish %q", domain.ErrValidation, req.FinishID)
	}
	if req.Quantity < 1 {
		return domain.Quote{}, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	if req.InfillPercent < MinInfill || req.InfillPercent > MaxInfill {
		return domain.Quote{}, fmt.Errorf("%w: infill must be between %d and %d", domain.ErrValidation, MinInfill, MaxInfill)
	}
	if req.VolumeCM3.IsNegative() {
		return domain.Quote{}, fmt.Errorf("%w: volume must not be negative", domain.ErrValidation)
	}

	qty := decimal.NewFromInt(int64(req.Quantity))
	effective := req.VolumeCM3.Mul(decimal.NewFromInt(int64(req.InfillPercent))).Div(hundred)

	materialCost := effective.Mul(m.BasePricePerCM3).Mul(qty)
	finishCost := f.Price.Mul(qty)
	price := decimal.Max(materialCost.Add(finishCost), MinPrice)

	materialHours := effective.Mul(m.TimeMultiplierPerCM3).Mul(qty)
	finishHours := f.Hours.Mul(qty)
	hours := decimal.Max(materialHours.Add(finishHours), MinHours)

	return domain.Quote{
		Material:        m.Name,
		Finish:          f.Name,
		EffectiveVolume: effective,
		MaterialCost:    materialCost,
		FinishCost:      finishCost,
		Price:           price,
		Hours:           hours,
		DisplayTime:     DisplayTime(hours),
	}, nil
}

// DisplayTime renders hours rounded up to a whole hour, e.g. "2h".
func DisplayTime(hours decimal.Decimal) string {
	return hours.Ceil().String() + "h"
}
