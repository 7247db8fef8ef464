package pricing

import (
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"webgael/internal/domain"
)

// QuoteFunc receives the price and display time after every recomputation.
type QuoteFunc func(price decimal.Decimal, displayTime string)

// SelectionFunc receives the selected material name and color after every recomputation.
type SelectionFunc func(materialName, color string)

type EstimatorOption func(*Estimator)

func WithOnQuote(fn QuoteFunc) EstimatorOption {
	return func(e *Estimator) { e.onQuote = fn }
}

func WithOnSelection(fn SelectionFunc) EstimatorOption {
	return func(e *Estimator) { e.onSelection = fn }
}

// Estimator holds an interactive pricing selection. Every accepted change
// recomputes the quote and notifies both callbacks. Rejected changes leave
// the selection untouched and notify nobody.
type Estimator struct {
	engine      *Engine
	onQuote     QuoteFunc
	onSelection SelectionFunc

	mu          sync.Mutex
	req         domain.QuoteRequest
	layerHeight decimal.Decimal
	quote       domain.Quote
}

// NewEstimator starts from the engine's DefaultRequest with 0.2 mm layers,
// then emits the initial quote.
func NewEstimator(engine *Engine, volume decimal.Decimal, opts ...EstimatorOption) (*Estimator, error) {
	if engine == nil {
		engine = NewEngine()
	}
	req, err := engine.DefaultRequest(volume)
	if err != nil {
		return nil, err
	}
	e := &Estimator{
		engine:      engine,
		req:         req,
		layerHeight: decimal.RequireFromString("0.2"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.apply(func(*domain.QuoteRequest) error { return nil }); err != nil {
		return nil, err
	}
	return e, nil
}

func firstColor(m domain.Material) string {
	if len(m.Colors) == 0 {
		return ""
	}
	return m.Colors[0]
}

// SetMaterial switches material and resets the color to the material's first color.
func (e *Estimator) SetMaterial(id string) error {
	m, ok := e.engine.Material(id)
	if !ok {
		return fmt.Errorf("%w: unknown material %q", domain.ErrValidation, id)
	}
	return e.apply(func(r *domain.QuoteRequest) error {
		r.MaterialID = m.ID
		r.Color = firstColor(m)
		return nil
	})
}

// SetColor selects one of the current material's colors.
func (e *Estimator) SetColor(color string) error {
	return e.apply(func(r *domain.QuoteRequest) error {
		m, _ := e.engine.Material(r.MaterialID)
		if !slices.Contains(m.Colors, color) {
			return fmt.Errorf("%w: color %q not offered for %s", domain.ErrValidation, color, m.Name)
		}
		r.Color = color
		return nil
	})
}

func (e *Estimator) SetFinish(id string) error {
	f, ok := e.engine.Finish(id)
	if !ok {
		return fmt.Errorf("%w: unknown finish %q", domain.ErrValidation, id)
	}
	return e.apply(func(r *domain.QuoteRequest) error {
		r.FinishID = f.ID
		return nil
	})
}

func (e *Estimator) SetQuantity(n int) error {
	return e.apply(func(r *domain.QuoteRequest) error {
		r.Quantity = n
		return nil
	})
}

// Increment adds one unit.
func (e *Estimator) Increment() error {
	return e.apply(func(r *domain.QuoteRequest) error {
		r.Quantity++
		return nil
	})
}

// Decrement removes one unit but never goes below one.
func (e *Estimator) Decrement() error {
	return e.apply(func(r *domain.QuoteRequest) error {
		r.Quantity = max(1, r.Quantity-1)
		return nil
	})
}

func (e *Estimator) SetInfill(percent int) error {
	return e.apply(func(r *domain.QuoteRequest) error {
		r.InfillPercent = percent
		return nil
	})
}

func (e *Estimator) SetVolume(cm3 decimal.Decimal) error {
	return e.apply(func(r *domain.QuoteRequest) error {
		r.VolumeCM3 = cm3
		return nil
	})
}

// SetLayerHeight selects one of LayerHeights. It is recorded for the print
// job and triggers notification, but the quote does not depend on it.
func (e *Estimator) SetLayerHeight(mm decimal.Decimal) error {
	if !slices.ContainsFunc(LayerHeights(), mm.Equal) {
		return fmt.Errorf("%w: unsupported layer height %s", domain.ErrValidation, mm)
	}
	e.mu.Lock()
	e.layerHeight = mm
	e.mu.Unlock()
	return e.apply(func(*domain.QuoteRequest) error { return nil })
}

func (e *Estimator) Selection() domain.QuoteRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.req
}

func (e *Estimator) LayerHeight() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layerHeight
}

func (e *Estimator) Quote() domain.Quote {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quote
}

// apply runs change against a copy of the selection, re-quotes, and commits
// only when both succeed. Callbacks run after the lock is released.
func (e *Estimator) apply(change func(*domain.QuoteRequest) error) error {
	e.mu.Lock()
	next := e.req
	if err := change(&next); err != nil {
		e.mu.Unlock()
		return err
	}
	q, err := e.engine.Quote(next)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.req = next
	e.quote = q
	onQuote, onSelection := e.onQuote, e.onSelection
	e.mu.Unlock()

	if onQuote != nil {
		onQuote(q.Price, q.DisplayTime)
	}
	if onSelection != nil {
		onSelection(q.Material, next.Color)
	}
	return nil
}
