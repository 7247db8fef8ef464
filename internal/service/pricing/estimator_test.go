package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webgael/internal/domain"
)

type recorder struct {
	prices     []string
	times      []string
	selections [][2]string
}

func (r *recorder) options() []EstimatorOption {
	return []EstimatorOption{
		WithOnQuote(func(price decimal.Decimal, displayTime string) {
			r.prices = append(r.prices, price.StringFixed(2))
			r.times = append(r.times, displayTime)
		}),
		WithOnSelection(func(material, color string) {
			r.selections = append(r.selections, [2]string{material, color})
		}),
	}
}

func TestEstimatorEmitsInitialQuote(t *testing.T) {
	rec := &recorder{}
	est, err := NewEstimator(NewEngine(), dec("10"), rec.options()...)
	require.NoError(t, err)

	assert.Equal(t, []string{"5.00"}, rec.prices)
	assert.Equal(t, []string{"2h"}, rec.times)
	assert.Equal(t, [][2]string{{"PLA", "#FF6B6B"}}, rec.selections)

	sel := est.Selection()
	assert.Equal(t, "pla", sel.MaterialID)
	assert.Equal(t, "raw", sel.FinishID)
	assert.Equal(t, 1, sel.Quantity)
	assert.Equal(t, DefaultInfill, sel.InfillPercent)
	assert.True(t, est.LayerHeight().Equal(dec("0.2")))
}

func TestEstimatorMaterialResetsColor(t *testing.T) {
	rec := &recorder{}
	est, err := NewEstimator(nil, dec("10"), rec.options()...)
	require.NoError(t, err)

	require.NoError(t, est.SetColor("#DDA0DD"))
	require.NoError(t, est.SetMaterial("abs"))

	assert.Equal(t, "#FF6B6B", est.Selection().Color)
	assert.Equal(t, [2]string{"ABS", "#FF6B6B"}, rec.selections[len(rec.selections)-1])
}

func TestEstimatorColorChangeKeepsPrice(t *testing.T) {
	rec := &recorder{}
	est, err := NewEstimator(nil, dec("40"), rec.options()...)
	require.NoError(t, err)
	before := est.Quote()

	require.NoError(t, est.SetColor("#45B7D1"))
	after := est.Quote()

	assert.True(t, before.Price.Equal(after.Price))
	assert.Equal(t, before.DisplayTime, after.DisplayTime)
	assert.Len(t, rec.prices, 2)
	assert.Equal(t, [2]string{"PLA", "#45B7D1"}, rec.selections[1])
}

func TestEstimatorRejectedChangesDoNotNotify(t *testing.T) {
	rec := &recorder{}
	est, err := NewEstimator(nil, dec("10"), rec.options()...)
	require.NoError(t, err)

	checks := []error{
		est.SetMaterial("wood"),
		est.SetColor("#123456"),
		est.SetFinish("chrome"),
		est.SetQuantity(0),
		est.SetInfill(5),
		est.SetInfill(110),
		est.SetVolume(dec("-1")),
		est.SetLayerHeight(dec("0.25")),
	}
	for _, err := range checks {
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation), err.Error())
	}
	assert.Len(t, rec.prices, 1)
	assert.Equal(t, 1, est.Selection().Quantity)
	assert.Equal(t, DefaultInfill, est.Selection().InfillPercent)
}

func TestEstimatorQuantityStepping(t *testing.T) {
	est, err := NewEstimator(nil, dec("10"))
	require.NoError(t, err)

	require.NoError(t, est.Decrement())
	assert.Equal(t, 1, est.Selection().Quantity)

	require.NoError(t, est.Increment())
	require.NoError(t, est.Increment())
	assert.Equal(t, 3, est.Selection().Quantity)

	require.NoError(t, est.Decrement())
	assert.Equal(t, 2, est.Selection().Quantity)
}

func TestEstimatorTracksEngine(t *testing.T) {
	rec := &recorder{}
	est, err := NewEstimator(nil, dec("10"), rec.options()...)
	require.NoError(t, err)

	require.NoError(t, est.SetFinish("polished"))
	require.NoError(t, est.SetQuantity(3))
	require.NoError(t, est.SetInfill(100))
	require.NoError(t, est.SetVolume(dec("20")))
	require.NoError(t, est.SetLayerHeight(dec("0.1")))

	want, err := NewEngine().Quote(domain.QuoteRequest{
		MaterialID: "pla", FinishID: "polished", Quantity: 3, VolumeCM3: dec("20"), InfillPercent: 100,
	})
	require.NoError(t, err)

	got := est.Quote()
	assert.True(t, want.Price.Equal(got.Price))
	assert.True(t, want.Hours.Equal(got.Hours))
	// 20 × 0.15 × 3 + 15 × 3
	assert.Equal(t, "54.00", rec.prices[len(rec.prices)-1])
	assert.Len(t, rec.prices, 6)
	assert.True(t, est.LayerHeight().Equal(dec("0.1")))
}

func TestNewEstimatorRejectsEmptyTablesAndBadVolume(t *testing.T) {
	_, err := NewEstimator(NewEngineWith(nil, DefaultFinishes()), dec("10"))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = NewEstimator(NewEngine(), dec("-5"))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
