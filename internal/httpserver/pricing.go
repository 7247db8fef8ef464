package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"webgael/internal/domain"
	"webgael/internal/service/pricing"
)

type quoteRequest struct {
	Material string           `json:"material" binding:"required"`
	Color    string           `json:"color"`
	Finish   string           `json:"finish"`
	Quantity *int             `json:"quantity"`
	Volume   *decimal.Decimal `json:"volume"`
	Infill   *int             `json:"infill"`
}

type pricingHandler struct {
	engine *pricing.Engine
	volume decimal.Decimal
}

// options lists materials and finishes along with the default selection
// and its quote, so a form can render a price before any input.
func (h *pricingHandler) options(c *gin.Context) {
	defaults, err := h.engine.DefaultRequest(h.volume)
	if err != nil {
		writeError(c, err)
		return
	}
	q, err := h.engine.Quote(defaults)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"materials": lo.Map(h.engine.Materials(), func(m domain.Material, _ int) materialResponse {
			return materialResponse{
				ID:                   m.ID,
				Name:                 m.Name,
				BasePricePerCM3:      m.BasePricePerCM3.String(),
				TimeMultiplierPerCM3: m.TimeMultiplierPerCM3.String(),
				Colors:               m.Colors,
				Description:          m.Description,
			}
		}),
		"finishes": lo.Map(h.engine.Finishes(), func(f domain.Finish, _ int) finishResponse {
			return finishResponse{ID: f.ID, Name: f.Name, Price: money(f.Price), Hours: f.Hours.String()}
		}),
		"volume": h.volume.String(),
		"infill": gin.H{
			"min":     pricing.MinInfill,
			"max":     pricing.MaxInfill,
			"step":    10,
			"default": pricing.DefaultInfill,
		},
		"layerHeights": lo.Map(pricing.LayerHeights(), func(d decimal.Decimal, _ int) string { return d.String() }),
		"defaults":     toQuoteResponse(defaults, q),
	})
}

func (h *pricingHandler) quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}

	defaults, err := h.engine.DefaultRequest(h.volume)
	if err != nil {
		writeError(c, err)
		return
	}
	qr := domain.QuoteRequest{
		MaterialID:    req.Material,
		Color:         req.Color,
		FinishID:      lo.Ternary(req.Finish == "", defaults.FinishID, req.Finish),
		Quantity:      lo.FromPtrOr(req.Quantity, defaults.Quantity),
		VolumeCM3:     lo.FromPtrOr(req.Volume, defaults.VolumeCM3),
		InfillPercent: lo.FromPtrOr(req.Infill, defaults.InfillPercent),
	}
	q, err := h.engine.Quote(qr)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(qr, q))
}
