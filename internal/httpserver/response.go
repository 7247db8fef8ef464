package httpserver

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"webgael/internal/domain"
	cartsvc "webgael/internal/service/cart"
)

func money(d decimal.Decimal) string { return d.StringFixed(2) }

type productResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Material    string   `json:"material"`
	Time        string   `json:"time"`
	Rating      string   `json:"rating"`
	Image       string   `json:"image"`
	Stock       int      `json:"stock"`
	Colors      []string `json:"colors"`
	Dimensions  string   `json:"dimensions"`
	Weight      string   `json:"weight"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Material:    p.Material,
		Time:        p.Time,
		Rating:      p.Rating.StringFixed(1),
		Image:       p.Image,
		Stock:       p.Stock,
		Colors:      lo.Ternary(p.Colors == nil, []string{}, p.Colors),
		Dimensions:  p.Dimensions,
		Weight:      p.Weight,
	}
}

type cartLineResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Color     string           `json:"color"`
	Notes     string           `json:"notes,omitempty"`
	Product   *productResponse `json:"product"`
	Subtotal  string           `json:"subtotal"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func toCartLineResponse(l domain.CartLine) cartLineResponse {
	out := cartLineResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Color:     l.Color,
		Notes:     l.Notes,
		Subtotal:  money(l.Subtotal()),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if l.Product != nil {
		p := toProductResponse(*l.Product)
		out.Product = &p
	}
	return out
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total string             `json:"total"`
	Count int                `json:"count"`
}

func toCartResponse(s cartsvc.Snapshot) cartResponse {
	return cartResponse{
		Items: lo.Map(s.Items, func(l domain.CartLine, _ int) cartLineResponse { return toCartLineResponse(l) }),
		Total: money(s.Total),
		Count: s.Count,
	}
}

type cartItemResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Color     string    `json:"color"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type addItemResponse struct {
	Item cartItemResponse `json:"item"`
	Cart cartResponse     `json:"cart"`
}

type materialResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	BasePricePerCM3      string   `json:"basePricePerCm3"`
	TimeMultiplierPerCM3 string   `json:"timeMultiplierPerCm3"`
	Colors               []string `json:"colors"`
	Description          string   `json:"description"`
}

type finishResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Hours string `json:"hours"`
}

type quoteResponse struct {
	Material        string `json:"material"`
	Color           string `json:"color,omitempty"`
	Finish          string `json:"finish"`
	Quantity        int    `json:"quantity"`
	Volume          string `json:"volume"`
	Infill          int    `json:"infill"`
	EffectiveVolume string `json:"effectiveVolume"`
	MaterialCost    string `json:"materialCost"`
	FinishCost      string `json:"finishCost"`
	Price           string `json:"price"`
	Hours           string `json:"hours"`
	DisplayTime     string `json:"displayTime"`
}

func toQuoteResponse(req domain.QuoteRequest, q domain.Quote) quoteResponse {
	return quoteResponse{
		Material:        q.Material,
		Color:           req.Color,
		Finish:          q.Finish,
		Quantity:        req.Quantity,
		Volume:          req.VolumeCM3.String(),
		Infill:          req.InfillPercent,
		EffectiveVolume: q.EffectiveVolume.String(),
		MaterialCost:    money(q.MaterialCost),
		FinishCost:      money(q.FinishCost),
		Price:           money(q.Price),
		Hours:           q.Hours.String(),
		DisplayTime:     q.DisplayTime,
	}
}

type orderResponse struct {
	ID       string                 `json:"id"`
	Customer domain.CustomerDetails `json:"customer"`
	Lines    []cartLineResponse     `json:"lines"`
	Total    string                 `json:"total"`
	Count    int                    `json:"count"`
	PlacedAt time.Time              `json:"placedAt"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:       o.ID,
		Customer: o.Customer,
		Lines:    lo.Map(o.Lines, func(l domain.CartLine, _ int) cartLineResponse { return toCartLineResponse(l) }),
		Total:    money(o.Total),
		Count:    o.Count,
		PlacedAt: o.PlacedAt,
	}
}
