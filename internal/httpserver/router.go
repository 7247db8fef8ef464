package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"webgael/internal/domain"
	"webgael/internal/logger"
	cartsvc "webgael/internal/service/cart"
	"webgael/internal/service/contact"
	"webgael/internal/service/pricing"
	productsvc "webgael/internal/service/product"
)

type productService interface {
	List(ctx context.Context, f productsvc.ListFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type cartService interface {
	Snapshot(ctx context.Context) (cartsvc.Snapshot, error)
	AddItem(ctx context.Context, in cartsvc.AddInput) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	RemoveItem(ctx context.Context, itemID string) (bool, error)
	Clear(ctx context.Context) error
}

type checkoutService interface {
	Place(ctx context.Context, details domain.CustomerDetails) (*domain.Order, error)
}

type contactService interface {
	Options() contact.OptionLists
	Submit(ctx context.Context, m contact.Message) (*contact.Submission, error)
}

// Deps are the services the API exposes. DB is optional; without it the
// readiness probe reports the in-memory catalog.
type Deps struct {
	Products     productService
	Cart         cartService
	Pricing      *pricing.Engine
	DesignVolume decimal.Decimal
	Checkout     checkoutService
	Contact      contactService
	DB           Pinger
}

func (d Deps) validate() error {
	switch {
	case d.Products == nil:
		return errors.New("httpserver: product service is required")
	case d.Cart == nil:
		return errors.New("httpserver: cart service is required")
	case d.Pricing == nil:
		return errors.New("httpserver: pricing engine is required")
	case d.Checkout == nil:
		return errors.New("httpserver: checkout service is required")
	case d.Contact == nil:
		return errors.New("httpserver: contact service is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(log *zap.Logger, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	log = logger.OrNop(log)

	router := gin.New()
	router.Use(requestLogger(log), gin.Recovery(), cors.New(corsConfig(allowedOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB))

	api := router.Group("/api")

	products := &productHandler{svc: deps.Products}
	api.GET("/products", products.list)
	api.GET("/products/:id", products.get)

	cart := &cartHandler{svc: deps.Cart}
	api.GET("/cart", cart.get)
	api.POST("/cart/items", cart.add)
	api.PATCH("/cart/items/:id", cart.update)
	api.DELETE("/cart/items/:id", cart.remove)
	api.DELETE("/cart", cart.clear)

	quotes := &pricingHandler{engine: deps.Pricing, volume: deps.DesignVolume}
	api.GET("/pricing/options", quotes.options)
	api.POST("/pricing/quote", quotes.quote)

	orders := &checkoutHandler{svc: deps.Checkout}
	api.POST("/checkout", orders.place)

	messages := &contactHandler{svc: deps.Contact}
	api.GET("/contact/options", messages.options)
	api.POST("/contact", messages.submit)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
