package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"webgael/internal/config"
	"webgael/internal/db"
	"webgael/internal/httpserver"
	"webgael/internal/logger"
	cartrepo "webgael/internal/repository/cart"
	productrepo "webgael/internal/repository/product"
	"webgael/internal/seed"
	cartsvc "webgael/internal/service/cart"
	"webgael/internal/service/checkout"
	"webgael/internal/service/contact"
	"webgael/internal/service/pricing"
	productsvc "webgael/internal/service/product"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("api stopped", logger.ErrorF(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, quit := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer quit()

	engine := pricing.NewEngine()
	// The opening quote checks the configured design volume against the tables.
	if _, err := pricing.NewEstimator(engine, cfg.DesignVolume(),
		pricing.WithOnSelection(func(material, color string) {
			log.Debug("pricing: default selection", logger.String("material", material), logger.String("color", color))
		}),
		pricing.WithOnQuote(func(price decimal.Decimal, displayTime string) {
			log.Info("pricing: default quote", logger.String("price", price.StringFixed(2)), logger.String("time", displayTime))
		}),
	); err != nil {
		return fmt.Errorf("init pricing: %w", err)
	}

	deps := httpserver.Deps{
		Pricing:      engine,
		DesignVolume: cfg.DesignVolume(),
		Contact:      contact.New(cfg.ContactDelay, log),
	}

	var catalog productrepo.Repository
	switch strings.ToLower(cfg.CatalogBackend) {
	case config.CatalogPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString, log)
		if err != nil {
			return fmt.Errorf("connect to db: %w", err)
		}
		defer pool.Close()
		catalog = productrepo.NewPostgres(pool, log)
		deps.DB = pool
	default:
		catalog = productrepo.NewMemory(seed.Products(time.Now().UTC()), log)
	}

	cart := cartsvc.New(cartrepo.NewMemory(log), catalog, log)
	unsubscribe := cart.Subscribe(func(s cartsvc.Snapshot) {
		log.Debug("cart changed",
			logger.Int("lines", len(s.Items)),
			logger.Int("count", s.Count),
			logger.String("total", s.Total.StringFixed(2)),
		)
	})
	defer unsubscribe()

	deps.Products = productsvc.New(catalog)
	deps.Cart = cart
	deps.Checkout = checkout.New(cart, cfg.CheckoutDelay, log)

	srv, err := httpserver.New(cfg.HTTPAddr, log, deps, cfg.CORSAllowedOrigins)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		log.Info("shutting down")
		// do not inherit cancellation from egCtx
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
