package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"webgael/internal/domain"
	"webgael/internal/logger"
	cartsvc "webgael/internal/service/cart"
)

type cartStore interface {
	Snapshot(ctx context.Context) (cartsvc.Snapshot, error)
	Drain(ctx context.Context) (cartsvc.Snapshot, error)
}

// Service simulates order placement: no payment is taken, the order is
// confirmed after a fixed delay and the cart is emptied.
type Service struct {
	cart   cartStore
	delay  time.Duration
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

func New(cart cartStore, delay time.Duration, log *zap.Logger) *Service {
	return &Service{
		cart:   cart,
		delay:  delay,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
		logger: logger.OrNop(log),
	}
}

func Validate(d domain.CustomerDetails) error {
	errs := domain.FieldErrors{}
	errs.Require("name", d.Name, "El nombre es obligatorio")
	errs.Require("email", d.Email, "El email es obligatorio")
	if _, missing := errs["email"]; !missing && !domain.ValidEmail(d.Email) {
		errs["email"] = "El email no es válido"
	}
	errs.Require("phone", d.Phone, "El teléfono es obligatorio")
	errs.Require("address", d.Address, "La dirección es obligatoria")
	errs.Require("city", d.City, "La ciudad es obligatoria")
	errs.Require("postalCode", d.PostalCode, "El código postal es obligatorio")
	return errs.OrNil()
}

// Place confirms an order for the cart contents at the end of the delay. The
// cart is drained in one step, so items added during the delay are ordered
// and items added afterwards stay in the cart. Lines whose product has left
// the catalog are dropped.
func (s *Service) Place(ctx context.Context, details domain.CustomerDetails) (*domain.Order, error) {
	if err := Validate(details); err != nil {
		return nil, err
	}

	snap, err := s.cart.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(orderable(snap)) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	drained, err := s.cart.Drain(ctx)
	if err != nil {
		return nil, fmt.Errorf("drain cart: %w", err)
	}
	lines := orderable(drained)
	if dropped := len(drained.Items) - len(lines); dropped > 0 {
		s.logger.Warn("checkout: dropped lines without product", logger.Int("lines", dropped))
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	summary := cartsvc.Summarize(lines)
	order := &domain.Order{
		ID:       s.newID(),
		Customer: details,
		Lines:    summary.Items,
		Total:    summary.Total,
		Count:    summary.Count,
		PlacedAt: s.now(),
	}

	s.logger.Info("checkout: order placed",
		logger.String("order_id", order.ID),
		logger.Int("count", order.Count),
		logger.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

func orderable(snap cartsvc.Snapshot) []domain.CartLine {
	return lo.Filter(snap.Items, func(l domain.CartLine, _ int) bool { return l.Product != nil })
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
