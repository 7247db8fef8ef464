package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"webgael/internal/domain"
	"webgael/internal/logger"
	cartrepo "webgael/internal/repository/cart"
)

// Service is the cart store: line items joined against the catalog, with
// aggregates computed on demand and change notification after every mutation.
type Service struct {
	repo        cartRepo
	productRepo productRepo
	logger      *zap.Logger

	mu          sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

type cartRepo interface {
	List(ctx context.Context) ([]domain.CartItem, error)
	AddOrMerge(ctx context.Context, in cartrepo.AddItemInput) (domain.CartItem, bool, error)
	SetQuantity(ctx context.Context, id string, quantity int) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
	Take(ctx context.Context) ([]domain.CartItem, error)
	Clear(ctx context.Context) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Snapshot is a consistent view of the cart: Total and Count are derived from Items.
type Snapshot struct {
	Items []domain.CartLine `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

func New(repo cartrepo.Repository, productRepo productRepo, log *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		productRepo: productRepo,
		logger:      logger.OrNop(log),
		subscribers: make(map[int]func(Snapshot)),
	}
}

type AddInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Notes     string `json:"notes,omitempty"`
}

// ListItems returns the cart items in insertion order, each joined with its
// product. Items whose product is gone keep a nil Product.
func (s *Service) ListItems(ctx context.Context) ([]domain.CartLine, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, items)
}

func (s *Service) join(ctx context.Context, items []domain.CartItem) ([]domain.CartLine, error) {
	lines := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		line := domain.CartLine{CartItem: item}
		p, err := s.productRepo.GetByID(ctx, item.ProductID)
		switch {
		case err == nil:
			line.Product = p
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("cart: dangling product reference",
				logger.String("item_id", item.ID),
				logger.String("product_id", item.ProductID),
			)
		default:
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// AddItem adds quantity of a product in the given color, merging into the
// existing line for the same (product, color).
func (s *Service) AddItem(ctx context.Context, in AddInput) (*domain.CartItem, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, fmt.Errorf("%w: productId required", domain.ErrValidation)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	if s.productRepo == nil {
		return nil, errors.New("product repository unavailable")
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
		}
		return nil, err
	}
	// Colors outside the product's list are accepted.
	if !product.HasColor(in.Color) {
		s.logger.Warn("cart: color not offered for product",
			logger.String("product_id", productID),
			logger.String("color", in.Color),
		)
	}

	item, merged, err := s.repo.AddOrMerge(ctx, cartrepo.AddItemInput{
		ProductID: productID,
		Color:     in.Color,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("cart: item added",
		logger.String("item_id", item.ID),
		logger.String("product_id", productID),
		logger.String("color", in.Color),
		logger.Int("quantity", item.Quantity),
		logger.Bool("merged", merged),
	)
	s.publish(ctx)
	return &item, nil
}

// UpdateQuantity sets an item's quantity. A quantity <= 0 removes the item.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	removed, err := s.repo.SetQuantity(ctx, itemID, quantity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("cart item %s: %w", itemID, domain.ErrNotFound)
		}
		return err
	}
	s.logger.Info("cart: quantity updated",
		logger.String("item_id", itemID),
		logger.Int("quantity", max(quantity, 0)),
		logger.Bool("removed", removed),
	)
	s.publish(ctx)
	return nil
}

// RemoveItem deletes an item and reports whether it existed.
func (s *Service) RemoveItem(ctx context.Context, itemID string) (bool, error) {
	removed, err := s.repo.Remove(ctx, itemID)
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.Info("cart: item removed", logger.String("item_id", itemID))
		s.publish(ctx)
	}
	return removed, nil
}

func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("cart: cleared")
	s.publish(ctx)
	return nil
}

// Drain empties the cart in one step and returns what it held. Items added
// after the drain stay in the cart.
func (s *Service) Drain(ctx context.Context) (Snapshot, error) {
	items, err := s.repo.Take(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	lines, err := s.join(ctx, items)
	if err != nil {
		s.restore(ctx, items)
		return Snapshot{}, err
	}
	snap := Summarize(lines)
	s.logger.Info("cart: drained", logger.Int("items", len(lines)), logger.Int("count", snap.Count))
	s.publish(ctx)
	return snap, nil
}

// restore puts drained items back, merging with anything added since.
func (s *Service) restore(ctx context.Context, items []domain.CartItem) {
	for _, item := range items {
		_, _, err := s.repo.AddOrMerge(ctx, cartrepo.AddItemInput{
			ProductID: item.ProductID,
			Color:     item.Color,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
		if err != nil {
			s.logger.Error("cart: restore drained item", logger.ErrorF(err), logger.String("item_id", item.ID))
		}
	}
}

// Total is the sum of price × quantity; dangling lines contribute zero.
func (s *Service) Total(ctx context.Context) (decimal.Decimal, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return snap.Total, nil
}

// Count is the sum of quantities.
func (s *Service) Count(ctx context.Context) (int, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.Count, nil
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	lines, err := s.ListItems(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Summarize(lines), nil
}

// Summarize derives the cart aggregates from a listing.
func Summarize(lines []domain.CartLine) Snapshot {
	total := lo.Reduce(lines, func(acc decimal.Decimal, l domain.CartLine, _ int) decimal.Decimal {
		return acc.Add(l.Subtotal())
	}, decimal.Zero)
	count := lo.SumBy(lines, func(l domain.CartLine) int { return l.Quantity })
	return Snapshot{Items: lines, Total: total, Count: count}
}

// Subscribe registers fn to receive the cart snapshot after every mutation.
// The returned func unregisters it.
func (s *Service) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribers == nil {
		s.subscribers = make(map[int]func(Snapshot))
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Service) publish(ctx context.Context) {
	s.mu.Lock()
	subs := lo.Values(s.subscribers)
	s.mu.Unlock()
	if len(subs) == 0 {
		return
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.Error("cart: snapshot for subscribers", logger.ErrorF(err))
		return
	}
	for _, fn := range subs {
		fn(snap)
	}
}
