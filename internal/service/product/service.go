package product

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"webgael/internal/domain"
	productrepo "webgael/internal/repository/product"
)

const (
	SortCatalog    = ""
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
	SortNameAsc    = "name_asc"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows and orders the catalog listing. Zero value lists everything in catalog order.
type ListFilter struct {
	Material string
	Color    string
	Sort     string
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.Product, error) {
	less, err := sorter(f.Sort)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	material := strings.TrimSpace(f.Material)
	color := strings.TrimSpace(f.Color)
	products = lo.Filter(products, func(p domain.Product, _ int) bool {
		if material != "" && !strings.EqualFold(p.Material, material) {
			return false
		}
		if color != "" && !lo.ContainsBy(p.Colors, func(c string) bool { return strings.EqualFold(c, color) }) {
			return false
		}
		return true
	})

	if less != nil {
		sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	return s.repo.GetByID(ctx, id)
}

func sorter(key string) (func(a, b domain.Product) bool, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case SortCatalog:
		return nil, nil
	case SortPriceAsc:
		return func(a, b domain.Product) bool { return a.Price.LessThan(b.Price) }, nil
	case SortPriceDesc:
		return func(a, b domain.Product) bool { return a.Price.GreaterThan(b.Price) }, nil
	case SortRatingDesc:
		return func(a, b domain.Product) bool { return a.Rating.GreaterThan(b.Rating) }, nil
	case SortNameAsc:
		return func(a, b domain.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }, nil
	default:
		return nil, fmt.Errorf("%w: unsupported sort %q", domain.ErrValidation, key)
	}
}
