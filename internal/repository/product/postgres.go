package product

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"webgael/internal/domain"
	"webgael/internal/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var productColumns = []string{
	"id", "name", "description", "price::text", "material", "print_time", "rating::text",
	"image", "stock", "colors", "dimensions", "weight", "created_at", "updated_at",
}

// PostgresRepo is the catalog stored in the products table.
type PostgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, log *zap.Logger) *PostgresRepo {
	return &PostgresRepo{pool: pool, logger: logger.OrNop(log)}
}

func (r *PostgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q, args, err := psql.Select(productColumns...).
		From("products").
		OrderBy("sort_order ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("product repo: list", logger.ErrorF(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", logger.ErrorF(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", logger.Int("count", len(result)))
	return result, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q, args, err := psql.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	p, err := scanProduct(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("product repo: get not found", logger.String("product_id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", logger.String("product_id", id), logger.ErrorF(err))
		return nil, err
	}
	return p, nil
}

// Upsert inserts or replaces a product by id. New rows are appended to the
// catalog order.
func (r *PostgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}

	q, args, err := psql.Insert("products").
		Columns("id", "name", "description", "price", "material", "print_time", "rating",
			"image", "stock", "colors", "dimensions", "weight").
		Values(p.ID, p.Name, p.Description, sq.Expr("?::numeric", p.Price.String()), p.Material, p.Time,
			sq.Expr("?::numeric", p.Rating.String()), p.Image, p.Stock, colors, p.Dimensions, p.Weight).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    material = EXCLUDED.material,
    print_time = EXCLUDED.print_time,
    rating = EXCLUDED.rating,
    image = EXCLUDED.image,
    stock = EXCLUDED.stock,
    colors = EXCLUDED.colors,
    dimensions = EXCLUDED.dimensions,
    weight = EXCLUDED.weight,
    updated_at = now()
RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert query: %w", err)
	}

	res := p.Clone()
	res.Colors = colors
	if err := r.pool.QueryRow(ctx, q, args...).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		r.logger.Error("product repo: upsert", logger.String("product_id", p.ID), logger.ErrorF(err))
		return nil, err
	}
	r.logger.Info("product repo: upserted", logger.String("product_id", p.ID), logger.String("name", p.Name))
	return &res, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p      domain.Product
		price  string
		rating string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Material, &p.Time, &rating,
		&p.Image, &p.Stock, &p.Colors, &p.Dimensions, &p.Weight, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("product %s: parse price: %w", p.ID, err)
	}
	if p.Rating, err = decimal.NewFromString(rating); err != nil {
		return nil, fmt.Errorf("product %s: parse rating: %w", p.ID, err)
	}
	return &p, nil
}
