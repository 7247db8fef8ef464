package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"webgael/internal/domain"
)

// ProductWriter persists catalog products.
type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type productSeed struct {
	ID          string
	Name        string
	Description string
	Price       string
	Material    string
	Time        string
	Rating      string
	Image       string
	Stock       int
	Colors      []string
	Dimensions  string
	Weight      string
}

var catalog = []productSeed{
	{
		ID:          "1",
		Name:        "Soporte para auriculares",
		Description: "Soporte elegante y funcional para tus auriculares. Diseño minimalista que mantiene tus auriculares organizados y protegidos. Base estable con peso equilibrado.",
		Price:       "12.99",
		Material:    "PLA",
		Time:        "8h",
		Rating:      "4.8",
		Image:       "https://images.pexels.com/photos/3825517/pexels-photo-3825517.jpeg?auto=compress&cs=tinysrgb&w=800",
		Stock:       25,
		Colors:      []string{"Negro", "Blanco", "Gris", "Azul"},
		Dimensions:  "120x100x250mm",
		Weight:      "150g",
	},
	{
		ID:          "2",
		Name:        "Organizador de cables",
		Description: "Sistema de organización de cables con múltiples ranuras. Perfecto para escritorio u oficina. Mantén tus cables ordenados y siempre a mano.",
		Price:       "8.50",
		Material:    "PETG",
		Time:        "6h",
		Rating:      "4.9",
		Image:       "https://images.pexels.com/photos/1649771/pexels-photo-1649771.jpeg?auto=compress&cs=tinysrgb&w=800",
		Stock:       40,
		Colors:      []string{"Negro", "Blanco", "Verde", "Naranja"},
		Dimensions:  "150x80x40mm",
		Weight:      "80g",
	},
	{
		ID:          "3",
		Name:        "Maceta geométrica",
		Description: "Maceta con diseño geométrico moderno. Ideal para plantas pequeñas y suculentas. Incluye plato inferior para drenaje.",
		Price:       "15.99",
		Material:    "PLA",
		Time:        "10h",
		Rating:      "4.7",
		Image:       "https://images.pexels.com/photos/1005058/pexels-photo-1005058.jpeg?auto=compress&cs=tinysrgb&w=800",
		Stock:       30,
		Colors:      []string{"Terracota", "Blanco", "Verde Menta", "Rosa"},
		Dimensions:  "100x100x120mm",
		Weight:      "120g",
	},
	{
		ID:          "4",
		Name:        "Soporte para móvil",
		Description: "Soporte ajustable para smartphone. Compatible con todos los tamaños de móviles. Ángulo de visión ajustable para máxima comodidad.",
		Price:       "9.99",
		Material:    "PETG",
		Time:        "5h",
		Rating:      "4.6",
		Image:       "https://images.pexels.com/photos/699122/pexels-photo-699122.jpeg?auto=compress&cs=tinysrgb&w=800",
		Stock:       50,
		Colors:      []string{"Negro", "Blanco", "Rojo", "Azul Marino"},
		Dimensions:  "80x70x90mm",
		Weight:      "65g",
	},
	{
		ID:          "5",
		Name:        "Figura decorativa",
		Description: "Escultura artística de alta definición impresa en resina. Detalles excepcionales y acabado premium. Pieza única para decoración.",
		Price:       "22.50",
		Material:    "Resina",
		Time:        "12h",
		Rating:      "5.0",
		Image:       "https://images.pexels.com/photos/1191710/pexels-photo-1191710.jpeg?auto=compress&cs=tinysrgb&w=800",
		Stock:       15,
		Colors:      []string{"Gris Piedra", "Blanco Mármol", "Negro Mate"},
		Dimensions:  "150x150x200mm",
		Weight:      "280g",
	},
	{
		ID:          "6",
		Name:        "Caja organizadora",
		Description: "Caja modular con compartimentos personalizables. Perfecta para herramientas, material de oficina o hobby. Sistema apilable.",
		Price:       "18.99",
		Material:    "ABS",
		Time:        "14h",
		Rating:      "4.8",
		Image:       "https://images.pexels.com/photos/4792285/pexels-photo-4792285.jpeg?auto=compress&cs=tinysrgb&w=800",
		Stock:       20,
		Colors:      []string{"Negro", "Gris Oscuro", "Azul", "Rojo"},
		Dimensions:  "200x150x80mm",
		Weight:      "220g",
	},
}

// Products returns the reference catalog stamped with the given time.
func Products(now time.Time) []domain.Product {
	out := make([]domain.Product, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, domain.Product{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Price:       decimal.RequireFromString(s.Price),
			Material:    s.Material,
			Time:        s.Time,
			Rating:      decimal.RequireFromString(s.Rating),
			Image:       s.Image,
			Stock:       s.Stock,
			Colors:      append([]string(nil), s.Colors...),
			Dimensions:  s.Dimensions,
			Weight:      s.Weight,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return out
}

// Apply upserts the reference catalog. It is idempotent.
func Apply(ctx context.Context, w ProductWriter) (int, error) {
	products := Products(time.Now().UTC())
	for _, p := range products {
		if _, err := w.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return len(products), nil
}
