package pricing

import (
	"github.com/shopspring/decimal"

	"webgael/internal/domain"
)

var palette = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F"}

func material(id, name, price, hours, description string) domain.Material {
	return domain.Material{
		ID:                   id,
		Name:                 name,
		BasePricePerCM3:      decimal.RequireFromString(price),
		TimeMultiplierPerCM3: decimal.RequireFromString(hours),
		Colors:               append([]string(nil), palette...),
		Description:          description,
	}
}

func finish(id, name, price, hours string) domain.Finish {
	return domain.Finish{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Hours: decimal.RequireFromString(hours),
	}
}

// DefaultMaterials are the printable materials offered for custom designs.
func DefaultMaterials() []domain.Material {
	return []domain.Material{
		material("pla", "PLA", "0.15", "0.8", "Material biodegradable, fácil de imprimir, ideal para prototipos"),
		material("petg", "PETG", "0.18", "0.9", "Resistente, transparente, perfecto para piezas funcionales"),
		material("abs", "ABS", "0.20", "1.0", "Muy resistente, ideal para piezas mecánicas"),
		material("resina", "Resina", "0.35", "0.6", "Alta resolución, acabado perfecto, ideal para miniaturas"),
	}
}

// DefaultFinishes are the post-processing options, cheapest first.
func DefaultFinishes() []domain.Finish {
	return []domain.Finish{
		finish("raw", "Sin acabado", "0", "0"),
		finish("sanded", "Lijado básico", "5", "0.5"),
		finish("polished", "Pulido", "15", "1"),
		finish("painted", "Pintado", "25", "2"),
	}
}

// LayerHeights are the selectable layer heights in millimetres. They do not affect the quote.
func LayerHeights() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.RequireFromString("0.1"),
		decimal.RequireFromString("0.2"),
		decimal.RequireFromString("0.3"),
	}
}
