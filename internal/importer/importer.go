package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"webgael/internal/domain"
	"webgael/internal/logger"
	"webgael/internal/seed"
)

// Columns is the header an import file must carry. Colors are "|"-separated.
var Columns = []string{"id", "name", "description", "price", "material", "time", "rating", "image", "stock", "colors", "dimensions", "weight"}

// CSVImporter reads catalog CSV exports and inserts/updates products.
type CSVImporter struct {
	reader *csv.Reader
	writer seed.ProductWriter
	logger *zap.Logger
}

func NewCSVImporter(r io.Reader, w seed.ProductWriter, log *zap.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader: csvr,
		writer: w,
		logger: logger.OrNop(log),
	}
}

type csvRow struct {
	line       int
	ID         string
	Name       string
	Desc       string
	Price      string
	Material   string
	Time       string
	Rating     string
	Image      string
	Stock      string
	Colors     []string
	Dimensions string
	Weight     string
}

// Run parses CSV rows and upserts one product per named row. A row with no
// id and no name but with colors extends the previous product's colors.
// Rows with no name are skipped.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if missing := lo.Without(Columns, lo.Keys(index)...); lo.Contains(missing, "id") || lo.Contains(missing, "name") || lo.Contains(missing, "price") {
		return 0, fmt.Errorf("%w: header missing required columns %v", domain.ErrValidation, missing)
	}

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row := parseRow(record, index)
		row.line = line

		switch {
		case row.ID == "" && row.Name == "" && len(row.Colors) > 0:
			if current != nil {
				current.Colors = append(current.Colors, row.Colors...)
			}
			continue
		case row.Name == "":
			i.logger.Warn("importer: row without name skipped", logger.Int("line", line), logger.String("id", row.ID))
			continue
		}

		if current != nil {
			if err := i.save(ctx, current); err != nil {
				return imported, err
			}
			imported++
		}
		current = row
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	i.logger.Info("importer: done", logger.Int("imported", imported))
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	p, err := row.product()
	if err != nil {
		return fmt.Errorf("line %d: %w", row.line, err)
	}
	if _, err := i.writer.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.ID, err)
	}
	return nil
}

func (r *csvRow) product() (domain.Product, error) {
	if r.ID == "" {
		return domain.Product{}, fmt.Errorf("%w: product %q has no id", domain.ErrValidation, r.Name)
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil || price.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: invalid price %q for %s", domain.ErrValidation, r.Price, r.ID)
	}
	rating := decimal.Zero
	if r.Rating != "" {
		rating, err = decimal.NewFromString(r.Rating)
		if err != nil || rating.IsNegative() || rating.GreaterThan(decimal.NewFromInt(5)) {
			return domain.Product{}, fmt.Errorf("%w: invalid rating %q for %s", domain.ErrValidation, r.Rating, r.ID)
		}
	}
	stock := 0
	if r.Stock != "" {
		stock, err = strconv.Atoi(r.Stock)
		if err != nil || stock < 0 {
			return domain.Product{}, fmt.Errorf("%w: invalid stock %q for %s", domain.ErrValidation, r.Stock, r.ID)
		}
	}

	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Desc,
		Price:       price,
		Material:    r.Material,
		Time:        r.Time,
		Rating:      rating,
		Image:       r.Image,
		Stock:       stock,
		Colors:      lo.Uniq(r.Colors),
		Dimensions:  r.Dimensions,
		Weight:      r.Weight,
	}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	return &csvRow{
		ID:         pick(record, index, "id"),
		Name:       pick(record, index, "name"),
		Desc:       pick(record, index, "description"),
		Price:      pick(record, index, "price"),
		Material:   pick(record, index, "material"),
		Time:       pick(record, index, "time"),
		Rating:     pick(record, index, "rating"),
		Image:      pick(record, index, "image"),
		Stock:      pick(record, index, "stock"),
		Colors:     splitColors(pick(record, index, "colors")),
		Dimensions: pick(record, index, "dimensions"),
		Weight:     pick(record, index, "weight"),
	}
}

func splitColors(s string) []string {
	parts := lo.Map(strings.Split(s, "|"), func(c string, _ int) string { return strings.TrimSpace(c) })
	return lo.Compact(parts)
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
