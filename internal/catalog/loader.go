package catalog

import (
	"context"
	"math/rand/v2"

	"go.uber.org/zap"
)

// Load never fails: an unreadable or malformed dataset is logged and
// yields an empty catalog. Records repeating an earlier id are dropped.
func Load(ctx context.Context, src Source, log *zap.Logger) []Product {
	products, err := src.Products(ctx)
	if err != nil {
		log.Error("load products failed", zap.String("source", src.String()), zap.Error(err))
		return []Product{}
	}

	seen := make(map[int]struct{}, len(products))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			log.Warn("duplicate product id dropped", zap.Int("id", p.ID), zap.String("title", p.Title))
			continue
		}
		seen[p.ID] = struct{}{}
		p.Quantity = 0
		out = append(out, p)
	}
	return out
}

// RandomizeQuantities draws each quantity independently from [0, MaxQuantity).
// A nil r uses the process-wide generator.
func RandomizeQuantities(products []Product, r *rand.Rand) {
	draw := rand.IntN
	if r != nil {
		draw = r.IntN
	}
	for i := range products {
		products[i].Quantity = draw(MaxQuantity)
	}
}
