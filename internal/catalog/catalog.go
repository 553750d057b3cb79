package catalog

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"MiniCatalog/internal/search"
)

var indexedFields = []string{"title", "description"}

type Options struct {
	Source  Source
	Engine  search.Engine
	Rand    *rand.Rand
	Log     *zap.Logger
	Metrics *Metrics
}

// Catalog is an immutable snapshot of the product table and its search
// index. All methods are safe for concurrent use.
type Catalog struct {
	products []Product
	byID     map[int]int
	idx      search.Index
	log      *zap.Logger
	metrics  *Metrics
}

// New runs Load, RandomizeQuantities and the index build in that order.
// It never fails; a broken dataset gives an empty catalog and a failed
// index build gives a catalog whose searches match nothing.
func New(ctx context.Context, opts Options) *Catalog {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	src := opts.Source
	if src == nil {
		src = BundledSource()
	}
	engine := opts.Engine
	if engine == "" {
		engine = search.EngineBleve
	}

	start := time.Now()

	products := Load(ctx, src, log)
	RandomizeQuantities(products, opts.Rand)

	byID := make(map[int]int, len(products))
	docs := make([]search.Document, len(products))
	for i, p := range products {
		byID[p.ID] = i
		docs[i] = search.Document{
			Ref: strconv.Itoa(p.ID),
			Fields: []search.Field{
				{Name: "title", Text: p.Title},
				{Name: "description", Text: p.Description},
			},
		}
	}

	idx, err := search.Build(engine, indexedFields, docs)
	if err != nil {
		log.Error("build search index failed", zap.String("engine", string(engine)), zap.Error(err))
		idx = search.Empty()
	}

	c := &Catalog{
		products: products,
		byID:     byID,
		idx:      idx,
		log:      log,
		metrics:  opts.Metrics,
	}

	took := time.Since(start)
	c.metrics.observeBuild(len(products), took)
	log.Info("catalog ready",
		zap.String("source", src.String()),
		zap.String("engine", string(engine)),
		zap.Int("products", len(products)),
		zap.Int("indexed", idx.Len()),
		zap.Duration("duration", took),
	)
	return c
}

func (c *Catalog) Len() int { return len(c.products) }

// Product returns the product with the given id. Any id not in the table,
// including a zero value from a failed parse, is a miss.
func (c *Catalog) Product(id int) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Products returns the whole catalog in load order when query is empty,
// otherwise the search hits best match first.
func (c *Catalog) Products(ctx context.Context, query string) ([]Product, error) {
	if query == "" {
		out := make([]Product, len(c.products))
		copy(out, c.products)
		return out, nil
	}

	refs, err := c.idx.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(refs))
	for _, ref := range refs {
		id, err := strconv.Atoi(ref)
		if err != nil {
			c.log.Warn("unresolvable search ref", zap.String("ref", ref))
			continue
		}
		p, ok := c.Product(id)
		if !ok {
			c.log.Warn("unresolvable search ref", zap.String("ref", ref))
			continue
		}
		out = append(out, p)
	}

	c.metrics.observeSearch(len(out))
	return out, nil
}

// Provider builds its Catalog once, on the first call to Catalog.
// Concurrent first callers block until that single build completes.
type Provider struct {
	get func() *Catalog
}

func NewProvider(opts Options) *Provider {
	return &Provider{get: sync.OnceValue(func() *Catalog {
		return New(context.Background(), opts)
	})}
}

func (p *Provider) Catalog() *Catalog { return p.get() }

var defaultProvider = sync.OnceValue(func() *Provider {
	return NewProvider(Options{Log: zap.L()})
})

// Default returns the process-wide catalog built from the bundled dataset.
func Default() *Catalog { return defaultProvider().Catalog() }
