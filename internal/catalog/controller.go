package catalog

import (
	"context"
	"sync"

	"shopadmin/internal/domain"
	applog "shopadmin/internal/log"
)

// ProductsErrorMessage is the only product-load failure text shown to operators.
const ProductsErrorMessage = "Failed to load products. Please try again later."

// API is the part of the catalog client the list screen needs.
type API interface {
	GetProducts(ctx context.Context, filters *Filters) (domain.Page[domain.Product], error)
	GetCategories(ctx context.Context) ([]domain.Category, error)
}

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseLoaded:
		return "loaded"
	}
	return "unknown"
}

// View is an immutable snapshot of a ListController.
type View struct {
	Phase      Phase
	Message    string
	Filters    Filters
	Products   []domain.Product
	Categories []domain.Category
}

func (v View) Loading() bool { return v.Phase == PhaseLoading }
func (v View) Failed() bool  { return v.Phase == PhaseError }
func (v View) Empty() bool   { return v.Phase == PhaseLoaded && len(v.Products) == 0 }

type Options struct {
	// LatestFilterWins discards responses for filters that were replaced while
	// the request was in flight. Off by default: the last response to arrive
	// wins regardless of which filter it was issued for.
	LatestFilterWins bool
	// Diagnostics receives one low-stock message per qualifying product.
	Diagnostics func(msg string)
}

// ListController owns the filter state and the product view state of one
// product list screen.
type ListController struct {
	api  API
	opts Options

	mu         sync.Mutex
	mounted    bool
	filters    Filters
	phase      Phase
	message    string
	products   []domain.Product
	categories []domain.Category
	seq        uint64
	inflight   int
	idle       chan struct{}
}

func NewListController(api API, opts Options) *ListController {
	if opts.Diagnostics == nil {
		opts.Diagnostics = func(msg string) {
			applog.Warn(nil, "catalog.low_stock", map[string]any{"message": msg})
		}
	}
	idle := make(chan struct{})
	close(idle)
	return &ListController{api: api, opts: opts, phase: PhaseLoading, idle: idle}
}

// Mount loads categories once and products for the empty filter. Later calls
// are no-ops. Fetches outlive ctx cancellation.
func (c *ListController) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	filters := c.filters
	c.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	c.loadCategories(ctx)
	c.loadProducts(ctx, filters)
}

// ChangeFilter merges one edit into the filter state and reloads products.
// An unparsable value leaves the state untouched and returns the parse error.
// On a screen that was never mounted the edit also mounts it, so categories
// load and the single products fetch carries the new filter.
func (c *ListController) ChangeFilter(ctx context.Context, key Key, value string) error {
	c.mu.Lock()
	next, err := Apply(c.filters, key, value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.filters = next
	first := !c.mounted
	c.mounted = true
	c.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	if first {
		c.loadCategories(ctx)
	}
	c.loadProducts(ctx, next)
	return nil
}

func (c *ListController) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Phase:      c.phase,
		Message:    c.message,
		Filters:    c.filters,
		Products:   append([]domain.Product(nil), c.products...),
		Categories: append([]domain.Category(nil), c.categories...),
	}
}

// Wait blocks until no fetch is in flight or ctx is done.
func (c *ListController) Wait(ctx context.Context) error {
	c.mu.Lock()
	idle := c.idle
	c.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// begin and end must be called with mu held.
func (c *ListController) begin() {
	if c.inflight == 0 {
		c.idle = make(chan struct{})
	}
	c.inflight++
}

func (c *ListController) end() {
	c.inflight--
	if c.inflight == 0 {
		close(c.idle)
	}
}

func (c *ListController) finish() {
	c.mu.Lock()
	c.end()
	c.mu.Unlock()
}

func (c *ListController) loadCategories(ctx context.Context) {
	c.mu.Lock()
	c.begin()
	c.mu.Unlock()

	go func() {
		defer c.finish()
		cats, err := c.api.GetCategories(ctx)
		if err != nil {
			applog.Error(nil, "catalog.categories.fail", err, nil)
			return
		}
		c.mu.Lock()
		c.categories = cats
		c.mu.Unlock()
	}()
}

func (c *ListController) loadProducts(ctx context.Context, filters Filters) {
	c.mu.Lock()
	c.seq++
	token := c.seq
	c.phase = PhaseLoading
	c.message = ""
	c.begin()
	c.mu.Unlock()

	go func() {
		defer c.finish()
		page, err := c.api.GetProducts(ctx, &filters)

		c.mu.Lock()
		if c.opts.LatestFilterWins && token != c.seq {
			latest := c.seq
			c.mu.Unlock()
			applog.Info(nil, "catalog.products.stale", map[string]any{"token": token, "latest": latest})
			return
		}
		if err != nil {
			c.phase = PhaseError
			c.message = ProductsErrorMessage
			c.mu.Unlock()
			applog.Error(nil, "catalog.products.fail", err, map[string]any{"query": filters.Values().Encode()})
			return
		}
		c.products = page.Results
		c.phase = PhaseLoaded
		c.mu.Unlock()

		for _, p := range page.Results {
			if IsLowStock(p.StockQuantity) {
				c.opts.Diagnostics(lowStockMessage(p.Name, p.StockQuantity))
			}
		}
	}()
}
