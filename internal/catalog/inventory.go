package catalog

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"shopadmin/internal/domain"
	applog "shopadmin/internal/log"
)

// InventoryAPI is the part of the catalog client the inventory screen needs.
type InventoryAPI interface {
	GetProducts(ctx context.Context, filters *Filters) (domain.Page[domain.Product], error)
	UpdateStock(ctx context.Context, productID int64, quantity int) (domain.StockAck, error)
	GetLowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error)
}

type InventoryView struct {
	Loading  bool
	Products []domain.Product
	LowStock []domain.Product
	Updating map[int64]bool
}

// InventoryEditor loads the unfiltered product collection and commits
// per-row stock edits, reloading everything after each successful commit.
type InventoryEditor struct {
	api InventoryAPI

	mu       sync.Mutex
	loaded   bool
	inflight int
	products []domain.Product
	lowStock []domain.Product
	updating map[int64]bool
}

func NewInventoryEditor(api InventoryAPI) *InventoryEditor {
	return &InventoryEditor{api: api, updating: map[int64]bool{}}
}

// EnsureLoaded performs the first Load; later calls do nothing.
func (e *InventoryEditor) EnsureLoaded(ctx context.Context) {
	e.mu.Lock()
	first := !e.loaded
	e.loaded = true
	e.mu.Unlock()
	if first {
		e.Load(ctx)
	}
}

// Load replaces the rows with a fresh unfiltered fetch. On failure the
// previous rows stay and the error is only logged.
func (e *InventoryEditor) Load(ctx context.Context) {
	e.mu.Lock()
	e.inflight++
	e.mu.Unlock()

	page, err := e.api.GetProducts(ctx, nil)

	e.mu.Lock()
	e.inflight--
	if err == nil {
		e.products = page.Results
	}
	e.mu.Unlock()
	if err != nil {
		applog.Error(nil, "inventory.products.fail", err, nil)
		return
	}

	low, err := e.api.GetLowStockProducts(ctx, LowStockThreshold)
	if err != nil {
		applog.Error(nil, "inventory.low_stock.fail", err, nil)
		return
	}
	e.mu.Lock()
	e.lowStock = low
	e.mu.Unlock()
}

// SubmitStockUpdate commits raw as the new stock of productID. Input that is
// not a non-negative integer is dropped without a call or any feedback.
func (e *InventoryEditor) SubmitStockUpdate(ctx context.Context, productID int64, raw string) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 0 {
		return
	}

	e.setUpdating(productID, true)
	ack, err := e.api.UpdateStock(ctx, productID, qty)
	e.setUpdating(productID, false)
	if err != nil {
		applog.Error(nil, "inventory.stock.fail", err, map[string]any{"product_id": productID, "qty": qty})
		return
	}
	applog.Info(nil, "inventory.stock.updated", map[string]any{"product_id": productID, "qty": qty, "status": ack.Status})
	e.Load(ctx)
}

func (e *InventoryEditor) setUpdating(id int64, on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if on {
		e.updating[id] = true
	} else {
		delete(e.updating, id)
	}
}

func (e *InventoryEditor) Snapshot() InventoryView {
	e.mu.Lock()
	defer e.mu.Unlock()
	up := make(map[int64]bool, len(e.updating))
	for id, v := range e.updating {
		up[id] = v
	}
	return InventoryView{
		Loading:  e.inflight > 0,
		Products: append([]domain.Product(nil), e.products...),
		LowStock: append([]domain.Product(nil), e.lowStock...),
		Updating: up,
	}
}
