package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"shopadmin/internal/catalog"
	"shopadmin/internal/domain"
)

// ProductInput is the writable part of a product.
type ProductInput struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      int64           `json:"category"`
	StockQuantity int             `json:"stock_quantity"`
	SKU           string          `json:"sku"`
	IsActive      bool            `json:"is_active"`
}

// GetProducts lists products matching filters; nil means unfiltered.
func (c *HTTPClient) GetProducts(ctx context.Context, filters *catalog.Filters) (domain.Page[domain.Product], error) {
	var q url.Values
	if filters != nil {
		q = filters.Values()
	}
	var page domain.Page[domain.Product]
	err := c.do(ctx, http.MethodGet, "/products/", q, nil, &page)
	return page, err
}

func (c *HTTPClient) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, http.MethodGet, idPath("/products/", id, ""), nil, nil, &p)
	return p, err
}

func (c *HTTPClient) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, http.MethodPost, "/products/", nil, in, &p)
	return p, err
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id int64, in ProductInput) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, http.MethodPut, idPath("/products/", id, ""), nil, in, &p)
	return p, err
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/products/", id, ""), nil, nil, nil)
}

func (c *HTTPClient) UpdateStock(ctx context.Context, id int64, quantity int) (domain.StockAck, error) {
	var ack domain.StockAck
	body := map[string]int{"stock_quantity": quantity}
	err := c.do(ctx, http.MethodPost, idPath("/products/", id, "update_stock/"), nil, body, &ack)
	return ack, err
}

// GetLowStockProducts lists products at or below threshold; threshold <= 0
// leaves the server default.
func (c *HTTPClient) GetLowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error) {
	var q url.Values
	if threshold > 0 {
		q = url.Values{"threshold": {strconv.Itoa(threshold)}}
	}
	raw, err := c.getList(ctx, "/products/low_stock/", q)
	if err != nil {
		return nil, err
	}
	return listOf[domain.Product](raw)
}

func (c *HTTPClient) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	raw, err := c.getList(ctx, "/search/", url.Values{"q": {query}})
	if err != nil {
		return nil, err
	}
	return listOf[domain.Product](raw)
}
