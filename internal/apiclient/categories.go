package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"shopadmin/internal/domain"
)

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parent      *int64 `json:"parent,omitempty"`
}

type ReviewInput struct {
	Product int64  `json:"product"`
	User    int64  `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (c *HTTPClient) GetCategories(ctx context.Context) ([]domain.Category, error) {
	raw, err := c.getList(ctx, "/categories/", nil)
	if err != nil {
		return nil, err
	}
	return listOf[domain.Category](raw)
}

func (c *HTTPClient) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	var cat domain.Category
	err := c.do(ctx, http.MethodGet, idPath("/categories/", id, ""), nil, nil, &cat)
	return cat, err
}

func (c *HTTPClient) CreateCategory(ctx context.Context, in CategoryInput) (domain.Category, error) {
	var cat domain.Category
	err := c.do(ctx, http.MethodPost, "/categories/", nil, in, &cat)
	return cat, err
}

// GetReviews lists reviews, limited to one product when productID > 0.
func (c *HTTPClient) GetReviews(ctx context.Context, productID int64) ([]domain.ProductReview, error) {
	var q url.Values
	if productID > 0 {
		q = url.Values{"product": {strconv.FormatInt(productID, 10)}}
	}
	raw, err := c.getList(ctx, "/reviews/", q)
	if err != nil {
		return nil, err
	}
	return listOf[domain.ProductReview](raw)
}

func (c *HTTPClient) CreateReview(ctx context.Context, in ReviewInput) (domain.ProductReview, error) {
	var r domain.ProductReview
	err := c.do(ctx, http.MethodPost, "/reviews/", nil, in, &r)
	return r, err
}
