package services

import (
	"errors"
	"fmt"
	"strings"

	"shopadmin/internal/domain"
	"shopadmin/internal/repos"
	"shopadmin/internal/validate"
)

// ErrInvalid marks input that failed validation; the wrapped text is safe to
// show to API clients.
var ErrInvalid = errors.New("invalid input")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// Paging clamps a requested page number and size to the allowed range.
func Paging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// ListProducts returns one page of products and the total match count.
func (s *CatalogService) ListProducts(q repos.ProductQuery, page, pageSize int) ([]domain.Product, int, error) {
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return nil, 0, fmt.Errorf("%w: min_price is greater than max_price", ErrInvalid)
	}
	page, pageSize = Paging(page, pageSize)
	q.Limit, q.Offset = pageSize, (page-1)*pageSize
	items, err := s.Prods.List(q)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Prods.Count(q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *CatalogService) GetProduct(id int64) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) CreateProduct(w repos.ProductWrite) (domain.Product, error) {
	if err := s.validateProduct(&w); err != nil {
		return domain.Product{}, err
	}
	id, err := s.Prods.Create(w)
	if err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(id)
}

func (s *CatalogService) UpdateProduct(id int64, w repos.ProductWrite) (domain.Product, error) {
	if err := s.validateProduct(&w); err != nil {
		return domain.Product{}, err
	}
	if err := s.Prods.Update(id, w); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(id)
}

func (s *CatalogService) DeleteProduct(id int64) error {
	return s.Prods.Delete(id)
}

func (s *CatalogService) validateProduct(w *repos.ProductWrite) error {
	name, ok := validate.Name(w.Name)
	if !ok {
		return fmt.Errorf("%w: name is required and at most 120 characters", ErrInvalid)
	}
	sku, ok := validate.SKU(w.SKU)
	if !ok {
		return fmt.Errorf("%w: sku must be 1-32 letters, digits, dashes or underscores", ErrInvalid)
	}
	w.Name, w.SKU = name, sku
	switch {
	case w.Price.IsNegative():
		return fmt.Errorf("%w: price cannot be negative", ErrInvalid)
	case w.StockQuantity < 0:
		return fmt.Errorf("%w: stock_quantity cannot be negative", ErrInvalid)
	}
	if _, err := s.Cats.Get(w.CategoryID); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return fmt.Errorf("%w: category %d does not exist", ErrInvalid, w.CategoryID)
		}
		return err
	}
	return nil
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) GetCategory(id int64) (domain.Category, error) {
	return s.Cats.Get(id)
}

func (s *CatalogService) CreateCategory(name, description string, parent *int64) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if parent != nil {
		if _, err := s.Cats.Get(*parent); err != nil {
			if errors.Is(err, repos.ErrNotFound) {
				return domain.Category{}, fmt.Errorf("%w: parent %d does not exist", ErrInvalid, *parent)
			}
			return domain.Category{}, err
		}
	}
	id, err := s.Cats.Create(name, strings.TrimSpace(description), parent)
	if err != nil {
		return domain.Category{}, err
	}
	return s.Cats.Get(id)
}

// Search matches active products by name, description or sku.
func (s *CatalogService) Search(q string, page, pageSize int) ([]domain.Product, int, error) {
	active := true
	return s.ListProducts(repos.ProductQuery{Search: q, IsActive: &active}, page, pageSize)
}
