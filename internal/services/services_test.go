package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"shopadmin/internal/domain"
	"shopadmin/internal/repos"
	"shopadmin/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:", true)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func catalogSvc(db *sqlx.DB) *services.CatalogService {
	return services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db))
}

func TestPaging(t *testing.T) {
	cases := []struct{ page, size, wantPage, wantSize int }{
		{0, 0, 1, services.DefaultPageSize},
		{3, 10, 3, 10},
		{-2, 1000, 1, services.MaxPageSize},
	}
	for _, tc := range cases {
		p, s := services.Paging(tc.page, tc.size)
		if p != tc.wantPage || s != tc.wantSize {
			t.Errorf("Paging(%d,%d) = %d,%d", tc.page, tc.size, p, s)
		}
	}
}

func TestListProductsPagesAndCounts(t *testing.T) {
	svc := catalogSvc(memdb(t))
	items, total, err := svc.ListProducts(repos.ProductQuery{}, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if total != 8 || len(items) != 3 {
		t.Fatalf("want 3 of 8, got %d of %d", len(items), total)
	}
	if items[0].Name != "Notebook Pack" {
		t.Fatalf("page 2 should start at the 4th product by name, got %s", items[0].Name)
	}
}

func TestListProductsRejectsInvertedPriceRange(t *testing.T) {
	svc := catalogSvc(memdb(t))
	lo, hi := decimal.RequireFromString("50"), decimal.RequireFromString("10")
	_, _, err := svc.ListProducts(repos.ProductQuery{MinPrice: &lo, MaxPrice: &hi}, 1, 10)
	if !errors.Is(err, services.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := catalogSvc(memdb(t))
	ok := repos.ProductWrite{CategoryID: 1, Name: " Webcam ", Price: decimal.RequireFromString("59.90"), StockQuantity: 2, SKU: "ELC-003", IsActive: true}

	bad := map[string]repos.ProductWrite{}
	w := ok
	w.Name = "  "
	bad["blank name"] = w
	w = ok
	w.SKU = ""
	bad["blank sku"] = w
	w = ok
	w.SKU = "ELC 003!"
	bad["sku with punctuation"] = w
	w = ok
	w.Name = strings.Repeat("n", 121)
	bad["long name"] = w
	w = ok
	w.Price = decimal.RequireFromString("-1")
	bad["negative price"] = w
	w = ok
	w.StockQuantity = -3
	bad["negative stock"] = w
	w = ok
	w.CategoryID = 99
	bad["unknown category"] = w

	for name, in := range bad {
		if _, err := svc.CreateProduct(in); !errors.Is(err, services.ErrInvalid) {
			t.Errorf("%s: want ErrInvalid, got %v", name, err)
		}
	}

	p, err := svc.CreateProduct(ok)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Webcam" || p.Category.Name != "Electronics" {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := catalogSvc(memdb(t))
	_, err := svc.UpdateProduct(404, repos.ProductWrite{CategoryID: 1, Name: "X", SKU: "X-1"})
	if !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCreateCategory(t *testing.T) {
	svc := catalogSvc(memdb(t))
	missing := int64(77)
	if _, err := svc.CreateCategory("Audio", "", &missing); !errors.Is(err, services.ErrInvalid) {
		t.Fatalf("unknown parent: want ErrInvalid, got %v", err)
	}
	if _, err := svc.CreateCategory(" ", "", nil); !errors.Is(err, services.ErrInvalid) {
		t.Fatalf("blank name: want ErrInvalid, got %v", err)
	}
	c, err := svc.CreateCategory("Audio", "Speakers", nil)
	if err != nil || c.ID == 0 || c.Name != "Audio" {
		t.Fatalf("unexpected category: %+v %v", c, err)
	}
}

func TestSearchSkipsInactive(t *testing.T) {
	svc := catalogSvc(memdb(t))
	// the only "pen" is the inactive fountain pen
	items, total, err := svc.Search("pen", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("want no results, got %d (%d)", len(items), total)
	}

	items, total, err = svc.Search("lamp", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("want 2 lamps, got %d (%d)", len(items), total)
	}
}

func TestInventoryServiceUpdateStock(t *testing.T) {
	db := memdb(t)
	svc := services.NewInventoryService(repos.NewInventoryRepo(db))

	ack, err := svc.UpdateStock(3, 12)
	if err != nil {
		t.Fatal(err)
	}
	if ack.StockQuantity != 12 || ack.ID != 3 || ack.Status == "" || ack.Previous != 0 {
		t.Fatalf("unexpected ack: %+v", ack)
	}
	if _, err := svc.UpdateStock(3, -1); !errors.Is(err, services.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
	if _, err := svc.UpdateStock(999, 1); !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	low, err := svc.LowStock(0)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range low {
		if p.StockQuantity > services.DefaultLowStockThreshold {
			t.Fatalf("%s has %d items, above the default threshold", p.Name, p.StockQuantity)
		}
		if p.ID == 3 {
			t.Fatal("product 3 was restocked and should not be low")
		}
	}
}

func TestReviewServiceCreate(t *testing.T) {
	db := memdb(t)
	svc := services.NewReviewService(repos.NewReviewRepo(db), repos.NewProductRepo(db))

	bad := []domain.ProductReview{
		{Product: 1, User: 1, Rating: 0},
		{Product: 1, User: 0, Rating: 3},
		{Product: 999, User: 1, Rating: 3},
	}
	for _, rv := range bad {
		if _, err := svc.Create(rv); !errors.Is(err, services.ErrInvalid) {
			t.Errorf("%+v: want ErrInvalid, got %v", rv, err)
		}
	}
	rv, err := svc.Create(domain.ProductReview{Product: 2, User: 5, UserName: "dave", Rating: 5, Comment: " Lovely light. "})
	if err != nil {
		t.Fatal(err)
	}
	if rv.Comment != "Lovely light." || rv.Product != 2 {
		t.Fatalf("unexpected review: %+v", rv)
	}
	list, err := svc.List(2)
	if err != nil || len(list) != 1 {
		t.Fatalf("want 1 review for product 2, got %d (%v)", len(list), err)
	}
}
