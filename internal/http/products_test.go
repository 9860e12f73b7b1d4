package handlers_test

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"shopadmin/internal/domain"
)

func TestRootRedirectsToProducts(t *testing.T) {
	app, _ := newAdminApp(t, seededClient())
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/products" {
		t.Fatalf("expected 302 to /products, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestProductsPageRendersCards(t *testing.T) {
	app, _ := newAdminApp(t, seededClient())
	v := open(t, app)

	status, body := v.get(t, app, "/products")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, want := range []string{
		"Product Catalog", "Desk Lamp", "$29.99", "Category: Lighting", "Stock: 3 (Low Stock!)",
		"SKU: LGT-001", "$12.50", "All Categories", `<option value="2"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(body, "Stock: 140 (Low Stock!)") {
		t.Error("well stocked product flagged as low")
	}
}

func TestProductsPageLoadingState(t *testing.T) {
	client := seededClient()
	client.release = make(chan struct{})
	t.Cleanup(func() { close(client.release) })

	app, deps := newAdminApp(t, client)
	deps.ProductHandler.RenderWait = 50 * time.Millisecond

	resp, err := app.Test(httptest.NewRequest("GET", "/products", nil), 5000)
	if err != nil {
		t.Fatal(err)
	}
	buf := new(strings.Builder)
	if _, err := ioCopy(buf, resp); err != nil {
		t.Fatal(err)
	}
	body := buf.String()
	if !strings.Contains(body, "Loading products...") {
		t.Fatalf("loading state missing; body=%s", body)
	}
	if strings.Contains(body, "product-card") || strings.Contains(body, "No products found") {
		t.Fatal("loading state must not render results")
	}
}

func TestProductsPageErrorState(t *testing.T) {
	client := seededClient()
	client.prodErr = errors.New("GET /products/: status 502: bad gateway")
	app, _ := newAdminApp(t, client)

	v := open(t, app)
	_, body := v.get(t, app, "/products")
	if !strings.Contains(body, "Failed to load products. Please try again later.") {
		t.Fatalf("error message missing; body=%s", body)
	}
	if strings.Contains(body, "bad gateway") || strings.Contains(body, "Product Catalog") {
		t.Fatal("error state leaked detail or rendered the catalog")
	}
}

func TestProductsPageEmptyState(t *testing.T) {
	client := seededClient()
	client.products = nil
	app, _ := newAdminApp(t, client)

	v := open(t, app)
	_, body := v.get(t, app, "/products")
	if !strings.Contains(body, "No products found") {
		t.Fatalf("empty state missing; body=%s", body)
	}
	if strings.Contains(body, "product-card") {
		t.Fatal("empty state must not render cards")
	}
}

func TestFilterChangeRefetches(t *testing.T) {
	client := seededClient()
	app, _ := newAdminApp(t, client)
	v := open(t, app)

	status, _ := v.post(t, app, "/products/filter", url.Values{"key": {"search"}, "value": {"lamp"}})
	if status != fiber.StatusSeeOther {
		t.Fatalf("expected 303, got %d", status)
	}
	v.get(t, app, "/products")
	status, _ = v.post(t, app, "/products/filter", url.Values{"key": {"category"}, "value": {"2"}})
	if status != fiber.StatusSeeOther {
		t.Fatalf("expected 303, got %d", status)
	}

	_, body := v.get(t, app, "/products")
	if q := client.lastQuery(); q.Get("search") != "lamp" || q.Get("category") != "2" {
		t.Fatalf("last fetch should carry both filters, got %v", q)
	}
	if !strings.Contains(body, `value="lamp"`) {
		t.Fatal("search box should keep the current filter")
	}
	if !strings.Contains(body, `<option value="2" selected>`) {
		t.Fatal("category select should keep the current filter")
	}

	// clearing a filter removes it from the query
	v.post(t, app, "/products/filter", url.Values{"key": {"search"}, "value": {""}})
	v.get(t, app, "/products")
	if q := client.lastQuery(); q.Has("search") || q.Get("category") != "2" {
		t.Fatalf("cleared search must not be sent, got %v", q)
	}
}

func TestFilterRejectsBadInput(t *testing.T) {
	client := seededClient()
	app, _ := newAdminApp(t, client)
	v := open(t, app)

	var status int
	var body string
	entries := captureLogs(t, func() {
		status, body = v.post(t, app, "/products/filter", url.Values{"key": {"min_price"}, "value": {"cheap"}})
	})
	if status != fiber.StatusBadRequest || !strings.Contains(body, "Enter a valid min price") {
		t.Fatalf("expected 400 with message, got %d", status)
	}
	if e, ok := findAction(entries, "validation.fail"); !ok || e.Fields["field"] != "min_price" {
		t.Fatalf("validation.fail not logged: %+v", entries)
	}
	if client.lastQuery().Has("min_price") {
		t.Fatal("invalid value must not reach the API")
	}

	status, _ = v.post(t, app, "/products/filter", url.Values{"key": {"colour"}, "value": {"red"}})
	if status != fiber.StatusBadRequest {
		t.Fatalf("unknown key: expected 400, got %d", status)
	}
}

func TestFilterRequiresCSRF(t *testing.T) {
	app, _ := newAdminApp(t, seededClient())
	req := httptest.NewRequest("POST", "/products/filter", strings.NewReader("key=search&value=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 without csrf token, got %d", resp.StatusCode)
	}
}

// templates auto-escape untrusted text
func TestTemplateAutoEscape(t *testing.T) {
	client := seededClient()
	client.products = []domain.Product{{
		ID: 9, Name: "<script>alert(1)</script>", Description: "<b>desc</b>",
		Price: decimal.RequireFromString("9.99"), StockQuantity: 50, SKU: "XSS-1",
	}}
	app, _ := newAdminApp(t, client)
	v := open(t, app)

	_, s := v.get(t, app, "/products")
	if strings.Contains(s, "<script>alert(1)</script>") {
		t.Fatalf("found unescaped script tag in output")
	}
	if !strings.Contains(s, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("escaped script not found; output=%s", s)
	}
	if !strings.Contains(s, "Category: Unknown") {
		t.Fatal("missing category should render as Unknown")
	}
}

func TestVisitorsHaveSeparateFilters(t *testing.T) {
	client := seededClient()
	app, deps := newAdminApp(t, client)
	a, b := open(t, app), open(t, app)
	if a.sid == b.sid {
		t.Fatal("each visitor should get its own sid")
	}

	a.post(t, app, "/products/filter", url.Values{"key": {"search"}, "value": {"lamp"}})
	a.get(t, app, "/products")
	_, body := b.get(t, app, "/products")
	if strings.Contains(body, `value="lamp"`) {
		t.Fatal("filters leaked between visitors")
	}
	if deps.Sessions.Len() != 2 {
		t.Fatalf("want 2 sessions, got %d", deps.Sessions.Len())
	}
}
