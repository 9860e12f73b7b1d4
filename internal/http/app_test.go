package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	"shopadmin/internal/apiclient"
	"shopadmin/internal/catalog"
	"shopadmin/internal/config"
	"shopadmin/internal/domain"
	"shopadmin/internal/http/handlers"
)

// fakeClient is an in-memory apiclient.Client.
type fakeClient struct {
	mu       sync.Mutex
	products []domain.Product
	cats     []domain.Category
	prodErr  error
	catErr   error
	release  chan struct{} // when set, GetProducts blocks until closed

	queries []url.Values
	stocks  [][2]int64
}

var _ apiclient.Client = (*fakeClient)(nil)

func (f *fakeClient) GetProducts(ctx context.Context, filters *catalog.Filters) (domain.Page[domain.Product], error) {
	f.mu.Lock()
	q := url.Values{}
	if filters != nil {
		q = filters.Values()
	}
	f.queries = append(f.queries, q)
	release, err := f.release, f.prodErr
	items := append([]domain.Product(nil), f.products...)
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}
	return domain.Page[domain.Product]{Count: len(items), Results: items}, nil
}

func (f *fakeClient) GetCategories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.catErr != nil {
		return nil, f.catErr
	}
	return f.cats, nil
}

func (f *fakeClient) UpdateStock(ctx context.Context, id int64, quantity int) (domain.StockAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stocks = append(f.stocks, [2]int64{id, int64(quantity)})
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].StockQuantity = quantity
		}
	}
	return domain.StockAck{Status: "stock updated", ID: id, StockQuantity: quantity}, nil
}

func (f *fakeClient) GetLowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.products {
		if p.StockQuantity <= threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

var errUnused = errors.New("not used by the admin pages")

func (f *fakeClient) GetProduct(context.Context, int64) (domain.Product, error) {
	return domain.Product{}, errUnused
}
func (f *fakeClient) CreateProduct(context.Context, apiclient.ProductInput) (domain.Product, error) {
	return domain.Product{}, errUnused
}
func (f *fakeClient) UpdateProduct(context.Context, int64, apiclient.ProductInput) (domain.Product, error) {
	return domain.Product{}, errUnused
}
func (f *fakeClient) DeleteProduct(context.Context, int64) error { return errUnused }
func (f *fakeClient) GetCategory(context.Context, int64) (domain.Category, error) {
	return domain.Category{}, errUnused
}
func (f *fakeClient) CreateCategory(context.Context, apiclient.CategoryInput) (domain.Category, error) {
	return domain.Category{}, errUnused
}
func (f *fakeClient) GetReviews(context.Context, int64) ([]domain.ProductReview, error) {
	return nil, errUnused
}
func (f *fakeClient) CreateReview(context.Context, apiclient.ReviewInput) (domain.ProductReview, error) {
	return domain.ProductReview{}, errUnused
}
func (f *fakeClient) SearchProducts(context.Context, string) ([]domain.Product, error) {
	return nil, errUnused
}

func (f *fakeClient) lastQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return nil
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeClient) fail(products, categories error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prodErr, f.catErr = products, categories
}

func (f *fakeClient) fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeClient) stockCalls() [][2]int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][2]int64(nil), f.stocks...)
}

func seededClient() *fakeClient {
	return &fakeClient{
		cats: []domain.Category{{ID: 1, Name: "Electronics"}, {ID: 2, Name: "Lighting"}},
		products: []domain.Product{
			{ID: 1, Name: "Desk Lamp", Price: decimal.RequireFromString("29.99"), StockQuantity: 3, SKU: "LGT-001",
				Category: domain.Category{ID: 2, Name: "Lighting"}, IsActive: true},
			{ID: 7, Name: "Notebook Pack", Price: decimal.RequireFromString("12.5"), StockQuantity: 140, SKU: "OFS-001",
				Category: domain.Category{ID: 4, Name: "Office Supplies"}, IsActive: true},
		},
	}
}

// Minimal admin app with the real templates, CSRF and routes.
func newAdminApp(t *testing.T, client apiclient.Client) (*fiber.App, *handlers.Deps) {
	t.Helper()
	app := fiber.New(fiber.Config{Views: handlers.Engine(), ViewsLayout: handlers.Layout})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax", ContextKey: "CSRFToken"}))

	deps := handlers.NewDeps(config.Config{}, client)
	deps.ProductHandler.RenderWait = time.Second
	handlers.Routes(app, deps)
	return app, deps
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

type visitor struct {
	csrf, sid string
}

// open loads the products page once to obtain the sid and csrf cookies.
func open(t *testing.T, app *fiber.App) visitor {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/products", nil), 5000)
	if err != nil {
		t.Fatal(err)
	}
	v := visitor{csrf: extractCookie(resp, "csrf_"), sid: extractCookie(resp, "sid")}
	if v.csrf == "" || v.sid == "" {
		t.Fatalf("cookies missing: %+v", v)
	}
	return v
}

func (v visitor) get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: v.sid})
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: v.csrf})
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func (v visitor) post(t *testing.T, app *fiber.App, target string, form url.Values) (int, string) {
	t.Helper()
	form.Set("csrf", v.csrf)
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "sid", Value: v.sid})
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: v.csrf})
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

type logEntry struct {
	Level  string                 `json:"level"`
	Action string                 `json:"action"`
	Fields map[string]interface{} `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	mu.Lock()
	raw := buf.String()
	mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
