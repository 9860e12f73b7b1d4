// Package api serves the catalog REST API consumed by the admin.
package api

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"shopadmin/internal/domain"
	applog "shopadmin/internal/log"
	"shopadmin/internal/repos"
	"shopadmin/internal/services"
)

type Handler struct {
	Catalog   *services.CatalogService
	Inventory *services.InventoryService
	Reviews   *services.ReviewService
}

func NewHandler(db *sqlx.DB) *Handler {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	return &Handler{
		Catalog:   services.NewCatalogService(catRepo, prodRepo),
		Inventory: services.NewInventoryService(repos.NewInventoryRepo(db)),
		Reviews:   services.NewReviewService(repos.NewReviewRepo(db), prodRepo),
	}
}

// Routes mounts every endpoint under r. Paths keep their trailing slash;
// Fiber matches with or without it.
func Routes(r fiber.Router, h *Handler) {
	r.Get("/products/low_stock/", h.LowStock)
	r.Get("/products/", h.ListProducts)
	r.Post("/products/", h.CreateProduct)
	r.Get("/products/:id/", h.GetProduct)
	r.Put("/products/:id/", h.UpdateProduct)
	r.Delete("/products/:id/", h.DeleteProduct)
	r.Post("/products/:id/update_stock/", h.UpdateStock)

	r.Get("/categories/", h.ListCategories)
	r.Post("/categories/", h.CreateCategory)
	r.Get("/categories/:id/", h.GetCategory)

	r.Get("/reviews/", h.ListReviews)
	r.Post("/reviews/", h.CreateReview)

	r.Get("/search/", h.Search)
}

func badRequest(c *fiber.Ctx, field, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// fail maps a service error to a status; internal causes are logged, not returned.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalid):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repos.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "a record with the same unique value already exists"})
	case errors.Is(err, repos.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

// paginate wraps one page of results with absolute next/previous links.
func paginate[T any](c *fiber.Ctx, items []T, total, page, pageSize int) domain.Page[T] {
	if items == nil {
		items = []T{}
	}
	out := domain.Page[T]{Count: total, Results: items}
	if page*pageSize < total {
		out.Next = pageURL(c, page+1)
	}
	if page > 1 {
		out.Previous = pageURL(c, page-1)
	}
	return out
}

func pageURL(c *fiber.Ctx, page int) *string {
	q, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	q.Set("page", strconv.Itoa(page))
	u := c.BaseURL() + c.Path() + "?" + q.Encode()
	return &u
}

// single wraps an unpaginated list in the envelope.
func single[T any](items []T) domain.Page[T] {
	if items == nil {
		items = []T{}
	}
	return domain.Page[T]{Count: len(items), Results: items}
}
