package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	applog "shopadmin/internal/log"
	"shopadmin/internal/repos"
	"shopadmin/internal/services"
	"shopadmin/internal/validate"
)

type productBody struct {
	Name          string          `json:"name" validate:"required,max=120"`
	Description   string          `json:"description" validate:"max=2000"`
	Price         decimal.Decimal `json:"price"`
	Category      int64           `json:"category" validate:"gt=0"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	SKU           string          `json:"sku" validate:"required,max=32"`
	IsActive      *bool           `json:"is_active"`
}

func (b productBody) write() repos.ProductWrite {
	active := true
	if b.IsActive != nil {
		active = *b.IsActive
	}
	return repos.ProductWrite{
		CategoryID:    b.Category,
		Name:          b.Name,
		Description:   strings.TrimSpace(b.Description),
		Price:         b.Price,
		StockQuantity: b.StockQuantity,
		SKU:           b.SKU,
		IsActive:      active,
	}
}

// productQuery reads the list filters. Empty parameters carry no constraint.
func productQuery(c *fiber.Ctx) (repos.ProductQuery, string, bool) {
	var q repos.ProductQuery
	q.Search = strings.TrimSpace(c.Query("search"))
	if v := c.Query("category"); v != "" {
		id, ok := validate.ID(v)
		if !ok {
			return q, "category", false
		}
		q.CategoryID = id
	}
	if v := c.Query("min_price"); v != "" {
		d, ok := validate.Price(v)
		if !ok {
			return q, "min_price", false
		}
		q.MinPrice = &d
	}
	if v := c.Query("max_price"); v != "" {
		d, ok := validate.Price(v)
		if !ok {
			return q, "max_price", false
		}
		q.MaxPrice = &d
	}
	if v := c.Query("is_active"); v != "" {
		b, ok := validate.Bool(v)
		if !ok {
			return q, "is_active", false
		}
		q.IsActive = &b
	}
	return q, "", true
}

// GET /products/
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	q, field, ok := productQuery(c)
	if !ok {
		return badRequest(c, field, "invalid "+field)
	}
	page, size := services.Paging(c.QueryInt("page", 1), c.QueryInt("page_size", services.DefaultPageSize))
	items, total, err := h.Catalog.ListProducts(q, page, size)
	if err != nil {
		return fail(c, "api.products.list.fail", err)
	}
	return c.JSON(paginate(c, items, total, page, size))
}

// GET /products/low_stock/
func (h *Handler) LowStock(c *fiber.Ctx) error {
	threshold := services.DefaultLowStockThreshold
	if v := c.Query("threshold"); v != "" {
		n, ok := validate.Qty(v)
		if !ok {
			return badRequest(c, "threshold", "invalid threshold")
		}
		threshold = n
	}
	items, err := h.Inventory.LowStock(threshold)
	if err != nil {
		return fail(c, "api.products.low_stock.fail", err)
	}
	return c.JSON(items)
}

// GET /products/:id/
func (h *Handler) GetProduct(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, "api.products.get.fail", err)
	}
	return c.JSON(p)
}

// POST /products/
func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	var body productBody
	if ok, err := bind(c, &body, "product"); !ok {
		return err
	}
	p, err := h.Catalog.CreateProduct(body.write())
	if err != nil {
		return fail(c, "api.products.create.fail", err)
	}
	applog.Audit(c, "api.products.create", map[string]any{"product_id": p.ID, "sku": p.SKU})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /products/:id/
func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var body productBody
	if ok, err := bind(c, &body, "product"); !ok {
		return err
	}
	p, err := h.Catalog.UpdateProduct(id, body.write())
	if err != nil {
		return fail(c, "api.products.update.fail", err)
	}
	applog.Audit(c, "api.products.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

// DELETE /products/:id/
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return fail(c, "api.products.delete.fail", err)
	}
	applog.Audit(c, "api.products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /products/:id/update_stock/
func (h *Handler) UpdateStock(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var body struct {
		StockQuantity *int `json:"stock_quantity" validate:"required,gte=0"`
	}
	if ok, err := bind(c, &body, "stock update"); !ok {
		return err
	}
	ack, err := h.Inventory.UpdateStock(id, *body.StockQuantity)
	if err != nil {
		return fail(c, "api.products.stock.fail", err)
	}
	applog.Audit(c, "api.products.stock", map[string]any{"product_id": id, "from": ack.Previous, "qty": ack.StockQuantity})
	return c.JSON(ack)
}

// GET /search/?q=
func (h *Handler) Search(c *fiber.Ctx) error {
	raw := c.Query("q")
	page, size := services.Paging(c.QueryInt("page", 1), c.QueryInt("page_size", services.DefaultPageSize))
	if strings.TrimSpace(raw) == "" {
		return c.JSON(paginate[any](c, nil, 0, page, size))
	}
	q, ok := validate.Q(raw)
	if !ok {
		return badRequest(c, "q", "enter a valid keyword")
	}
	items, total, err := h.Catalog.Search(q, page, size)
	if err != nil {
		return fail(c, "api.search.fail", err)
	}
	return c.JSON(paginate(c, items, total, page, size))
}
