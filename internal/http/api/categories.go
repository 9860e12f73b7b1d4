package api

import (
	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/domain"
	applog "shopadmin/internal/log"
	"shopadmin/internal/validate"
)

// GET /categories/
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, "api.categories.list.fail", err)
	}
	return c.JSON(single(cats))
}

// GET /categories/:id/
func (h *Handler) GetCategory(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	cat, err := h.Catalog.GetCategory(id)
	if err != nil {
		return fail(c, "api.categories.get.fail", err)
	}
	return c.JSON(cat)
}

// POST /categories/
func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	var body struct {
		Name        string `json:"name" validate:"required,max=120"`
		Description string `json:"description" validate:"max=2000"`
		Parent      *int64 `json:"parent" validate:"omitempty,gt=0"`
	}
	if ok, err := bind(c, &body, "category"); !ok {
		return err
	}
	cat, err := h.Catalog.CreateCategory(body.Name, body.Description, body.Parent)
	if err != nil {
		return fail(c, "api.categories.create.fail", err)
	}
	applog.Audit(c, "api.categories.create", map[string]any{"category_id": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// GET /reviews/?product=
func (h *Handler) ListReviews(c *fiber.Ctx) error {
	var productID int64
	if v := c.Query("product"); v != "" {
		id, ok := validate.ID(v)
		if !ok {
			return badRequest(c, "product", "invalid product")
		}
		productID = id
	}
	reviews, err := h.Reviews.List(productID)
	if err != nil {
		return fail(c, "api.reviews.list.fail", err)
	}
	return c.JSON(single(reviews))
}

// POST /reviews/
func (h *Handler) CreateReview(c *fiber.Ctx) error {
	var body struct {
		Product  int64  `json:"product" validate:"gt=0"`
		User     int64  `json:"user" validate:"gt=0"`
		UserName string `json:"user_name" validate:"max=80"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment" validate:"max=2000"`
	}
	if ok, err := bind(c, &body, "review"); !ok {
		return err
	}
	rv, err := h.Reviews.Create(domain.ProductReview{
		Product: body.Product, User: body.User, UserName: body.UserName, Rating: body.Rating, Comment: body.Comment,
	})
	if err != nil {
		return fail(c, "api.reviews.create.fail", err)
	}
	applog.Audit(c, "api.reviews.create", map[string]any{"review_id": rv.ID, "product_id": rv.Product})
	return c.Status(fiber.StatusCreated).JSON(rv)
}
