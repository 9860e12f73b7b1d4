package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/catalog"
	applog "shopadmin/internal/log"
	"shopadmin/internal/validate"
)

type InventoryHandler struct {
	Sessions *catalog.Sessions
}

// GET /inventory
func (h *InventoryHandler) Page(c *fiber.Ctx) error {
	sess := visitor(c, h.Sessions)
	sess.Inventory.EnsureLoaded(c.UserContext())
	return render(c, "inventory", fiber.Map{
		"Tab":  "inventory",
		"View": sess.Inventory.Snapshot(),
	})
}

// GET /inventory/open
//
// The Inventory tab link; the redirected GET loads the rows again.
func (h *InventoryHandler) Open(c *fiber.Ctx) error {
	h.Sessions.Reopen(visitorID(c), catalog.ScreenInventory)
	return c.Redirect("/inventory", fiber.StatusSeeOther)
}

// POST /inventory/:id/stock
//
// Quantities that are not non-negative integers are dropped without
// feedback; the page simply reloads.
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return NotFound(c, fiber.StatusNotFound, "This product is no longer available")
	}
	raw := c.FormValue("stock_quantity")
	sess := visitor(c, h.Sessions)
	sess.Inventory.SubmitStockUpdate(c.UserContext(), id, raw)
	applog.Audit(c, "admin.inventory.submit", map[string]any{"product": id, "qty": raw})
	return c.Redirect("/inventory", fiber.StatusSeeOther)
}
