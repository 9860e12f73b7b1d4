package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/catalog"
	applog "shopadmin/internal/log"
)

type ProductHandler struct {
	Sessions *catalog.Sessions
	// RenderWait bounds the wait for in-flight fetches; past it the page
	// shows the loading state.
	RenderWait time.Duration
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	sess := visitor(c, h.Sessions)
	sess.List.Mount(c.UserContext())
	return h.renderList(c, sess, fiber.StatusOK, "")
}

// GET /products/open
//
// The Products tab link. It discards the screen's filters and loaded data so
// the redirected GET mounts it afresh.
func (h *ProductHandler) Open(c *fiber.Ctx) error {
	h.Sessions.Reopen(visitorID(c), catalog.ScreenProducts)
	return c.Redirect("/products", fiber.StatusSeeOther)
}

// POST /products/filter
func (h *ProductHandler) Filter(c *fiber.Ctx) error {
	key, ok := catalog.ParseKey(c.FormValue("key"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "key"})
		return NotFound(c, fiber.StatusBadRequest, "Unknown filter")
	}
	value := c.FormValue("value")
	sess := visitor(c, h.Sessions)
	if err := sess.List.ChangeFilter(c.UserContext(), key, value); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": key.String(), "value": value})
		sess.List.Mount(c.UserContext())
		label := strings.ReplaceAll(key.String(), "_", " ")
		return h.renderList(c, sess, fiber.StatusBadRequest, "Enter a valid "+label)
	}
	applog.Info(c, "catalog.filter", map[string]any{"key": key.String(), "value": value})
	return c.Redirect("/products", fiber.StatusSeeOther)
}

func (h *ProductHandler) renderList(c *fiber.Ctx, sess *catalog.Session, status int, errMsg string) error {
	wait := h.RenderWait
	if wait <= 0 {
		wait = DefaultRenderWait
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), wait)
	defer cancel()
	if err := sess.List.Wait(ctx); err != nil {
		applog.Info(c, "catalog.render.pending", nil)
	}

	v := sess.List.Snapshot()
	form := map[string]string{}
	for _, k := range []catalog.Key{catalog.KeyCategory, catalog.KeySearch, catalog.KeyMinPrice, catalog.KeyMaxPrice, catalog.KeyIsActive} {
		form[k.String()] = v.Filters.Get(k)
	}
	return render(c.Status(status), "products", fiber.Map{
		"Tab":  "products",
		"View": v,
		"F":    form,
		"Err":  errMsg,
	})
}
