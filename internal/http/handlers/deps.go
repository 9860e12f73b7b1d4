package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"shopadmin/internal/apiclient"
	"shopadmin/internal/catalog"
	"shopadmin/internal/config"
)

// MaxSessions caps the visitor registry; the least recently seen visitor is
// dropped beyond it.
const MaxSessions = 1000

// DefaultRenderWait bounds how long a page waits for in-flight fetches
// before it renders the loading state.
const DefaultRenderWait = 3 * time.Second

type Deps struct {
	Sessions         *catalog.Sessions
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
}

func NewDeps(cfg config.Config, client apiclient.Client) *Deps {
	sessions := catalog.NewSessions(MaxSessions, func() *catalog.Session {
		return &catalog.Session{
			List:      catalog.NewListController(client, catalog.Options{LatestFilterWins: cfg.LatestFilterWins}),
			Inventory: catalog.NewInventoryEditor(client),
		}
	})
	return &Deps{
		Sessions:         sessions,
		ProductHandler:   &ProductHandler{Sessions: sessions, RenderWait: DefaultRenderWait},
		InventoryHandler: &InventoryHandler{Sessions: sessions},
	}
}

// Routes mounts the admin pages.
func Routes(app fiber.Router, d *Deps) {
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/products") })
	app.Get("/products", d.ProductHandler.List)
	app.Get("/products/open", d.ProductHandler.Open)
	app.Post("/products/filter", d.ProductHandler.Filter)
	app.Get("/inventory", d.InventoryHandler.Page)
	app.Get("/inventory/open", d.InventoryHandler.Open)
	app.Post("/inventory/:id/stock", d.InventoryHandler.UpdateStock)
}
