package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"shopadmin/internal/catalog"
	"shopadmin/web"
)

// Layout wraps every page; set it as fiber.Config.ViewsLayout.
const Layout = "layout"

// Engine parses the embedded templates together with the helpers they call.
func Engine() *html.Engine {
	engine := html.NewFileSystem(http.FS(web.TemplatesFS()), ".html")
	engine.AddFuncMap(map[string]interface{}{
		"stockLevel": func(quantity int) string { return string(catalog.Classify(quantity)) },
		"lowStock":   catalog.IsLowStock,
		"upper":      strings.ToUpper,
	})
	return engine
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Tab"]; !ok {
		data["Tab"] = ""
	}
	// Set by the CSRF middleware; fall back to the cookie when Locals is empty.
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data)
}

// NotFound renders the friendly error page with status.
func NotFound(c *fiber.Ctx, status int, msg string) error {
	return render(c.Status(status), "notfound", fiber.Map{"Message": msg})
}
