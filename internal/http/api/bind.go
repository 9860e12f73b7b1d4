package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var rules = newRules()

func newRules() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so clients see the field they sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parses a JSON body into dst and checks its `validate` tags. On failure
// the 400 response has already been written and ok is false.
func bind(c *fiber.Ctx, dst any, what string) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return false, badRequest(c, "body", "malformed "+what)
	}
	if err := rules.Struct(dst); err != nil {
		field := "body"
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field = verrs[0].Field()
		}
		return false, badRequest(c, field, "invalid "+field)
	}
	return true, nil
}
