package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/autodash/internal/util/i18n"
)

// InjectI18n puts the validation message translator matching Accept-Language into ctx.Locals.
func InjectI18n() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(i18n.LocalsKey, i18n.Translator(c.Get(fiber.HeaderAcceptLanguage)))
		return c.Next()
	}
}
