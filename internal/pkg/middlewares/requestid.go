package middlewares

import (
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/autodash/internal/pkg/flog"
)

const ContextKeyRequestID = "requestId"

// RequestID repopulates the request id injected by the logger middleware into ctx.Locals,
// and tags the sentry scope with it when sentry is enabled.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := flog.IDFromFiberCtx(c)
		if ok {
			c.Locals(ContextKeyRequestID, id.String())
			if hub := fibersentry.GetHubFromContext(c); hub != nil {
				hub.Scope().SetTag("request_id", id.String())
			}
		}
		return c.Next()
	}
}
