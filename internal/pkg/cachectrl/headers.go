package cachectrl

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const DefaultMaxAge = time.Hour

// OptIn marks a response as derived only from data loaded at loadedAt and reports whether
// the client's copy is still fresh, in which case the handler should answer 304.
func OptIn(ctx *fiber.Ctx, loadedAt time.Time) bool {
	return OptInCustom(ctx, loadedAt, DefaultMaxAge)
}

func OptInCustom(ctx *fiber.Ctx, loadedAt time.Time, maxAge time.Duration) bool {
	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
	ctx.Response().Header.SetLastModified(loadedAt)
	return NotModifiedSince(ctx, loadedAt)
}

// NotModifiedSince compares If-Modified-Since with t at second precision.
func NotModifiedSince(ctx *fiber.Ctx, t time.Time) bool {
	if ctx.Method() != fiber.MethodGet && ctx.Method() != fiber.MethodHead {
		return false
	}
	header := ctx.Request().Header.Peek(fiber.HeaderIfModifiedSince)
	if len(header) == 0 {
		return false
	}
	since, err := fasthttp.ParseHTTPDate(header)
	if err != nil {
		return false
	}
	return !t.Truncate(time.Second).After(since)
}

func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}
