package cachectrl

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptIn(t *testing.T) {
	loadedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if OptIn(c, loadedAt) {
			return c.SendStatus(fiber.StatusNotModified)
		}
		return c.SendString("fresh body")
	})

	cases := []struct {
		since  string
		status int
	}{
		{"", http.StatusOK},
		{loadedAt.Format(http.TimeFormat), http.StatusNotModified},
		{loadedAt.Add(time.Hour).Format(http.TimeFormat), http.StatusNotModified},
		{loadedAt.Add(-time.Hour).Format(http.TimeFormat), http.StatusOK},
		{"yesterday", http.StatusOK},
	}
	for _, tc := range cases {
		since, status := tc.since, tc.status
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if since != "" {
			req.Header.Set(fiber.HeaderIfModifiedSince, since)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, "If-Modified-Since %q", since)
		assert.Equal(t, "public, max-age=3600", resp.Header.Get(fiber.HeaderCacheControl))
		assert.Equal(t, loadedAt.Format(http.TimeFormat), resp.Header.Get(fiber.HeaderLastModified))
	}
}

func TestOptOut(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		OptOut(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get(fiber.HeaderCacheControl))
}
