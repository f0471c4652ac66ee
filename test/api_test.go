package test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"exusiai.dev/autodash/internal/app"
	"exusiai.dev/autodash/internal/app/appcontext"
	"exusiai.dev/autodash/internal/model"
)

// testing hooks: https://pkg.go.dev/testing#hdr-Subtests_and_Sub_benchmarks

var (
	gMu       sync.Mutex
	gFiberApp *fiber.App
)

func TestMain(m *testing.M) {
	for k, v := range map[string]string{
		"AUTODASH_AUTOSALES_SOURCE": "testdata/historical_automobile_sales.csv",
		"AUTODASH_ENERGY_SOURCE":    "testdata/household_power_consumption.csv",
		"AUTODASH_MODEL_PATH":       "testdata/model.json",
		"AUTODASH_LOG_FILE":         "",
		"AUTODASH_SERVICE_ADDRESS":  "127.0.0.1:0",
	} {
		os.Setenv(k, v)
	}
	os.Exit(m.Run())
}

func startup(t *testing.T) {
	t.Helper()

	gMu.Lock()
	defer gMu.Unlock()

	if gFiberApp != nil {
		return
	}

	var fiberApp *fiber.App
	fxApp := fxtest.New(t,
		append(app.Options(appcontext.Declare(appcontext.EnvServer)), fx.Populate(&fiberApp))...,
	)
	fxApp.RequireStart()

	gFiberApp = fiberApp
}

func request(t *testing.T, req *http.Request, msTimeout ...int) *http.Response {
	t.Helper()

	resp, err := gFiberApp.Test(req, msTimeout...)
	if err != nil {
		t.Fatal(err)
	}

	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	return request(t, httptest.NewRequest(http.MethodGet, url, nil), 10000)
}

func decode(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestAPIMeta(t *testing.T) {
	startup(t)
	t.Parallel()

	t.Run("health", func(t *testing.T) {
		resp := get(t, "/api/_/health")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("version", func(t *testing.T) {
		resp := get(t, "/api/_/bininfo")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("index", func(t *testing.T) {
		resp := get(t, "/")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	})
}

func TestAPIAutosales(t *testing.T) {
	startup(t)
	t.Parallel()

	t.Run("options", func(t *testing.T) {
		resp := get(t, "/api/v1/autosales/options")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Kinds     []model.KindOption `json:"kinds"`
			Years     []int              `json:"years"`
			DataYears []int              `json:"dataYears"`
		}
		decode(t, resp, &body)
		assert.Len(t, body.Kinds, 2)
		assert.Equal(t, 1980, body.Years[0])
		assert.Equal(t, 2023, body.Years[len(body.Years)-1])
		assert.Equal(t, []int{1980, 1981, 2007, 2008, 2009, 2010}, body.DataYears)
	})

	t.Run("year control", func(t *testing.T) {
		for kind, disabled := range map[string]bool{
			"yearly":               false,
			"Recession Statistics": true,
			"":                     true,
		} {
			resp := get(t, "/api/v1/autosales/year-control?kind="+strings.ReplaceAll(kind, " ", "%20"))
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var state model.YearControlState
			decode(t, resp, &state)
			assert.Equal(t, disabled, state.Disabled, "kind %q", kind)
		}
	})

	t.Run("recession dashboard", func(t *testing.T) {
		resp := get(t, "/api/v1/autosales/dashboard?kind=recession&year=2010")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var layout model.Layout
		decode(t, resp, &layout)
		require.Len(t, layout.Rows, 2)
		assert.Equal(t, "Average Automobile Sales Over Recession Period", layout.Rows[0].Charts[0].Title)
		assert.Equal(t, model.ChartBar, layout.Rows[1].Charts[1].Kind)
		assert.Equal(t, "Vehicle_Type", layout.Rows[1].Charts[1].Color)
	})

	t.Run("yearly dashboard", func(t *testing.T) {
		resp := get(t, "/api/v1/autosales/dashboard?kind=yearly&year=2008")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var layout model.Layout
		decode(t, resp, &layout)
		require.Len(t, layout.Rows, 2)
		assert.Equal(t, "Monthly Automobile Sales in 2008", layout.Rows[0].Charts[1].Title)
		assert.Len(t, layout.Rows[0].Charts[1].Series[0].Points, 12)
	})

	t.Run("empty selections", func(t *testing.T) {
		for _, url := range []string{
			"/api/v1/autosales/dashboard",
			"/api/v1/autosales/dashboard?kind=yearly",
			"/api/v1/autosales/dashboard?kind=monthly&year=2008",
		} {
			resp := get(t, url)
			require.Equal(t, http.StatusOK, resp.StatusCode, url)
			var layout model.Layout
			decode(t, resp, &layout)
			assert.True(t, layout.Empty(), url)
		}
	})

	t.Run("conditional request", func(t *testing.T) {
		resp := get(t, "/api/v1/autosales/dashboard?kind=recession")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		lastModified := resp.Header.Get(fiber.HeaderLastModified)
		require.NotEmpty(t, lastModified)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/autosales/dashboard?kind=recession", nil)
		req.Header.Set(fiber.HeaderIfModifiedSince, lastModified)
		resp = request(t, req)
		assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	})

	t.Run("out of range years", func(t *testing.T) {
		for _, year := range []string{"10000", "-1", "1975"} {
			resp := get(t, "/api/v1/autosales/dashboard?kind=yearly&year="+year)
			require.Equal(t, http.StatusOK, resp.StatusCode, year)

			var layout model.Layout
			decode(t, resp, &layout)
			require.Len(t, layout.Rows, 2, year)
			monthly := layout.Rows[0].Charts[1]
			assert.Equal(t, "Monthly Automobile Sales in "+year, monthly.Title)
			assert.True(t, monthly.IsEmpty(), year)
			for _, c := range layout.Rows[1].Charts {
				assert.True(t, c.IsEmpty(), year)
			}
		}
	})

	t.Run("invalid year", func(t *testing.T) {
		for _, year := range []string{"latest", "2008.5"} {
			resp := get(t, "/api/v1/autosales/dashboard?kind=yearly&year="+year)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, year)
			assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get(fiber.HeaderCacheControl))
		}
	})

	t.Run("chart png", func(t *testing.T) {
		resp := get(t, "/api/v1/autosales/dashboard/1/0.png?kind=yearly&year=2009&width=640&height=360")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
	})

	t.Run("chart png out of layout", func(t *testing.T) {
		resp := get(t, "/api/v1/autosales/dashboard/2/0.png?kind=recession")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body map[string]any
		decode(t, resp, &body)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})

	t.Run("export", func(t *testing.T) {
		resp := get(t, "/api/v1/autosales/export.xlsx?kind=recession")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "autosales-recession.xlsx")

		f, err := excelize.OpenReader(resp.Body)
		require.NoError(t, err)
		defer f.Close()
		assert.Len(t, f.GetSheetList(), 5)
	})

	t.Run("export of empty selection", func(t *testing.T) {
		resp := get(t, "/api/v1/autosales/export.xlsx?kind=yearly")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("aggregates", func(t *testing.T) {
		resp := get(t, "/api/v1/autosales/aggregates?kind=recession")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var aggregates []model.Aggregate
		decode(t, resp, &aggregates)
		require.Len(t, aggregates, 4)
		assert.Equal(t, []string{"Year"}, aggregates[0].By)
	})
}

func TestAPIEnergy(t *testing.T) {
	startup(t)
	t.Parallel()

	t.Run("tabs", func(t *testing.T) {
		for tab, kind := range map[string]model.ChartKind{
			"daily":          model.ChartLine,
			"tab2":           model.ChartScatter,
			"classification": model.ChartHistogram,
			"correlation":    model.ChartHeatmap,
		} {
			resp := get(t, "/api/v1/energy/tabs/"+tab)
			require.Equal(t, http.StatusOK, resp.StatusCode, tab)

			var layout model.Layout
			decode(t, resp, &layout)
			c, ok := layout.Chart(0, 0)
			require.True(t, ok, tab)
			assert.Equal(t, kind, c.Kind, tab)
			assert.False(t, c.IsEmpty(), tab)
		}
	})

	t.Run("unknown tab", func(t *testing.T) {
		resp := get(t, "/api/v1/energy/tabs/tab9")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var layout model.Layout
		decode(t, resp, &layout)
		assert.True(t, layout.Empty())
	})

	t.Run("tab png", func(t *testing.T) {
		resp := get(t, "/api/v1/energy/tabs/daily/chart.png")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	})

	t.Run("heatmap png", func(t *testing.T) {
		resp := get(t, "/api/v1/energy/tabs/correlation/chart.png")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body map[string]any
		decode(t, resp, &body)
		assert.Equal(t, "UNSUPPORTED_CHART", body["code"])
	})

	t.Run("predict", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/energy/predict", strings.NewReader(`{
			"Global_reactive_power": 0.15,
			"Voltage": 240,
			"Global_intensity": 8,
			"Sub_metering_1": 1.5,
			"Sub_metering_2": 1,
			"Sub_metering_3": 9
		}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp := request(t, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Consumption float64 `json:"consumption"`
			Plan        string  `json:"plan"`
			Recommended string  `json:"recommended"`
		}
		decode(t, resp, &body)
		// 0.1 + 0.5*0.15 + 0.2*8 + 0.01*1.5 + 0.01*1 + 0.02*9
		assert.InDelta(t, 1.98, body.Consumption, 1e-9)
		assert.Equal(t, "Plan B", body.Plan)
		assert.Equal(t, "Plan A", body.Recommended)
	})

	t.Run("predict with missing features", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/energy/predict", strings.NewReader(`{"Voltage": 240}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp := request(t, req)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]any
		decode(t, resp, &body)
		assert.Equal(t, "INVALID_REQUEST", body["code"])
		assert.Len(t, body["violations"], 5)
	})
}
