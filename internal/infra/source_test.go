package infra

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"exusiai.dev/autodash/internal/app/appconfig"
)

func TestParseLocation(t *testing.T) {
	for _, tc := range []struct {
		raw    string
		scheme Scheme
		bucket string
		key    string
	}{
		{"data/sales.csv", SchemeFile, "", ""},
		{"/abs/sales.csv", SchemeFile, "", ""},
		{"file:///abs/sales.csv", SchemeFile, "", ""},
		{"https://example.com/sales.csv", SchemeHTTP, "", ""},
		{"s3://datasets/autos/sales.csv", SchemeS3, "datasets", "autos/sales.csv"},
	} {
		loc, err := ParseLocation(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.scheme, loc.Scheme, tc.raw)
		assert.Equal(t, tc.bucket, loc.Bucket, tc.raw)
		assert.Equal(t, tc.key, loc.Key, tc.raw)
	}

	for _, raw := range []string{"", "s3://bucket-only", "ftp://example.com/x"} {
		_, err := ParseLocation(raw)
		assert.Error(t, err, raw)
	}
}

func testSource() *Source {
	return NewSource(&appconfig.Config{ConfigSpec: appconfig.ConfigSpec{SourceFetchTimeout: 5 * time.Second}})
}

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("Year\n2009\n"), 0o644))

	b, err := testSource().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Year\n2009\n", string(b))

	_, err = testSource().Fetch(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestFetchHTTP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	server := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/sales.csv":
			ctx.SetBodyString("Year\n2009\n")
		case "/broken.csv":
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
		}
	}}
	go server.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { _ = server.Shutdown() })

	base := "http://" + ln.Addr().String()
	src := testSource()

	b, err := src.Fetch(context.Background(), base+"/sales.csv")
	require.NoError(t, err)
	assert.Equal(t, "Year\n2009\n", string(b))

	_, err = src.Fetch(context.Background(), base+"/absent.csv")
	assert.True(t, errors.Is(err, ErrSourceNotFound))

	_, err = src.Fetch(context.Background(), base+"/broken.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
