package appconfig

import (
	"time"

	"exusiai.dev/autodash/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving dashboard requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9010"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is the path of the rotated log file. Leaving this empty disables file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// log at trace level. See internal/server/httpserver/http.go for the actual implementation details.
	DevMode bool `split_words:"true"`

	// AutosalesSource is where the automobile sales CSV is read from. Accepts a local path,
	// an http(s):// URL or an s3://bucket/key location.
	AutosalesSource string `required:"true" split_words:"true" default:"data/historical_automobile_sales.csv"`

	// EnergySource is where the household energy CSV is read from. Same location rules as AutosalesSource.
	// Leaving this empty disables the energy dashboard.
	EnergySource string `split_words:"true"`

	// EnergySampleFraction samples the raw energy readings (seeded, deterministic) before daily resampling.
	// 1.0 keeps every reading.
	EnergySampleFraction float64 `split_words:"true" default:"1.0"`

	// ModelPath is the path of the regressor/classifier bundle (.json or .msgpack).
	// A missing file disables the prediction form but is not fatal.
	ModelPath string `split_words:"true" default:"data/model.json"`

	// SourceFetchTimeout bounds a single remote dataset fetch at startup.
	SourceFetchTimeout time.Duration `required:"true" split_words:"true" default:"30s"`

	// AWSRegion is used when a source is an s3:// location. Credentials follow the default AWS chain.
	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-1"`

	// AWSAccessKey and AWSSecretKey, when both set, replace the default AWS credential chain for s3:// sources.
	AWSAccessKey string `envconfig:"AWS_ACCESS_KEY"`
	AWSSecretKey string `envconfig:"AWS_SECRET_KEY"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
