package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "autodash"
)

var (
	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "render", "duration_seconds"),
		Help:    "Duration of one dashboard render (aggregation and chart building) in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"dashboard", "kind"})
	DatasetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "dataset", "rows"),
		Help: "Number of rows held by a loaded dataset",
	}, []string{"dataset"})
	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "predict", "total"),
		Help: "Number of served predictions by recommended plan",
	}, []string{"plan"})
)
