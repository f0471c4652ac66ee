package chart

import (
	"sort"

	"github.com/samber/lo"

	"exusiai.dev/autodash/internal/model"
)

type Option func(c *model.ChartSpec)

// WithLabels overrides the display labels of data fields.
func WithLabels(labels map[string]string) Option {
	return func(c *model.ChartSpec) {
		if c.Labels == nil {
			c.Labels = make(map[string]string, len(labels))
		}
		for k, v := range labels {
			c.Labels[k] = v
		}
	}
}

func newSpec(kind model.ChartKind, title, x, y string, opts []Option) model.ChartSpec {
	c := model.ChartSpec{
		Kind:   kind,
		Title:  title,
		X:      x,
		Y:      y,
		Series: []model.Series{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func firstKey(r model.AggregateRow) string {
	if len(r.Keys) == 0 {
		return ""
	}
	return r.Keys[0]
}

func byField(agg model.Aggregate, i int) string {
	if i < len(agg.By) {
		return agg.By[i]
	}
	return ""
}

// fromAggregate builds a single-series spec keyed by the first grouping column.
func fromAggregate(kind model.ChartKind, title string, agg model.Aggregate, opts []Option) model.ChartSpec {
	c := newSpec(kind, title, byField(agg, 0), agg.Field, opts)
	if agg.Len() == 0 {
		return c
	}
	c.Series = []model.Series{{
		Name: agg.Field,
		Points: lo.Map(agg.Rows, func(r model.AggregateRow, _ int) model.Point {
			return model.Point{Label: firstKey(r), Value: r.Value}
		}),
	}}
	return c
}

func Line(title string, agg model.Aggregate, opts ...Option) model.ChartSpec {
	return fromAggregate(model.ChartLine, title, agg, opts)
}

func Bar(title string, agg model.Aggregate, opts ...Option) model.ChartSpec {
	return fromAggregate(model.ChartBar, title, agg, opts)
}

// Pie uses the first grouping column as slice names and the aggregated field as slice values.
func Pie(title string, agg model.Aggregate, opts ...Option) model.ChartSpec {
	return fromAggregate(model.ChartPie, title, agg, opts)
}

// GroupedBar expects a two-key aggregate: the first key is the x category and the
// second one splits the bars into colored series, one per distinct value in ascending order.
// Categories keep the aggregate's row order.
func GroupedBar(title string, agg model.Aggregate, opts ...Option) model.ChartSpec {
	c := newSpec(model.ChartBar, title, byField(agg, 0), agg.Field, opts)
	c.Color = byField(agg, 1)
	if agg.Len() == 0 {
		return c
	}

	colorOf := func(r model.AggregateRow) string {
		if len(r.Keys) < 2 {
			return ""
		}
		return r.Keys[1]
	}
	colors := lo.Uniq(lo.Map(agg.Rows, func(r model.AggregateRow, _ int) string { return colorOf(r) }))
	sort.Strings(colors)

	c.Categories = lo.Uniq(lo.Map(agg.Rows, func(r model.AggregateRow, _ int) string { return firstKey(r) }))
	grouped := lo.GroupBy(agg.Rows, colorOf)
	c.Series = lo.Map(colors, func(color string, _ int) model.Series {
		return model.Series{
			Name: color,
			Points: lo.Map(grouped[color], func(r model.AggregateRow, _ int) model.Point {
				return model.Point{Label: firstKey(r), Value: r.Value}
			}),
		}
	})
	return c
}

// Scatter pairs xs and ys index by index; extra values on the longer side are ignored.
func Scatter(title, xField, yField string, xs, ys []float64, opts ...Option) model.ChartSpec {
	c := newSpec(model.ChartScatter, title, xField, yField, opts)
	n := lo.Min([]int{len(xs), len(ys)})
	if n == 0 {
		return c
	}
	points := make([]model.Point, n)
	for i := 0; i < n; i++ {
		points[i] = model.Point{X: xs[i], Value: ys[i]}
	}
	c.Series = []model.Series{{Name: yField, Points: points}}
	return c
}

// Histogram counts occurrences of each category, categories ascending.
func Histogram(title, field string, values []string, opts ...Option) model.ChartSpec {
	c := newSpec(model.ChartHistogram, title, field, "count", opts)
	if len(values) == 0 {
		return c
	}
	counts := lo.CountValues(values)
	keys := lo.Keys(counts)
	sort.Strings(keys)
	c.Series = []model.Series{{
		Name: field,
		Points: lo.Map(keys, func(k string, _ int) model.Point {
			return model.Point{Label: k, Value: float64(counts[k])}
		}),
	}}
	return c
}

func Heatmap(title string, m model.Matrix, opts ...Option) model.ChartSpec {
	c := newSpec(model.ChartHeatmap, title, "", "", opts)
	c.Matrix = &m
	return c
}
