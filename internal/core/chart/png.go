package chart

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"exusiai.dev/autodash/internal/model"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 540
)

var ErrUnsupportedKind = errors.New("chart kind has no raster renderer")

type Size struct {
	Width  int
	Height int
}

func (s Size) orDefault() Size {
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	return s
}

func padding() gochart.Style {
	return gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// RenderPNG draws c into w. Charts without data come out as a titled, empty canvas.
func RenderPNG(w io.Writer, c *model.ChartSpec, size Size) error {
	size = size.orDefault()
	if c.Kind == model.ChartHeatmap {
		return ErrUnsupportedKind
	}
	if c.IsEmpty() || !drawable(c) {
		return renderPlaceholder(w, c, size)
	}

	var err error
	switch c.Kind {
	case model.ChartLine:
		err = renderXY(w, c, size, false)
	case model.ChartScatter:
		err = renderXY(w, c, size, true)
	case model.ChartBar, model.ChartHistogram:
		if len(c.Series) > 1 {
			err = renderGrouped(w, c, size)
		} else {
			err = renderBar(w, c, size)
		}
	case model.ChartPie:
		err = renderPie(w, c, size)
	default:
		return ErrUnsupportedKind
	}
	return errors.Wrapf(err, "render %s chart %q", c.Kind, c.Title)
}

// drawable rules out inputs go-chart refuses: pies without a positive total.
func drawable(c *model.ChartSpec) bool {
	if c.Kind == model.ChartPie {
		for _, s := range c.Series {
			for _, p := range s.Points {
				if p.Value > 0 {
					return true
				}
			}
		}
		return false
	}
	return true
}

func renderPlaceholder(w io.Writer, c *model.ChartSpec, size Size) error {
	transparent := gochart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1}
	graph := gochart.Chart{
		Title:      c.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: padding(),
		XAxis:      gochart.XAxis{Name: c.AxisLabel(c.X), Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		YAxis:      gochart.YAxis{Name: c.AxisLabel(c.Y), Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		Series: []gochart.Series{
			gochart.ContinuousSeries{XValues: []float64{0, 1}, YValues: []float64{0, 1}, Style: transparent},
		},
	}
	return errors.Wrapf(graph.Render(gochart.PNG, w), "render empty chart %q", c.Title)
}

// valueRange spans all point values, widened so that it is never degenerate.
func valueRange(c *model.ChartSpec, includeZero bool) *gochart.ContinuousRange {
	low, high := math.Inf(1), math.Inf(-1)
	if includeZero {
		low, high = 0, 0
	}
	for _, s := range c.Series {
		for _, p := range s.Points {
			low = math.Min(low, p.Value)
			high = math.Max(high, p.Value)
		}
	}
	if high-low == 0 {
		pad := math.Max(math.Abs(high)*0.1, 1)
		low, high = low-pad, high+pad
	} else {
		pad := (high - low) * 0.05
		if !includeZero || low < 0 {
			low -= pad
		}
		high += pad
	}
	return &gochart.ContinuousRange{Min: low, Max: high}
}

func renderXY(w io.Writer, c *model.ChartSpec, size Size, scatter bool) error {
	graph := gochart.Chart{
		Title:      c.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: padding(),
		XAxis:      gochart.XAxis{Name: c.AxisLabel(c.X)},
		YAxis:      gochart.YAxis{Name: c.AxisLabel(c.Y), Range: valueRange(c, false)},
	}

	style := gochart.Style{StrokeWidth: 2}
	if scatter {
		style = gochart.Style{StrokeWidth: gochart.Disabled, DotWidth: 3}
	}

	if scatter {
		xs := &model.ChartSpec{}
		for _, s := range c.Series {
			ps := make([]model.Point, len(s.Points))
			for i, p := range s.Points {
				ps[i] = model.Point{Value: p.X}
			}
			xs.Series = append(xs.Series, model.Series{Points: ps})
		}
		graph.XAxis.Range = valueRange(xs, false)
	} else {
		// categorical x axis: one tick per label, plus blank edge ticks as margins
		var longest []model.Point
		for _, s := range c.Series {
			if len(s.Points) > len(longest) {
				longest = s.Points
			}
		}
		ticks := []gochart.Tick{{Value: -0.5}}
		for i, p := range longest {
			ticks = append(ticks, gochart.Tick{Value: float64(i), Label: p.Label})
		}
		graph.XAxis.Ticks = append(ticks, gochart.Tick{Value: float64(len(longest)) - 0.5})
	}

	for _, s := range c.Series {
		xv := make([]float64, len(s.Points))
		yv := make([]float64, len(s.Points))
		for i, p := range s.Points {
			if scatter {
				xv[i] = p.X
			} else {
				xv[i] = float64(i)
			}
			yv[i] = p.Value
		}
		graph.Series = append(graph.Series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xv,
			YValues: yv,
			Style:   style,
		})
	}
	if len(c.Series) > 1 {
		graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	}
	return graph.Render(gochart.PNG, w)
}

func renderBar(w io.Writer, c *model.ChartSpec, size Size) error {
	points := c.Series[0].Points
	bars := make([]gochart.Value, len(points))
	for i, p := range points {
		bars[i] = gochart.Value{Label: p.Label, Value: p.Value}
	}

	spacing := 8
	width := barWidth(size, len(bars), spacing)
	graph := gochart.BarChart{
		Title:      c.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: padding(),
		BarWidth:   width,
		BarSpacing: spacing,
		YAxis:      gochart.YAxis{Name: c.AxisLabel(c.Y), Range: valueRange(c, true)},
		Bars:       bars,
	}
	return graph.Render(gochart.PNG, w)
}

// categories lists the x labels of a multi-series chart: Categories when set, otherwise
// the labels in first-seen order across series.
func categories(c *model.ChartSpec) []string {
	if len(c.Categories) > 0 {
		return c.Categories
	}
	var labels []string
	for _, s := range c.Series {
		for _, p := range s.Points {
			labels = append(labels, p.Label)
		}
	}
	return lo.Uniq(labels)
}

func barWidth(size Size, bars, spacing int) int {
	width := (size.Width-120)/bars - spacing
	if width < 4 {
		width = 4
	}
	return width
}

// groupedBars lays series out side by side: one bar per series within each category,
// colored by series, on a y axis shared by all bars.
func groupedBars(c *model.ChartSpec, size Size) gochart.BarChart {
	labels := categories(c)
	values := make([]map[string]float64, len(c.Series))
	for si, s := range c.Series {
		values[si] = lo.Associate(s.Points, func(p model.Point) (string, float64) { return p.Label, p.Value })
	}

	bars := make([]gochart.Value, 0, len(labels)*len(c.Series))
	for _, l := range labels {
		for si := range c.Series {
			color := gochart.DefaultColorPalette.GetSeriesColor(si)
			bar := gochart.Value{Value: values[si][l], Style: gochart.Style{FillColor: color, StrokeColor: color}}
			if si == 0 {
				bar.Label = l
			}
			bars = append(bars, bar)
		}
	}

	spacing := 4
	return gochart.BarChart{
		Title:      c.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: padding(),
		BarWidth:   barWidth(size, len(bars), spacing),
		BarSpacing: spacing,
		YAxis:      gochart.YAxis{Name: c.AxisLabel(c.Y), Range: valueRange(c, true)},
		Bars:       bars,
	}
}

func renderGrouped(w io.Writer, c *model.ChartSpec, size Size) error {
	graph := groupedBars(c, size)
	return graph.Render(gochart.PNG, w)
}

func renderPie(w io.Writer, c *model.ChartSpec, size Size) error {
	var slices []gochart.Value
	for _, p := range c.Series[0].Points {
		if p.Value > 0 {
			slices = append(slices, gochart.Value{Label: p.Label, Value: p.Value})
		}
	}
	graph := gochart.PieChart{
		Title:      c.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: padding(),
		Values:     slices,
	}
	return graph.Render(gochart.PNG, w)
}
