package model

type ChartKind string

const (
	ChartLine      ChartKind = "line"
	ChartBar       ChartKind = "bar"
	ChartPie       ChartKind = "pie"
	ChartScatter   ChartKind = "scatter"
	ChartHistogram ChartKind = "histogram"
	ChartHeatmap   ChartKind = "heatmap"
)

// Point is one datum of a series. Label is the categorical x value (or pie slice name);
// X is only meaningful for scatter charts.
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Value float64 `json:"value"`
}

type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Matrix carries heatmap cells; Values[i][j] is the cell at row Rows[i], column Cols[j].
type Matrix struct {
	Rows   []string    `json:"rows"`
	Cols   []string    `json:"cols"`
	Values [][]float64 `json:"values"`
}

// ChartSpec is a renderer-independent description of one chart.
type ChartSpec struct {
	Kind  ChartKind `json:"kind"`
	Title string    `json:"title"`
	// X and Y name the data fields plotted on each axis (for pies: names and values).
	X string `json:"x"`
	Y string `json:"y"`
	// Color names the field series are split by, if any.
	Color string `json:"color,omitempty"`
	// Categories fixes the x order of a color-split chart.
	Categories []string          `json:"categories,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
	Series     []Series          `json:"series"`
	Matrix     *Matrix           `json:"matrix,omitempty"`
}

// AxisLabel returns the display label of a field, honoring Labels overrides.
func (c ChartSpec) AxisLabel(field string) string {
	if l, ok := c.Labels[field]; ok {
		return l
	}
	return field
}

// IsEmpty reports whether the chart has no data to draw.
func (c ChartSpec) IsEmpty() bool {
	if c.Matrix != nil {
		return len(c.Matrix.Values) == 0
	}
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

type Row struct {
	Charts []ChartSpec `json:"charts"`
}

// Layout is the ordered set of chart panel rows produced by one render.
type Layout struct {
	Rows []Row `json:"rows"`
}

// EmptyLayout is the explicit "no output" render result.
func EmptyLayout() Layout {
	return Layout{Rows: []Row{}}
}

func (l Layout) Empty() bool {
	return len(l.Rows) == 0
}

// Chart returns the chart at the zero-based (row, col) position.
func (l Layout) Chart(row, col int) (*ChartSpec, bool) {
	if row < 0 || row >= len(l.Rows) {
		return nil, false
	}
	charts := l.Rows[row].Charts
	if col < 0 || col >= len(charts) {
		return nil, false
	}
	return &charts[col], true
}

// Charts flattens the layout in row-major order.
func (l Layout) Charts() []ChartSpec {
	var charts []ChartSpec
	for _, r := range l.Rows {
		charts = append(charts, r.Charts...)
	}
	return charts
}
