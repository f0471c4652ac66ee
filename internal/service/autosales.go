package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"exusiai.dev/autodash/internal/core/autosales"
	"exusiai.dev/autodash/internal/core/chart"
	"exusiai.dev/autodash/internal/model"
	"exusiai.dev/autodash/internal/pkg/apperr"
	"exusiai.dev/autodash/internal/pkg/cache"
	"exusiai.dev/autodash/internal/pkg/observability"
	"exusiai.dev/autodash/internal/repo"
)

const DashboardAutosales = "autosales"

// AutosalesOptions feeds both dashboard selectors.
type AutosalesOptions struct {
	Kinds []model.KindOption `json:"kinds"`
	Years []int              `json:"years"`
	// DataYears are the years actually present in the dataset.
	DataYears []int `json:"dataYears"`
}

type Autosales struct {
	Table    *autosales.Table
	LoadedAt time.Time

	options *cache.Singular[*AutosalesOptions]
}

func NewAutosales(datasets *repo.Datasets) *Autosales {
	return &Autosales{
		Table:    datasets.Autosales,
		LoadedAt: datasets.LoadedAt,
		options:  cache.NewSingular[*AutosalesOptions]("autosales#options"),
	}
}

// Cache: (singular) autosales#options, never expires; the dataset is immutable
func (s *Autosales) Options() (*AutosalesOptions, error) {
	options, _, err := s.options.MutexGetSet(func() (*AutosalesOptions, error) {
		return &AutosalesOptions{
			Kinds:     model.KindOptions(),
			Years:     model.SelectableYears(),
			DataYears: s.Table.Years(),
		}, nil
	}, 0)
	return options, err
}

func (s *Autosales) YearControl(kind model.StatisticKind) model.YearControlState {
	return model.YearControl(kind)
}

func (s *Autosales) Dashboard(ctx context.Context, sel model.Selection) model.Layout {
	start := time.Now()
	layout := autosales.Render(sel, s.Table)
	observability.RenderDuration.
		WithLabelValues(DashboardAutosales, sel.Kind.String()).
		Observe(time.Since(start).Seconds())
	return layout
}

func (s *Autosales) Aggregates(sel model.Selection) []model.Aggregate {
	return autosales.Aggregates(sel, s.Table)
}

// Chart picks one panel of the dashboard by its zero-based row and column.
func (s *Autosales) Chart(ctx context.Context, sel model.Selection, row, col int) (*model.ChartSpec, error) {
	c, ok := s.Dashboard(ctx, sel).Chart(row, col)
	if !ok {
		return nil, apperr.ErrNotFound.Msg("no chart at row %d, column %d for the selection", row, col)
	}
	return c, nil
}

func (s *Autosales) ChartPNG(ctx context.Context, w io.Writer, sel model.Selection, row, col int, size chart.Size) error {
	c, err := s.Chart(ctx, sel, row, col)
	if err != nil {
		return err
	}
	return renderPNG(w, c, size)
}

// Export writes the dashboard of a selection as an xlsx workbook.
func (s *Autosales) Export(ctx context.Context, w io.Writer, sel model.Selection) error {
	layout := s.Dashboard(ctx, sel)
	if layout.Empty() {
		return apperr.ErrNotFound.Msg("nothing to export for the selection")
	}
	return chart.WriteWorkbook(w, ExportHeading(sel), layout)
}

func ExportHeading(sel model.Selection) string {
	if sel.Kind == model.KindYearly && sel.Year.Valid {
		return fmt.Sprintf("%s %d", sel.Kind.Label(), sel.Year.Int64)
	}
	return sel.Kind.Label()
}

func renderPNG(w io.Writer, c *model.ChartSpec, size chart.Size) error {
	err := chart.RenderPNG(w, c, size)
	if errors.Is(err, chart.ErrUnsupportedKind) {
		return apperr.ErrUnsupportedChart.Msg("%s chart %q cannot be rendered as an image", c.Kind, c.Title)
	}
	return err
}
