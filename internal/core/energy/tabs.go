package energy

import (
	"math"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"exusiai.dev/autodash/internal/core/chart"
	"exusiai.dev/autodash/internal/core/predict"
	"exusiai.dev/autodash/internal/model"
)

type Tab string

const (
	TabUnknown        Tab = ""
	TabDaily          Tab = "daily"
	TabRegression     Tab = "regression"
	TabClassification Tab = "classification"
	TabCorrelation    Tab = "correlation"
)

const (
	TitleDaily          = "Daily Global Active Power"
	TitleRegression     = "Regression: Actual vs Predicted"
	TitleClassification = "Predicted Energy Plan Distribution"
	TitleCorrelation    = "Feature Correlation Heatmap"
)

var tabAliases = map[string]Tab{
	"daily":          TabDaily,
	"tab1":           TabDaily,
	"regression":     TabRegression,
	"tab2":           TabRegression,
	"classification": TabClassification,
	"tab3":           TabClassification,
	"correlation":    TabCorrelation,
	"tab4":           TabCorrelation,
}

type TabOption struct {
	Label string `json:"label"`
	Value Tab    `json:"value"`
}

func Tabs() []TabOption {
	return []TabOption{
		{Label: "Daily Consumption", Value: TabDaily},
		{Label: "Regression Predictions", Value: TabRegression},
		{Label: "Classification Results", Value: TabClassification},
		{Label: "Feature Correlation", Value: TabCorrelation},
	}
}

func ParseTab(s string) Tab {
	return tabAliases[strings.ToLower(strings.TrimSpace(s))]
}

// Report holds everything the energy tabs draw from. Evaluation is nil when no model
// could be trained.
type Report struct {
	Daily      []Reading
	Days       []Day
	Evaluation *predict.Evaluation
}

func NewReport(daily []Reading, evaluation *predict.Evaluation) *Report {
	return &Report{
		Daily:      daily,
		Days:       Days(daily),
		Evaluation: evaluation,
	}
}

// RenderTab builds the single-chart layout of a tab. Unknown tabs yield model.EmptyLayout().
func RenderTab(tab Tab, r *Report) model.Layout {
	var c model.ChartSpec
	switch tab {
	case TabDaily:
		c = dailyChart(r)
	case TabRegression:
		c = regressionChart(r)
	case TabClassification:
		c = classificationChart(r)
	case TabCorrelation:
		c = correlationChart(r)
	default:
		return model.EmptyLayout()
	}
	return model.Layout{Rows: []model.Row{{Charts: []model.ChartSpec{c}}}}
}

func dailyChart(r *Report) model.ChartSpec {
	agg := model.Aggregate{
		By:    []string{ColDateTime},
		Field: ColGlobalActivePower,
		Func:  model.AggMean,
		Rows: lo.Map(r.Daily, func(d Reading, _ int) model.AggregateRow {
			return model.AggregateRow{Keys: []string{d.Time.Format(DateLayout)}, Value: d.ActivePower()}
		}),
	}
	return chart.Line(TitleDaily, agg)
}

func regressionChart(r *Report) model.ChartSpec {
	var actual, predicted []float64
	if r.Evaluation != nil {
		actual, predicted = r.Evaluation.Actual, r.Evaluation.Predicted
	}
	return chart.Scatter(TitleRegression, "x", "y", actual, predicted,
		chart.WithLabels(map[string]string{"x": "Actual", "y": "Predicted"}))
}

func classificationChart(r *Report) model.ChartSpec {
	var plans []string
	if r.Evaluation != nil {
		plans = lo.Map(r.Evaluation.PredictedPlans, func(p predict.Plan, _ int) string { return string(p) })
	}
	return chart.Histogram(TitleClassification, "value", plans)
}

// CorrelationColumns are the numeric columns of a Day, in heatmap order.
var CorrelationColumns = append(append([]string{}, MeasureColumns...), ColNextDayConsumption)

func correlationChart(r *Report) model.ChartSpec {
	columns := make([][]float64, len(CorrelationColumns))
	for _, d := range r.Days {
		for i, v := range d.Values {
			columns[i] = append(columns[i], v)
		}
		columns[len(columns)-1] = append(columns[len(columns)-1], d.NextDayConsumption)
	}

	m := model.Matrix{
		Rows:   CorrelationColumns,
		Cols:   CorrelationColumns,
		Values: [][]float64{},
	}
	if len(r.Days) > 1 {
		m.Values = make([][]float64, len(columns))
		for i := range columns {
			m.Values[i] = make([]float64, len(columns))
			for j := range columns {
				m.Values[i][j] = pearson(columns[i], columns[j])
			}
		}
	}
	return chart.Heatmap(TitleCorrelation, m)
}

// pearson is stat.Correlation with undefined results (a constant column) reported as 0.
func pearson(x, y []float64) float64 {
	c := stat.Correlation(x, y, nil)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	return c
}
