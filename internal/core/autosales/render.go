package autosales

import (
	"fmt"

	"exusiai.dev/autodash/internal/core/chart"
	"exusiai.dev/autodash/internal/model"
)

const (
	TitleRecessionSalesByYear        = "Average Automobile Sales Over Recession Period"
	TitleRecessionSalesByType        = "Average Vehicles Sold by Vehicle Type During Recession"
	TitleRecessionAdvertisingShare   = "Advertising Expenditure Share by Vehicle Type During Recession"
	TitleRecessionUnemploymentEffect = "Effect of Unemployment Rate on Vehicle Type and Sales"

	TitleYearlySales = "Yearly Automobile Sales"
)

func TitleMonthlySales(year int) string {
	return fmt.Sprintf("Monthly Automobile Sales in %d", year)
}

func TitleYearSalesByType(year int) string {
	return fmt.Sprintf("Average Vehicles Sold by Vehicle Type in %d", year)
}

func TitleYearAdvertising(year int) string {
	return fmt.Sprintf("Total Advertising Expenditure by Vehicle Type in %d", year)
}

var unemploymentLabels = map[string]string{
	ColUnemploymentRate: "Unemployment Rate",
	ColAutomobileSales:  "Average Automobile Sales",
}

// Render builds the dashboard layout for a selection. It only reads t, so the same
// (selection, table) always yields the same layout. Selections that have nothing to
// show (no kind, or yearly without a year) yield model.EmptyLayout().
func Render(sel model.Selection, t *Table) model.Layout {
	switch sel.Kind {
	case model.KindRecessionPeriod:
		return renderRecession(t)
	case model.KindYearly:
		if !sel.Year.Valid {
			return model.EmptyLayout()
		}
		return renderYearly(t, int(sel.Year.Int64))
	case model.KindUnset:
		return model.EmptyLayout()
	default:
		return model.EmptyLayout()
	}
}

func renderRecession(t *Table) model.Layout {
	recession := t.Recession()
	return model.Layout{Rows: []model.Row{
		{Charts: []model.ChartSpec{
			chart.Line(TitleRecessionSalesByYear, MeanSalesByYear(recession)),
			chart.Bar(TitleRecessionSalesByType, MeanSalesByVehicleType(recession)),
		}},
		{Charts: []model.ChartSpec{
			chart.Pie(TitleRecessionAdvertisingShare, SumAdvertisingByVehicleType(recession)),
			chart.GroupedBar(TitleRecessionUnemploymentEffect, MeanSalesByUnemploymentAndVehicleType(recession),
				chart.WithLabels(unemploymentLabels)),
		}},
	}}
}

func renderYearly(t *Table, year int) model.Layout {
	inYear := t.Year(year)
	return model.Layout{Rows: []model.Row{
		{Charts: []model.ChartSpec{
			chart.Line(TitleYearlySales, MeanSalesByYear(t)),
			chart.Line(TitleMonthlySales(year), SumSalesByMonth(inYear)),
		}},
		{Charts: []model.ChartSpec{
			chart.Bar(TitleYearSalesByType(year), MeanSalesByVehicleType(inYear)),
			chart.Pie(TitleYearAdvertising(year), SumAdvertisingByVehicleType(inYear)),
		}},
	}}
}

// Aggregates lists the four aggregates behind the layout of a selection, in panel order.
// It returns nil whenever Render would return an empty layout.
func Aggregates(sel model.Selection, t *Table) []model.Aggregate {
	switch sel.Kind {
	case model.KindRecessionPeriod:
		recession := t.Recession()
		return []model.Aggregate{
			MeanSalesByYear(recession),
			MeanSalesByVehicleType(recession),
			SumAdvertisingByVehicleType(recession),
			MeanSalesByUnemploymentAndVehicleType(recession),
		}
	case model.KindYearly:
		if !sel.Year.Valid {
			return nil
		}
		inYear := t.Year(int(sel.Year.Int64))
		return []model.Aggregate{
			MeanSalesByYear(t),
			SumSalesByMonth(inYear),
			MeanSalesByVehicleType(inYear),
			SumAdvertisingByVehicleType(inYear),
		}
	default:
		return nil
	}
}
