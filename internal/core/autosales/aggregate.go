package autosales

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"exusiai.dev/autodash/internal/model"
	"exusiai.dev/autodash/internal/pkg/groupby"
)

var monthOrder = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// monthRank orders month labels in calendar order; unknown labels sort last.
func monthRank(m string) int {
	l := strings.ToLower(m)
	if len(l) > 3 {
		l = l[:3]
	}
	if r, ok := monthOrder[l]; ok {
		return r
	}
	return len(monthOrder) + 1
}

func salesOf(r Record) float64       { return r.AutomobileSales }
func expenditureOf(r Record) float64 { return r.AdvertisingExpenditure }

func single[K comparable](groups []groupby.Group[K], label func(K) string, by, field string, fn model.AggFunc, reduce groupby.Reducer) model.Aggregate {
	agg := model.Aggregate{
		By:    []string{by},
		Field: field,
		Func:  fn,
		Rows:  make([]model.AggregateRow, 0, len(groups)),
	}
	for _, g := range groups {
		agg.Rows = append(agg.Rows, model.AggregateRow{
			Keys:  []string{label(g.Key)},
			Value: reduce(g.Values),
		})
	}
	return agg
}

// MeanSalesByYear averages Automobile_Sales per year, years ascending.
func MeanSalesByYear(t *Table) model.Aggregate {
	groups := groupby.By(t.Rows(), func(r Record) int { return r.Year }, salesOf)
	groupby.SortByKey(groups)
	return single(groups, strconv.Itoa, ColYear, ColAutomobileSales, model.AggMean, groupby.Mean)
}

// SumSalesByMonth totals Automobile_Sales per month label, in calendar order.
func SumSalesByMonth(t *Table) model.Aggregate {
	groups := groupby.By(t.Rows(), func(r Record) string { return r.Month }, salesOf)
	groupby.SortFunc(groups, func(a, b string) bool { return monthRank(a) < monthRank(b) })
	return single(groups, func(m string) string { return m }, ColMonth, ColAutomobileSales, model.AggSum, groupby.Sum)
}

// MeanSalesByVehicleType averages Automobile_Sales per vehicle type, types ascending.
func MeanSalesByVehicleType(t *Table) model.Aggregate {
	groups := groupby.By(t.Rows(), func(r Record) string { return r.VehicleType }, salesOf)
	groupby.SortByKey(groups)
	return single(groups, func(v string) string { return v }, ColVehicleType, ColAutomobileSales, model.AggMean, groupby.Mean)
}

// SumAdvertisingByVehicleType totals Advertising_Expenditure per vehicle type, types ascending.
func SumAdvertisingByVehicleType(t *Table) model.Aggregate {
	groups := groupby.By(t.Rows(), func(r Record) string { return r.VehicleType }, expenditureOf)
	groupby.SortByKey(groups)
	return single(groups, func(v string) string { return v }, ColVehicleType, ColAdvertisingExpenditure, model.AggSum, groupby.Sum)
}

type rateAndType struct {
	rate        float64
	vehicleType string
}

// MeanSalesByUnemploymentAndVehicleType averages Automobile_Sales per (unemployment_rate, Vehicle_Type)
// pair, ordered by rate then type. Rows without a rate are left out of the grouping.
func MeanSalesByUnemploymentAndVehicleType(t *Table) model.Aggregate {
	rated := t.Where(func(r Record) bool { return !math.IsNaN(r.UnemploymentRate) })
	groups := groupby.By(rated.Rows(), func(r Record) rateAndType {
		return rateAndType{rate: r.UnemploymentRate, vehicleType: r.VehicleType}
	}, salesOf)
	groupby.SortFunc(groups, func(a, b rateAndType) bool {
		if a.rate != b.rate {
			return a.rate < b.rate
		}
		return a.vehicleType < b.vehicleType
	})

	agg := model.Aggregate{
		By:    []string{ColUnemploymentRate, ColVehicleType},
		Field: ColAutomobileSales,
		Func:  model.AggMean,
		Rows:  make([]model.AggregateRow, 0, len(groups)),
	}
	for _, g := range groups {
		agg.Rows = append(agg.Rows, model.AggregateRow{
			Keys:  []string{RateLabel(g.Key.rate), g.Key.vehicleType},
			Value: groupby.Mean(g.Values),
		})
	}
	return agg
}

// RateLabel renders an unemployment rate as the shortest decimal that round-trips,
// so 5.9 is keyed as "5.9" rather than "5.900000".
func RateLabel(rate float64) string {
	return decimal.NewFromFloat(rate).String()
}
