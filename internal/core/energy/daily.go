package energy

import (
	"math"
	"time"

	"github.com/ahmetb/go-linq/v3"

	"exusiai.dev/autodash/internal/core/predict"
)

// DailyMeans resamples the readings to one row per calendar day holding the mean of every
// column. Missing values are skipped; days left with a missing column are dropped.
func DailyMeans(t *Table) []Reading {
	var groups []linq.Group
	linq.From(t.Readings()).
		GroupByT(
			func(r Reading) string { return r.Time.Format(DateLayout) },
			func(r Reading) Reading { return r }).
		OrderByT(func(g linq.Group) string { return g.Key.(string) }).
		ToSlice(&groups)

	days := make([]Reading, 0, len(groups))
	for _, g := range groups {
		day, _ := time.Parse(DateLayout, g.Key.(string))
		var sums, counts [measureCount]float64
		for _, el := range g.Group {
			r := el.(Reading)
			for i, v := range r.Values {
				if !math.IsNaN(v) {
					sums[i] += v
					counts[i]++
				}
			}
		}

		mean := Reading{Time: day}
		for i := range mean.Values {
			mean.Values[i] = sums[i] / counts[i]
		}
		if mean.complete() {
			days = append(days, mean)
		}
	}
	return days
}

// Day is a daily mean together with its training targets.
type Day struct {
	Reading
	NextDayConsumption float64
	Plan               predict.Plan
}

// Days pairs every daily mean with the next row's active power and the plan band of its own
// active power. The last day and days outside the plan bands are dropped.
func Days(daily []Reading) []Day {
	days := make([]Day, 0, len(daily))
	for i := 0; i+1 < len(daily); i++ {
		plan, ok := predict.PlanFor(daily[i].ActivePower())
		if !ok {
			continue
		}
		days = append(days, Day{
			Reading:            daily[i],
			NextDayConsumption: daily[i+1].ActivePower(),
			Plan:               plan,
		})
	}
	return days
}

func Samples(days []Day) []predict.Sample {
	samples := make([]predict.Sample, len(days))
	for i, d := range days {
		samples[i] = predict.Sample{
			Features: d.Features(),
			Target:   d.NextDayConsumption,
			Plan:     d.Plan,
		}
	}
	return samples
}
