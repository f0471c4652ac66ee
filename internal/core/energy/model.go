package energy

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"exusiai.dev/autodash/internal/core/predict"
)

const (
	ColDateTime            = "DateTime"
	ColGlobalActivePower   = "Global_active_power"
	ColGlobalReactivePower = predict.FeatureGlobalReactivePower
	ColVoltage             = predict.FeatureVoltage
	ColGlobalIntensity     = predict.FeatureGlobalIntensity
	ColSubMetering1        = predict.FeatureSubMetering1
	ColSubMetering2        = predict.FeatureSubMetering2
	ColSubMetering3        = predict.FeatureSubMetering3

	ColNextDayConsumption = "next_day_consumption"

	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

const measureCount = 7

// MeasureColumns are the numeric columns of a reading, in Reading.Values order.
var MeasureColumns = []string{
	ColGlobalActivePower,
	ColGlobalReactivePower,
	ColVoltage,
	ColGlobalIntensity,
	ColSubMetering1,
	ColSubMetering2,
	ColSubMetering3,
}

var RequiredColumns = append([]string{ColDateTime}, MeasureColumns...)

// Reading is one household power measurement; for daily means Time is midnight of the day.
type Reading struct {
	Time   time.Time
	Values [measureCount]float64
}

func (r *Reading) ActivePower() float64 {
	return r.Values[0]
}

// Features returns the predictor inputs of the reading, in predict.Features order.
func (r *Reading) Features() []float64 {
	return slices.Clone(r.Values[1:])
}

func (r *Reading) complete() bool {
	for _, v := range r.Values {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

type Table struct {
	readings []Reading
}

func NewTable(readings []Reading) *Table {
	return &Table{readings: slices.Clone(readings)}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.readings)
}

func (t *Table) Readings() []Reading {
	if t == nil {
		return []Reading{}
	}
	return slices.Clone(t.readings)
}

// Sample keeps round(fraction*n) readings picked by a seeded shuffle, in their original order.
// A fraction of 1 or more keeps the whole table.
func (t *Table) Sample(fraction float64, seed int64) *Table {
	if fraction >= 1 {
		return t
	}
	idx := sampleIndices(t.Len(), fraction, seed)
	readings := make([]Reading, len(idx))
	for i, j := range idx {
		readings[i] = t.readings[j]
	}
	return &Table{readings: readings}
}

// sampleIndices picks round(fraction*n) of the indices [0, n) with a seeded shuffle, ascending.
func sampleIndices(n int, fraction float64, seed int64) []int {
	if fraction >= 1 {
		return lo.Range(n)
	}
	k := int(math.Round(fraction * float64(n)))
	if k <= 0 {
		return []int{}
	}
	idx := rand.New(rand.NewSource(seed)).Perm(n)[:k]
	sort.Ints(idx)
	return idx
}
