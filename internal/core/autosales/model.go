package autosales

import (
	"sort"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Column names of the automobile sales CSV.
const (
	ColYear                   = "Year"
	ColMonth                  = "Month"
	ColVehicleType            = "Vehicle_Type"
	ColAutomobileSales        = "Automobile_Sales"
	ColAdvertisingExpenditure = "Advertising_Expenditure"
	ColRecession              = "Recession"
	ColUnemploymentRate       = "unemployment_rate"
)

var RequiredColumns = []string{
	ColYear,
	ColMonth,
	ColVehicleType,
	ColAutomobileSales,
	ColAdvertisingExpenditure,
	ColRecession,
	ColUnemploymentRate,
}

type Record struct {
	Year                   int     `json:"year"`
	Month                  string  `json:"month"`
	VehicleType            string  `json:"vehicleType"`
	AutomobileSales        float64 `json:"automobileSales"`
	AdvertisingExpenditure float64 `json:"advertisingExpenditure"`
	Recession              bool    `json:"recession"`
	UnemploymentRate       float64 `json:"unemploymentRate"`
}

// Table is an immutable, ordered set of records. Filters return new tables and
// never touch the receiver, so a *Table can be shared across goroutines.
type Table struct {
	rows []Record
}

func NewTable(rows []Record) *Table {
	return &Table{rows: slices.Clone(rows)}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns a copy of the records.
func (t *Table) Rows() []Record {
	if t == nil {
		return []Record{}
	}
	return slices.Clone(t.rows)
}

func (t *Table) Where(pred func(r Record) bool) *Table {
	if t == nil {
		return &Table{}
	}
	return &Table{rows: lo.Filter(t.rows, func(r Record, _ int) bool {
		return pred(r)
	})}
}

// Recession keeps the rows flagged as recession periods.
func (t *Table) Recession() *Table {
	return t.Where(func(r Record) bool { return r.Recession })
}

// Year keeps the rows of a single year.
func (t *Table) Year(year int) *Table {
	return t.Where(func(r Record) bool { return r.Year == year })
}

// Years lists the distinct years present, ascending.
func (t *Table) Years() []int {
	years := lo.Uniq(lo.Map(t.Rows(), func(r Record, _ int) int { return r.Year }))
	sort.Ints(years)
	return years
}

// VehicleTypes lists the distinct vehicle types present, ascending.
func (t *Table) VehicleTypes() []string {
	types := lo.Uniq(lo.Map(t.Rows(), func(r Record, _ int) string { return r.VehicleType }))
	sort.Strings(types)
	return types
}
