package autosales

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Year,Month,Recession,Consumer_Confidence,Automobile_Sales,Advertising_Expenditure,Vehicle_Type,unemployment_rate
1/31/1980,1980,Jan,1,108.24,456,1558,Supperminicar,5.4
2/29/1980,1980,Feb,1,98.75,555.9,3048,Supperminicar,4.8
3/31/1980,1980,Mar,1,107.48,620,3137,Mediumfamilycar,3.4
1/31/1981,1981,Jan,0,115.01,1800.5,2100,Sports,2.1
`

func TestParse(t *testing.T) {
	table, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 4, table.Len())

	rows := table.Rows()
	assert.Equal(t, Record{
		Year:                   1980,
		Month:                  "Jan",
		VehicleType:            "Supperminicar",
		AutomobileSales:        456,
		AdvertisingExpenditure: 1558,
		Recession:              true,
		UnemploymentRate:       5.4,
	}, rows[0])
	assert.False(t, rows[3].Recession)
	assert.Equal(t, []int{1980, 1981}, table.Years())
	assert.Equal(t, []string{"Mediumfamilycar", "Sports", "Supperminicar"}, table.VehicleTypes())
}

func TestParseMissingColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("Year,Month,Automobile_Sales\n1980,Jan,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColVehicleType)
	assert.Contains(t, err.Error(), ColUnemploymentRate)
}

func TestParseMissingValues(t *testing.T) {
	csv := "Year,Month,Recession,Automobile_Sales,Advertising_Expenditure,Vehicle_Type,unemployment_rate\n" +
		"1980,Jan,1,NaN,10,Sports,\n"
	table, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.True(t, math.IsNaN(table.Rows()[0].AutomobileSales))
	assert.True(t, math.IsNaN(table.Rows()[0].UnemploymentRate))
}

func TestTableFiltersDoNotMutate(t *testing.T) {
	table, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	before := table.Rows()

	assert.Equal(t, 3, table.Recession().Len())
	assert.Equal(t, 1, table.Year(1981).Len())
	assert.Equal(t, 0, table.Year(2050).Len())

	assert.Equal(t, before, table.Rows())

	rows := table.Rows()
	rows[0].Year = 1
	assert.Equal(t, 1980, table.Rows()[0].Year)
}

func TestNilTable(t *testing.T) {
	var table *Table
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Rows())
	assert.Equal(t, 0, table.Recession().Len())
}
