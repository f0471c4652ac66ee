package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"exusiai.dev/autodash/internal/model"
)

func TestSheetName(t *testing.T) {
	assert.Equal(t, "1 Sales (a) b", SheetName(0, "Sales [a]/b"))
	assert.Len(t, []rune(SheetName(9, "Average Vehicles Sold by Vehicle Type During Recession")), 31)
}

func TestWriteWorkbook(t *testing.T) {
	layout := model.Layout{Rows: []model.Row{
		{Charts: []model.ChartSpec{Bar("Sales", salesByType())}},
		{Charts: []model.ChartSpec{Scatter("Fit", "actual", "predicted", []float64{1}, []float64{2})}},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, "Recession Period Statistics", layout))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "1 Sales", "2 Fit"}, f.GetSheetList())

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, "Recession Period Statistics", summary[0][0])
	assert.Equal(t, []string{"2", "2", "1", "scatter", "Fit"}, summary[3])

	sales, err := f.GetRows("1 Sales")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Vehicle_Type", "Automobile_Sales"},
		{"SUV", "200"},
		{"Sedan", "100"},
	}, sales)
}

func TestChartRowsGrouped(t *testing.T) {
	c := model.ChartSpec{
		X: "unemployment_rate",
		Series: []model.Series{
			{Name: "SUV", Points: []model.Point{{Label: "2.1", Value: 20}}},
			{Name: "Sedan", Points: []model.Point{{Label: "2.1", Value: 10}, {Label: "3.5", Value: 30}}},
		},
	}
	assert.Equal(t, [][]any{
		{"unemployment_rate", "SUV", "Sedan"},
		{"2.1", 20.0, 10.0},
		{"3.5", nil, 30.0},
	}, chartRows(&c))
}
