package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"
)

func TestParseStatisticKind(t *testing.T) {
	cases := map[string]StatisticKind{
		"yearly":                      KindYearly,
		"Yearly Statistics":           KindYearly,
		" YEARLY ":                    KindYearly,
		"recession":                   KindRecessionPeriod,
		"Recession Statistics":        KindRecessionPeriod,
		"Recession Period Statistics": KindRecessionPeriod,
		"":                            KindUnset,
		"monthly":                     KindUnset,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseStatisticKind(in), "input %q", in)
	}
}

func TestYearControl(t *testing.T) {
	assert.False(t, YearControl(KindYearly).Disabled)
	assert.True(t, YearControl(KindRecessionPeriod).Disabled)
	assert.True(t, YearControl(KindUnset).Disabled)
}

func TestSelectableYears(t *testing.T) {
	years := SelectableYears()
	require.Len(t, years, 44)
	assert.Equal(t, 1980, years[0])
	assert.Equal(t, 2023, years[len(years)-1])
}

func TestSelectionJSON(t *testing.T) {
	b, err := json.Marshal(NewSelection(KindYearly, null.IntFrom(2009)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"yearly","year":2009}`, string(b))

	var sel Selection
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"Recession Statistics","year":null}`), &sel))
	assert.Equal(t, KindRecessionPeriod, sel.Kind)
	assert.False(t, sel.Year.Valid)
}

func TestLayoutChart(t *testing.T) {
	l := Layout{Rows: []Row{{Charts: []ChartSpec{{Title: "a"}, {Title: "b"}}}}}

	c, ok := l.Chart(0, 1)
	require.True(t, ok)
	assert.Equal(t, "b", c.Title)

	_, ok = l.Chart(1, 0)
	assert.False(t, ok)
	_, ok = l.Chart(0, -1)
	assert.False(t, ok)

	assert.True(t, EmptyLayout().Empty())
	assert.Len(t, l.Charts(), 2)
}
