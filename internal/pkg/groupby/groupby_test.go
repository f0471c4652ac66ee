package groupby

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	k string
	v float64
}

func TestByKeepsFirstSeenOrder(t *testing.T) {
	rows := []row{{"b", 1}, {"a", 2}, {"b", 3}, {"c", 4}, {"a", 5}}

	groups := By(rows, func(r row) string { return r.k }, func(r row) float64 { return r.v })

	require.Len(t, groups, 3)
	assert.Equal(t, "b", groups[0].Key)
	assert.Equal(t, []float64{1, 3}, groups[0].Values)
	assert.Equal(t, "a", groups[1].Key)
	assert.Equal(t, []float64{2, 5}, groups[1].Values)
	assert.Equal(t, "c", groups[2].Key)
}

func TestByEmpty(t *testing.T) {
	groups := By([]row(nil), func(r row) string { return r.k }, func(r row) float64 { return r.v })
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestReducers(t *testing.T) {
	assert.Equal(t, 6.0, Sum([]float64{1, 2, 3}))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Sum(nil))
}

func TestSortByKey(t *testing.T) {
	groups := []Group[int]{{Key: 2009}, {Key: 1980}, {Key: 2001}}
	SortByKey(groups)
	assert.Equal(t, 1980, groups[0].Key)
	assert.Equal(t, 2001, groups[1].Key)
	assert.Equal(t, 2009, groups[2].Key)
}

func TestSortFunc(t *testing.T) {
	groups := []Group[string]{{Key: "bb"}, {Key: "a"}, {Key: "ccc"}}
	SortFunc(groups, func(a, b string) bool { return len(a) > len(b) })
	assert.Equal(t, "ccc", groups[0].Key)
	assert.Equal(t, "a", groups[2].Key)
}

func TestReducersSkipNaN(t *testing.T) {
	values := []float64{1, math.NaN(), 3}
	assert.Equal(t, 4.0, Sum(values))
	assert.Equal(t, 2.0, Mean(values))
	assert.Equal(t, 0.0, Mean([]float64{math.NaN()}))
}
