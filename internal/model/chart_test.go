package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointKeepsZeroX(t *testing.T) {
	b, err := json.Marshal(Point{X: 0, Value: 1.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"","x":0,"value":1.5}`, string(b))
}

func TestChartSpecIsEmpty(t *testing.T) {
	assert.True(t, ChartSpec{Series: []Series{{Name: "a"}}}.IsEmpty())
	assert.False(t, ChartSpec{Series: []Series{{Points: []Point{{Label: "a"}}}}}.IsEmpty())
	assert.True(t, ChartSpec{Matrix: &Matrix{}}.IsEmpty())
}
