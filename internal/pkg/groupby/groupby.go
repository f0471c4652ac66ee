// Package groupby implements ordered, allocation-light group-by reductions over slices.
package groupby

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
)

// Group holds the values collected for one key, in input order.
type Group[K comparable] struct {
	Key    K
	Values []float64
}

// By collects value(item) per key(item). Groups are returned in order of first appearance
// and the values of each group keep the input order, so reductions are reproducible.
func By[T any, K comparable](items []T, key func(T) K, value func(T) float64) []Group[K] {
	index := make(map[K]int)
	groups := make([]Group[K], 0)
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K]{Key: k})
		}
		groups[i].Values = append(groups[i].Values, value(item))
	}
	return groups
}

// Reducer folds the values of a group into one number.
type Reducer func(values []float64) float64

// Sum adds the non-NaN values in order.
func Sum(values []float64) float64 {
	return floats.Sum(present(values))
}

// Mean is the arithmetic mean of the non-NaN values; 0 when there are none.
func Mean(values []float64) float64 {
	values = present(values)
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

func present(values []float64) []float64 {
	for _, v := range values {
		if math.IsNaN(v) {
			kept := make([]float64, 0, len(values))
			for _, v := range values {
				if !math.IsNaN(v) {
					kept = append(kept, v)
				}
			}
			return kept
		}
	}
	return values
}

// SortByKey orders groups by ascending key.
func SortByKey[K constraints.Ordered](groups []Group[K]) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
}

// SortFunc orders groups with a custom key comparison.
func SortFunc[K comparable](groups []Group[K], less func(a, b K) bool) {
	sort.SliceStable(groups, func(i, j int) bool {
		return less(groups[i].Key, groups[j].Key)
	})
}
