package model

type AggFunc string

const (
	AggMean AggFunc = "mean"
	AggSum  AggFunc = "sum"
)

type AggregateRow struct {
	Keys  []string `json:"keys"`
	Value float64  `json:"value"`
}

// Aggregate is an ordered group-by summary of Field over the By keys.
type Aggregate struct {
	By    []string       `json:"by"`
	Field string         `json:"field"`
	Func  AggFunc        `json:"func"`
	Rows  []AggregateRow `json:"rows"`
}

func (a Aggregate) Len() int {
	return len(a.Rows)
}

// Lookup finds the value of the group identified by keys.
func (a Aggregate) Lookup(keys ...string) (float64, bool) {
	for _, r := range a.Rows {
		if equalKeys(r.Keys, keys) {
			return r.Value, true
		}
	}
	return 0, false
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
