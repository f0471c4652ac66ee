package model

import (
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Year bounds offered by the year selector.
const (
	FirstSelectableYear = 1980
	LastSelectableYear  = 2023
)

type StatisticKind int

const (
	KindUnset StatisticKind = iota
	KindYearly
	KindRecessionPeriod
)

var statisticKindNames = map[StatisticKind]string{
	KindUnset:           "",
	KindYearly:          "yearly",
	KindRecessionPeriod: "recession",
}

// ParseStatisticKind maps wire values (yearly, recession) and the dropdown labels
// (Yearly Statistics, Recession Statistics) to a kind. Anything else is KindUnset.
func ParseStatisticKind(s string) StatisticKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yearly", "yearly statistics":
		return KindYearly
	case "recession", "recession period", "recession statistics", "recession period statistics":
		return KindRecessionPeriod
	default:
		return KindUnset
	}
}

func (k StatisticKind) String() string {
	if s, ok := statisticKindNames[k]; ok && s != "" {
		return s
	}
	return "unset"
}

func (k StatisticKind) Label() string {
	switch k {
	case KindYearly:
		return "Yearly Statistics"
	case KindRecessionPeriod:
		return "Recession Period Statistics"
	default:
		return ""
	}
}

func (k StatisticKind) MarshalText() ([]byte, error) {
	return []byte(statisticKindNames[k]), nil
}

func (k *StatisticKind) UnmarshalText(text []byte) error {
	*k = ParseStatisticKind(string(text))
	return nil
}

// Selection is the dashboard's user-controlled state. Year is ignored unless Kind is KindYearly.
type Selection struct {
	Kind StatisticKind `json:"kind"`
	Year null.Int      `json:"year"`
}

func NewSelection(kind StatisticKind, year null.Int) Selection {
	return Selection{Kind: kind, Year: year}
}

// YearControlState is the state of the year selector for a statistic kind.
type YearControlState struct {
	Disabled bool `json:"disabled"`
}

// YearControl disables the year selector for every kind but KindYearly.
func YearControl(kind StatisticKind) YearControlState {
	return YearControlState{Disabled: kind != KindYearly}
}

type KindOption struct {
	Label string        `json:"label"`
	Value StatisticKind `json:"value"`
}

func KindOptions() []KindOption {
	return []KindOption{
		{Label: KindYearly.Label(), Value: KindYearly},
		{Label: KindRecessionPeriod.Label(), Value: KindRecessionPeriod},
	}
}

func SelectableYears() []int {
	years := make([]int, 0, LastSelectableYear-FirstSelectableYear+1)
	for y := FirstSelectableYear; y <= LastSelectableYear; y++ {
		years = append(years, y)
	}
	return years
}
