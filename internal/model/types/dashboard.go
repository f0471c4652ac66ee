package types

import (
	"strconv"

	"gopkg.in/guregu/null.v3"

	"exusiai.dev/autodash/internal/core/chart"
	"exusiai.dev/autodash/internal/model"
)

// SelectionQuery is the query string form of a dashboard selection. Year takes any
// signed integer; years without data render empty charts.
type SelectionQuery struct {
	Kind string `query:"kind" validate:"omitempty,max=64" example:"yearly"`
	Year string `query:"year" validate:"omitempty,numeric,excludes=." example:"2008"`
}

func (q *SelectionQuery) Selection() model.Selection {
	year := null.Int{}
	if v, err := strconv.ParseInt(q.Year, 10, 64); err == nil {
		year = null.IntFrom(v)
	}
	return model.NewSelection(model.ParseStatisticKind(q.Kind), year)
}

// SizeQuery sizes a rendered chart image. Zero values fall back to the default size.
type SizeQuery struct {
	Width  int `query:"width" validate:"omitempty,min=160,max=3840" example:"960"`
	Height int `query:"height" validate:"omitempty,min=120,max=2160" example:"540"`
}

func (q *SizeQuery) Size() chart.Size {
	return chart.Size{Width: q.Width, Height: q.Height}
}

type ChartPosition struct {
	Row int `params:"row" validate:"min=0" example:"0"`
	Col int `params:"col" validate:"min=0" example:"1"`
}
