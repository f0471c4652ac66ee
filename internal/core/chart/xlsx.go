package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"exusiai.dev/autodash/internal/model"
)

const (
	summarySheet     = "Summary"
	maxSheetNameLen  = 31
	defaultSheetName = "Sheet1"
)

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// SheetName derives a valid, unique worksheet name for the i-th chart.
func SheetName(i int, title string) string {
	name := fmt.Sprintf("%d %s", i+1, sheetNameReplacer.Replace(title))
	if r := []rune(name); len(r) > maxSheetNameLen {
		name = string(r[:maxSheetNameLen])
	}
	return strings.TrimSpace(name)
}

// WriteWorkbook exports every chart of the layout as a worksheet holding its data
// table, preceded by a summary sheet listing the charts.
func WriteWorkbook(w io.Writer, heading string, layout model.Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheetName, summarySheet); err != nil {
		return errors.Wrap(err, "rename summary sheet")
	}
	if err := writeSummary(f, heading, layout); err != nil {
		return err
	}

	for i, c := range layout.Charts() {
		c := c
		name := SheetName(i, c.Title)
		if _, err := f.NewSheet(name); err != nil {
			return errors.Wrapf(err, "create sheet %q", name)
		}
		if err := writeRows(f, name, chartRows(&c)); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	_, err := f.WriteTo(w)
	return errors.Wrap(err, "write workbook")
}

func writeSummary(f *excelize.File, heading string, layout model.Layout) error {
	rows := [][]any{
		{heading},
		{"#", "Row", "Column", "Kind", "Title"},
	}
	for ri, r := range layout.Rows {
		for ci, c := range r.Charts {
			rows = append(rows, []any{len(rows) - 1, ri + 1, ci + 1, string(c.Kind), c.Title})
		}
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}
	return errors.Wrap(f.SetColWidth(summarySheet, "E", "E", 60), "size summary columns")
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.WithStack(err)
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "write row %d of sheet %q", i+1, sheet)
		}
	}
	return nil
}

// chartRows flattens a chart into a header row followed by data rows.
func chartRows(c *model.ChartSpec) [][]any {
	switch {
	case c.Matrix != nil:
		rows := [][]any{append([]any{""}, lo.ToAnySlice(c.Matrix.Cols)...)}
		for i, label := range c.Matrix.Rows {
			row := []any{label}
			if i < len(c.Matrix.Values) {
				row = append(row, lo.ToAnySlice(c.Matrix.Values[i])...)
			}
			rows = append(rows, row)
		}
		return rows

	case c.Kind == model.ChartScatter:
		rows := [][]any{{c.AxisLabel(c.X), c.AxisLabel(c.Y)}}
		for _, s := range c.Series {
			for _, p := range s.Points {
				rows = append(rows, []any{p.X, p.Value})
			}
		}
		return rows

	case len(c.Series) > 1:
		// one column per series, one row per x label
		header := []any{c.AxisLabel(c.X)}
		cells := map[string]map[string]float64{}
		for _, s := range c.Series {
			header = append(header, s.Name)
			for _, p := range s.Points {
				if _, ok := cells[p.Label]; !ok {
					cells[p.Label] = map[string]float64{}
				}
				cells[p.Label][s.Name] = p.Value
			}
		}
		rows := [][]any{header}
		for _, l := range categories(c) {
			row := []any{l}
			for _, s := range c.Series {
				if v, ok := cells[l][s.Name]; ok {
					row = append(row, v)
				} else {
					row = append(row, nil)
				}
			}
			rows = append(rows, row)
		}
		return rows

	default:
		rows := [][]any{{c.AxisLabel(c.X), c.AxisLabel(c.Y)}}
		for _, s := range c.Series {
			for _, p := range s.Points {
				rows = append(rows, []any{p.Label, p.Value})
			}
		}
		return rows
	}
}
