package render

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"gopkg.in/guregu/null.v3"

	cliapp "exusiai.dev/autodash/cmd/app/cli"
	"exusiai.dev/autodash/internal/model"
	"exusiai.dev/autodash/internal/service"
)

type CommandDeps struct {
	fx.In

	AutosalesService *service.Autosales
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "print the aggregates behind a dashboard selection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "kind",
				Usage:    "statistic kind: yearly or recession",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "year",
				Usage: "year of a yearly report",
			},
			&cli.StringFlag{
				Name:  "xlsx",
				Usage: "also export the dashboard charts to this xlsx file",
			},
		},
		Action: func(c *cli.Context) error {
			deps, err := cliapp.Deps[CommandDeps]()
			if err != nil {
				return err
			}
			return run(c, deps)
		},
	}
}

func run(c *cli.Context, deps CommandDeps) error {
	year := null.Int{}
	if c.IsSet("year") {
		year = null.IntFrom(c.Int64("year"))
	}
	sel := model.NewSelection(model.ParseStatisticKind(c.String("kind")), year)

	aggregates := deps.AutosalesService.Aggregates(sel)
	if len(aggregates) == 0 {
		fmt.Fprintln(c.App.Writer, "nothing to show for the selection")
		return nil
	}
	for _, agg := range aggregates {
		Table(c.App.Writer, agg)
	}

	if path := c.String("xlsx"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "create xlsx file")
		}
		defer f.Close()
		if err := deps.AutosalesService.Export(c.Context, f, sel); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "exported to %s\n", path)
	}
	return nil
}

// Table prints one aggregate with its grouping columns as headers.
func Table(w io.Writer, agg model.Aggregate) {
	fmt.Fprintf(w, "\n%s(%s) by %v\n", agg.Func, agg.Field, agg.By)
	table := tablewriter.NewWriter(w)
	table.SetHeader(append(append([]string{}, agg.By...), agg.Field))
	table.SetAutoFormatHeaders(false)
	for _, r := range agg.Rows {
		table.Append(append(append([]string{}, r.Keys...), fmt.Sprintf("%.2f", r.Value)))
	}
	table.Render()
}
