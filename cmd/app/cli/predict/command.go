package predict

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/autodash/cmd/app/cli"
	"exusiai.dev/autodash/internal/service"
)

type CommandDeps struct {
	fx.In

	PredictorService *service.Predictor
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "predict next-day consumption and an energy plan from feature values",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "feature",
				Aliases:  []string{"f"},
				Usage:    "feature value as name=value, repeatable",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			features, err := ParseFeatures(c.StringSlice("feature"))
			if err != nil {
				return err
			}
			deps, err := cliapp.Deps[CommandDeps]()
			if err != nil {
				return err
			}
			return run(c, deps, features)
		},
	}
}

// ParseFeatures reads name=value pairs. A repeated name keeps its last value.
func ParseFeatures(pairs []string) (map[string]float64, error) {
	features := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("feature %q is not in name=value form", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %s", name)
		}
		features[name] = v
	}
	return features, nil
}

func run(c *cli.Context, deps CommandDeps, features map[string]float64) error {
	prediction, err := deps.PredictorService.Predict(c.Context, features)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(c.App.Writer)
	table.SetHeader([]string{"consumption", "plan", "recommended"})
	table.SetAutoFormatHeaders(false)
	table.Append([]string{
		fmt.Sprintf("%.4f", prediction.Consumption),
		string(prediction.Plan),
		string(prediction.Recommended),
	})
	table.Render()
	return nil
}
