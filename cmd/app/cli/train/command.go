package train

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/autodash/cmd/app/cli"
	"exusiai.dev/autodash/internal/app/appconfig"
	"exusiai.dev/autodash/internal/core/energy"
	"exusiai.dev/autodash/internal/core/predict"
	"exusiai.dev/autodash/internal/repo"
)

type CommandDeps struct {
	fx.In

	Config   *appconfig.Config
	Datasets *repo.Datasets
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "train",
		Usage: "train the energy regressor/classifier pair and save it as a model bundle",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "bundle path (.json or .msgpack); defaults to AUTODASH_MODEL_PATH",
			},
			&cli.Float64Flag{
				Name:  "test-size",
				Usage: "fraction of days held out for evaluation",
				Value: predict.DefaultTestSize,
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed of the train/test split",
				Value: predict.DefaultSeed,
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
	if deps.Datasets.Energy == nil {
		return errors.New("energy dataset is disabled: set AUTODASH_ENERGY_SOURCE")
	}
	testSize := c.Float64("test-size")
	if testSize <= 0 || testSize >= 1 {
		return errors.Errorf("test size must be within (0, 1), got %v", testSize)
	}
	out := c.String("out")
	if out == "" {
		out = deps.Config.ModelPath
	}

	daily := energy.DailyMeans(deps.Datasets.Energy)
	bundle, evaluation, err := predict.Train(energy.Samples(energy.Days(daily)), testSize, c.Int64("seed"))
	if err != nil {
		return errors.Wrapf(err, "failed to train on %d days", len(daily))
	}
	if err := predict.Save(out, bundle); err != nil {
		return err
	}
	log.Info().Str("evt.name", "train.saved").Str("path", out).Msg("model bundle saved")

	Report(c.App.Writer, bundle, evaluation)
	return nil
}

// Report prints the regressor coefficients and the held-out scores.
func Report(w io.Writer, bundle *predict.Bundle, evaluation *predict.Evaluation) {
	coef := tablewriter.NewWriter(w)
	coef.SetHeader([]string{"feature", "weight"})
	coef.SetAutoFormatHeaders(false)
	coef.Append([]string{"(intercept)", fmt.Sprintf("%.6f", bundle.Regressor.Intercept)})
	for i, f := range bundle.Features {
		coef.Append([]string{f, fmt.Sprintf("%.6f", bundle.Regressor.Weights[i])})
	}
	coef.Render()

	scores := tablewriter.NewWriter(w)
	scores.SetHeader([]string{"train", "test", "mse", "accuracy"})
	scores.Append([]string{
		fmt.Sprint(evaluation.TrainSize),
		fmt.Sprint(evaluation.TestSize),
		fmt.Sprintf("%.6f", evaluation.MSE),
		fmt.Sprintf("%.2f%%", evaluation.Accuracy*100),
	})
	scores.Render()
}
