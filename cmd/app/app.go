package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/autodash/cmd/app/cli/predict"
	"exusiai.dev/autodash/cmd/app/cli/render"
	"exusiai.dev/autodash/cmd/app/cli/train"
	"exusiai.dev/autodash/cmd/app/server"
	"exusiai.dev/autodash/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "autodash",
		Description: "Automobile sales and household energy dashboards. Built with Go, fiber and go.uber.org/fx. Serves chart layouts as JSON, PNG and xlsx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			render.Command(),
			train.Command(),
			predict.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
