package cli

import (
	"context"

	"go.uber.org/fx"

	"exusiai.dev/autodash/internal/app"
	"exusiai.dev/autodash/internal/app/appcontext"
)

func Start(module fx.Option) error {
	return app.New(appcontext.Declare(appcontext.EnvCLI), module).Start(context.Background())
}

// Deps builds the fx graph without serving and populates T from it.
func Deps[T any]() (T, error) {
	var deps T
	err := Start(fx.Populate(&deps))
	return deps, err
}
