package service

import (
	"context"

	"github.com/pkg/errors"

	"exusiai.dev/autodash/internal/repo"
)

var ErrDatasetNotLoaded = errors.New("dataset not loaded")

type Health struct {
	Datasets *repo.Datasets
}

func NewHealth(datasets *repo.Datasets) *Health {
	return &Health{
		Datasets: datasets,
	}
}

// Ping reports whether the autosales dataset is loaded and non-empty. The energy dataset is
// optional and never fails the check.
func (s *Health) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Datasets == nil || s.Datasets.Autosales.Len() == 0 {
		return errors.Wrap(ErrDatasetNotLoaded, "autosales")
	}
	return nil
}
