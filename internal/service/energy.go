package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"exusiai.dev/autodash/internal/core/chart"
	"exusiai.dev/autodash/internal/core/energy"
	"exusiai.dev/autodash/internal/core/predict"
	"exusiai.dev/autodash/internal/model"
	"exusiai.dev/autodash/internal/pkg/apperr"
	"exusiai.dev/autodash/internal/pkg/observability"
	"exusiai.dev/autodash/internal/repo"
)

const DashboardEnergy = "energy"

var errEnergyDisabled = apperr.ErrNotFound.Msg("energy dashboard is disabled: no energy source is configured")

type Energy struct {
	// Report is nil when the energy dataset is disabled.
	Report *energy.Report
	// Bundle is the model trained in-process from the dataset, nil when training was not possible.
	Bundle *predict.Bundle

	LoadedAt time.Time
}

// NewEnergy resamples the energy readings to days and trains a model pair on them, so that the
// regression and classification tabs have something to show.
func NewEnergy(datasets *repo.Datasets) *Energy {
	if datasets.Energy == nil {
		return &Energy{}
	}

	daily := energy.DailyMeans(datasets.Energy)
	bundle, evaluation, err := predict.Train(energy.Samples(energy.Days(daily)), predict.DefaultTestSize, predict.DefaultSeed)
	if err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "energy.train_failed").
			Int("days", len(daily)).
			Msg("failed to train energy model; regression and classification tabs will be empty")
	} else {
		log.Info().
			Str("evt.name", "energy.trained").
			Int("days", len(daily)).
			Float64("mse", evaluation.MSE).
			Float64("accuracy", evaluation.Accuracy).
			Msg("energy model trained")
	}

	return &Energy{
		Report:   energy.NewReport(daily, evaluation),
		Bundle:   bundle,
		LoadedAt: datasets.LoadedAt,
	}
}

func (s *Energy) Enabled() bool {
	return s.Report != nil
}

func (s *Energy) Tabs() []energy.TabOption {
	return energy.Tabs()
}

// Tab renders one tab. Unknown tab names yield the empty layout.
func (s *Energy) Tab(ctx context.Context, name string) (model.Layout, error) {
	if !s.Enabled() {
		return model.Layout{}, errEnergyDisabled
	}
	tab := energy.ParseTab(name)

	start := time.Now()
	layout := energy.RenderTab(tab, s.Report)
	observability.RenderDuration.
		WithLabelValues(DashboardEnergy, string(tab)).
		Observe(time.Since(start).Seconds())
	return layout, nil
}

func (s *Energy) TabPNG(ctx context.Context, w io.Writer, name string, size chart.Size) error {
	layout, err := s.Tab(ctx, name)
	if err != nil {
		return err
	}
	c, ok := layout.Chart(0, 0)
	if !ok {
		return apperr.ErrNotFound.Msg("unknown energy tab %q", name)
	}
	return renderPNG(w, c, size)
}
