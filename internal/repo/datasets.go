package repo

import (
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"exusiai.dev/autodash/internal/app/appconfig"
	"exusiai.dev/autodash/internal/core/autosales"
	"exusiai.dev/autodash/internal/core/energy"
	"exusiai.dev/autodash/internal/infra"
	"exusiai.dev/autodash/internal/pkg/observability"
)

const energySampleSeed = 42

// Datasets are loaded once at startup and only read afterwards.
type Datasets struct {
	Autosales *autosales.Table

	// Energy is nil when no energy source is configured.
	Energy *energy.Table

	// LoadedAt is when loading finished, truncated to HTTP date precision.
	LoadedAt time.Time
}

// NewDatasets fetches and parses every configured dataset concurrently.
// A dataset that fails to load fails the whole startup.
func NewDatasets(conf *appconfig.Config, source *infra.Source) (*Datasets, error) {
	return LoadDatasets(context.Background(), conf, source)
}

func LoadDatasets(ctx context.Context, conf *appconfig.Config, source *infra.Source) (*Datasets, error) {
	var d Datasets
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		b, err := source.Fetch(ctx, conf.AutosalesSource)
		if err != nil {
			return errors.Wrap(err, "failed to load autosales dataset")
		}
		d.Autosales, err = autosales.Parse(bytes.NewReader(b))
		return errors.Wrapf(err, "failed to parse autosales dataset %s", conf.AutosalesSource)
	})

	if conf.EnergySource != "" {
		eg.Go(func() error {
			b, err := source.Fetch(ctx, conf.EnergySource)
			if err != nil {
				return errors.Wrap(err, "failed to load energy dataset")
			}
			d.Energy, err = energy.ParseSample(bytes.NewReader(b), conf.EnergySampleFraction, energySampleSeed)
			return errors.Wrapf(err, "failed to parse energy dataset %s", conf.EnergySource)
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	d.LoadedAt = time.Now().UTC().Truncate(time.Second)
	observability.DatasetRows.WithLabelValues("autosales").Set(float64(d.Autosales.Len()))
	if d.Energy != nil {
		observability.DatasetRows.WithLabelValues("energy").Set(float64(d.Energy.Len()))
	} else {
		log.Warn().Str("evt.name", "datasets.energy_disabled").Msg("energy source is not configured; energy dashboard is disabled")
	}

	log.Info().
		Str("evt.name", "datasets.loaded").
		Int("autosales", d.Autosales.Len()).
		Int("energy", d.Energy.Len()).
		Msg("datasets loaded")

	return &d, nil
}
