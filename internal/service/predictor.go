package service

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/autodash/internal/app/appconfig"
	"exusiai.dev/autodash/internal/core/predict"
	"exusiai.dev/autodash/internal/pkg/apperr"
	"exusiai.dev/autodash/internal/pkg/observability"
	"exusiai.dev/autodash/internal/util/rekuest"
)

type Predictor struct {
	// Bundle is nil when no model file exists at the configured path.
	Bundle *predict.Bundle
}

// NewPredictor loads the model bundle from ModelPath. A missing file only disables predictions;
// a file that exists but cannot be decoded fails startup.
func NewPredictor(conf *appconfig.Config) (*Predictor, error) {
	if conf.ModelPath == "" {
		log.Warn().Str("evt.name", "predictor.disabled").Msg("model path is empty; predictions are disabled")
		return &Predictor{}, nil
	}

	bundle, err := predict.Load(conf.ModelPath)
	if os.IsNotExist(errors.Cause(err)) {
		log.Warn().
			Str("evt.name", "predictor.disabled").
			Str("path", conf.ModelPath).
			Msg("model bundle not found; predictions are disabled")
		return &Predictor{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load model bundle %s", conf.ModelPath)
	}

	log.Info().
		Str("evt.name", "predictor.loaded").
		Str("path", conf.ModelPath).
		Strs("features", bundle.Features).
		Msg("model bundle loaded")
	return &Predictor{Bundle: bundle}, nil
}

func (s *Predictor) Available() bool {
	return s.Bundle != nil
}

func (s *Predictor) Features() []string {
	if s.Bundle == nil {
		return predict.Features
	}
	return s.Bundle.Features
}

func (s *Predictor) Predict(ctx context.Context, values map[string]float64) (*predict.Prediction, error) {
	if s.Bundle == nil {
		return nil, apperr.ErrModelUnavailable
	}

	prediction, err := s.Bundle.Predict(values)
	if errors.Is(err, predict.ErrMissingFeatures) {
		return nil, apperr.NewInvalidViolations(missingFeatures(s.Bundle.Features, values))
	}
	if err != nil {
		return nil, err
	}

	observability.Predictions.WithLabelValues(string(prediction.Recommended)).Inc()
	return prediction, nil
}

func missingFeatures(features []string, values map[string]float64) []*rekuest.ErrorResponse {
	var violations []*rekuest.ErrorResponse
	for _, f := range features {
		if _, ok := values[f]; !ok {
			violations = append(violations, &rekuest.ErrorResponse{
				Field:     f,
				Violation: "required",
				Message:   f + " is a required field",
			})
		}
	}
	return violations
}
