package predict

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// Feature columns, in the order the regressor and classifier weights expect them.
const (
	FeatureGlobalReactivePower = "Global_reactive_power"
	FeatureVoltage             = "Voltage"
	FeatureGlobalIntensity     = "Global_intensity"
	FeatureSubMetering1        = "Sub_metering_1"
	FeatureSubMetering2        = "Sub_metering_2"
	FeatureSubMetering3        = "Sub_metering_3"
)

var Features = []string{
	FeatureGlobalReactivePower,
	FeatureVoltage,
	FeatureGlobalIntensity,
	FeatureSubMetering1,
	FeatureSubMetering2,
	FeatureSubMetering3,
}

type Plan string

const (
	PlanA Plan = "Plan A"
	PlanB Plan = "Plan B"
	PlanC Plan = "Plan C"
)

var Plans = []Plan{PlanA, PlanB, PlanC}

// PlanFor bands a day's mean active power: (0,1] is Plan A, (1,3] Plan B and (3,6] Plan C.
// Values outside (0,6] have no plan.
func PlanFor(activePower float64) (Plan, bool) {
	switch {
	case math.IsNaN(activePower) || activePower <= 0:
		return "", false
	case activePower <= 1:
		return PlanA, true
	case activePower <= 3:
		return PlanB, true
	case activePower <= 6:
		return PlanC, true
	default:
		return "", false
	}
}

// RecommendPlan maps a predicted next-day consumption to a plan.
func RecommendPlan(consumption float64) Plan {
	switch {
	case consumption < 2:
		return PlanA
	case consumption < 4:
		return PlanB
	default:
		return PlanC
	}
}

// Sample is one training row: a feature vector in Features order with its targets.
type Sample struct {
	Features []float64
	Target   float64
	Plan     Plan
}

// Regressor is a linear model over the feature vector.
type Regressor struct {
	Intercept float64   `json:"intercept" msgpack:"intercept"`
	Weights   []float64 `json:"weights" msgpack:"weights"`
}

func (r *Regressor) Predict(x []float64) float64 {
	return r.Intercept + floats.Dot(r.Weights, x)
}

// Classifier is a nearest-centroid model over standardized features.
type Classifier struct {
	Plans     []Plan      `json:"plans" msgpack:"plans"`
	Centroids [][]float64 `json:"centroids" msgpack:"centroids"`
	Mean      []float64   `json:"mean" msgpack:"mean"`
	Scale     []float64   `json:"scale" msgpack:"scale"`
}

func (c *Classifier) standardize(x []float64) []float64 {
	z := make([]float64, len(x))
	for i := range x {
		z[i] = (x[i] - c.Mean[i]) / c.Scale[i]
	}
	return z
}

func (c *Classifier) Classify(x []float64) Plan {
	z := c.standardize(x)
	best, bestDist := 0, math.Inf(1)
	for i, centroid := range c.Centroids {
		if d := floats.Distance(z, centroid, 2); d < bestDist {
			best, bestDist = i, d
		}
	}
	return c.Plans[best]
}

// Bundle is the persisted regressor/classifier pair.
type Bundle struct {
	Features   []string   `json:"features" msgpack:"features"`
	Regressor  Regressor  `json:"regressor" msgpack:"regressor"`
	Classifier Classifier `json:"classifier" msgpack:"classifier"`
}

func (b *Bundle) Validate() error {
	n := len(b.Features)
	switch {
	case n == 0:
		return errors.New("model bundle declares no features")
	case len(b.Regressor.Weights) != n:
		return errors.Errorf("regressor has %d weights for %d features", len(b.Regressor.Weights), n)
	case len(b.Classifier.Plans) == 0 || len(b.Classifier.Plans) != len(b.Classifier.Centroids):
		return errors.New("classifier plans and centroids do not match")
	case len(b.Classifier.Mean) != n || len(b.Classifier.Scale) != n:
		return errors.Errorf("classifier scaling does not cover %d features", n)
	}
	for i, c := range b.Classifier.Centroids {
		if len(c) != n {
			return errors.Errorf("centroid of %s has %d values for %d features", b.Classifier.Plans[i], len(c), n)
		}
	}
	for _, s := range b.Classifier.Scale {
		if s == 0 {
			return errors.New("classifier scale contains zero")
		}
	}
	return nil
}

// ErrMissingFeatures is wrapped by Vector when the input lacks some features.
var ErrMissingFeatures = errors.New("missing features")

// Vector orders named feature values the way the bundle expects them. Unknown names are ignored.
func (b *Bundle) Vector(values map[string]float64) ([]float64, error) {
	missing := lo.Filter(b.Features, func(f string, _ int) bool {
		_, ok := values[f]
		return !ok
	})
	if len(missing) > 0 {
		return nil, errors.Wrap(ErrMissingFeatures, strings.Join(missing, ", "))
	}
	return lo.Map(b.Features, func(f string, _ int) float64 { return values[f] }), nil
}

type Prediction struct {
	Consumption float64 `json:"consumption"`
	// Plan is the classifier's answer for the inputs.
	Plan Plan `json:"plan"`
	// Recommended is the plan RecommendPlan derives from Consumption.
	Recommended Plan `json:"recommended"`
}

func (b *Bundle) Predict(values map[string]float64) (*Prediction, error) {
	x, err := b.Vector(values)
	if err != nil {
		return nil, err
	}
	consumption := b.Regressor.Predict(x)
	return &Prediction{
		Consumption: consumption,
		Plan:        b.Classifier.Classify(x),
		Recommended: RecommendPlan(consumption),
	}, nil
}
