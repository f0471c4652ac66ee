package predict

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultTestSize = 0.2
	DefaultSeed     = 42

	// ridge is only used when the least squares system is rank deficient
	ridge = 1e-6
)

var ErrNotEnoughSamples = errors.New("not enough samples to train")

type Evaluation struct {
	TrainSize int `json:"trainSize"`
	TestSize  int `json:"testSize"`
	// MSE of the regressor on the held-out split.
	MSE float64 `json:"mse"`
	// Accuracy of the classifier on the held-out split.
	Accuracy       float64   `json:"accuracy"`
	Actual         []float64 `json:"actual"`
	Predicted      []float64 `json:"predicted"`
	ActualPlans    []Plan    `json:"actualPlans"`
	PredictedPlans []Plan    `json:"predictedPlans"`
}

// Split shuffles sample indices with a seeded source and holds out ceil(n*testSize) of them.
func Split(n int, testSize float64, seed int64) (train, test []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	k := int(math.Ceil(float64(n) * testSize))
	if k > n {
		k = n
	}
	return perm[k:], perm[:k]
}

// Train fits the regressor (ordinary least squares) and the nearest-centroid classifier on a
// seeded split of samples, then evaluates both on the held-out part.
func Train(samples []Sample, testSize float64, seed int64) (*Bundle, *Evaluation, error) {
	p := len(Features)
	trainIdx, testIdx := Split(len(samples), testSize, seed)
	if len(testIdx) == 0 || len(trainIdx) < p+1 {
		return nil, nil, errors.Wrapf(ErrNotEnoughSamples, "have %d samples, need at least %d", len(samples), p+2)
	}
	for _, s := range samples {
		if len(s.Features) != p {
			return nil, nil, errors.Errorf("sample has %d features, want %d", len(s.Features), p)
		}
	}

	train := lo.Map(trainIdx, func(i int, _ int) Sample { return samples[i] })
	test := lo.Map(testIdx, func(i int, _ int) Sample { return samples[i] })

	regressor, err := fitRegressor(train)
	if err != nil {
		return nil, nil, err
	}
	classifier, err := fitClassifier(train)
	if err != nil {
		return nil, nil, err
	}

	bundle := &Bundle{
		Features:   append([]string(nil), Features...),
		Regressor:  *regressor,
		Classifier: *classifier,
	}
	return bundle, evaluate(bundle, test, len(train)), nil
}

func fitRegressor(train []Sample) (*Regressor, error) {
	n, p := len(train), len(Features)
	x := mat.NewDense(n, p+1, nil)
	y := mat.NewDense(n, 1, nil)
	for i, s := range train {
		x.Set(i, 0, 1)
		for j, v := range s.Features {
			x.Set(i, j+1, v)
		}
		y.Set(i, 0, s.Target)
	}

	var beta mat.Dense
	if err := beta.Solve(x, y); err != nil || !finite(mat.Col(nil, 0, &beta)) {
		// fall back to ridge normal equations: (XᵀX + λI)β = Xᵀy
		var xtx, xty mat.Dense
		xtx.Mul(x.T(), x)
		for i := 0; i <= p; i++ {
			xtx.Set(i, i, xtx.At(i, i)+ridge)
		}
		xty.Mul(x.T(), y)
		if err := beta.Solve(&xtx, &xty); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) {
				return nil, errors.Wrap(err, "solve regression")
			}
		}
	}

	coef := mat.Col(nil, 0, &beta)
	if !finite(coef) {
		return nil, errors.New("regression produced non-finite coefficients")
	}
	return &Regressor{Intercept: coef[0], Weights: coef[1:]}, nil
}

func finite(v []float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func fitClassifier(train []Sample) (*Classifier, error) {
	p := len(Features)
	c := &Classifier{Mean: make([]float64, p), Scale: make([]float64, p)}

	col := make([]float64, len(train))
	for j := 0; j < p; j++ {
		for i, s := range train {
			col[i] = s.Features[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		c.Mean[j], c.Scale[j] = mean, std
	}

	byPlan := lo.GroupBy(lo.Filter(train, func(s Sample, _ int) bool { return s.Plan != "" }),
		func(s Sample) Plan { return s.Plan })
	if len(byPlan) == 0 {
		return nil, errors.New("no labelled samples to fit the classifier")
	}
	plans := lo.Keys(byPlan)
	sort.Slice(plans, func(i, j int) bool { return plans[i] < plans[j] })

	for _, plan := range plans {
		centroid := make([]float64, p)
		for _, s := range byPlan[plan] {
			floats.Add(centroid, c.standardize(s.Features))
		}
		floats.Scale(1/float64(len(byPlan[plan])), centroid)
		c.Plans = append(c.Plans, plan)
		c.Centroids = append(c.Centroids, centroid)
	}
	return c, nil
}

func evaluate(b *Bundle, test []Sample, trainSize int) *Evaluation {
	e := &Evaluation{
		TrainSize:      trainSize,
		TestSize:       len(test),
		Actual:         make([]float64, len(test)),
		Predicted:      make([]float64, len(test)),
		ActualPlans:    make([]Plan, len(test)),
		PredictedPlans: make([]Plan, len(test)),
	}
	var sqErr float64
	var hits int
	for i, s := range test {
		e.Actual[i] = s.Target
		e.Predicted[i] = b.Regressor.Predict(s.Features)
		sqErr += (e.Actual[i] - e.Predicted[i]) * (e.Actual[i] - e.Predicted[i])

		e.ActualPlans[i] = s.Plan
		e.PredictedPlans[i] = b.Classifier.Classify(s.Features)
		if e.PredictedPlans[i] == s.Plan {
			hits++
		}
	}
	e.MSE = sqErr / float64(len(test))
	e.Accuracy = float64(hits) / float64(len(test))
	return e
}
