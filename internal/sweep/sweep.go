package sweep

import (
	"fmt"

	"ovbias/domain/core"
	domain "ovbias/domain/experiment"
	"ovbias/internal/errors"
	"ovbias/internal/experiment"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// BiasMethod selects which bias value a sweep records as its output series.
type BiasMethod string

const (
	// BiasSimulated records naive x-coefficient minus beta for each draw.
	BiasSimulated BiasMethod = "simulated"
	// BiasAnalytic records the closed-form bias for each parameter value.
	BiasAnalytic BiasMethod = "analytic"
)

// ParseBiasMethod validates a method name
func ParseBiasMethod(s string) (BiasMethod, error) {
	switch BiasMethod(s) {
	case BiasSimulated, BiasAnalytic:
		return BiasMethod(s), nil
	case "":
		return BiasSimulated, nil
	}
	return "", errors.InvalidParameter(fmt.Sprintf("unknown bias method %q (want simulated|analytic)", s))
}

// Failure records a skipped sweep iteration.
type Failure struct {
	Value float64 `json:"value"`
	Stage string  `json:"stage"`
	Err   error   `json:"-"`
}

// Series is the parallel (parameter value, bias) output of a sweep, in input
// order. Analytic always carries the closed-form bias for the same values.
type Series struct {
	ID        core.SweepID `json:"id"`
	Parameter string       `json:"parameter"`
	Method    BiasMethod   `json:"method"`
	Values    []float64    `json:"values"`
	Biases    []float64    `json:"biases"`
	Analytic  []float64    `json:"analytic"`
	Failures  []Failure    `json:"failures,omitempty"`
}

// Len returns the number of successful points
func (s *Series) Len() int { return len(s.Values) }

// Linspace returns count evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, count int) ([]float64, error) {
	switch {
	case count <= 0:
		return nil, errors.InvalidParameter(fmt.Sprintf("sweep needs at least one value, got %d", count))
	case count == 1:
		return []float64{start}, nil
	}
	return floats.Span(make([]float64, count), start, stop), nil
}

// Sweeper repeats the experiment across a range of one parameter.
type Sweeper struct {
	harness *experiment.Harness
	method  BiasMethod
	logger  *zap.Logger
}

// NewSweeper creates a sweeper. An empty method means BiasSimulated.
func NewSweeper(harness *experiment.Harness, method BiasMethod, logger *zap.Logger) *Sweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if method == "" {
		method = BiasSimulated
	}
	return &Sweeper{harness: harness, method: method, logger: logger}
}

// Run substitutes each value into base, runs the full and comparison
// regressions, and appends the resulting bias. Failed iterations are logged,
// recorded in Series.Failures and skipped.
func (s *Sweeper) Run(base domain.Params, parameter string, values []float64) (*Series, error) {
	if !domain.IsParameter(parameter) {
		return nil, errors.InvalidParameter(fmt.Sprintf("unknown sweep parameter %q (want one of %v)", parameter, domain.ParameterNames()))
	}
	if _, err := ParseBiasMethod(string(s.method)); err != nil {
		return nil, err
	}

	series := &Series{
		ID:        core.NewSweepID(),
		Parameter: parameter,
		Method:    s.method,
		Values:    make([]float64, 0, len(values)),
		Biases:    make([]float64, 0, len(values)),
		Analytic:  make([]float64, 0, len(values)),
	}

	log := s.logger.With(
		zap.String("sweep_id", series.ID.String()),
		zap.String("parameter", parameter))
	log.Info("sweep started", zap.Int("points", len(values)), zap.String("method", string(s.method)))

	for _, value := range values {
		p, err := base.With(parameter, value)
		if err != nil {
			return nil, errors.InvalidParameter(err.Error())
		}
		// n is rounded by With; record the value the run actually used.
		if value, err = p.Value(parameter); err != nil {
			return nil, errors.InvalidParameter(err.Error())
		}

		cmp, stage, err := s.iterate(p)
		if err != nil {
			err = errors.SweepIteration(parameter, value, err)
			log.Warn("sweep iteration skipped",
				zap.Float64("value", value),
				zap.String("stage", stage),
				zap.Error(err))
			series.Failures = append(series.Failures, Failure{Value: value, Stage: stage, Err: err})
			continue
		}

		bias := cmp.SimulatedBias
		if s.method == BiasAnalytic {
			bias = cmp.AnalyticBias
		}

		series.Values = append(series.Values, value)
		series.Biases = append(series.Biases, bias)
		series.Analytic = append(series.Analytic, cmp.AnalyticBias)

		log.Debug("sweep point",
			zap.Float64("value", value),
			zap.Float64("bias", bias),
			zap.Float64("analytic_bias", cmp.AnalyticBias))
	}

	log.Info("sweep finished",
		zap.Int("points", series.Len()),
		zap.Int("failures", len(series.Failures)))

	return series, nil
}

func (s *Sweeper) iterate(p domain.Params) (*experiment.Comparison, string, error) {
	_, data, err := s.harness.RunFull(p)
	if err != nil {
		return nil, "full_regression", err
	}
	cmp, err := s.harness.RunComparisons(data, p.Intercept)
	if err != nil {
		return nil, "comparison_regressions", err
	}
	return cmp, "", nil
}
