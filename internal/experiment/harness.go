package experiment

import (
	"time"

	"ovbias/adapters/ols"
	"ovbias/domain/core"
	domain "ovbias/domain/experiment"
	"ovbias/domain/regression"
	"ovbias/internal/errors"
	"ovbias/internal/simulation"
	"ovbias/ports"

	"go.uber.org/zap"
)

// Stage names used in errors and logs
const (
	StageIndependent = "generate_independent"
	StageDependent   = "generate_dependent"
	StageRegression  = "regression"
	StageNaive       = "naive_regression"
	StageLeakage     = "leakage_regression"
)

// Harness runs single omitted-variable-bias experiments. It holds no state
// between calls beyond its collaborators.
type Harness struct {
	sampler   ports.Sampler
	regressor ports.Regressor
	logger    *zap.Logger
}

// NewHarness creates an experiment harness. A nil logger disables logging.
func NewHarness(sampler ports.Sampler, regressor ports.Regressor, logger *zap.Logger) *Harness {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harness{
		sampler:   sampler,
		regressor: regressor,
		logger:    logger,
	}
}

// Comparison holds the regressions that omit the confounder.
type Comparison struct {
	// Naive is y regressed on x alone.
	Naive *regression.FittedModel
	// Leakage is the composite error alphaY*v + e_y regressed on x alone.
	Leakage       *regression.FittedModel
	AnalyticBias  float64
	SimulatedBias float64
}

// Result bundles one complete Generate -> Fit -> Compare pass.
type Result struct {
	RunID      core.RunID
	Params     domain.Params
	Full       *regression.FittedModel
	Data       *simulation.GeneratedData
	Comparison *Comparison
	Duration   time.Duration
}

// RunFull generates one dataset and regresses y on [x, v], in that column order.
func (h *Harness) RunFull(p domain.Params) (*regression.FittedModel, *simulation.GeneratedData, error) {
	ind, err := simulation.GenerateIndependent(h.sampler, p.N, p.AlphaX, p.SigmaA, p.SigmaEx)
	if err != nil {
		h.stageFailed(StageIndependent, err)
		return nil, nil, errors.Wrap(err, "error generating independent variables")
	}

	dep, err := simulation.GenerateDependent(h.sampler, p.Beta, p.AlphaY, p.SigmaEY, ind)
	if err != nil {
		h.stageFailed(StageDependent, err)
		return nil, nil, errors.Wrap(err, "error generating dependent variables")
	}

	data := dep.Flatten()

	model, err := h.fit(data.Y, p.Intercept, data.X, data.V)
	if err != nil {
		h.stageFailed(StageRegression, err)
		return nil, nil, errors.Wrap(err, "error in the regression step")
	}

	h.logger.Debug("full regression fitted",
		zap.Int("n", data.Len()),
		zap.Float64s("coefficients", model.Coefficients))

	return model, data, nil
}

// RunComparisons fits the naive regression of y on x, the leakage regression
// of alphaY*v + e_y on x, and computes the analytic bias.
func (h *Harness) RunComparisons(data *simulation.GeneratedData, intercept bool) (*Comparison, error) {
	if data == nil {
		return nil, errors.InvalidParameter("generated data is required")
	}

	naive, err := h.fit(data.Y, intercept, data.X)
	if err != nil {
		h.stageFailed(StageNaive, err)
		return nil, errors.Wrap(err, "error in the naive regression step")
	}

	if len(data.V) != len(data.EY) {
		err := errors.DimensionMismatch("confounder has %d rows but e_y has %d", len(data.V), len(data.EY))
		h.stageFailed(StageLeakage, err)
		return nil, errors.Wrap(err, "error in the leakage regression step")
	}
	ve := make([]float64, len(data.V))
	for i := range ve {
		ve[i] = float64(data.AlphaY*data.V[i]) + data.EY[i]
	}

	leakage, err := h.fit(ve, intercept, data.X)
	if err != nil {
		h.stageFailed(StageLeakage, err)
		return nil, errors.Wrap(err, "error in the leakage regression step")
	}

	naiveX, ok := naive.Coefficient(0)
	if !ok {
		err := errors.DimensionMismatch("naive regression returned no coefficient for x")
		h.stageFailed(StageNaive, err)
		return nil, errors.Wrap(err, "error in the naive regression step")
	}

	return &Comparison{
		Naive:         naive,
		Leakage:       leakage,
		AnalyticBias:  AnalyticBias(data.AlphaY, data.AlphaX, data.SigmaA, data.SigmaEx),
		SimulatedBias: naiveX - data.Beta,
	}, nil
}

// Run executes RunFull followed by RunComparisons.
func (h *Harness) Run(p domain.Params) (*Result, error) {
	start := time.Now()
	runID := core.NewRunID()

	full, data, err := h.RunFull(p)
	if err != nil {
		return nil, err
	}

	cmp, err := h.RunComparisons(data, p.Intercept)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:      runID,
		Params:     p,
		Full:       full,
		Data:       data,
		Comparison: cmp,
		Duration:   time.Since(start),
	}

	h.logger.Info("experiment complete",
		zap.String("run_id", runID.String()),
		zap.Int("n", p.N),
		zap.Float64("simulated_bias", cmp.SimulatedBias),
		zap.Float64("analytic_bias", cmp.AnalyticBias),
		zap.Duration("duration", result.Duration))

	return result, nil
}

func (h *Harness) fit(y []float64, intercept bool, cols ...[]float64) (*regression.FittedModel, error) {
	design, err := ols.Columns(cols...)
	if err != nil {
		return nil, err
	}
	return h.regressor.Fit(design, y, intercept)
}

func (h *Harness) stageFailed(stage string, err error) {
	h.logger.Error("experiment stage failed",
		zap.String("stage", stage),
		zap.String("code", errors.GetCode(err)),
		zap.Error(err))
}
