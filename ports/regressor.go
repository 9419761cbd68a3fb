package ports

import (
	"ovbias/domain/regression"

	"gonum.org/v1/gonum/mat"
)

// Regressor fits ordinary least squares models
type Regressor interface {
	// Fit regresses y on the columns of x. Coefficients are returned in column
	// order; when intercept is true a constant term is fitted and reported
	// separately.
	Fit(x mat.Matrix, y []float64, intercept bool) (*regression.FittedModel, error)
}
