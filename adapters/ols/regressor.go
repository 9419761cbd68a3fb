package ols

import (
	"fmt"
	"math"

	"ovbias/domain/regression"
	"ovbias/internal/errors"
	"ovbias/ports"

	"gonum.org/v1/gonum/mat"
)

// Regressor solves ordinary least squares through a QR factorization.
type Regressor struct{}

// NewRegressor creates a QR-based OLS regressor
func NewRegressor() *Regressor {
	return &Regressor{}
}

// Fit regresses y on the columns of x. With intercept, a ones column is
// prepended to the design and its coefficient is reported as Intercept.
func (r *Regressor) Fit(x mat.Matrix, y []float64, intercept bool) (*regression.FittedModel, error) {
	if x == nil {
		return nil, errors.DimensionMismatch("design matrix is required")
	}
	rows, cols := x.Dims()
	if rows != len(y) {
		return nil, errors.DimensionMismatch("design matrix has %d rows but response has %d", rows, len(y))
	}
	if rows == 0 {
		return nil, errors.DimensionMismatch("cannot fit a regression on zero observations")
	}
	if cols == 0 && !intercept {
		return nil, errors.DimensionMismatch("design matrix has no columns and no intercept was requested")
	}

	offset := 0
	if intercept {
		offset = 1
	}
	params := cols + offset
	if rows < params {
		return nil, errors.FittingFailure(fmt.Sprintf("underdetermined system: %d observations for %d parameters", rows, params), nil)
	}

	design := mat.NewDense(rows, params, nil)
	for i := 0; i < rows; i++ {
		if intercept {
			design.Set(i, 0, 1)
		}
		for j := 0; j < cols; j++ {
			design.Set(i, j+offset, x.At(i, j))
		}
	}

	var qr mat.QR
	qr.Factorize(design)
	if err := checkRank(&qr, params); err != nil {
		return nil, err
	}

	var b mat.VecDense
	if err := qr.SolveVecTo(&b, false, mat.NewVecDense(rows, append([]float64(nil), y...))); err != nil {
		return nil, errors.FittingFailure("least squares solve failed (singular or ill-conditioned design)", err)
	}

	model := &regression.FittedModel{
		Coefficients: make([]float64, cols),
		HasIntercept: intercept,
		Observations: rows,
	}
	if intercept {
		model.Intercept = b.AtVec(0)
	}
	for j := 0; j < cols; j++ {
		model.Coefficients[j] = b.AtVec(j + offset)
	}
	return model, nil
}

// rankTolerance bounds |R_jj| relative to the largest diagonal of R.
const rankTolerance = 1e-10

// checkRank fails when a diagonal entry of R is non-finite or negligible.
func checkRank(qr *mat.QR, params int) error {
	var r mat.Dense
	qr.RTo(&r)

	largest := 0.0
	for j := 0; j < params; j++ {
		d := math.Abs(r.At(j, j))
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return errors.FittingFailure("design matrix contains non-finite values", nil)
		}
		largest = math.Max(largest, d)
	}
	if largest == 0 {
		return errors.FittingFailure("design matrix is all zeros", nil)
	}
	for j := 0; j < params; j++ {
		if math.Abs(r.At(j, j)) > rankTolerance*largest {
			continue
		}
		if j == 0 {
			return errors.FittingFailure("singular design matrix: parameter 0 has a zero column", nil)
		}
		return errors.FittingFailure(fmt.Sprintf("singular design matrix: parameter %d is collinear with earlier ones", j), nil)
	}
	return nil
}

// Columns concatenates equal-length column vectors into an n×k design matrix,
// in argument order.
func Columns(cols ...[]float64) (*mat.Dense, error) {
	if len(cols) == 0 {
		return nil, errors.DimensionMismatch("at least one column is required")
	}
	n := len(cols[0])
	for j, c := range cols {
		if len(c) != n {
			return nil, errors.DimensionMismatch("column %d has length %d, expected %d", j, len(c), n)
		}
	}
	if n == 0 {
		return nil, errors.DimensionMismatch("cannot build a design matrix from zero-length columns")
	}

	data := make([]float64, n*len(cols))
	for i := 0; i < n; i++ {
		for j, c := range cols {
			data[i*len(cols)+j] = c[i]
		}
	}
	return mat.NewDense(n, len(cols), data), nil
}

var _ ports.Regressor = (*Regressor)(nil)
