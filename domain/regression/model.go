package regression

// FittedModel is the immutable result of an OLS fit.
// Coefficients follow the design-matrix column order; the intercept, when
// fitted, is kept separately and is not counted as a column.
type FittedModel struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	HasIntercept bool      `json:"has_intercept"`
	Observations int       `json:"observations"`
}

// Coefficient returns the coefficient of column i.
func (m *FittedModel) Coefficient(i int) (float64, bool) {
	if m == nil || i < 0 || i >= len(m.Coefficients) {
		return 0, false
	}
	return m.Coefficients[i], true
}
