package simulation

import (
	"slices"

	"ovbias/internal/errors"
	"ovbias/ports"
)

// IndependentVariables holds the latent confounder v, the shock e_x and the
// observed regressor x = alphaX*v + e_x. Values are frozen after generation;
// accessors hand out copies.
type IndependentVariables struct {
	v       []float64
	ex      []float64
	x       []float64
	alphaX  float64
	sigmaA  float64
	sigmaEx float64
}

func (iv *IndependentVariables) V() []float64 { return slices.Clone(iv.v) }
func (iv *IndependentVariables) EX() []float64 { return slices.Clone(iv.ex) }
func (iv *IndependentVariables) X() []float64 { return slices.Clone(iv.x) }
func (iv *IndependentVariables) AlphaX() float64 { return iv.alphaX }
func (iv *IndependentVariables) SigmaA() float64 { return iv.sigmaA }
func (iv *IndependentVariables) SigmaEx() float64 { return iv.sigmaEx }
func (iv *IndependentVariables) Len() int { return len(iv.x) }

func (iv *IndependentVariables) clone() IndependentVariables {
	return IndependentVariables{
		v:       slices.Clone(iv.v),
		ex:      slices.Clone(iv.ex),
		x:       slices.Clone(iv.x),
		alphaX:  iv.alphaX,
		sigmaA:  iv.sigmaA,
		sigmaEx: iv.sigmaEx,
	}
}

// DependentVariables holds y = beta*x + alphaY*v + e_y together with the
// independent variables it was generated from.
type DependentVariables struct {
	y       []float64
	ey      []float64
	alphaY  float64
	beta    float64
	sigmaEY float64
	ind     IndependentVariables
}

func (dv *DependentVariables) Y() []float64 { return slices.Clone(dv.y) }
func (dv *DependentVariables) EY() []float64 { return slices.Clone(dv.ey) }
func (dv *DependentVariables) AlphaY() float64 { return dv.alphaY }
func (dv *DependentVariables) Beta() float64 { return dv.beta }
func (dv *DependentVariables) SigmaEY() float64 { return dv.sigmaEY }
func (dv *DependentVariables) Len() int { return len(dv.y) }

// Independent returns the embedded independent variables.
func (dv *DependentVariables) Independent() *IndependentVariables {
	ind := dv.ind.clone()
	return &ind
}

// GeneratedData is the flat, regression-ready view of one draw.
type GeneratedData struct {
	Y       []float64
	X       []float64
	V       []float64
	EY      []float64
	SigmaEx float64
	SigmaA  float64
	AlphaX  float64
	AlphaY  float64
	Beta    float64
}

// Len returns the sample size n.
func (d *GeneratedData) Len() int { return len(d.Y) }

// Flatten copies the draw into a GeneratedData bundle.
func (dv *DependentVariables) Flatten() *GeneratedData {
	return &GeneratedData{
		Y:       slices.Clone(dv.y),
		X:       slices.Clone(dv.ind.x),
		V:       slices.Clone(dv.ind.v),
		EY:      slices.Clone(dv.ey),
		SigmaEx: dv.ind.sigmaEx,
		SigmaA:  dv.ind.sigmaA,
		AlphaX:  dv.ind.alphaX,
		AlphaY:  dv.alphaY,
		Beta:    dv.beta,
	}
}

// GenerateIndependent draws v ~ N(0, sigmaA) and e_x ~ N(0, sigmaEx) and
// builds x = alphaX*v + e_x.
func GenerateIndependent(sampler ports.Sampler, n int, alphaX, sigmaA, sigmaEx float64) (*IndependentVariables, error) {
	if !(sigmaA > 0) {
		return nil, errors.InvalidParameter("sigma_a must be positive")
	}
	if !(sigmaEx > 0) {
		return nil, errors.InvalidParameter("sigma_ex must be positive")
	}
	if sampler == nil {
		return nil, errors.InvalidParameter("sampler is required")
	}

	v, err := normalVector(sampler, n, sigmaA)
	if err != nil {
		return nil, err
	}
	ex, err := normalVector(sampler, n, sigmaEx)
	if err != nil {
		return nil, err
	}

	// Conversions block FMA fusion so x matches alphaX*v + e_x bit for bit.
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(alphaX*v[i]) + ex[i]
	}

	return &IndependentVariables{
		v:       v,
		ex:      ex,
		x:       x,
		alphaX:  alphaX,
		sigmaA:  sigmaA,
		sigmaEx: sigmaEx,
	}, nil
}

// GenerateDependent draws e_y ~ N(0, sigmaEY) and builds
// y = beta*x + alphaY*v + e_y. The result keeps its own copy of ind.
func GenerateDependent(sampler ports.Sampler, beta, alphaY, sigmaEY float64, ind *IndependentVariables) (*DependentVariables, error) {
	if !(sigmaEY > 0) {
		return nil, errors.InvalidParameter("sigma_ey must be positive")
	}
	if ind == nil {
		return nil, errors.InvalidParameter("independent variables are required")
	}
	if sampler == nil {
		return nil, errors.InvalidParameter("sampler is required")
	}

	n := len(ind.x)
	ey, err := normalVector(sampler, n, sigmaEY)
	if err != nil {
		return nil, err
	}

	y := make([]float64, n)
	for i := range y {
		y[i] = float64(beta*ind.x[i]) + float64(alphaY*ind.v[i]) + ey[i]
	}

	return &DependentVariables{
		y:       y,
		ey:      ey,
		alphaY:  alphaY,
		beta:    beta,
		sigmaEY: sigmaEY,
		ind:     ind.clone(),
	}, nil
}
