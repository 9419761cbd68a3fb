package experiment

import (
	"fmt"
	"math"
	"sort"

	"ovbias/domain/core"
)

// Params is the full parameter set of one simulated draw.
//
// Structural model:
//
//	v   ~ N(0, SigmaA)
//	x   = AlphaX*v + e_x,          e_x ~ N(0, SigmaEx)
//	y   = Beta*x + AlphaY*v + e_y, e_y ~ N(0, SigmaEY)
type Params struct {
	N         int     `yaml:"n" json:"n"`
	Beta      float64 `yaml:"beta" json:"beta"`
	AlphaY    float64 `yaml:"alpha_y" json:"alpha_y"`
	AlphaX    float64 `yaml:"alpha_x" json:"alpha_x"`
	SigmaA    float64 `yaml:"sigma_a" json:"sigma_a"`
	SigmaEx   float64 `yaml:"sigma_ex" json:"sigma_ex"`
	SigmaEY   float64 `yaml:"sigma_ey" json:"sigma_ey"`
	Intercept bool    `yaml:"intercept" json:"intercept"`
}

// Parameter names accepted by With.
const (
	ParamN       = "n"
	ParamBeta    = "beta"
	ParamAlphaY  = "alpha_y"
	ParamAlphaX  = "alpha_x"
	ParamSigmaA  = "sigma_a"
	ParamSigmaEx = "sigma_ex"
	ParamSigmaEY = "sigma_ey"
)

var setters = map[string]func(*Params, float64){
	ParamN:       func(p *Params, v float64) { p.N = int(math.Round(v)) },
	ParamBeta:    func(p *Params, v float64) { p.Beta = v },
	ParamAlphaY:  func(p *Params, v float64) { p.AlphaY = v },
	ParamAlphaX:  func(p *Params, v float64) { p.AlphaX = v },
	ParamSigmaA:  func(p *Params, v float64) { p.SigmaA = v },
	ParamSigmaEx: func(p *Params, v float64) { p.SigmaEx = v },
	ParamSigmaEY: func(p *Params, v float64) { p.SigmaEY = v },
}

// DefaultParams returns the reference configuration used by the CLI and tests.
func DefaultParams() Params {
	return Params{
		N:       10000,
		Beta:    -0.5,
		AlphaY:  1.5,
		AlphaX:  2.5,
		SigmaA:  1.0,
		SigmaEx: 1.0,
		SigmaEY: 1.0,
	}
}

// IsParameter reports whether name can be varied by a sweep.
func IsParameter(name string) bool {
	_, ok := setters[name]
	return ok
}

// ParameterNames lists the sweepable parameters in sorted order.
func ParameterNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With returns a copy of p with the named parameter replaced.
// N is rounded to the nearest integer.
func (p Params) With(name string, value float64) (Params, error) {
	set, ok := setters[name]
	if !ok {
		return p, fmt.Errorf("unknown parameter %q", name)
	}
	set(&p, value)
	return p, nil
}

// Value returns the named parameter as a float.
func (p Params) Value(name string) (float64, error) {
	switch name {
	case ParamN:
		return float64(p.N), nil
	case ParamBeta:
		return p.Beta, nil
	case ParamAlphaY:
		return p.AlphaY, nil
	case ParamAlphaX:
		return p.AlphaX, nil
	case ParamSigmaA:
		return p.SigmaA, nil
	case ParamSigmaEx:
		return p.SigmaEx, nil
	case ParamSigmaEY:
		return p.SigmaEY, nil
	}
	return 0, fmt.Errorf("unknown parameter %q", name)
}

// Fingerprint hashes every field, so two runs with equal settings share it.
func (p Params) Fingerprint() core.ParamsHash {
	return core.ComputeParamsHash(map[string]any{
		ParamN:       p.N,
		ParamBeta:    p.Beta,
		ParamAlphaY:  p.AlphaY,
		ParamAlphaX:  p.AlphaX,
		ParamSigmaA:  p.SigmaA,
		ParamSigmaEx: p.SigmaEx,
		ParamSigmaEY: p.SigmaEY,
		"intercept":  p.Intercept,
	})
}
