package random

import (
	"fmt"
	"math"
	"math/rand/v2"

	"ovbias/internal/errors"
	"ovbias/ports"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler hands out gonum distributions that all draw from one PCG source.
// It is not safe for concurrent use.
type Sampler struct {
	src  rand.Source
	seed uint64
}

// NewSampler creates a sampler. A zero seed draws a fresh seed from the runtime.
func NewSampler(seed uint64) *Sampler {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Sampler{
		src:  rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
		seed: seed,
	}
}

// Seed returns the seed the source was created with
func (s *Sampler) Seed() uint64 {
	return s.seed
}

// Normal returns N(mu, sigma) bound to the shared source
func (s *Sampler) Normal(mu, sigma float64) (ports.Distribution, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, errors.InvalidParameter(fmt.Sprintf("normal standard deviation must be positive and finite, got %g", sigma))
	}
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}, nil
}

// Uniform returns U[min, max) bound to the shared source
func (s *Sampler) Uniform(min, max float64) (ports.Distribution, error) {
	if !(min < max) {
		return nil, errors.InvalidParameter(fmt.Sprintf("uniform bounds must satisfy min < max, got [%g, %g)", min, max))
	}
	return distuv.Uniform{Min: min, Max: max, Src: s.src}, nil
}

var _ ports.Sampler = (*Sampler)(nil)
