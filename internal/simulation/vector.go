package simulation

import (
	"fmt"

	"ovbias/internal/errors"
	"ovbias/ports"
)

// GenerateVector draws n independent samples from dist.
// n == 0 yields an empty, non-nil vector.
func GenerateVector(n int, dist ports.Distribution) ([]float64, error) {
	if n < 0 {
		return nil, errors.InvalidParameter(fmt.Sprintf("vector length must be non-negative, got %d", n))
	}
	if dist == nil {
		return nil, errors.InvalidParameter("distribution is required")
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}

// normalVector draws n samples from N(0, sigma).
func normalVector(sampler ports.Sampler, n int, sigma float64) ([]float64, error) {
	dist, err := sampler.Normal(0, sigma)
	if err != nil {
		return nil, err
	}
	return GenerateVector(n, dist)
}
