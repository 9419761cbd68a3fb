package simulation

import (
	"testing"

	"ovbias/adapters/random"
	apperrors "ovbias/internal/errors"
	"ovbias/internal/profiling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVectorLengthNormal(t *testing.T) {
	dist, err := random.NewSampler(1).Normal(0, 1)
	require.NoError(t, err)

	for _, n := range []int{1, 5, 137} {
		vec, err := GenerateVector(n, dist)
		require.NoError(t, err)
		assert.Len(t, vec, n)
	}
}

func TestGenerateVectorLengthUniform(t *testing.T) {
	dist, err := random.NewSampler(1).Uniform(0, 1)
	require.NoError(t, err)

	vec, err := GenerateVector(5, dist)
	require.NoError(t, err)
	assert.Len(t, vec, 5)
}

func TestGenerateVectorZeroLength(t *testing.T) {
	dist, _ := random.NewSampler(1).Normal(0, 1)

	vec, err := GenerateVector(0, dist)
	require.NoError(t, err)
	assert.NotNil(t, vec)
	assert.Empty(t, vec)
}

func TestGenerateVectorRejectsNegativeLength(t *testing.T) {
	dist, _ := random.NewSampler(1).Normal(0, 1)

	_, err := GenerateVector(-1, dist)
	assert.Equal(t, apperrors.CodeInvalidParameter, apperrors.GetCode(err))

	_, err = GenerateVector(3, nil)
	assert.Error(t, err)
}

func TestGenerateVectorSampleStatistics(t *testing.T) {
	if testing.Short() {
		t.Skip("large sample")
	}
	const sigma = 1.5

	dist, err := random.NewSampler(20240917).Normal(0, sigma)
	require.NoError(t, err)

	vec, err := GenerateVector(1_000_000, dist)
	require.NoError(t, err)

	s, err := profiling.Summarize(vec)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, s.Mean, 1e-2, "sample mean")
	assert.InDelta(t, sigma, s.StdDev, 1e-2, "sample standard deviation")
	assert.InDelta(t, 3.0, s.Kurtosis, 5e-2, "sample kurtosis")
}
