package random

import (
	"testing"

	apperrors "ovbias/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplerSeededStreamsRepeat(t *testing.T) {
	a, err := NewSampler(42).Normal(0, 1)
	require.NoError(t, err)
	b, err := NewSampler(42).Normal(0, 1)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Rand(), b.Rand(), "draw %d", i)
	}
}

func TestSamplerDifferentSeedsDiverge(t *testing.T) {
	a, _ := NewSampler(1).Normal(0, 1)
	b, _ := NewSampler(2).Normal(0, 1)

	same := 0
	for i := 0; i < 50; i++ {
		if a.Rand() == b.Rand() {
			same++
		}
	}
	assert.Less(t, same, 50)
}

func TestSamplerZeroSeedPicksOne(t *testing.T) {
	s := NewSampler(0)
	assert.NotZero(t, s.Seed())
}

func TestSamplerRejectsInvalidParameters(t *testing.T) {
	s := NewSampler(7)

	_, err := s.Normal(0, 0)
	assert.Equal(t, apperrors.CodeInvalidParameter, apperrors.GetCode(err))

	_, err = s.Normal(0, -2)
	assert.Error(t, err)

	_, err = s.Uniform(1, 1)
	assert.Equal(t, apperrors.CodeInvalidParameter, apperrors.GetCode(err))
}

func TestUniformStaysInBounds(t *testing.T) {
	d, err := NewSampler(9).Uniform(-1, 3)
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		v := d.Rand()
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 3.0)
	}
}
