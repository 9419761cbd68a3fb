package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsWithLeavesOriginalUntouched(t *testing.T) {
	base := DefaultParams()

	next, err := base.With(ParamAlphaY, 2.75)
	require.NoError(t, err)

	assert.Equal(t, 2.75, next.AlphaY)
	assert.Equal(t, 1.5, base.AlphaY)
	assert.Equal(t, base.Beta, next.Beta)
}

func TestParamsWithRoundsN(t *testing.T) {
	p, err := DefaultParams().With(ParamN, 99.6)
	require.NoError(t, err)
	assert.Equal(t, 100, p.N)
}

func TestParamsWithUnknown(t *testing.T) {
	_, err := DefaultParams().With("gamma", 1)
	assert.Error(t, err)
	assert.False(t, IsParameter("gamma"))
}

func TestParamsValueRoundTrip(t *testing.T) {
	for _, name := range ParameterNames() {
		p, err := DefaultParams().With(name, 3)
		require.NoError(t, err)
		got, err := p.Value(name)
		require.NoError(t, err)
		assert.Equal(t, 3.0, got, name)
	}
}

func TestParamsFingerprint(t *testing.T) {
	a := DefaultParams()
	b := DefaultParams()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint().String(), 64)

	c, err := a.With(ParamSigmaEY, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	b.Intercept = true
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
