package simulation

import (
	"testing"

	"ovbias/adapters/random"
	apperrors "ovbias/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type independentInput struct {
	n       int
	alphaX  float64
	sigmaA  float64
	sigmaEx float64
}

func validInput() independentInput {
	return independentInput{n: 10, alphaX: 2.5, sigmaA: 1.0, sigmaEx: 0.5}
}

func generateValid(t *testing.T) *IndependentVariables {
	t.Helper()
	in := validInput()
	ind, err := GenerateIndependent(random.NewSampler(3), in.n, in.alphaX, in.sigmaA, in.sigmaEx)
	require.NoError(t, err)
	return ind
}

func TestGenerateIndependentShapes(t *testing.T) {
	ind := generateValid(t)

	assert.Len(t, ind.X(), 10)
	assert.Len(t, ind.V(), 10)
	assert.Len(t, ind.EX(), 10)
	assert.Equal(t, 2.5, ind.AlphaX())
	assert.Equal(t, 1.0, ind.SigmaA())
	assert.Equal(t, 0.5, ind.SigmaEx())
}

func TestGenerateIndependentStructuralIdentity(t *testing.T) {
	ind := generateValid(t)
	x, v, ex := ind.X(), ind.V(), ind.EX()

	for i := range x {
		assert.Equal(t, float64(2.5*v[i])+ex[i], x[i], "row %d", i)
	}
}

func TestGenerateIndependentErrors(t *testing.T) {
	in := validInput()
	tests := []struct {
		name    string
		sigmaA  float64
		sigmaEx float64
		message string
	}{
		{"negative sigma_a", -1.0, in.sigmaEx, "sigma_a must be positive"},
		{"zero sigma_a", 0, in.sigmaEx, "sigma_a must be positive"},
		{"negative sigma_ex", in.sigmaA, -0.5, "sigma_ex must be positive"},
		{"zero sigma_ex", in.sigmaA, 0, "sigma_ex must be positive"},
		{"both invalid reports sigma_a first", -1, -1, "sigma_a must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ind, err := GenerateIndependent(random.NewSampler(3), in.n, in.alphaX, tt.sigmaA, tt.sigmaEx)
			require.Error(t, err)
			assert.Nil(t, ind)
			assert.EqualError(t, err, tt.message)
			assert.Equal(t, apperrors.CodeInvalidParameter, apperrors.GetCode(err))
		})
	}
}

func TestGenerateIndependentZeroLength(t *testing.T) {
	ind, err := GenerateIndependent(random.NewSampler(3), 0, 2.5, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, ind.Len())

	dep, err := GenerateDependent(random.NewSampler(4), 1, 1, 1, ind)
	require.NoError(t, err)
	assert.Equal(t, 0, dep.Len())
	assert.Equal(t, 0, dep.Flatten().Len())
}

func TestGenerateDependentStructuralIdentity(t *testing.T) {
	ind := generateValid(t)

	dep, err := GenerateDependent(random.NewSampler(5), -0.5, 1.5, 1.0, ind)
	require.NoError(t, err)

	y, ey := dep.Y(), dep.EY()
	x, v := dep.Independent().X(), dep.Independent().V()
	require.Len(t, y, len(x))
	require.Len(t, v, len(x))

	for i := range y {
		assert.Equal(t, float64(-0.5*x[i])+float64(1.5*v[i])+ey[i], y[i], "row %d", i)
	}
	assert.Equal(t, -0.5, dep.Beta())
	assert.Equal(t, 1.5, dep.AlphaY())
	assert.Equal(t, 1.0, dep.SigmaEY())
}

func TestGenerateDependentErrors(t *testing.T) {
	ind := generateValid(t)

	_, err := GenerateDependent(random.NewSampler(5), 1, 1, 0, ind)
	assert.EqualError(t, err, "sigma_ey must be positive")

	_, err = GenerateDependent(random.NewSampler(5), 1, 1, -2, ind)
	assert.EqualError(t, err, "sigma_ey must be positive")

	_, err = GenerateDependent(random.NewSampler(5), 1, 1, 1, nil)
	assert.Equal(t, apperrors.CodeInvalidParameter, apperrors.GetCode(err))
}

func TestDependentKeepsFrozenCopy(t *testing.T) {
	ind := generateValid(t)
	dep, err := GenerateDependent(random.NewSampler(5), 1, 1, 1, ind)
	require.NoError(t, err)

	original := ind.V()[0]
	leaked := dep.Independent().V()
	leaked[0] = 1e9

	assert.Equal(t, original, dep.Independent().V()[0])
	assert.Equal(t, original, ind.V()[0])
}

func TestFlattenCarriesParameters(t *testing.T) {
	ind := generateValid(t)
	dep, err := GenerateDependent(random.NewSampler(5), -0.5, 1.5, 1.0, ind)
	require.NoError(t, err)

	data := dep.Flatten()
	assert.Equal(t, dep.Y(), data.Y)
	assert.Equal(t, ind.X(), data.X)
	assert.Equal(t, ind.V(), data.V)
	assert.Equal(t, dep.EY(), data.EY)
	assert.Equal(t, 2.5, data.AlphaX)
	assert.Equal(t, 1.5, data.AlphaY)
	assert.Equal(t, 1.0, data.SigmaA)
	assert.Equal(t, 0.5, data.SigmaEx)
	assert.Equal(t, -0.5, data.Beta)
	assert.Equal(t, 10, data.Len())
}
