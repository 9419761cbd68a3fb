package config

import (
	"os"
	"path/filepath"
	"testing"

	domain "ovbias/domain/experiment"
	apperrors "ovbias/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultParams(), cfg.Experiment)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OVB_N", "250")
	t.Setenv("OVB_ALPHA_Y", "2.25")
	t.Setenv("OVB_INTERCEPT", "true")
	t.Setenv("OVB_SEED", "99")
	t.Setenv("OVB_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Experiment.N)
	assert.Equal(t, 2.25, cfg.Experiment.AlphaY)
	assert.True(t, cfg.Experiment.Intercept)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("OVB_N", "abc")
	t.Setenv("OVB_SIGMA_EY", "not-a-number")
	t.Setenv("OVB_INTERCEPT", "maybe")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), `OVB_N="abc" is not an integer`)
	assert.Contains(t, err.Error(), `OVB_SIGMA_EY="not-a-number" is not a number`)
	assert.Contains(t, err.Error(), `OVB_INTERCEPT="maybe" is not a boolean`)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("OVB_N", "-4")
	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("OVB_LOG_LEVEL", "chatty")
	_, err := Load()
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
}

func TestLoadParamsFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("n: 500\nalpha_y: 3\nintercept: true\n"), 0o644))

	p, err := LoadParamsFile(path, domain.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 500, p.N)
	assert.Equal(t, 3.0, p.AlphaY)
	assert.True(t, p.Intercept)
	assert.Equal(t, 2.5, p.AlphaX)
}

func TestLoadParamsFileErrors(t *testing.T) {
	_, err := LoadParamsFile(filepath.Join(t.TempDir(), "missing.yaml"), domain.DefaultParams())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("n: [1, 2"), 0o644))
	_, err = LoadParamsFile(path, domain.DefaultParams())
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
}
