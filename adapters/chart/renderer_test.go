package chart

import (
	"os"
	"path/filepath"
	"testing"

	"ovbias/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLineChartWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "bias_vs_alpha_y.png")

	err := NewRenderer().RenderLineChart(ports.LineChart{
		X:      []float64{1.0, 1.5, 2.0, 2.5},
		Y:      []float64{0.2, 0.15, 0.1, 0.05},
		Path:   path,
		Title:  "Bias vs Alpha_y",
		XLabel: "Alpha_y",
		YLabel: "Bias",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
}

func TestRenderLineChartValidation(t *testing.T) {
	r := NewRenderer()

	assert.Error(t, r.RenderLineChart(ports.LineChart{Path: "x.png"}))
	assert.Error(t, r.RenderLineChart(ports.LineChart{X: []float64{1, 2}, Y: []float64{1}, Path: "x.png"}))
	assert.Error(t, r.RenderLineChart(ports.LineChart{X: []float64{1}, Y: []float64{1}}))
}

func TestDataRange(t *testing.T) {
	lo, hi := dataRange([]float64{3, -1, 2})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 3.0, hi)

	lo, hi = dataRange([]float64{2, 2})
	assert.Less(t, lo, 2.0)
	assert.Greater(t, hi, 2.0)
}
