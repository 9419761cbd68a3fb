package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"ovbias/internal/errors"
	"ovbias/ports"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Image size in pixels at the default 96 DPI of the raster backend.
const (
	widthPx  = 800
	heightPx = 600
	dpi      = 96
)

var seriesColor = color.RGBA{R: 220, G: 20, B: 20, A: 255}

// Renderer draws line charts with gonum/plot. The image format follows the
// output file extension (png, jpg, svg, pdf, ...).
type Renderer struct{}

// NewRenderer creates a gonum/plot line chart renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderLineChart draws chart.X against chart.Y and saves it to chart.Path.
// Axis ranges are taken from the data extremes.
func (r *Renderer) RenderLineChart(chart ports.LineChart) error {
	if len(chart.X) == 0 {
		return errors.InvalidInput("chart has no points")
	}
	if len(chart.X) != len(chart.Y) {
		return errors.InvalidInput(fmt.Sprintf("chart has %d x values but %d y values", len(chart.X), len(chart.Y)))
	}
	if chart.Path == "" {
		return errors.InvalidInput("chart output path is required")
	}

	p := plot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = chart.XLabel
	p.Y.Label.Text = chart.YLabel

	pts := make(plotter.XYs, len(chart.X))
	for i := range chart.X {
		pts[i].X = chart.X[i]
		pts[i].Y = chart.Y[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "invalid chart data")
	}
	line.Color = seriesColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("Bias", line)
	p.Legend.Top = true

	p.X.Min, p.X.Max = dataRange(chart.X)
	p.Y.Min, p.Y.Max = dataRange(chart.Y)

	if dir := filepath.Dir(chart.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create chart directory %s", dir)
		}
	}

	width := vg.Length(widthPx) * vg.Inch / dpi
	height := vg.Length(heightPx) * vg.Inch / dpi
	if err := p.Save(width, height, chart.Path); err != nil {
		return errors.Wrapf(err, "failed to save chart %s", chart.Path)
	}
	return nil
}

// dataRange returns min/max of values, widened when they coincide so the
// axis is never degenerate.
func dataRange(values []float64) (float64, float64) {
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.05, 0.5)
		return lo - pad, hi + pad
	}
	return lo, hi
}

var _ ports.ChartRenderer = (*Renderer)(nil)
