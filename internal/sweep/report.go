package sweep

import (
	"fmt"

	"ovbias/internal/errors"
	"ovbias/ports"
)

// ChartOptions labels the rendered bias chart.
type ChartOptions struct {
	Path   string
	Title  string
	XLabel string
	YLabel string
}

// DefaultChartOptions labels a chart of bias against the swept parameter.
func DefaultChartOptions(series *Series, path string) ChartOptions {
	return ChartOptions{
		Path:   path,
		Title:  fmt.Sprintf("Bias vs %s", series.Parameter),
		XLabel: series.Parameter,
		YLabel: "Bias",
	}
}

// Report hands the sweep series to the chart renderer.
func Report(renderer ports.ChartRenderer, series *Series, opts ChartOptions) error {
	if series == nil || series.Len() == 0 {
		return errors.InvalidInput("sweep produced no points to plot")
	}
	if opts.Path == "" {
		return errors.InvalidInput("chart output path is required")
	}

	err := renderer.RenderLineChart(ports.LineChart{
		X:      series.Values,
		Y:      series.Biases,
		Path:   opts.Path,
		Title:  opts.Title,
		XLabel: opts.XLabel,
		YLabel: opts.YLabel,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to render chart %s", opts.Path)
	}
	return nil
}
