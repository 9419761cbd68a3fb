package main

import (
	"fmt"
	"path/filepath"

	"ovbias/adapters/chart"
	"ovbias/adapters/excel"
	"ovbias/adapters/ols"
	"ovbias/adapters/random"
	domain "ovbias/domain/experiment"
	"ovbias/internal/experiment"
	"ovbias/internal/report"
	"ovbias/internal/sweep"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *cliApp) newHarness() *experiment.Harness {
	sampler := random.NewSampler(a.seed)
	a.logger.Debug("sampler ready", zap.Uint64("seed", sampler.Seed()))
	return experiment.NewHarness(sampler, ols.NewRegressor(), a.logger)
}

// outputPath places relative file names under the configured output directory.
func (a *cliApp) outputPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.cfg.Output.Dir, name)
}

func newBiasCmd(app *cliApp) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "bias",
		Short: "Run one experiment and report simulated vs. analytic bias",
		Long: `Generate one dataset, fit y on [x, v] and y on x alone, and print a markdown
report comparing the naive coefficient's bias with the closed-form bias.

Example: ovbias bias --n 100000 --alpha-y 2 --seed 42 --out report.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.newHarness().Run(app.params)
			if err != nil {
				return err
			}

			r, err := report.NewBiasReport(result)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), r.Markdown())

			if out != "" {
				path := app.outputPath(out)
				if err := r.WriteFile(path); err != nil {
					return err
				}
				app.logger.Info("report written", zap.String("path", path))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Also write the report to this file (.md or .html)")
	return cmd
}

func newSweepCmd(app *cliApp) *cobra.Command {
	var (
		parameter string
		start     float64
		stop      float64
		steps     int
		method    string
		plotFile  string
		xlsxFile  string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep one parameter and plot the bias",
		Long: fmt.Sprintf(`Run the experiment for evenly spaced values of one parameter, collect the
bias of the naive coefficient (or the analytic bias with --method analytic) and
render it as a line chart. Failed points are logged and skipped.

Parameters: %v

Example: ovbias sweep --param alpha_y --start 1 --stop 3 --steps 21 --plot bias.png`, domain.ParameterNames()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			biasMethod, err := sweep.ParseBiasMethod(method)
			if err != nil {
				return err
			}
			values, err := sweep.Linspace(start, stop, steps)
			if err != nil {
				return err
			}

			series, err := sweep.NewSweeper(app.newHarness(), biasMethod, app.logger).Run(app.params, parameter, values)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %-12s %-12s\n", parameter, "bias", "analytic")
			for i := range series.Values {
				fmt.Fprintf(out, "%-12.4f %-12.6f %-12.6f\n", series.Values[i], series.Biases[i], series.Analytic[i])
			}
			if len(series.Failures) > 0 {
				fmt.Fprintf(out, "%d of %d points failed\n", len(series.Failures), len(values))
			}

			if plotFile == "" {
				plotFile = app.cfg.Output.PlotFile
			}
			plotPath := app.outputPath(plotFile)
			if err := sweep.Report(chart.NewRenderer(), series, sweep.DefaultChartOptions(series, plotPath)); err != nil {
				return err
			}
			app.logger.Info("chart written", zap.String("path", plotPath))

			if xlsxFile != "" {
				path := app.outputPath(xlsxFile)
				if err := excel.NewSeriesWriter(path).Write(series); err != nil {
					return err
				}
				app.logger.Info("series exported", zap.String("path", path))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&parameter, "param", domain.ParamAlphaY, "Parameter to sweep")
	cmd.Flags().Float64Var(&start, "start", 1.0, "First value")
	cmd.Flags().Float64Var(&stop, "stop", 3.0, "Last value")
	cmd.Flags().IntVar(&steps, "steps", 21, "Number of evenly spaced values")
	cmd.Flags().StringVar(&method, "method", string(sweep.BiasSimulated), "Bias source: simulated|analytic")
	cmd.Flags().StringVar(&plotFile, "plot", "", "Chart file (default from OVB_PLOT_FILE)")
	cmd.Flags().StringVar(&xlsxFile, "xlsx", "", "Export the series to this .xlsx or .csv file")
	return cmd
}

func newAnalyticCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "analytic",
		Short: "Print the closed-form bias for the current parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := app.params
			bias := experiment.AnalyticBias(p.AlphaY, p.AlphaX, p.SigmaA, p.SigmaEx)
			fmt.Fprintf(cmd.OutOrStdout(), "analytic bias: %.6f (naive plim %.6f, beta %g)\n", bias, p.Beta+bias, p.Beta)
			return nil
		},
	}
}
