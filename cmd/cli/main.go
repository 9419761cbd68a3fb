package main

import (
	"fmt"
	"io"
	"os"

	apperrors "ovbias/internal/errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(&cliApp{}, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code. The logger is
// flushed on every path, failing commands included.
func run(app *cliApp, args []string, stdout, stderr io.Writer) int {
	defer app.close()

	cmd := newRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if app.logger != nil {
			app.logger.Error("command failed",
				zap.String("code", apperrors.GetCode(err)),
				zap.Error(err))
		}
		fmt.Fprintln(stderr, formatError(err))
		return 1
	}
	return 0
}

func formatError(err error) string {
	if apperrors.IsAppError(err) {
		return fmt.Sprintf("[%s] %v", apperrors.GetCode(err), err)
	}
	return err.Error()
}

func newRootCmd(app *cliApp) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ovbias",
		Short: "Monte-Carlo harness for omitted-variable bias in OLS",
		Long: `Simulate a latent confounder v, a regressor x = alpha_x*v + e_x and an outcome
y = beta*x + alpha_y*v + e_y, then compare the full regression of y on [x, v] with the
naive regression of y on x alone.

Parameters come from OVB_* environment variables (a .env file is honoured), an
optional YAML file (--params) and flags, in increasing order of precedence.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "unknown command %q\n\n", args[0])
			}
			return cmd.Usage()
		},
	}

	app.bindFlags(rootCmd)

	rootCmd.AddCommand(
		newBiasCmd(app),
		newSweepCmd(app),
		newAnalyticCmd(app),
	)

	return rootCmd
}
