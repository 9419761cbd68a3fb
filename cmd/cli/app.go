package main

import (
	"errors"
	"io/fs"

	domain "ovbias/domain/experiment"
	"ovbias/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cliApp carries state shared by all commands
type cliApp struct {
	flags      paramFlags
	paramsFile string
	verbose    bool

	cfg    *config.Config
	params domain.Params
	seed   uint64
	logger *zap.Logger
}

type paramFlags struct {
	n         int
	beta      float64
	alphaY    float64
	alphaX    float64
	sigmaA    float64
	sigmaEx   float64
	sigmaEY   float64
	intercept bool
	seed      uint64
}

func (a *cliApp) bindFlags(cmd *cobra.Command) {
	d := domain.DefaultParams()
	f := cmd.PersistentFlags()

	f.IntVar(&a.flags.n, "n", d.N, "Sample size")
	f.Float64Var(&a.flags.beta, "beta", d.Beta, "True coefficient on x")
	f.Float64Var(&a.flags.alphaY, "alpha-y", d.AlphaY, "Effect of the confounder on y")
	f.Float64Var(&a.flags.alphaX, "alpha-x", d.AlphaX, "Effect of the confounder on x")
	f.Float64Var(&a.flags.sigmaA, "sigma-a", d.SigmaA, "Standard deviation of the confounder v")
	f.Float64Var(&a.flags.sigmaEx, "sigma-ex", d.SigmaEx, "Standard deviation of e_x")
	f.Float64Var(&a.flags.sigmaEY, "sigma-ey", d.SigmaEY, "Standard deviation of e_y")
	f.BoolVar(&a.flags.intercept, "intercept", d.Intercept, "Fit an intercept")
	f.Uint64Var(&a.flags.seed, "seed", 0, "Random seed (0 picks one)")
	f.StringVar(&a.paramsFile, "params", "", "YAML file with experiment parameters")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging")
}

// init resolves configuration: env (.env) < params file < flags.
func (a *cliApp) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.params = cfg.Experiment
	a.seed = cfg.Seed

	if a.paramsFile != "" {
		if a.params, err = config.LoadParamsFile(a.paramsFile, a.params); err != nil {
			return err
		}
	}
	a.applyChangedFlags(cmd)

	level := cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	a.logger, err = newLogger(level)
	return err
}

func (a *cliApp) applyChangedFlags(cmd *cobra.Command) {
	changed := cmd.Flags().Changed
	if changed("n") {
		a.params.N = a.flags.n
	}
	if changed("beta") {
		a.params.Beta = a.flags.beta
	}
	if changed("alpha-y") {
		a.params.AlphaY = a.flags.alphaY
	}
	if changed("alpha-x") {
		a.params.AlphaX = a.flags.alphaX
	}
	if changed("sigma-a") {
		a.params.SigmaA = a.flags.sigmaA
	}
	if changed("sigma-ex") {
		a.params.SigmaEx = a.flags.sigmaEx
	}
	if changed("sigma-ey") {
		a.params.SigmaEY = a.flags.sigmaEY
	}
	if changed("intercept") {
		a.params.Intercept = a.flags.intercept
	}
	if changed("seed") {
		a.seed = a.flags.seed
	}
}

// close flushes and releases the logger. It is safe to call more than once.
func (a *cliApp) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
		a.logger = nil
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}
