package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	domain "ovbias/domain/experiment"
	"ovbias/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Experiment domain.Params
	Seed       uint64
	Output     OutputConfig
	Logging    LoggingConfig
}

// OutputConfig holds file system paths for generated artifacts
type OutputConfig struct {
	Dir      string
	PlotFile string
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it.
// Call godotenv.Load beforehand to pick up a .env file. Unset variables take
// their defaults; set but malformed ones are a CONFIG_INVALID error.
func Load() (*Config, error) {
	env := &envReader{}
	config := &Config{
		Experiment: loadExperimentParams(env),
		Seed:       env.getEnvUintOrDefault("OVB_SEED", 0),
		Output:     *loadOutputConfig(),
		Logging:    *loadLoggingConfig(),
	}
	if len(env.invalid) > 0 {
		return nil, errors.ConfigInvalid("malformed environment variables: " + strings.Join(env.invalid, "; "))
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadExperimentParams(env *envReader) domain.Params {
	d := domain.DefaultParams()
	return domain.Params{
		N:         env.getEnvIntOrDefault("OVB_N", d.N),
		Beta:      env.getEnvFloatOrDefault("OVB_BETA", d.Beta),
		AlphaY:    env.getEnvFloatOrDefault("OVB_ALPHA_Y", d.AlphaY),
		AlphaX:    env.getEnvFloatOrDefault("OVB_ALPHA_X", d.AlphaX),
		SigmaA:    env.getEnvFloatOrDefault("OVB_SIGMA_A", d.SigmaA),
		SigmaEx:   env.getEnvFloatOrDefault("OVB_SIGMA_EX", d.SigmaEx),
		SigmaEY:   env.getEnvFloatOrDefault("OVB_SIGMA_EY", d.SigmaEY),
		Intercept: env.getEnvBoolOrDefault("OVB_INTERCEPT", d.Intercept),
	}
}

func loadOutputConfig() *OutputConfig {
	return &OutputConfig{
		Dir:      getEnvOrDefault("OVB_OUTPUT_DIR", "output"),
		PlotFile: getEnvOrDefault("OVB_PLOT_FILE", "bias_vs_alpha_y.png"),
	}
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level: getEnvOrDefault("OVB_LOG_LEVEL", "info"),
	}
}

// Validate checks values that cannot be deferred to the generators.
// Standard deviations are validated where they are used.
func (c *Config) Validate() error {
	if c.Experiment.N < 0 {
		return errors.ConfigInvalid("sample size n must be non-negative")
	}
	if c.Output.Dir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.ConfigInvalid("log level must be one of debug|info|warn|error")
	}
	return nil
}

// LoadParamsFile overlays experiment parameters from a YAML file onto base.
// Keys missing from the file keep their base values.
func LoadParamsFile(path string, base domain.Params) (domain.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "failed to read params file %s", path)
	}
	params := base
	if err := yaml.Unmarshal(data, &params); err != nil {
		return base, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "invalid params file %s", path))
	}
	return params, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envReader parses typed variables and remembers the ones that did not parse.
type envReader struct {
	invalid []string
}

func (r *envReader) reject(key, value, want string) {
	r.invalid = append(r.invalid, fmt.Sprintf("%s=%q is not %s", key, value, want))
}

func (r *envReader) getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		intValue, err := strconv.Atoi(value)
		if err != nil {
			r.reject(key, value, "an integer")
			return defaultValue
		}
		return intValue
	}
	return defaultValue
}

func (r *envReader) getEnvUintOrDefault(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		uintValue, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			r.reject(key, value, "an unsigned integer")
			return defaultValue
		}
		return uintValue
	}
	return defaultValue
}

func (r *envReader) getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			r.reject(key, value, "a number")
			return defaultValue
		}
		return floatValue
	}
	return defaultValue
}

func (r *envReader) getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			r.reject(key, value, "a boolean")
			return defaultValue
		}
		return boolValue
	}
	return defaultValue
}
