package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that provide defaults for flags.
const (
	envRecord   = "CACHESIM_RECORD"
	envVerbose  = "CACHESIM_VERBOSE"
	envMaxLines = "CACHESIM_MAX_LINES"
)

type envConfig struct {
	RecordPath  string
	Verbose     bool
	MaxNumLines uint64
}

// loadEnv reads .env style files into the environment, then collects the
// settings. Missing files are not an error. Settings that fail to parse are
// left at their zero value and reported together; the others are kept.
func loadEnv(files ...string) (envConfig, error) {
	var errs []error

	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, fmt.Errorf("loading env file: %w", err))
	}

	cfg := envConfig{
		RecordPath: os.Getenv(envRecord),
	}

	if v := os.Getenv(envVerbose); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", envVerbose, err))
		} else {
			cfg.Verbose = verbose
		}
	}

	if v := os.Getenv(envMaxLines); v != "" {
		maxNumLines, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", envMaxLines, err))
		} else {
			cfg.MaxNumLines = maxNumLines
		}
	}

	return cfg, errors.Join(errs...)
}
