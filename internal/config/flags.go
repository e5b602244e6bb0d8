package config

import (
	"flag"
	"fmt"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSteps     = flag.Int("steps", 0, "Subdivisions per span, or points removed by simplify (2-20)")
	flagMode      = flag.String("mode", "", "Segment mode: point, time or steepness")
	flagInterval  = flag.Float64("interval", 0, "Time interval for time and steepness modes")
	flagSteepness = flag.Float64("steepness", 0, "Maximum bend in degrees before a steepness split")
	flagLogFile   = flag.String("log-file", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSteps > 0 {
		cfg.Resample.Steps = *flagSteps
	}
	if *flagMode != "" {
		if err := cfg.Mesh.Mode.UnmarshalText([]byte(*flagMode)); err != nil {
			return fmt.Errorf("-mode: %w", err)
		}
	}
	if *flagInterval > 0 {
		cfg.Mesh.TimeInterval = float32(*flagInterval)
	}
	if *flagSteepness > 0 {
		cfg.Mesh.MaxSteepness = float32(*flagSteepness)
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	return nil
}
