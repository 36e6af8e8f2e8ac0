package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/plus3/hexmap/internal/discovery"
	"gopkg.in/yaml.v3"
)

// Options configure a stress run. Values are taken from the defaults, then
// the optional YAML file, then the command line.
type Options struct {
	Config string `yaml:"-" short:"f" long:"config" description:"YAML configuration path"`

	Duration       time.Duration `yaml:"duration" short:"d" long:"duration" description:"The total duration the test should run for"`
	Steps          int           `yaml:"steps" short:"n" long:"steps" description:"Stop after this many steps, 0 runs for the full duration"`
	VerifyEvery    int           `yaml:"verifyEvery" long:"verify-every" description:"Steps between consistency checks, 0 only checks at the end"`
	NeighborRadius int           `yaml:"neighborRadius" long:"neighbor-radius" description:"Radius of the neighbor query issued after every step"`
	LogLevel       string        `yaml:"logLevel" long:"log-level" description:"Log level: debug, info, warn or error"`
	GCPauseMetrics bool          `yaml:"gcPauseMetrics" long:"gc-pause-metrics" description:"Include GC pause metrics in the report"`

	Walk discovery.Config `yaml:"walk" group:"Walk Options"`

	level slog.Level
}

func defaultOptions() *Options {
	return &Options{
		Duration:       10 * time.Second,
		VerifyEvery:    1000,
		NeighborRadius: 1,
		LogLevel:       "info",
		Walk:           discovery.DefaultConfig(),
	}
}

// parseOptions builds the options for args, which exclude the program name
func parseOptions(args []string) (*Options, error) {
	opts := defaultOptions()
	if path := extractConfigPath(args); path != "" {
		if err := opts.load(path); err != nil {
			return nil, err
		}
	}

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *Options) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, o); err != nil {
		return fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return nil
}

func (o *Options) validate() error {
	var errs []error
	if o.Duration <= 0 && o.Steps <= 0 {
		errs = append(errs, errors.New("either duration or steps must be positive"))
	}
	if o.Steps < 0 {
		errs = append(errs, fmt.Errorf("invalid steps %d", o.Steps))
	}
	if o.VerifyEvery < 0 {
		errs = append(errs, fmt.Errorf("invalid verify-every %d", o.VerifyEvery))
	}
	if o.NeighborRadius < 0 {
		errs = append(errs, fmt.Errorf("invalid neighbor-radius %d", o.NeighborRadius))
	}
	if o.Walk.Width <= 0 || o.Walk.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid map size %dx%d", o.Walk.Width, o.Walk.Height))
	}
	if o.Walk.LossRate < 0 || o.Walk.LossRate >= 1 {
		errs = append(errs, fmt.Errorf("loss-rate %v is outside [0, 1)", o.Walk.LossRate))
	}
	if o.Walk.RelocateEvery < 0 {
		errs = append(errs, fmt.Errorf("invalid relocate-every %d", o.Walk.RelocateEvery))
	}
	if err := o.level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("invalid log-level %q: %w", o.LogLevel, err))
	}
	return errors.Join(errs...)
}

// extractConfigPath finds the -f/--config option before the full parse so the
// file can supply values the remaining flags override
func extractConfigPath(args []string) string {
	for i, a := range args {
		switch a {
		case "--":
			return ""
		case "-f", "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		default:
			if strings.HasPrefix(a, "--config=") {
				return strings.TrimPrefix(a, "--config=")
			}
		}
	}
	return ""
}
