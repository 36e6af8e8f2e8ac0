package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/jessevdk/go-flags"
	"github.com/plus3/hexmap/internal/discovery"
)

// Options configure the viewer
type Options struct {
	Steps  int `short:"n" long:"steps" description:"Walk steps taken before the map is shown"`
	Radius int `long:"radius" description:"Initial highlight radius"`

	Walk discovery.Config `group:"Walk Options"`
}

func parseOptions(args []string) (*Options, error) {
	opts := &Options{
		Steps:  400,
		Radius: 2,
		Walk:   discovery.DefaultConfig(),
	}

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	switch {
	case opts.Steps < 0:
		return nil, fmt.Errorf("invalid steps %d", opts.Steps)
	case opts.Radius < 0:
		return nil, fmt.Errorf("invalid radius %d", opts.Radius)
	case opts.Walk.Width <= 0 || opts.Walk.Height <= 0:
		return nil, fmt.Errorf("invalid map size %dx%d", opts.Walk.Width, opts.Walk.Height)
	case opts.Walk.LossRate < 0 || opts.Walk.LossRate >= 1:
		return nil, fmt.Errorf("loss-rate %v is outside [0, 1)", opts.Walk.LossRate)
	}
	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Println(flagsErr.Message)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The terminal belongs to tcell while the viewer runs
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		logger.Error("failed to initialize screen", "error", err)
		os.Exit(1)
	}

	viewer := NewViewer(screen, opts.Walk, opts.Steps, opts.Radius)
	viewer.Run()
	screen.Fini()
}
