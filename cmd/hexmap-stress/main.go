package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/plus3/hexmap/internal/discovery"
	"github.com/plus3/hexmap/spatial"
)

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

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: opts.level}))
	logger.Info("starting hex map stress test",
		"window", fmt.Sprintf("%dx%d", opts.Walk.Width, opts.Walk.Height),
		"seed", opts.Walk.Seed,
		"duration", opts.Duration,
		"steps", opts.Steps)

	ctx := context.Background()
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	report := run(ctx, opts, logger)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("failed to generate report", "error", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")

	if report.Failures > 0 {
		logger.Error("stress test found inconsistencies", "failures", report.Failures)
		os.Exit(1)
	}
	logger.Info("stress test complete")
}

// run drives a walker until ctx is done or the step limit is reached,
// verifying the map periodically and once more at the end
func run(ctx context.Context, opts *Options, logger *slog.Logger) *Report {
	m := spatial.New(opts.Walk.Width, opts.Walk.Height)
	walker := discovery.NewWalker(m, opts.Walk)
	report := newReport(opts)

	verify := func() {
		start := time.Now()
		res := walker.Verify()
		report.VerifyTime.Add(time.Since(start))
		report.Verifications++

		if err := res.Err(); err != nil {
			report.Failures++
			logger.Warn("map disagrees with peer table",
				"step", walker.Steps(),
				"error", err,
				"peers", res.Peers,
				"valid", res.Valid,
				"scanned", res.Scanned)
			return
		}
		logger.Debug("verified map", "step", walker.Steps(), "peers", res.Peers)
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if opts.Steps > 0 && walker.Steps() >= opts.Steps {
				break Loop
			}

			stepStart := time.Now()
			walker.Step()
			report.StepTime.Add(time.Since(stepStart))

			queryStart := time.Now()
			report.Neighbors += walker.Neighbors(opts.NeighborRadius)
			report.QueryTime.Add(time.Since(queryStart))

			if opts.VerifyEvery > 0 && walker.Steps()%opts.VerifyEvery == 0 {
				verify()
			}
		}
	}
	verify()

	report.TotalTime = time.Since(startTime)
	report.TotalSteps = walker.Steps()
	report.Peers = walker.Peers()
	report.Lost = walker.Lost()
	report.Relocations = walker.Relocations()
	report.Map = m.CollectStats()
	report.StepTime.Finalize()
	report.QueryTime.Finalize()
	report.VerifyTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished",
		"steps", report.TotalSteps,
		"rebases", report.Map.Rebases,
		"failures", report.Failures)

	return report
}
