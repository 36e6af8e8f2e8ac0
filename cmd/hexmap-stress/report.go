package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/plus3/hexmap/spatial"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	MaxSteps       int
	Width          int
	Height         int
	Seed           uint64
	LossRate       float64
	RelocateEvery  int
	VerifyEvery    int
	NeighborRadius int

	// Results
	TotalSteps    int
	TotalTime     time.Duration
	StepTime      Stats
	QueryTime     Stats
	VerifyTime    Stats
	Verifications int
	Failures      int
	Neighbors     int
	Peers         int
	Lost          int
	Relocations   int
	Map           spatial.MapStats

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

func newReport(opts *Options) *Report {
	return &Report{
		Duration:       opts.Duration,
		MaxSteps:       opts.Steps,
		Width:          opts.Walk.Width,
		Height:         opts.Walk.Height,
		Seed:           opts.Walk.Seed,
		LossRate:       opts.Walk.LossRate,
		RelocateEvery:  opts.Walk.RelocateEvery,
		VerifyEvery:    opts.VerifyEvery,
		NeighborRadius: opts.NeighborRadius,
		GCPauseMetrics: opts.GCPauseMetrics,
	}
}

// AvgNeighbors returns the mean result of the per-step neighbor query
func (r *Report) AvgNeighbors() float64 {
	if r.TotalSteps == 0 {
		return 0
	}
	return float64(r.Neighbors) / float64(r.TotalSteps)
}

// Stats aggregates timing samples without retaining them
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int

	total time.Duration
}

func (s *Stats) Add(d time.Duration) {
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if s.Count == 0 || d > s.Max {
		s.Max = d
	}
	s.total += d
	s.Count++
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.total / time.Duration(s.Count)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Hex Map Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}{{if .MaxSteps}} (or {{comma .MaxSteps}} steps){{end}}
- **Map Window:** {{.Width}}x{{.Height}}
- **Seed:** {{.Seed}}
- **Loss Rate:** {{pct .LossRate}}
- **Relocate Every:** {{if .RelocateEvery}}{{comma .RelocateEvery}} steps{{else}}never{{end}}
- **Verify Every:** {{if .VerifyEvery}}{{comma .VerifyEvery}} steps{{else}}end of run{{end}}
- **Neighbor Radius:** {{.NeighborRadius}}

## Performance Results
- **Total Steps:** {{comma .TotalSteps}}
- **Total Test Time:** {{.TotalTime}}
- **Step Time (Set):**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}
- **Neighbor Query Time:**
  - **Avg:** {{.QueryTime.Avg}}
  - **Min:** {{.QueryTime.Min}}
  - **Max:** {{.QueryTime.Max}}
- **Verify Time:**
  - **Avg:** {{.VerifyTime.Avg}}
  - **Min:** {{.VerifyTime.Min}}
  - **Max:** {{.VerifyTime.Max}}

## Map
- **Peers:** {{comma .Peers}} ({{comma .Lost}} lost, {{comma .Relocations}} relocations)
- **Occupied:** {{comma .Map.Occupied}} of {{comma .Map.Capacity}} cells ({{pct .Map.Load}})
- **Window:** {{.Map.Window}}
- **Extent:** {{.Map.Extent}}
- **Rebases:** {{.Map.Rebases}}
- **Avg Neighbors:** {{printf "%.2f" .AvgNeighbors}}

## Verification
- **Checks:** {{comma .Verifications}}
- **Failures:** {{comma .Failures}}

## Memory Usage
- Heap Alloc:     {{bytes .MemStatsStart.HeapAlloc}} (start) -> {{bytes .MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{bytes .MemStatsStart.TotalAlloc}} (start) -> {{bytes .MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{bytes .MemStatsStart.Sys}} (start) -> {{bytes .MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bytes": humanize.Bytes,
		"bsub": func(a, b uint64) string {
			if a < b {
				return "-" + humanize.Bytes(b-a)
			}
			return humanize.Bytes(a - b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"comma": func(v int) string {
			return humanize.Comma(int64(v))
		},
		"pct": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f*100)
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
