package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/galton/ecs"
	"github.com/plus3/galton/galton"
)

type Report struct {
	// Configuration
	Config    galton.Config
	Requested int
	Particles int
	Frames    int
	SpawnX    float64

	// Results
	TotalTime     time.Duration
	FrameTime     Stats
	Histogram     galton.Histogram
	Expected      []float64
	Systems       []ecs.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min, s.Max = s.Samples[0], s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// BinRow is one line of the histogram table.
type BinRow struct {
	Index    int
	Count    int
	Percent  float64
	Expected float64
	Bar      string
}

func (r *Report) Bins() []BinRow {
	rows := make([]BinRow, len(r.Histogram.Counts))
	for i, count := range r.Histogram.Counts {
		rows[i] = BinRow{
			Index:   i,
			Count:   count,
			Percent: r.Histogram.Percent[i],
			Bar:     strings.Repeat("#", int(r.Histogram.Percent[i]+0.5)),
		}
		if i < len(r.Expected) {
			rows[i].Expected = r.Expected[i]
		}
	}
	return rows
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Galton Board Report

## Configuration
- **Board:** {{.Config.Width}}x{{.Config.Height}}, {{.Config.Rows}} rows
- **Particles:** {{.Particles}} dropped at x={{printf "%.1f" .SpawnX}}{{if ne .Particles .Requested}} ({{.Requested}} requested, capped by max_particles){{end}}
- **Frames:** {{.Frames}}
- **Pair Collisions:** {{.Config.Physics.PairCollisions}}
- **Energy Loss:** {{.Config.Physics.EnergyLoss}}

## Distribution
- **Settled:** {{.Histogram.Settled}} / {{.Histogram.Spawned}}
- **Mean Bin:** {{printf "%.3f" .Histogram.Mean}} (binomial {{printf "%.3f" (expectedMean .Config.Rows)}})
- **StdDev:** {{printf "%.3f" .Histogram.StdDev}} (binomial {{printf "%.3f" (expectedStdDev .Config.Rows)}})

| Bin | Count | Observed % | Expected % | |
|----:|------:|-----------:|-----------:|-|
{{range .Bins}}| {{.Index}} | {{.Count}} | {{printf "%.2f" .Percent}} | {{printf "%.2f" .Expected}} | {{.Bar}} |
{{end}}
## Performance
- **Total Time:** {{.TotalTime}}
- **Frame Time:** avg {{.FrameTime.Avg}}, min {{.FrameTime.Min}}, max {{.FrameTime.Max}}
{{range .Systems}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB -> {{mb .MemStatsEnd.HeapAlloc}} MB
- Total Alloc: delta {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"expectedMean":   galton.ExpectedMean,
		"expectedStdDev": galton.ExpectedStdDev,
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
