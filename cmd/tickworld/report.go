package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/plus3/tickworld/ecs"
	"github.com/plus3/tickworld/render"
)

type Report struct {
	// Configuration
	Scene    string
	Duration time.Duration
	Interval time.Duration

	// Results
	TotalUpdates  int64
	TotalTime     time.Duration
	UpdateTime    Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
	Meshes        []MeshState
	Systems       []ecs.SystemStats
	Store         ecs.StorageStats
}

type MeshState struct {
	Label     string
	Transform render.Transform
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
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Tickworld Run Report

## Configuration
- **Scene:** {{.Scene}}
- **Run Duration:** {{.Duration}}
- **Tick Interval:** {{.Interval}}

## Performance Results
- **Total Ticks:** {{.TotalUpdates}}
- **Total Run Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{if .Systems}}
## Systems
{{range .Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Store
- **Entities:** {{.Store.TotalEntityCount}}
{{range .Store.KindBreakdown}}- {{.Name}}: {{.EntityCount}}
{{end}}{{end}}
## Final Transforms
{{range .Meshes}}- {{.Label}}: position {{vec .Transform.Position}} rotation {{vec .Transform.Rotation}} scale {{vec .Transform.Scale}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"vec": func(v mgl64.Vec3) string {
			return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
