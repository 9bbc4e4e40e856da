package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/tetris/ecs"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	DeltaTime      float64
	FrameLimit     int
	GCPauseMetrics bool

	// Results
	Sessions      []SessionResult
	TotalFrames   int64
	TotalTime     time.Duration
	UpdateTime    Stats
	Pieces        Counts
	Systems       []SystemTotals
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type SessionResult struct {
	Name    string
	Seed    uint64
	Pieces  int
	Ticks   int
	Frames  uint64
	Lost    bool
	Elapsed time.Duration
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
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Counts summarizes an integer measure across sessions.
type Counts struct {
	Min, Max int
	Avg      float64
	Total    int
}

func countPieces(sessions []SessionResult) Counts {
	if len(sessions) == 0 {
		return Counts{}
	}
	c := Counts{Min: sessions[0].Pieces, Max: sessions[0].Pieces}
	for _, s := range sessions {
		c.Min = min(c.Min, s.Pieces)
		c.Max = max(c.Max, s.Pieces)
		c.Total += s.Pieces
	}
	c.Avg = float64(c.Total) / float64(len(sessions))
	return c
}

// SystemTotals accumulates scheduler timing for one system across sessions.
type SystemTotals struct {
	Name       string
	Executions int64
	Total      time.Duration
	Max        time.Duration
}

func (t SystemTotals) Avg() time.Duration {
	if t.Executions == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Executions)
}

func (r *Report) addSchedulerStats(stats *ecs.SchedulerStats) {
	for _, sys := range stats.Systems {
		i := slices.IndexFunc(r.Systems, func(t SystemTotals) bool { return t.Name == sys.Name })
		if i < 0 {
			r.Systems = append(r.Systems, SystemTotals{Name: sys.Name})
			i = len(r.Systems) - 1
		}
		t := &r.Systems[i]
		t.Executions += sys.ExecutionCount
		t.Total += sys.TotalDuration
		t.Max = max(t.Max, sys.MaxDuration)
	}
}

// Lost returns the number of sessions that reached the loss condition.
func (r *Report) Lost() int {
	n := 0
	for _, s := range r.Sessions {
		if s.Lost {
			n++
		}
	}
	return n
}

func (r *Report) Finalize() {
	r.UpdateTime.Finalize()
	r.Pieces = countPieces(r.Sessions)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Tetris Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Frame Delta:** {{.DeltaTime}}s
- **Frame Limit per Session:** {{.FrameLimit}}

## Sessions
- **Sessions:** {{len .Sessions}} ({{.Lost}} lost)
- **Pieces Locked:** {{.Pieces.Total}} (min {{.Pieces.Min}}, avg {{printf "%.1f" .Pieces.Avg}}, max {{.Pieces.Max}})
{{range .Sessions}}  - {{.Name}} seed={{.Seed}} pieces={{.Pieces}} ticks={{.Ticks}} frames={{.Frames}} lost={{.Lost}} in {{.Elapsed}}
{{end}}
## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
{{range .Systems}}- {{.Name}}: {{.Executions}} runs, avg {{.Avg}}, max {{.Max}}
{{end}}
## Memory Usage (MB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end) -> delta: {{mb (bsub .MemStatsEnd.Sys .MemStatsStart.Sys)}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

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
