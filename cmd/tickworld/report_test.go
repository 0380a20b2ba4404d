package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tickworld/ecs"
	"github.com/plus3/tickworld/render"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	tr := render.NewTransform()
	tr.Position = mgl64.Vec3{1, -2.5, 0.125}

	report := Report{
		Scene:        "ecs",
		Duration:     time.Second,
		Interval:     16 * time.Millisecond,
		TotalUpdates: 60,
		Meshes:       []MeshState{{Label: "cube", Transform: tr}},
		Systems:      []ecs.SystemStats{{Name: "MovementSystem", ExecutionCount: 60}},
		Store: ecs.StorageStats{
			TotalEntityCount: 2,
			KindBreakdown:    []ecs.KindStats{{Name: "motion.Position", EntityCount: 2}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Scene:** ecs")
	assert.Contains(t, out, "**Total Ticks:** 60")
	assert.Contains(t, out, "- MovementSystem: 60 runs")
	assert.Contains(t, out, "- motion.Position: 2")
	assert.Contains(t, out, "- cube: position (1.000, -2.500, 0.125) rotation (0.000, 0.000, 0.000) scale (1.000, 1.000, 1.000)")
}

func TestReportGenerateWithoutSystems(t *testing.T) {
	report := Report{Scene: "behavior"}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.NotContains(t, buf.String(), "## Systems")
	assert.Contains(t, buf.String(), "## Final Transforms")
}
