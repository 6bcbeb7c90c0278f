package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ordo/internal/model"
)

func TestWriteRunArtifacts(t *testing.T) {
	baseDir := t.TempDir()

	artifacts := RunArtifacts{
		RunID: "run-1",
		Snapshots: []model.PopulationSnapshot{
			{
				Timestamp:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
				AliveCount:  8,
				DeadCount:   2,
				TotalCount:  10,
				Generation:  3,
				GrowthTrend: "stable",
			},
		},
		Metrics: []model.GenerationalMetrics{
			{Generation: 3, AgentCount: 8, AvgFitness: 0.42},
		},
		Speciation: []model.SpeciationResult{
			{Species: []model.Species{{ID: "sp-001", MemberIDs: []string{"a"}}}, DiversityIndex: 0.3},
		},
		Behaviors: []model.NovelBehavior{
			{Name: "arbitrage", AdoptionRate: 25},
		},
	}

	runDir, err := Write(baseDir, artifacts)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(baseDir, "run-1"), runDir)

	metricsCSV, err := os.ReadFile(filepath.Join(runDir, "metrics.csv"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(metricsCSV), "generation,"))
	require.Contains(t, string(metricsCSV), "0.42")

	snapshotsCSV, err := os.ReadFile(filepath.Join(runDir, "snapshots.csv"))
	require.NoError(t, err)
	require.Contains(t, string(snapshotsCSV), "2026-08-01T12:00:00Z")
	require.Contains(t, string(snapshotsCSV), "stable")

	var speciation []model.SpeciationResult
	data, err := os.ReadFile(filepath.Join(runDir, "speciation.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &speciation))
	require.Len(t, speciation, 1)
	require.Equal(t, "sp-001", speciation[0].Species[0].ID)
}

func TestWriteRequiresRunID(t *testing.T) {
	_, err := Write(t.TempDir(), RunArtifacts{})
	require.Error(t, err)
}
