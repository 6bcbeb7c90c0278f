// Package report writes per-run engine artifacts to disk: CSV series for
// spreadsheet analysis and JSON for downstream tooling.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"ordo/internal/model"
)

// MetricsRow is the CSV projection of one generational metrics sample.
type MetricsRow struct {
	Generation    int     `csv:"generation"`
	AgentCount    int     `csv:"agent_count"`
	AvgSurvival   float64 `csv:"avg_survival"`
	AvgEarnings   float64 `csv:"avg_earnings"`
	AvgOffspring  float64 `csv:"avg_offspring"`
	AvgAdaptation float64 `csv:"avg_adaptation"`
	AvgInnovation float64 `csv:"avg_innovation"`
	AvgFitness    float64 `csv:"avg_fitness"`
}

// SnapshotRow is the CSV projection of one population snapshot.
type SnapshotRow struct {
	Timestamp   string  `csv:"timestamp"`
	Alive       int     `csv:"alive"`
	Dead        int     `csv:"dead"`
	Total       int     `csv:"total"`
	Generation  int     `csv:"generation"`
	Births      int     `csv:"births"`
	Deaths      int     `csv:"deaths"`
	NetGrowth   int     `csv:"net_growth"`
	GrowthRate  float64 `csv:"growth_rate"`
	GrowthTrend string  `csv:"growth_trend"`
}

// RunArtifacts bundles everything persisted for one run.
type RunArtifacts struct {
	RunID      string
	Snapshots  []model.PopulationSnapshot
	Metrics    []model.GenerationalMetrics
	Speciation []model.SpeciationResult
	Behaviors  []model.NovelBehavior
}

// Write lays the run's artifacts out under baseDir/<runID> and returns the
// run directory.
func Write(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}
	runDir := filepath.Join(baseDir, artifacts.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeCSV(filepath.Join(runDir, "metrics.csv"), metricsRows(artifacts.Metrics)); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, "snapshots.csv"), snapshotRows(artifacts.Snapshots)); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "speciation.json"), artifacts.Speciation); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "behaviors.json"), artifacts.Behaviors); err != nil {
		return "", err
	}
	return runDir, nil
}

func metricsRows(metrics []model.GenerationalMetrics) []MetricsRow {
	rows := make([]MetricsRow, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, MetricsRow{
			Generation:    m.Generation,
			AgentCount:    m.AgentCount,
			AvgSurvival:   m.AvgSurvival,
			AvgEarnings:   m.AvgEarnings,
			AvgOffspring:  m.AvgOffspring,
			AvgAdaptation: m.AvgAdaptation,
			AvgInnovation: m.AvgInnovation,
			AvgFitness:    m.AvgFitness,
		})
	}
	return rows
}

func snapshotRows(snapshots []model.PopulationSnapshot) []SnapshotRow {
	rows := make([]SnapshotRow, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, SnapshotRow{
			Timestamp:   s.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
			Alive:       s.AliveCount,
			Dead:        s.DeadCount,
			Total:       s.TotalCount,
			Generation:  s.Generation,
			Births:      s.BirthsInPeriod,
			Deaths:      s.DeathsInPeriod,
			NetGrowth:   s.NetGrowth,
			GrowthRate:  s.GrowthRate,
			GrowthTrend: s.GrowthTrend,
		})
	}
	return rows
}

func writeCSV[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.Marshal(rows, file); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
