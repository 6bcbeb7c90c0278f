//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"ordo/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("sqlite store is not initialized")
	}
	return s.db, nil
}

func (s *SQLiteStore) AppendSnapshot(ctx context.Context, runID string, snapshot model.PopulationSnapshot) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO snapshots (run_id, payload) VALUES (?, ?)
	`, runID, payload)
	return err
}

func (s *SQLiteStore) GetSnapshots(ctx context.Context, runID string) ([]model.PopulationSnapshot, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT payload FROM snapshots WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var snapshots []model.PopulationSnapshot
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, false, err
		}
		snapshot, err := DecodeSnapshot(payload)
		if err != nil {
			return nil, false, fmt.Errorf("decode snapshot for run %s: %w", runID, err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return snapshots, len(snapshots) > 0, nil
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context, runID string) (model.PopulationSnapshot, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.PopulationSnapshot{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `
		SELECT payload FROM snapshots WHERE run_id = ? ORDER BY seq DESC LIMIT 1
	`, runID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PopulationSnapshot{}, false, nil
		}
		return model.PopulationSnapshot{}, false, err
	}

	snapshot, err := DecodeSnapshot(payload)
	if err != nil {
		return model.PopulationSnapshot{}, false, fmt.Errorf("decode snapshot for run %s: %w", runID, err)
	}
	return snapshot, true, nil
}

func (s *SQLiteStore) SaveBehaviors(ctx context.Context, runID string, behaviors []model.NovelBehavior) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	for _, behavior := range behaviors {
		payload, err := EncodeBehaviors([]model.NovelBehavior{behavior})
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx, `
			INSERT INTO behaviors (run_id, name, payload)
			VALUES (?, ?, ?)
			ON CONFLICT(run_id, name) DO UPDATE SET payload = excluded.payload
		`, runID, behavior.Name, payload)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) GetBehaviors(ctx context.Context, runID string) (map[string]model.NovelBehavior, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT payload FROM behaviors WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	registry := map[string]model.NovelBehavior{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, false, err
		}
		decoded, err := DecodeBehaviors(payload)
		if err != nil {
			return nil, false, fmt.Errorf("decode behavior for run %s: %w", runID, err)
		}
		for _, b := range decoded {
			registry[b.Name] = b
		}
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return registry, len(registry) > 0, nil
}

func (s *SQLiteStore) AppendMetrics(ctx context.Context, runID string, metrics model.GenerationalMetrics) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeMetrics(metrics)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO metrics (run_id, payload) VALUES (?, ?)
	`, runID, payload)
	return err
}

func (s *SQLiteStore) GetMetrics(ctx context.Context, runID string) ([]model.GenerationalMetrics, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT payload FROM metrics WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []model.GenerationalMetrics
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, false, err
		}
		metrics, err := DecodeMetrics(payload)
		if err != nil {
			return nil, false, fmt.Errorf("decode metrics for run %s: %w", runID, err)
		}
		out = append(out, metrics)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return out, len(out) > 0, nil
}

func (s *SQLiteStore) AppendSpeciation(ctx context.Context, runID string, result model.SpeciationResult) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeSpeciation(result)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO speciations (run_id, payload) VALUES (?, ?)
	`, runID, payload)
	return err
}

func (s *SQLiteStore) GetSpeciations(ctx context.Context, runID string) ([]model.SpeciationResult, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT payload FROM speciations WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []model.SpeciationResult
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, false, err
		}
		result, err := DecodeSpeciation(payload)
		if err != nil {
			return nil, false, fmt.Errorf("decode speciation for run %s: %w", runID, err)
		}
		out = append(out, result)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return out, len(out) > 0, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots (run_id);
		CREATE TABLE IF NOT EXISTS behaviors (
			run_id TEXT NOT NULL,
			name TEXT NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (run_id, name)
		);
		CREATE TABLE IF NOT EXISTS metrics (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_metrics_run ON metrics (run_id);
		CREATE TABLE IF NOT EXISTS speciations (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_speciations_run ON speciations (run_id);
	`)
	return err
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}
