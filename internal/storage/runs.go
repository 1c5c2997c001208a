package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	sacore "github.com/vovakirdan/same-animal/internal/games/sameanimal/core"
)

// RunRecord is one finished run as stored in the runs table.
type RunRecord struct {
	ID           int64
	RunID        string
	GameID       string
	StageReached int
	Completed    bool
	Score        int
	Duration     int // Duration in seconds
	CreatedAt    time.Time
}

// SaveRun records a finished run. An empty RunID is replaced by a new
// UUID; saving the same RunID twice fails.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, game_id, stage_reached, completed, score, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.GameID, run.StageReached, run.Completed, run.Score, run.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest runs of a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, game_id, stage_reached, completed, score, duration_secs, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.GameID, &r.StageReached, &r.Completed,
			&r.Score, &r.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestStage returns the furthest stage reached in any run of a game.
// Returns 0 if no runs exist.
func (s *Store) BestStage(gameID string) (int, error) {
	var stage int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(stage_reached), 0) FROM runs WHERE game_id = ?",
		gameID,
	).Scan(&stage)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best stage: %w", err)
	}
	return stage, nil
}

// SaveRunResult implements sacore.RunRecorder: it stores the run and
// its score in one transaction.
func (s *Store) SaveRunResult(r sacore.RunResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	runID := r.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, game_id, stage_reached, completed, score, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, r.GameID, r.StageReached, r.Completed, r.Score, int(r.Duration.Seconds()),
	); err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		r.GameID, r.Score,
	); err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return nil
}

// Ensure Store implements RunRecorder
var _ sacore.RunRecorder = (*Store)(nil)
