package charts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunLog records one row per scrape cycle so operators can see coverage
// over time (a region that failed to fetch shows up only as a smaller
// regions_ok count).
type RunLog struct {
	DB *sql.DB
}

func NewRunLog(db *sql.DB) *RunLog {
	return &RunLog{DB: db}
}

// Start inserts a new run row and returns its id.
func (r *RunLog) Start(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO scrape_runs (run_id, started_at) VALUES (?, ?)
	`, id, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// Finish closes out a run row with the cycle's counters.
func (r *RunLog) Finish(ctx context.Context, runID string, regionsOK, regionsFailed, records int) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE scrape_runs
		SET finished_at = ?, regions_ok = ?, regions_failed = ?, records = ?
		WHERE run_id = ?
	`, time.Now().UTC().Format(time.RFC3339), regionsOK, regionsFailed, records, runID)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}
	return nil
}
