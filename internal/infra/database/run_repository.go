package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
)

type RunRepository struct {
	DB *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{DB: db}
}

func (r *RunRepository) Create(ctx context.Context, run *entity.Run) error {
	query := `
		INSERT INTO automation_runs (id, automation_id, lead_id, email, current_step, status, next_run_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		run.ID, run.AutomationID, run.LeadID, run.Email,
		run.CurrentStep, run.Status, run.NextRunAt, run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

func (r *RunRepository) Update(ctx context.Context, run *entity.Run) error {
	query := `
		UPDATE automation_runs
		SET current_step = $1, status = $2, next_run_at = $3, completed_at = $4, updated_at = $5
		WHERE id = $6
	`
	_, err := r.DB.ExecContext(ctx, query,
		run.CurrentStep, run.Status, run.NextRunAt, run.CompletedAt, run.UpdatedAt, run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// ListPending returns running runs whose wait has elapsed, oldest first.
func (r *RunRepository) ListPending(ctx context.Context, before time.Time, limit int) ([]entity.Run, error) {
	query := `
		SELECT id, automation_id, lead_id, email, current_step, status, next_run_at, completed_at, created_at, updated_at
		FROM automation_runs
		WHERE status = 'running' AND next_run_at IS NOT NULL AND next_run_at <= $1
		ORDER BY next_run_at ASC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending runs: %w", err)
	}
	defer rows.Close()

	var runs []entity.Run
	for rows.Next() {
		var run entity.Run
		var nextRunAt, completedAt sql.NullTime
		err := rows.Scan(
			&run.ID, &run.AutomationID, &run.LeadID, &run.Email,
			&run.CurrentStep, &run.Status, &nextRunAt, &completedAt,
			&run.CreatedAt, &run.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if nextRunAt.Valid {
			t := nextRunAt.Time
			run.NextRunAt = &t
		}
		if completedAt.Valid {
			t := completedAt.Time
			run.CompletedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *RunRepository) ExistsForLead(ctx context.Context, automationID, leadID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM automation_runs WHERE automation_id = $1 AND lead_id = $2)`
	if err := r.DB.QueryRowContext(ctx, query, automationID, leadID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check existing run: %w", err)
	}
	return exists, nil
}
