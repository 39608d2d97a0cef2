package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
)

type AutomationRepository struct {
	DB *sql.DB
}

func NewAutomationRepository(db *sql.DB) *AutomationRepository {
	return &AutomationRepository{DB: db}
}

const automationColumns = `id, name, description, trigger_type, trigger_config, status, steps,
	stats_triggered, stats_completed, stats_active, created_by, created_at, updated_at`

func (r *AutomationRepository) List(ctx context.Context, status, search string) ([]entity.Automation, error) {
	query := `SELECT ` + automationColumns + ` FROM automations
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, status, search)
	if err != nil {
		return nil, fmt.Errorf("list automations: %w", err)
	}
	defer rows.Close()

	var automations []entity.Automation
	for rows.Next() {
		a, err := scanAutomation(rows)
		if err != nil {
			return nil, err
		}
		automations = append(automations, *a)
	}
	return automations, rows.Err()
}

func (r *AutomationRepository) FindByID(ctx context.Context, id string) (*entity.Automation, error) {
	query := `SELECT ` + automationColumns + ` FROM automations WHERE id = $1`

	a, err := scanAutomation(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find automation: %w", err)
	}
	return a, nil
}

func (r *AutomationRepository) ListActiveByTrigger(ctx context.Context, triggerType string) ([]entity.Automation, error) {
	query := `SELECT ` + automationColumns + ` FROM automations
		WHERE status = 'active' AND trigger_type = $1
		ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, triggerType)
	if err != nil {
		return nil, fmt.Errorf("list automations by trigger: %w", err)
	}
	defer rows.Close()

	var automations []entity.Automation
	for rows.Next() {
		a, err := scanAutomation(rows)
		if err != nil {
			return nil, err
		}
		automations = append(automations, *a)
	}
	return automations, rows.Err()
}

func (r *AutomationRepository) Create(ctx context.Context, a *entity.Automation) error {
	steps, err := json.Marshal(a.Steps)
	if err != nil {
		return fmt.Errorf("marshal steps: %w", err)
	}
	triggerConfig, err := json.Marshal(a.TriggerConfig)
	if err != nil {
		return fmt.Errorf("marshal trigger config: %w", err)
	}

	query := `
		INSERT INTO automations (id, name, description, trigger_type, trigger_config, status, steps,
			stats_triggered, stats_completed, stats_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13)
	`
	_, err = r.DB.ExecContext(ctx, query,
		a.ID, a.Name, a.Description, a.TriggerType, triggerConfig, a.Status, steps,
		a.Stats.Triggered, a.Stats.Completed, a.Stats.Active, a.CreatedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create automation: %w", err)
	}
	return nil
}

func (r *AutomationRepository) Update(ctx context.Context, a *entity.Automation) error {
	steps, err := json.Marshal(a.Steps)
	if err != nil {
		return fmt.Errorf("marshal steps: %w", err)
	}
	triggerConfig, err := json.Marshal(a.TriggerConfig)
	if err != nil {
		return fmt.Errorf("marshal trigger config: %w", err)
	}

	query := `
		UPDATE automations
		SET name = $1, description = $2, trigger_type = $3, trigger_config = $4,
		    steps = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err = r.DB.ExecContext(ctx, query,
		a.Name, a.Description, a.TriggerType, triggerConfig, steps, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update automation: %w", err)
	}
	return nil
}

func (r *AutomationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE automations SET status = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.DB.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("update automation status: %w", err)
	}
	return nil
}

func (r *AutomationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM automations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete automation: %w", err)
	}
	return nil
}

func (r *AutomationRepository) CountByStatus(ctx context.Context) (int, int, error) {
	var total, active int
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'active') FROM automations`
	if err := r.DB.QueryRowContext(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("count automations: %w", err)
	}
	return total, active, nil
}

func (r *AutomationRepository) RecordTriggered(ctx context.Context, id string) error {
	query := `UPDATE automations
		SET stats_triggered = stats_triggered + 1, stats_active = stats_active + 1, updated_at = NOW()
		WHERE id = $1`
	if _, err := r.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("record triggered: %w", err)
	}
	return nil
}

func (r *AutomationRepository) RecordCompleted(ctx context.Context, id string) error {
	query := `UPDATE automations
		SET stats_completed = stats_completed + 1, stats_active = GREATEST(stats_active - 1, 0), updated_at = NOW()
		WHERE id = $1`
	if _, err := r.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("record completed: %w", err)
	}
	return nil
}

func scanAutomation(row rowScanner) (*entity.Automation, error) {
	var a entity.Automation
	var description, createdBy sql.NullString
	var steps, triggerConfig []byte

	err := row.Scan(
		&a.ID,
		&a.Name,
		&description,
		&a.TriggerType,
		&triggerConfig,
		&a.Status,
		&steps,
		&a.Stats.Triggered,
		&a.Stats.Completed,
		&a.Stats.Active,
		&createdBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Description = description.String
	a.CreatedBy = createdBy.String
	if len(steps) > 0 {
		if err := json.Unmarshal(steps, &a.Steps); err != nil {
			return nil, fmt.Errorf("unmarshal steps: %w", err)
		}
	}
	if len(triggerConfig) > 0 {
		if err := json.Unmarshal(triggerConfig, &a.TriggerConfig); err != nil {
			return nil, fmt.Errorf("unmarshal trigger config: %w", err)
		}
	}
	return &a, nil
}
