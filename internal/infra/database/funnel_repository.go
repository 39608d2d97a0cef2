package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
)

type FunnelRepository struct {
	DB *sql.DB
}

func NewFunnelRepository(db *sql.DB) *FunnelRepository {
	return &FunnelRepository{DB: db}
}

const funnelColumns = `id, name, description, status, stages,
	stats_visitors, stats_conversions, stats_revenue, created_by, created_at, updated_at`

func (r *FunnelRepository) List(ctx context.Context, status, search string) ([]entity.Funnel, error) {
	query := `SELECT ` + funnelColumns + ` FROM funnels
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, status, search)
	if err != nil {
		return nil, fmt.Errorf("list funnels: %w", err)
	}
	defer rows.Close()

	var funnels []entity.Funnel
	for rows.Next() {
		f, err := scanFunnel(rows)
		if err != nil {
			return nil, err
		}
		funnels = append(funnels, *f)
	}
	return funnels, rows.Err()
}

func (r *FunnelRepository) FindByID(ctx context.Context, id string) (*entity.Funnel, error) {
	query := `SELECT ` + funnelColumns + ` FROM funnels WHERE id = $1`

	f, err := scanFunnel(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find funnel: %w", err)
	}
	return f, nil
}

func (r *FunnelRepository) Create(ctx context.Context, f *entity.Funnel) error {
	stages, err := json.Marshal(f.Stages)
	if err != nil {
		return fmt.Errorf("marshal stages: %w", err)
	}

	query := `
		INSERT INTO funnels (id, name, description, status, stages,
			stats_visitors, stats_conversions, stats_revenue, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)
	`
	_, err = r.DB.ExecContext(ctx, query,
		f.ID, f.Name, f.Description, f.Status, stages,
		f.Stats.Visitors, f.Stats.Conversions, f.Stats.Revenue, f.CreatedBy, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create funnel: %w", err)
	}
	return nil
}

func (r *FunnelRepository) Update(ctx context.Context, f *entity.Funnel) error {
	stages, err := json.Marshal(f.Stages)
	if err != nil {
		return fmt.Errorf("marshal stages: %w", err)
	}

	query := `
		UPDATE funnels
		SET name = $1, description = $2, stages = $3, updated_at = NOW()
		WHERE id = $4
	`
	if _, err := r.DB.ExecContext(ctx, query, f.Name, f.Description, stages, f.ID); err != nil {
		return fmt.Errorf("update funnel: %w", err)
	}
	return nil
}

func (r *FunnelRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE funnels SET status = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.DB.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("update funnel status: %w", err)
	}
	return nil
}

func (r *FunnelRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM funnels WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete funnel: %w", err)
	}
	return nil
}

func (r *FunnelRepository) CountByStatus(ctx context.Context) (int, int, error) {
	var total, active int
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'active') FROM funnels`
	if err := r.DB.QueryRowContext(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("count funnels: %w", err)
	}
	return total, active, nil
}

func scanFunnel(row rowScanner) (*entity.Funnel, error) {
	var f entity.Funnel
	var description, createdBy sql.NullString
	var stages []byte

	err := row.Scan(
		&f.ID,
		&f.Name,
		&description,
		&f.Status,
		&stages,
		&f.Stats.Visitors,
		&f.Stats.Conversions,
		&f.Stats.Revenue,
		&createdBy,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	f.Description = description.String
	f.CreatedBy = createdBy.String
	if len(stages) > 0 {
		if err := json.Unmarshal(stages, &f.Stages); err != nil {
			return nil, fmt.Errorf("unmarshal stages: %w", err)
		}
	}
	return &f, nil
}
