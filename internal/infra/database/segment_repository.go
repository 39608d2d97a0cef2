package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rusingacademy/ecosystem-crm/internal/segmentation"
)

type SegmentRepository struct {
	DB *sql.DB
}

func NewSegmentRepository(db *sql.DB) *SegmentRepository {
	return &SegmentRepository{DB: db}
}

const segmentColumns = `id, name, description, filters, filter_logic, color, is_active, lead_count, created_by, created_at, updated_at`

func (r *SegmentRepository) List(ctx context.Context) ([]segmentation.Segment, error) {
	query := `SELECT ` + segmentColumns + ` FROM segments ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	defer rows.Close()

	var segments []segmentation.Segment
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		segments = append(segments, *seg)
	}
	return segments, rows.Err()
}

func (r *SegmentRepository) FindByID(ctx context.Context, id string) (*segmentation.Segment, error) {
	query := `SELECT ` + segmentColumns + ` FROM segments WHERE id = $1`

	seg, err := scanSegment(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find segment: %w", err)
	}
	return seg, nil
}

func (r *SegmentRepository) Create(ctx context.Context, s *segmentation.Segment) error {
	filters, err := json.Marshal(s.Filters)
	if err != nil {
		return fmt.Errorf("marshal filters: %w", err)
	}

	query := `
		INSERT INTO segments (id, name, description, filters, filter_logic, color, is_active, lead_count, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)
	`
	_, err = r.DB.ExecContext(ctx, query,
		s.ID, s.Name, s.Description, filters, string(s.FilterLogic),
		s.Color, s.IsActive, s.LeadCount, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create segment: %w", err)
	}
	return nil
}

func (r *SegmentRepository) Update(ctx context.Context, s *segmentation.Segment) error {
	filters, err := json.Marshal(s.Filters)
	if err != nil {
		return fmt.Errorf("marshal filters: %w", err)
	}

	query := `
		UPDATE segments
		SET name = $1, description = $2, filters = $3, filter_logic = $4,
		    color = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err = r.DB.ExecContext(ctx, query,
		s.Name, s.Description, filters, string(s.FilterLogic), s.Color, s.IsActive, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update segment: %w", err)
	}
	return nil
}

func (r *SegmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM segments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete segment: %w", err)
	}
	return nil
}

func (r *SegmentRepository) UpdateLeadCount(ctx context.Context, id string, count int) error {
	query := `UPDATE segments SET lead_count = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.DB.ExecContext(ctx, query, count, id); err != nil {
		return fmt.Errorf("update lead count: %w", err)
	}
	return nil
}

func scanSegment(row rowScanner) (*segmentation.Segment, error) {
	var seg segmentation.Segment
	var description, color, createdBy sql.NullString
	var filters []byte
	var logic string

	err := row.Scan(
		&seg.ID,
		&seg.Name,
		&description,
		&filters,
		&logic,
		&color,
		&seg.IsActive,
		&seg.LeadCount,
		&createdBy,
		&seg.CreatedAt,
		&seg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	seg.Description = description.String
	seg.Color = color.String
	seg.CreatedBy = createdBy.String
	seg.FilterLogic = segmentation.Logic(logic)
	if len(filters) > 0 {
		if err := json.Unmarshal(filters, &seg.Filters); err != nil {
			return nil, fmt.Errorf("unmarshal filters: %w", err)
		}
	}
	return &seg, nil
}
