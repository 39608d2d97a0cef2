package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, email, name, phone, company, status, source, lead_type, lead_score, budget, tags, created_at, updated_at`

// List returns the full lead base, oldest first. The segmentation engine
// works over this snapshot in memory.
func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, query, id)
	lead, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (email, name, phone, company, status, source, lead_type, lead_score, budget, updated_at)
		VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), 'new'), COALESCE(NULLIF($6, ''), 'external'), COALESCE(NULLIF($7, ''), 'individual'), $8, $9, NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), leads.name),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), leads.phone),
			company = COALESCE(NULLIF(EXCLUDED.company, ''), leads.company),
			updated_at = NOW()
		RETURNING id, status, source, lead_type, lead_score, created_at, updated_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.Email,
		lead.Name,
		lead.Phone,
		lead.Company,
		lead.Status,
		lead.Source,
		lead.LeadType,
		lead.LeadScore,
		lead.Budget,
	).Scan(
		&lead.ID,
		&lead.Status,
		&lead.Source,
		&lead.LeadType,
		&lead.LeadScore,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) AddTag(ctx context.Context, leadID, tag string) error {
	query := `
		UPDATE leads
		SET tags = array_append(tags, $1), updated_at = NOW()
		WHERE id = $2 AND NOT ($1 = ANY(tags))
	`
	if _, err := r.DB.ExecContext(ctx, query, tag, leadID); err != nil {
		return fmt.Errorf("add tag: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var name, phone, company, budget sql.NullString
	var tags pq.StringArray

	err := row.Scan(
		&lead.ID,
		&lead.Email,
		&name,
		&phone,
		&company,
		&lead.Status,
		&lead.Source,
		&lead.LeadType,
		&lead.LeadScore,
		&budget,
		&tags,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Name = name.String
	lead.Phone = phone.String
	lead.Company = company.String
	lead.Budget = budget.String
	lead.Tags = tags
	return &lead, nil
}
