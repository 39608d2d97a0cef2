// Package segmentation evaluates saved filter rules against the lead base.
// It powers both the live preview in the segments editor and the persisted
// member counts.
package segmentation

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a comparison operator of a filter condition.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpContains    Operator = "contains"

	// OpIn is accepted on the wire for forward compatibility with the admin
	// UI but has no evaluation semantics yet; conditions using it never
	// match.
	OpIn Operator = "in"
)

// Filterable lead fields.
const (
	FieldStatus    = "status"
	FieldSource    = "source"
	FieldLeadType  = "leadType"
	FieldLeadScore = "leadScore"
	FieldBudget    = "budget"
	FieldCompany   = "company"
)

// Logic combines the conditions of a segment.
type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

// FilterCondition is one (field, operator, value) rule. Values travel as
// strings regardless of the field's declared type; the evaluator coerces.
type FilterCondition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// IsValid reports whether the condition is complete enough to apply. The
// check is an explicit non-empty test on each part, so a "0" threshold is a
// usable value.
func (c FilterCondition) IsValid() bool {
	return c.Field != "" && c.Operator != "" && c.Value != ""
}

// Segment is a saved, named rule over the lead base. LeadCount is derived:
// it holds the result of the last recount, not live truth.
type Segment struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Filters     []FilterCondition `json:"filters"`
	FilterLogic Logic             `json:"filter_logic"`
	Color       string            `json:"color,omitempty"`
	IsActive    bool              `json:"is_active"`
	LeadCount   int               `json:"lead_count"`
	CreatedBy   string            `json:"created_by,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewSegment(name, description string, filters []FilterCondition, logic Logic, color string, createdBy string) *Segment {
	return &Segment{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Filters:     filters,
		FilterLogic: logic,
		Color:       color,
		IsActive:    true,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}
