package entity

import (
	"context"
	"strconv"
	"time"
)

// Lead statuses follow the sales pipeline used across the ecosystem sites.
const (
	LeadStatusNew          = "new"
	LeadStatusContacted    = "contacted"
	LeadStatusQualified    = "qualified"
	LeadStatusProposalSent = "proposal_sent"
	LeadStatusNegotiating  = "negotiating"
	LeadStatusWon          = "won"
	LeadStatusLost         = "lost"
	LeadStatusNurturing    = "nurturing"
)

const (
	LeadSourceLingueefy     = "lingueefy"
	LeadSourceRusingAcademy = "rusingacademy"
	LeadSourceBarholex      = "barholex"
	LeadSourceEcosystemHub  = "ecosystem_hub"
	LeadSourceExternal      = "external"
)

const (
	LeadTypeIndividual   = "individual"
	LeadTypeOrganization = "organization"
	LeadTypeGovernment   = "government"
	LeadTypeEnterprise   = "enterprise"
)

type Lead struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	LeadType  string    `json:"lead_type"`
	LeadScore int       `json:"lead_score"` // 0-100
	Budget    string    `json:"budget,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FilterValue exposes a lead field to the segmentation engine as its string
// form. Unknown fields come back empty, which never matches.
func (l *Lead) FilterValue(field string) string {
	switch field {
	case "status":
		return l.Status
	case "source":
		return l.Source
	case "leadType":
		return l.LeadType
	case "leadScore":
		return strconv.Itoa(l.LeadScore)
	case "budget":
		return l.Budget
	case "company":
		return l.Company
	default:
		return ""
	}
}

type LeadRepositoryInterface interface {
	List(ctx context.Context) ([]Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Upsert(ctx context.Context, lead *Lead) error
	AddTag(ctx context.Context, leadID, tag string) error
}
