package usecase

import (
	"github.com/rusingacademy/ecosystem-crm/internal/entity"
	"github.com/rusingacademy/ecosystem-crm/internal/segmentation"
)

type SegmentInput struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description,omitempty"`
	Filters     []segmentation.FilterCondition `json:"filters"`
	FilterLogic segmentation.Logic             `json:"filter_logic"`
	Color       string                         `json:"color,omitempty"`
	CreatedBy   string                         `json:"created_by,omitempty"`
}

type SegmentPatch struct {
	Name        *string                         `json:"name,omitempty"`
	Description *string                         `json:"description,omitempty"`
	Filters     *[]segmentation.FilterCondition `json:"filters,omitempty"`
	FilterLogic *segmentation.Logic             `json:"filter_logic,omitempty"`
	Color       *string                         `json:"color,omitempty"`
	IsActive    *bool                           `json:"is_active,omitempty"`
}

type PreviewInput struct {
	Filters []segmentation.FilterCondition `json:"filters"`
	Logic   segmentation.Logic             `json:"logic"`
}

type PreviewOutput struct {
	Leads []entity.Lead `json:"leads"`
	Count int           `json:"count"`
}

type AutomationInput struct {
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	TriggerType   string         `json:"trigger_type"`
	TriggerConfig map[string]any `json:"trigger_config,omitempty"`
	Steps         []entity.Step  `json:"steps,omitempty"`
	CreatedBy     string         `json:"created_by,omitempty"`
}

type AutomationPatch struct {
	Name          *string         `json:"name,omitempty"`
	Description   *string         `json:"description,omitempty"`
	TriggerType   *string         `json:"trigger_type,omitempty"`
	TriggerConfig *map[string]any `json:"trigger_config,omitempty"`
	Steps         *[]entity.Step  `json:"steps,omitempty"`
}

type FunnelInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Stages      []entity.Stage `json:"stages,omitempty"`
	CreatedBy   string         `json:"created_by,omitempty"`
}

type FunnelPatch struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Stages      *[]entity.Stage `json:"stages,omitempty"`
}

// StatsOutput backs the overview cards on the automations and funnels pages.
type StatsOutput struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Draft  int `json:"draft"`
}

// TriggerEvent is the message published when something happens to a lead
// that automations may react to.
type TriggerEvent struct {
	TriggerType string `json:"trigger_type"`
	LeadID      string `json:"lead_id"`
	Email       string `json:"email"`
	Origin      string `json:"origin,omitempty"`
}
