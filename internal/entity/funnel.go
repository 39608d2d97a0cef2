package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	FunnelStatusActive   = "active"
	FunnelStatusDraft    = "draft"
	FunnelStatusPaused   = "paused"
	FunnelStatusArchived = "archived"
)

const (
	StageOptIn        = "opt_in"
	StageCheckout     = "checkout"
	StageConfirmation = "confirmation"
	StageUpsell       = "upsell"
)

func IsValidFunnelStatus(s string) bool {
	switch s {
	case FunnelStatusActive, FunnelStatusDraft, FunnelStatusPaused, FunnelStatusArchived:
		return true
	}
	return false
}

// Stage is one conversion step of a funnel. Entry is implicit: a visitor
// arrives at stage 0.
type Stage struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config,omitempty"`
}

func (s Stage) Validate() error {
	if s.ID == "" {
		return errors.New("stage id is required")
	}
	switch s.Type {
	case StageOptIn, StageCheckout, StageConfirmation, StageUpsell:
	case "":
		return fmt.Errorf("stage %s: type is required", s.ID)
	default:
		return fmt.Errorf("stage %s: unknown type %q", s.ID, s.Type)
	}
	if s.Title == "" {
		return fmt.Errorf("stage %s: title is required", s.ID)
	}
	return nil
}

type FunnelStats struct {
	Visitors    int     `json:"visitors"`
	Conversions int     `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

type Funnel struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	Stages      []Stage     `json:"stages"`
	Stats       FunnelStats `json:"stats"`
	CreatedBy   string      `json:"created_by,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func NewFunnel(name, description string, stages []Stage, createdBy string) (*Funnel, error) {
	f := &Funnel{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Status:      FunnelStatusDraft,
		Stages:      stages,
		Stats:       FunnelStats{},
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Funnel) Validate() error {
	if f.Name == "" {
		return errors.New("name is required")
	}
	for _, stage := range f.Stages {
		if err := stage.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Duplicate deep-copies the stage list into a fresh draft with zeroed stats.
func (f *Funnel) Duplicate() *Funnel {
	copyStages := make([]Stage, len(f.Stages))
	for i, s := range f.Stages {
		copyStages[i] = Stage{
			ID:          s.ID,
			Type:        s.Type,
			Title:       s.Title,
			Description: s.Description,
			Config:      copyConfig(s.Config),
		}
	}
	return &Funnel{
		ID:          uuid.New().String(),
		Name:        f.Name + " (Copy)",
		Description: f.Description,
		Status:      FunnelStatusDraft,
		Stages:      copyStages,
		Stats:       FunnelStats{},
		CreatedBy:   f.CreatedBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}
