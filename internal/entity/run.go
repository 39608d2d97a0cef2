package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run is one execution of an automation pipeline for one lead. CurrentStep
// indexes into the automation's step list; a wait step parks the run until
// NextRunAt.
type Run struct {
	ID           string     `json:"id"`
	AutomationID string     `json:"automation_id"`
	LeadID       string     `json:"lead_id"`
	Email        string     `json:"email"`
	CurrentStep  int        `json:"current_step"`
	Status       string     `json:"status"`
	NextRunAt    *time.Time `json:"next_run_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewRun(automationID, leadID, email string) *Run {
	now := time.Now()
	return &Run{
		ID:           uuid.New().String(),
		AutomationID: automationID,
		LeadID:       leadID,
		Email:        email,
		CurrentStep:  0,
		Status:       RunStatusRunning,
		NextRunAt:    &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
