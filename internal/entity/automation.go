package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Automation lifecycle. "completed" is set by the run executor when an
// automation is retired, never through the status endpoint.
const (
	AutomationStatusDraft     = "draft"
	AutomationStatusActive    = "active"
	AutomationStatusPaused    = "paused"
	AutomationStatusCompleted = "completed"
)

const (
	TriggerEnrollment     = "enrollment"
	TriggerPurchase       = "purchase"
	TriggerCourseComplete = "course_complete"
	TriggerLessonComplete = "lesson_complete"
	TriggerSignup         = "signup"
	TriggerInactivity     = "inactivity"
	TriggerTagAdded       = "tag_added"
	TriggerManual         = "manual"
)

const (
	StepSendEmail    = "send_email"
	StepWait         = "wait"
	StepAddTag       = "add_tag"
	StepEnrollCourse = "enroll_course"
	StepNotifyAdmin  = "notify_admin"
)

func IsValidTriggerType(t string) bool {
	switch t {
	case TriggerEnrollment, TriggerPurchase, TriggerCourseComplete,
		TriggerLessonComplete, TriggerSignup, TriggerInactivity,
		TriggerTagAdded, TriggerManual:
		return true
	}
	return false
}

// Step is one action in an automation pipeline. Array index is execution
// order. Config keys depend on the step type, see Validate.
type Step struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Config map[string]any `json:"config,omitempty"`
}

func (s Step) Validate() error {
	if s.ID == "" {
		return errors.New("step id is required")
	}
	switch s.Type {
	case StepSendEmail:
		if subject, _ := s.Config["subject"].(string); subject == "" {
			return fmt.Errorf("step %s: send_email requires a subject", s.ID)
		}
	case StepWait:
		days, okDays := configNumber(s.Config, "days")
		hours, okHours := configNumber(s.Config, "hours")
		if !okDays || !okHours {
			return fmt.Errorf("step %s: wait requires numeric days and hours", s.ID)
		}
		if days < 0 || hours < 0 {
			return fmt.Errorf("step %s: wait delay must not be negative", s.ID)
		}
	case StepAddTag:
		if tag, _ := s.Config["tag"].(string); tag == "" {
			return fmt.Errorf("step %s: add_tag requires a tag", s.ID)
		}
	case StepEnrollCourse:
		// Course reference is an opaque payload forwarded to the LMS.
	case StepNotifyAdmin:
		if msg, _ := s.Config["message"].(string); msg == "" {
			return fmt.Errorf("step %s: notify_admin requires a message", s.ID)
		}
	case "":
		return fmt.Errorf("step %s: type is required", s.ID)
	default:
		return fmt.Errorf("step %s: unknown type %q", s.ID, s.Type)
	}
	return nil
}

// WaitDuration converts a wait step's days/hours config into a duration.
// Zero for anything that is not a wait step.
func (s Step) WaitDuration() time.Duration {
	if s.Type != StepWait {
		return 0
	}
	days, _ := configNumber(s.Config, "days")
	hours, _ := configNumber(s.Config, "hours")
	return time.Duration(days*24+hours) * time.Hour
}

// configNumber reads a numeric config value. JSON decoding hands numbers over
// as float64, but a few older admin builds sent them as strings too.
func configNumber(config map[string]any, key string) (float64, bool) {
	switch v := config[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

type AutomationStats struct {
	Triggered int `json:"triggered"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
}

type Automation struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	TriggerType   string          `json:"trigger_type"`
	TriggerConfig map[string]any  `json:"trigger_config,omitempty"`
	Status        string          `json:"status"`
	Steps         []Step          `json:"steps"`
	Stats         AutomationStats `json:"stats"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewAutomation builds a draft automation with zeroed stats.
func NewAutomation(name, description, triggerType string, triggerConfig map[string]any, steps []Step, createdBy string) (*Automation, error) {
	a := &Automation{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   description,
		TriggerType:   triggerType,
		TriggerConfig: triggerConfig,
		Status:        AutomationStatusDraft,
		Steps:         steps,
		Stats:         AutomationStats{},
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Automation) Validate() error {
	if a.Name == "" {
		return errors.New("name is required")
	}
	if !IsValidTriggerType(a.TriggerType) {
		return fmt.Errorf("unknown trigger type %q", a.TriggerType)
	}
	for _, step := range a.Steps {
		if err := step.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CanTransitionTo enforces the status machine:
// draft -> active, active -> paused, paused -> active. Completed is terminal.
func (a *Automation) CanTransitionTo(next string) bool {
	switch a.Status {
	case AutomationStatusDraft:
		return next == AutomationStatusActive
	case AutomationStatusActive:
		return next == AutomationStatusPaused
	case AutomationStatusPaused:
		return next == AutomationStatusActive
	default:
		return false
	}
}

// Duplicate copies the trigger and pipeline into a fresh draft. Stats never
// carry over.
func (a *Automation) Duplicate() *Automation {
	copySteps := make([]Step, len(a.Steps))
	for i, s := range a.Steps {
		copySteps[i] = Step{ID: s.ID, Type: s.Type, Config: copyConfig(s.Config)}
	}
	return &Automation{
		ID:            uuid.New().String(),
		Name:          a.Name + " (Copy)",
		Description:   a.Description,
		TriggerType:   a.TriggerType,
		TriggerConfig: copyConfig(a.TriggerConfig),
		Status:        AutomationStatusDraft,
		Steps:         copySteps,
		Stats:         AutomationStats{},
		CreatedBy:     a.CreatedBy,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func copyConfig(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		if nested, ok := v.(map[string]any); ok {
			dst[k] = copyConfig(nested)
			continue
		}
		dst[k] = v
	}
	return dst
}
