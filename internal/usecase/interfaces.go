package usecase

import (
	"context"
	"time"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
	"github.com/rusingacademy/ecosystem-crm/internal/segmentation"
)

type SegmentRepositoryInterface interface {
	List(ctx context.Context) ([]segmentation.Segment, error)
	FindByID(ctx context.Context, id string) (*segmentation.Segment, error)
	Create(ctx context.Context, s *segmentation.Segment) error
	Update(ctx context.Context, s *segmentation.Segment) error
	Delete(ctx context.Context, id string) error
	UpdateLeadCount(ctx context.Context, id string, count int) error
}

type AutomationRepositoryInterface interface {
	List(ctx context.Context, status, search string) ([]entity.Automation, error)
	FindByID(ctx context.Context, id string) (*entity.Automation, error)
	Create(ctx context.Context, a *entity.Automation) error
	Update(ctx context.Context, a *entity.Automation) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ListActiveByTrigger(ctx context.Context, triggerType string) ([]entity.Automation, error)
	CountByStatus(ctx context.Context) (total int, active int, err error)
	// RecordTriggered bumps triggered+active, RecordCompleted moves one run
	// from active to completed. Single atomic UPDATEs.
	RecordTriggered(ctx context.Context, id string) error
	RecordCompleted(ctx context.Context, id string) error
}

type RunRepositoryInterface interface {
	Create(ctx context.Context, run *entity.Run) error
	Update(ctx context.Context, run *entity.Run) error
	ListPending(ctx context.Context, before time.Time, limit int) ([]entity.Run, error)
	ExistsForLead(ctx context.Context, automationID, leadID string) (bool, error)
}

type FunnelRepositoryInterface interface {
	List(ctx context.Context, status, search string) ([]entity.Funnel, error)
	FindByID(ctx context.Context, id string) (*entity.Funnel, error)
	Create(ctx context.Context, f *entity.Funnel) error
	Update(ctx context.Context, f *entity.Funnel) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (total int, active int, err error)
}

// SegmentCountCache holds the last recount per segment so list pages do not
// re-scan the lead base on every load.
type SegmentCountCache interface {
	GetCount(ctx context.Context, segmentID string) (int, bool, error)
	SetCount(ctx context.Context, segmentID string, count int) error
	Invalidate(ctx context.Context, segmentID string) error
}

type TriggerProducerInterface interface {
	PublishTrigger(ctx context.Context, event TriggerEvent) error
}

type EmailService interface {
	SendStepEmail(to, subject, body string) error
	NotifyAdmin(message string) error
}

// CourseEnroller forwards enroll_course step payloads to the LMS side.
type CourseEnroller interface {
	Enroll(ctx context.Context, leadID string, config map[string]any) error
}
