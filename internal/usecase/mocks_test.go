package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
	"github.com/rusingacademy/ecosystem-crm/internal/segmentation"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) AddTag(ctx context.Context, leadID, tag string) error {
	args := m.Called(ctx, leadID, tag)
	return args.Error(0)
}

// MockSegmentRepository
type MockSegmentRepository struct {
	mock.Mock
}

func (m *MockSegmentRepository) List(ctx context.Context) ([]segmentation.Segment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]segmentation.Segment), args.Error(1)
}

func (m *MockSegmentRepository) FindByID(ctx context.Context, id string) (*segmentation.Segment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*segmentation.Segment), args.Error(1)
}

func (m *MockSegmentRepository) Create(ctx context.Context, s *segmentation.Segment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSegmentRepository) Update(ctx context.Context, s *segmentation.Segment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSegmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSegmentRepository) UpdateLeadCount(ctx context.Context, id string, count int) error {
	args := m.Called(ctx, id, count)
	return args.Error(0)
}

// MockSegmentCountCache
type MockSegmentCountCache struct {
	mock.Mock
}

func (m *MockSegmentCountCache) GetCount(ctx context.Context, segmentID string) (int, bool, error) {
	args := m.Called(ctx, segmentID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockSegmentCountCache) SetCount(ctx context.Context, segmentID string, count int) error {
	args := m.Called(ctx, segmentID, count)
	return args.Error(0)
}

func (m *MockSegmentCountCache) Invalidate(ctx context.Context, segmentID string) error {
	args := m.Called(ctx, segmentID)
	return args.Error(0)
}

// MockAutomationRepository
type MockAutomationRepository struct {
	mock.Mock
}

func (m *MockAutomationRepository) List(ctx context.Context, status, search string) ([]entity.Automation, error) {
	args := m.Called(ctx, status, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Automation), args.Error(1)
}

func (m *MockAutomationRepository) FindByID(ctx context.Context, id string) (*entity.Automation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Automation), args.Error(1)
}

func (m *MockAutomationRepository) Create(ctx context.Context, a *entity.Automation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAutomationRepository) Update(ctx context.Context, a *entity.Automation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAutomationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAutomationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAutomationRepository) ListActiveByTrigger(ctx context.Context, triggerType string) ([]entity.Automation, error) {
	args := m.Called(ctx, triggerType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Automation), args.Error(1)
}

func (m *MockAutomationRepository) CountByStatus(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockAutomationRepository) RecordTriggered(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAutomationRepository) RecordCompleted(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Create(ctx context.Context, run *entity.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) Update(ctx context.Context, run *entity.Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) ListPending(ctx context.Context, before time.Time, limit int) ([]entity.Run, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Run), args.Error(1)
}

func (m *MockRunRepository) ExistsForLead(ctx context.Context, automationID, leadID string) (bool, error) {
	args := m.Called(ctx, automationID, leadID)
	return args.Bool(0), args.Error(1)
}

// MockFunnelRepository
type MockFunnelRepository struct {
	mock.Mock
}

func (m *MockFunnelRepository) List(ctx context.Context, status, search string) ([]entity.Funnel, error) {
	args := m.Called(ctx, status, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Funnel), args.Error(1)
}

func (m *MockFunnelRepository) FindByID(ctx context.Context, id string) (*entity.Funnel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Funnel), args.Error(1)
}

func (m *MockFunnelRepository) Create(ctx context.Context, f *entity.Funnel) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFunnelRepository) Update(ctx context.Context, f *entity.Funnel) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFunnelRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockFunnelRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFunnelRepository) CountByStatus(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendStepEmail(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func (m *MockEmailService) NotifyAdmin(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

// MockCourseEnroller
type MockCourseEnroller struct {
	mock.Mock
}

func (m *MockCourseEnroller) Enroll(ctx context.Context, leadID string, config map[string]any) error {
	args := m.Called(ctx, leadID, config)
	return args.Error(0)
}
