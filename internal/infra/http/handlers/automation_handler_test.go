package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
	"github.com/rusingacademy/ecosystem-crm/internal/usecase"
)

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

// MockTriggerProducer
type MockTriggerProducer struct {
	mock.Mock
}

func (m *MockTriggerProducer) PublishTrigger(ctx context.Context, event usecase.TriggerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func automationRouter(h *AutomationHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/automations", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Post("/trigger", h.Trigger)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Post("/{id}/duplicate", h.Duplicate)
	})
	return r
}

func TestAutomationCreateReturns201(t *testing.T) {
	mockRepo := new(MockAutomationRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	h := NewAutomationHandler(usecase.NewAutomationUseCase(mockRepo), new(MockTriggerProducer))

	body, _ := json.Marshal(usecase.AutomationInput{
		Name:        "Welcome Series",
		TriggerType: entity.TriggerSignup,
		Steps: []entity.Step{
			{ID: "s1", Type: entity.StepSendEmail, Config: map[string]any{"subject": "Welcome!"}},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/automations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	automationRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Automation
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, entity.AutomationStatusDraft, created.Status)
}

func TestAutomationCreateValidationFailureReturns400WithDetails(t *testing.T) {
	h := NewAutomationHandler(usecase.NewAutomationUseCase(new(MockAutomationRepository)), new(MockTriggerProducer))

	body := []byte(`{"name":"","trigger_type":"page_view"}`)
	req := httptest.NewRequest(http.MethodPost, "/automations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	automationRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "name")
	assert.Contains(t, resp.Details, "trigger_type")
}

func TestAutomationUpdateStatusConflictReturns409(t *testing.T) {
	a, _ := entity.NewAutomation("Welcome", "", entity.TriggerSignup, nil, nil, "")

	mockRepo := new(MockAutomationRepository)
	mockRepo.On("FindByID", mock.Anything, a.ID).Return(a, nil)

	h := NewAutomationHandler(usecase.NewAutomationUseCase(mockRepo), new(MockTriggerProducer))

	// draft -> paused is not a legal transition.
	req := httptest.NewRequest(http.MethodPatch, "/automations/"+a.ID+"/status", bytes.NewReader([]byte(`{"status":"paused"}`)))
	rec := httptest.NewRecorder()
	automationRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAutomationDuplicateUnknownIDReturns404(t *testing.T) {
	mockRepo := new(MockAutomationRepository)
	mockRepo.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	h := NewAutomationHandler(usecase.NewAutomationUseCase(mockRepo), new(MockTriggerProducer))

	req := httptest.NewRequest(http.MethodPost, "/automations/missing/duplicate", nil)
	rec := httptest.NewRecorder()
	automationRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAutomationTriggerQueuesEvent(t *testing.T) {
	mockProducer := new(MockTriggerProducer)
	mockProducer.On("PublishTrigger", mock.Anything, mock.Anything).Return(nil)

	h := NewAutomationHandler(usecase.NewAutomationUseCase(new(MockAutomationRepository)), mockProducer)

	body := []byte(`{"trigger_type":"signup","lead_id":"lead-1","email":"ana@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/automations/trigger", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	automationRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	mockProducer.AssertCalled(t, "PublishTrigger", mock.Anything, usecase.TriggerEvent{
		TriggerType: "signup", LeadID: "lead-1", Email: "ana@example.com",
	})
}

func TestAutomationTriggerRequiresTypeAndLead(t *testing.T) {
	mockProducer := new(MockTriggerProducer)
	h := NewAutomationHandler(usecase.NewAutomationUseCase(new(MockAutomationRepository)), mockProducer)

	req := httptest.NewRequest(http.MethodPost, "/automations/trigger", bytes.NewReader([]byte(`{"email":"x@y.z"}`)))
	rec := httptest.NewRecorder()
	automationRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockProducer.AssertNotCalled(t, "PublishTrigger", mock.Anything, mock.Anything)
}
