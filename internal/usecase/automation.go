package usecase

import (
	"context"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
)

// AutomationUseCase covers the automations admin surface. Run execution
// lives in TriggerUseCase and RunUseCase.
type AutomationUseCase struct {
	Automations AutomationRepositoryInterface
}

func NewAutomationUseCase(automations AutomationRepositoryInterface) *AutomationUseCase {
	return &AutomationUseCase{Automations: automations}
}

func (uc *AutomationUseCase) List(ctx context.Context, status, search string) ([]entity.Automation, error) {
	return uc.Automations.List(ctx, status, search)
}

func (uc *AutomationUseCase) Stats(ctx context.Context) (*StatsOutput, error) {
	total, active, err := uc.Automations.CountByStatus(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "AUTOMATION_STATS", Message: err.Error()}
	}
	return &StatsOutput{Total: total, Active: active, Draft: total - active}, nil
}

func (uc *AutomationUseCase) Create(ctx context.Context, input AutomationInput) (*entity.Automation, error) {
	if errs := ValidateAutomationInput(input); len(errs) > 0 {
		return nil, errs
	}

	a, err := entity.NewAutomation(input.Name, input.Description, input.TriggerType, input.TriggerConfig, input.Steps, input.CreatedBy)
	if err != nil {
		return nil, ValidationErrors{{Field: "automation", Message: err.Error()}}
	}
	if err := uc.Automations.Create(ctx, a); err != nil {
		return nil, &TechnicalError{Code: "AUTOMATION_CREATE", Message: err.Error()}
	}
	return a, nil
}

func (uc *AutomationUseCase) Update(ctx context.Context, id string, patch AutomationPatch) (*entity.Automation, error) {
	a, err := uc.Automations.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: "AUTOMATION_FETCH", Message: err.Error()}
	}
	if a == nil {
		return nil, NotFound("automation", id)
	}

	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.TriggerType != nil {
		a.TriggerType = *patch.TriggerType
	}
	if patch.TriggerConfig != nil {
		a.TriggerConfig = *patch.TriggerConfig
	}
	if patch.Steps != nil {
		a.Steps = *patch.Steps
	}

	if err := a.Validate(); err != nil {
		return nil, ValidationErrors{{Field: "automation", Message: err.Error()}}
	}
	if err := uc.Automations.Update(ctx, a); err != nil {
		return nil, &TechnicalError{Code: "AUTOMATION_UPDATE", Message: err.Error()}
	}
	return a, nil
}

// UpdateStatus enforces the lifecycle machine. Anything outside
// draft->active, active->paused, paused->active is rejected, including any
// attempt to leave completed.
func (uc *AutomationUseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.Automation, error) {
	a, err := uc.Automations.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: "AUTOMATION_FETCH", Message: err.Error()}
	}
	if a == nil {
		return nil, NotFound("automation", id)
	}

	if !a.CanTransitionTo(status) {
		return nil, InvalidTransition(a.Status, status)
	}
	if err := uc.Automations.UpdateStatus(ctx, id, status); err != nil {
		return nil, &TechnicalError{Code: "AUTOMATION_UPDATE", Message: err.Error()}
	}
	a.Status = status
	return a, nil
}

func (uc *AutomationUseCase) Duplicate(ctx context.Context, id string) (*entity.Automation, error) {
	original, err := uc.Automations.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: "AUTOMATION_FETCH", Message: err.Error()}
	}
	if original == nil {
		return nil, NotFound("automation", id)
	}

	dup := original.Duplicate()
	if err := uc.Automations.Create(ctx, dup); err != nil {
		return nil, &TechnicalError{Code: "AUTOMATION_CREATE", Message: err.Error()}
	}
	return dup, nil
}

func (uc *AutomationUseCase) Delete(ctx context.Context, id string) error {
	a, err := uc.Automations.FindByID(ctx, id)
	if err != nil {
		return &TechnicalError{Code: "AUTOMATION_FETCH", Message: err.Error()}
	}
	if a == nil {
		return NotFound("automation", id)
	}
	if err := uc.Automations.Delete(ctx, id); err != nil {
		return &TechnicalError{Code: "AUTOMATION_DELETE", Message: err.Error()}
	}
	return nil
}
