package usecase

import (
	"context"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
)

// FunnelUseCase mirrors the automations surface for the simpler funnel
// entity: stages instead of steps, no trigger, no run executor.
type FunnelUseCase struct {
	Funnels FunnelRepositoryInterface
}

func NewFunnelUseCase(funnels FunnelRepositoryInterface) *FunnelUseCase {
	return &FunnelUseCase{Funnels: funnels}
}

func (uc *FunnelUseCase) List(ctx context.Context, status, search string) ([]entity.Funnel, error) {
	return uc.Funnels.List(ctx, status, search)
}

func (uc *FunnelUseCase) Stats(ctx context.Context) (*StatsOutput, error) {
	total, active, err := uc.Funnels.CountByStatus(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "FUNNEL_STATS", Message: err.Error()}
	}
	return &StatsOutput{Total: total, Active: active, Draft: total - active}, nil
}

func (uc *FunnelUseCase) Create(ctx context.Context, input FunnelInput) (*entity.Funnel, error) {
	if errs := ValidateFunnelInput(input); len(errs) > 0 {
		return nil, errs
	}

	f, err := entity.NewFunnel(input.Name, input.Description, input.Stages, input.CreatedBy)
	if err != nil {
		return nil, ValidationErrors{{Field: "funnel", Message: err.Error()}}
	}
	if err := uc.Funnels.Create(ctx, f); err != nil {
		return nil, &TechnicalError{Code: "FUNNEL_CREATE", Message: err.Error()}
	}
	return f, nil
}

func (uc *FunnelUseCase) Update(ctx context.Context, id string, patch FunnelPatch) (*entity.Funnel, error) {
	f, err := uc.Funnels.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: "FUNNEL_FETCH", Message: err.Error()}
	}
	if f == nil {
		return nil, NotFound("funnel", id)
	}

	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	if patch.Stages != nil {
		f.Stages = *patch.Stages
	}

	if err := f.Validate(); err != nil {
		return nil, ValidationErrors{{Field: "funnel", Message: err.Error()}}
	}
	if err := uc.Funnels.Update(ctx, f); err != nil {
		return nil, &TechnicalError{Code: "FUNNEL_UPDATE", Message: err.Error()}
	}
	return f, nil
}

// UpdateStatus has no lifecycle machine: any declared funnel status is
// accepted, matching how the funnels page has always behaved.
func (uc *FunnelUseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.Funnel, error) {
	if !entity.IsValidFunnelStatus(status) {
		return nil, ValidationErrors{{Field: "status", Message: "is not a known funnel status"}}
	}

	f, err := uc.Funnels.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: "FUNNEL_FETCH", Message: err.Error()}
	}
	if f == nil {
		return nil, NotFound("funnel", id)
	}

	if err := uc.Funnels.UpdateStatus(ctx, id, status); err != nil {
		return nil, &TechnicalError{Code: "FUNNEL_UPDATE", Message: err.Error()}
	}
	f.Status = status
	return f, nil
}

func (uc *FunnelUseCase) Duplicate(ctx context.Context, id string) (*entity.Funnel, error) {
	original, err := uc.Funnels.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: "FUNNEL_FETCH", Message: err.Error()}
	}
	if original == nil {
		return nil, NotFound("funnel", id)
	}

	dup := original.Duplicate()
	if err := uc.Funnels.Create(ctx, dup); err != nil {
		return nil, &TechnicalError{Code: "FUNNEL_CREATE", Message: err.Error()}
	}
	return dup, nil
}

func (uc *FunnelUseCase) Delete(ctx context.Context, id string) error {
	f, err := uc.Funnels.FindByID(ctx, id)
	if err != nil {
		return &TechnicalError{Code: "FUNNEL_FETCH", Message: err.Error()}
	}
	if f == nil {
		return NotFound("funnel", id)
	}
	if err := uc.Funnels.Delete(ctx, id); err != nil {
		return &TechnicalError{Code: "FUNNEL_DELETE", Message: err.Error()}
	}
	return nil
}
