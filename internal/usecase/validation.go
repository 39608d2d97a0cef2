package usecase

import (
	"strings"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
	"github.com/rusingacademy/ecosystem-crm/internal/segmentation"
)

func ValidateSegmentInput(input SegmentInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errs = append(errs, ValidationError{"name", "must not exceed 200 characters"})
	}

	if input.FilterLogic != segmentation.LogicAnd && input.FilterLogic != segmentation.LogicOr {
		errs = append(errs, ValidationError{"filter_logic", "must be and or or"})
	}

	valid := 0
	for _, f := range input.Filters {
		if f.IsValid() {
			valid++
		}
	}
	if valid == 0 {
		errs = append(errs, ValidationError{"filters", "at least one complete filter is required"})
	}

	return errs
}

func ValidateAutomationInput(input AutomationInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if !entity.IsValidTriggerType(input.TriggerType) {
		errs = append(errs, ValidationError{"trigger_type", "is not a known trigger"})
	}
	for _, step := range input.Steps {
		if err := step.Validate(); err != nil {
			errs = append(errs, ValidationError{"steps", err.Error()})
		}
	}

	return errs
}

func ValidateFunnelInput(input FunnelInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	for _, stage := range input.Stages {
		if err := stage.Validate(); err != nil {
			errs = append(errs, ValidationError{"stages", err.Error()})
		}
	}

	return errs
}
