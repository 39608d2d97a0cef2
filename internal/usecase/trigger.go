package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
)

// TriggerUseCase fans a trigger event out to every active automation
// listening for it, creating one run per automation. A lead gets at most one
// run per automation, repeat events are skipped.
type TriggerUseCase struct {
	Automations AutomationRepositoryInterface
	Runs        RunRepositoryInterface
	Runner      *RunUseCase
}

func NewTriggerUseCase(automations AutomationRepositoryInterface, runs RunRepositoryInterface, runner *RunUseCase) *TriggerUseCase {
	return &TriggerUseCase{Automations: automations, Runs: runs, Runner: runner}
}

func (uc *TriggerUseCase) Execute(ctx context.Context, event TriggerEvent) error {
	automations, err := uc.Automations.ListActiveByTrigger(ctx, event.TriggerType)
	if err != nil {
		return fmt.Errorf("list automations for trigger %s: %w", event.TriggerType, err)
	}

	for _, a := range automations {
		exists, err := uc.Runs.ExistsForLead(ctx, a.ID, event.LeadID)
		if err != nil {
			log.Printf("⚠️ [TRIGGER] duplicate check failed automation=%s lead=%s: %v", a.ID, event.LeadID, err)
			continue
		}
		if exists {
			log.Printf("[TRIGGER] skipping repeat trigger automation=%s lead=%s", a.ID, event.LeadID)
			continue
		}

		run := entity.NewRun(a.ID, event.LeadID, event.Email)
		if err := uc.Runs.Create(ctx, run); err != nil {
			log.Printf("❌ [TRIGGER] create run failed automation=%s lead=%s: %v", a.ID, event.LeadID, err)
			continue
		}
		if err := uc.Automations.RecordTriggered(ctx, a.ID); err != nil {
			log.Printf("⚠️ [TRIGGER] stats update failed automation=%s: %v", a.ID, err)
		}

		// Burn through the leading non-wait steps right away.
		if uc.Runner != nil {
			if err := uc.Runner.Advance(ctx, run); err != nil {
				log.Printf("❌ [TRIGGER] advance failed run=%s: %v", run.ID, err)
			}
		}
	}
	return nil
}
