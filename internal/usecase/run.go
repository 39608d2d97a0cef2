package usecase

import (
	"context"
	"log"
	"time"

	"github.com/rusingacademy/ecosystem-crm/internal/entity"
	"github.com/rusingacademy/ecosystem-crm/internal/infra/http/middleware"
)

// RunUseCase advances automation runs through their step pipeline. Steps
// execute in array order; a wait step parks the run until its delay elapses
// and the scheduler picks it back up. A failed action is logged and the run
// moves on — these are marketing actions, not transactions.
type RunUseCase struct {
	Automations AutomationRepositoryInterface
	Runs        RunRepositoryInterface
	Leads       entity.LeadRepositoryInterface
	Email       EmailService
	Enroller    CourseEnroller
}

func NewRunUseCase(
	automations AutomationRepositoryInterface,
	runs RunRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	email EmailService,
	enroller CourseEnroller,
) *RunUseCase {
	return &RunUseCase{
		Automations: automations,
		Runs:        runs,
		Leads:       leads,
		Email:       email,
		Enroller:    enroller,
	}
}

// Advance executes steps from the run's cursor until it hits a wait step or
// the end of the pipeline.
func (uc *RunUseCase) Advance(ctx context.Context, run *entity.Run) error {
	automation, err := uc.Automations.FindByID(ctx, run.AutomationID)
	if err != nil {
		return err
	}
	if automation == nil {
		run.Status = entity.RunStatusFailed
		run.UpdatedAt = time.Now()
		return uc.Runs.Update(ctx, run)
	}

	for run.CurrentStep < len(automation.Steps) {
		step := automation.Steps[run.CurrentStep]

		if step.Type == entity.StepWait {
			next := time.Now().Add(step.WaitDuration())
			run.CurrentStep++
			run.NextRunAt = &next
			run.UpdatedAt = time.Now()
			return uc.Runs.Update(ctx, run)
		}

		if err := uc.executeStep(ctx, run, step); err != nil {
			middleware.RecordStepExecuted(step.Type, "error")
			log.Printf("❌ [RUNS] step failed run=%s step=%d type=%s: %v", run.ID, run.CurrentStep, step.Type, err)
		} else {
			middleware.RecordStepExecuted(step.Type, "ok")
		}
		run.CurrentStep++
	}

	now := time.Now()
	run.Status = entity.RunStatusCompleted
	run.CompletedAt = &now
	run.NextRunAt = nil
	run.UpdatedAt = now
	if err := uc.Runs.Update(ctx, run); err != nil {
		return err
	}
	if err := uc.Automations.RecordCompleted(ctx, run.AutomationID); err != nil {
		log.Printf("⚠️ [RUNS] stats update failed automation=%s: %v", run.AutomationID, err)
	}
	log.Printf("✅ [RUNS] run %s completed (%d steps)", run.ID, len(automation.Steps))
	return nil
}

// ProcessPending advances every run whose wait has elapsed. Called by the
// scheduler tick.
func (uc *RunUseCase) ProcessPending(ctx context.Context, limit int) error {
	runs, err := uc.Runs.ListPending(ctx, time.Now(), limit)
	if err != nil {
		return err
	}
	for i := range runs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := uc.Advance(ctx, &runs[i]); err != nil {
			log.Printf("❌ [RUNS] advance failed run=%s: %v", runs[i].ID, err)
		}
	}
	return nil
}

func (uc *RunUseCase) executeStep(ctx context.Context, run *entity.Run, step entity.Step) error {
	switch step.Type {
	case entity.StepSendEmail:
		subject, _ := step.Config["subject"].(string)
		body, _ := step.Config["body"].(string)
		return uc.Email.SendStepEmail(run.Email, subject, body)
	case entity.StepAddTag:
		tag, _ := step.Config["tag"].(string)
		return uc.Leads.AddTag(ctx, run.LeadID, tag)
	case entity.StepEnrollCourse:
		return uc.Enroller.Enroll(ctx, run.LeadID, step.Config)
	case entity.StepNotifyAdmin:
		message, _ := step.Config["message"].(string)
		return uc.Email.NotifyAdmin(message)
	default:
		// Unknown steps are skipped rather than wedging the run.
		log.Printf("⚠️ [RUNS] skipping unknown step type %q run=%s", step.Type, run.ID)
		return nil
	}
}
