package worker

import (
	"context"
	"log"
	"time"

	"github.com/rusingacademy/ecosystem-crm/internal/usecase"
)

// RunScheduler wakes up parked automation runs once their wait delay has
// elapsed. Wait steps store an absolute next_run_at, so a restart loses
// nothing: the next tick picks the run back up.
type RunScheduler struct {
	runner       *usecase.RunUseCase
	tickInterval time.Duration
	batchSize    int
}

func NewRunScheduler(runner *usecase.RunUseCase) *RunScheduler {
	return &RunScheduler{
		runner:       runner,
		tickInterval: 30 * time.Second,
		batchSize:    100,
	}
}

func (s *RunScheduler) Start(ctx context.Context) {
	log.Println("🕒 Run scheduler started (30s tick)")

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Run scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *RunScheduler) tick(ctx context.Context) {
	if err := s.runner.ProcessPending(ctx, s.batchSize); err != nil && ctx.Err() == nil {
		log.Printf("❌ [SCHEDULER] processing pending runs: %v", err)
	}
}
