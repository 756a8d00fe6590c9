package processor

import (
	"context"
	"fmt"

	"github.com/stroy1click/confirmation-service/internal/worker"

	"github.com/hibiken/asynq"
)

type purgeExpiredCodesProcessor struct {
	workers *worker.Workers
}

func NewPurgeExpiredCodesProcessor(workers *worker.Workers) *purgeExpiredCodesProcessor {
	return &purgeExpiredCodesProcessor{
		workers: workers,
	}
}

func (p *purgeExpiredCodesProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	if err := p.workers.CodePurger.PurgeExpired(ctx); err != nil {
		return fmt.Errorf("purge expired confirmation codes failed: %w", err)
	}

	return nil
}
