package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/stroy1click/confirmation-service/internal/repository"
	"github.com/stroy1click/confirmation-service/pkg/logger"

	"go.uber.org/zap"
)

type codePurger struct {
	codes repository.ConfirmationCodes
}

func newCodePurger(codes repository.ConfirmationCodes) *codePurger {
	return &codePurger{
		codes: codes,
	}
}

// PurgeExpired removes rows whose expiration instant has passed. Expired
// rows are already invalid for verification, this only reclaims storage.
func (w *codePurger) PurgeExpired(ctx context.Context) error {
	purged, err := w.codes.DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("delete expired codes failed: %w", err)
	}

	if purged > 0 {
		logger.Info("purged expired confirmation codes", zap.Int64("count", purged))
	}

	return nil
}
