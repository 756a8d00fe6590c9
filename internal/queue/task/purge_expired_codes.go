package task

import (
	"github.com/hibiken/asynq"
)

const (
	PurgeExpiredCodesTaskName  = "purgeExpiredCodesTask"
	PurgeExpiredCodesQueueName = "purgeExpiredCodesQueue"
)

func NewPurgeExpiredCodesTask() *asynq.Task {
	return asynq.NewTask(
		PurgeExpiredCodesTaskName,
		nil,
		asynq.MaxRetry(3),
		asynq.Queue(PurgeExpiredCodesQueueName),
	)
}
