package asynqserver

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/stroy1click/confirmation-service/internal/cache"
	"github.com/stroy1click/confirmation-service/internal/config"
	"github.com/stroy1click/confirmation-service/internal/queue/processor"
	"github.com/stroy1click/confirmation-service/internal/queue/task"
	"github.com/stroy1click/confirmation-service/internal/worker"
)

func New(cfg config.Cache, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: 10,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

// NewScheduler enqueues the purge task on the configured cron schedule.
func NewScheduler(cfg config.Cache, schedule string) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(
		RedisOptions(cfg),
		&asynq.SchedulerOpts{LogLevel: asynq.ErrorLevel},
	)

	if _, err := scheduler.Register(schedule, task.NewPurgeExpiredCodesTask()); err != nil {
		return nil, fmt.Errorf("register purge expired codes task failed: %w", err)
	}

	return scheduler, nil
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses, Password: cfg.RedisCluster.Password}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address, Password: cfg.Redis.Password}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.PurgeExpiredCodesTaskName, processor.NewPurgeExpiredCodesProcessor(workers))
	queues := map[string]int{
		task.PurgeExpiredCodesQueueName: 1,
	}
	return mux, queues
}
