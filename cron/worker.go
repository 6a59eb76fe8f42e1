package cron

import (
	"context"
	"log"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/config"
	"github.com/Project-Ma-y/Ma-y-sub000/services/stats"

	"github.com/hibiken/asynq"
)

const TypeStatsSnapshot = "stats:snapshot"

// InitSnapshotWorker runs the scheduler and worker that persist a daily
// funnel snapshot in the background.
func InitSnapshotWorker(statsSvc stats.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	scheduler := asynq.NewScheduler(redisOpts, nil)
	task := asynq.NewTask(TypeStatsSnapshot, nil)
	if _, err := scheduler.Register(config.AppConfig.StatsSnapshotCronspec, task); err != nil {
		log.Fatalf("[SnapshotWorker] failed to register snapshot schedule: %v", err)
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeStatsSnapshot, handleSnapshotTask(statsSvc))

	go func() {
		log.Println("[SnapshotWorker] starting snapshot scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Printf("[SnapshotWorker] scheduler stopped: %v", err)
		}
	}()

	go func() {
		log.Println("[SnapshotWorker] starting snapshot worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[SnapshotWorker] worker stopped: %v", err)
		}
	}()
}

func handleSnapshotTask(statsSvc stats.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		date := time.Now().Format("2006-01-02")

		snapshot, err := statsSvc.Snapshot(date)
		if err != nil {
			log.Printf("[SnapshotWorker] snapshot for %s failed: %v", date, err)
			return err
		}

		log.Printf("[SnapshotWorker] snapshot %s: total=%d signup=%.3f reach=%.3f apply=%.3f",
			snapshot.Date, snapshot.TotalSessions, snapshot.SignupConversion,
			snapshot.ApplicationReach, snapshot.ApplicationConversion)
		return nil
	}
}
