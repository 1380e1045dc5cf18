package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"slotify/config"
	"slotify/models"
	"slotify/services/notification"
	"slotify/services/tasks"
)

// InitNoticeWorker runs the exception-notice worker in the background.
// Notice delivery is best-effort: a failed push is retried by asynq but
// never affects the mutation that queued it.
func InitNoticeWorker(sender *notification.FCMSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeExceptionNotice, handleExceptionNotice(sender))

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[NoticeWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NoticeWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NoticeWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleExceptionNotice(sender *notification.FCMSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ExceptionNoticePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NoticeHandler] Invalid payload: %v", err)
			return err
		}

		log.Printf("[NoticeHandler] Delivering exception notice to client %s for %s", p.ClientID, p.Date)

		if err := sender.SendExceptionNotice(ctx, p); err != nil {
			log.Printf("[NoticeHandler] Failed to send notice: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NoticeWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
