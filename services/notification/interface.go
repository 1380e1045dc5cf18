package notification

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"slotify/models"
	"slotify/services/tasks"
	"slotify/utils"
)

// NotificationService fans out schedule-change notices to clients. Delivery
// is best-effort: failures are logged and never roll back the mutation that
// triggered them.
type NotificationService interface {
	NotifyExceptionCreated(ctx context.Context, payload models.ExceptionNoticePayload) error
}

// QueueNotificationService enqueues notices for the background worker.
type QueueNotificationService struct {
	Client *asynq.Client
}

// NewQueueNotificationService wraps an asynq client.
func NewQueueNotificationService(client *asynq.Client) *QueueNotificationService {
	return &QueueNotificationService{Client: client}
}

// NotifyExceptionCreated queues one notice per client.
func (s *QueueNotificationService) NotifyExceptionCreated(ctx context.Context, payload models.ExceptionNoticePayload) error {
	task, opts, err := tasks.NewExceptionNoticeTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build exception notice task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		utils.GetLogger().Error("Failed to enqueue exception notice",
			zap.String("providerId", payload.ProviderID),
			zap.String("clientId", payload.ClientID),
			zap.Error(err))
		return fmt.Errorf("failed to enqueue exception notice: %w", err)
	}
	return nil
}
