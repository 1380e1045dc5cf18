package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"slotify/models"
)

// TypeExceptionNotice is the task type for client exception notices.
const TypeExceptionNotice = "calendar:exception_notice"

// NewExceptionNoticeTask builds the queued task for one client notice.
func NewExceptionNoticeTask(payload models.ExceptionNoticePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeExceptionNotice, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Queue("default")}

	return task, opts, nil
}
