package notification

import (
	"context"
	"encoding/json"
	"time"

	"timebank-service/src/pkg/log"

	"github.com/hibiken/asynq"
)

// Task types handled by the notification worker.
const (
	TypeNewUserRegistration        = "notification:new_user_registration"
	TypeNewJobApplication          = "notification:new_job_application"
	TypeUserVerificationApproved   = "notification:user_verification_approved"
	TypeUserVerificationRejected   = "notification:user_verification_rejected"
	TypeJobApplicationStatusUpdate = "notification:job_application_status_update"
	TypeJobCompletionReward        = "notification:job_completion_reward"
)

const queueName = "notifications"

// Dispatcher queues a domain event for asynchronous at-least-once delivery.
// Enqueue failures are the caller's to log, never to propagate.
type Dispatcher interface {
	Enqueue(ctx context.Context, taskType string, payload interface{}) error
}

type AsynqDispatcher struct {
	Client *asynq.Client
	Log    log.Log
}

func NewAsynqDispatcher(client *asynq.Client, logger log.Log) *AsynqDispatcher {
	return &AsynqDispatcher{
		Client: client,
		Log:    logger,
	}
}

func (d *AsynqDispatcher) Enqueue(ctx context.Context, taskType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		d.Log.Error("notification-dispatcher", "failed to marshal payload", "Enqueue", err.Error())
		return err
	}

	task := asynq.NewTask(taskType, data)
	info, err := d.Client.EnqueueContext(ctx, task,
		asynq.Queue(queueName),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		d.Log.Error("notification-dispatcher", "failed to enqueue task", taskType, err.Error())
		return err
	}

	d.Log.Info("notification-dispatcher", "task enqueued", taskType, info.ID)
	return nil
}
