package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/gateway/chat"
	"timebank-service/src/internal/gateway/notification"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/mailer"

	"github.com/hibiken/asynq"
)

// NotificationWorker turns queued notification tasks into persisted
// in-app notifications plus best-effort email and chat delivery. DB
// failures are returned so asynq retries; malformed payloads are dropped.
type NotificationWorker struct {
	Log                    log.Log
	UserRepository         repository.UserFinder
	NotificationRepository *repository.NotificationRepository
	Mailer                 mailer.Mailer
	Chat                   chat.Channel
}

func NewNotificationWorker(
	logger log.Log,
	userRepository repository.UserFinder,
	notificationRepository *repository.NotificationRepository,
	mail mailer.Mailer,
	chatChannel chat.Channel,
) *NotificationWorker {
	return &NotificationWorker{
		Log:                    logger,
		UserRepository:         userRepository,
		NotificationRepository: notificationRepository,
		Mailer:                 mail,
		Chat:                   chatChannel,
	}
}

func (w *NotificationWorker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(notification.TypeNewUserRegistration, w.HandleNewUserRegistration)
	mux.HandleFunc(notification.TypeUserVerificationApproved, w.HandleVerificationDecision)
	mux.HandleFunc(notification.TypeUserVerificationRejected, w.HandleVerificationDecision)
	mux.HandleFunc(notification.TypeNewJobApplication, w.HandleNewApplication)
	mux.HandleFunc(notification.TypeJobApplicationStatusUpdate, w.HandleApplicationStatus)
	mux.HandleFunc(notification.TypeJobCompletionReward, w.HandleCompletionReward)
}

// HandleNewUserRegistration fans the notification out to every admin so
// someone picks up the verification.
func (w *NotificationWorker) HandleNewUserRegistration(ctx context.Context, task *asynq.Task) error {
	var payload model.NewUserRegistrationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.Log.Error("notification-worker", err.Error(), "HandleNewUserRegistration-payload", string(task.Payload()))
		return fmt.Errorf("unmarshal registration payload: %w: %v", asynq.SkipRetry, err)
	}

	admins, err := w.UserRepository.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	title := "New registration awaiting verification"
	message := fmt.Sprintf("%s (%s) registered and is waiting for identity verification.", payload.UserName, payload.UserEmail)

	for i := range admins {
		admin := &admins[i]
		if err := w.persist(ctx, admin.ID, task.Type(), title, message, task.Payload()); err != nil {
			return err
		}
		w.deliver(ctx, admin, title, message)
	}
	return nil
}

func (w *NotificationWorker) HandleVerificationDecision(ctx context.Context, task *asynq.Task) error {
	var payload model.VerificationDecisionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.Log.Error("notification-worker", err.Error(), "HandleVerificationDecision-payload", string(task.Payload()))
		return fmt.Errorf("unmarshal verification payload: %w: %v", asynq.SkipRetry, err)
	}

	var title, message string
	if payload.Status == entity.UserStatusVerified {
		title = "Your account is verified"
		message = "Your identity was confirmed. You can now post jobs, apply and exchange hours."
	} else {
		title = "Your registration was rejected"
		message = "Your identity could not be confirmed."
		if payload.RejectionReason != "" {
			message = fmt.Sprintf("Your identity could not be confirmed: %s", payload.RejectionReason)
		}
	}

	if err := w.persist(ctx, payload.UserID, task.Type(), title, message, task.Payload()); err != nil {
		return err
	}

	user, err := w.UserRepository.FindByID(ctx, payload.UserID)
	if err == nil {
		w.deliver(ctx, user, title, message)
	}
	return nil
}

// HandleNewApplication addresses the job creator, not the applicant.
func (w *NotificationWorker) HandleNewApplication(ctx context.Context, task *asynq.Task) error {
	var payload model.NewApplicationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.Log.Error("notification-worker", err.Error(), "HandleNewApplication-payload", string(task.Payload()))
		return fmt.Errorf("unmarshal new application payload: %w: %v", asynq.SkipRetry, err)
	}

	title := "New application for your job"
	message := fmt.Sprintf("%s applied for %q. Review the applicants to accept or reject.", payload.ApplicantName, payload.JobTitle)

	if err := w.persist(ctx, payload.EmployerID, task.Type(), title, message, task.Payload()); err != nil {
		return err
	}

	employer, err := w.UserRepository.FindByID(ctx, payload.EmployerID)
	if err == nil {
		w.deliver(ctx, employer, title, message)
	}
	return nil
}

func (w *NotificationWorker) HandleApplicationStatus(ctx context.Context, task *asynq.Task) error {
	var payload model.ApplicationStatusPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.Log.Error("notification-worker", err.Error(), "HandleApplicationStatus-payload", string(task.Payload()))
		return fmt.Errorf("unmarshal application status payload: %w: %v", asynq.SkipRetry, err)
	}

	var title, message string
	switch payload.Status {
	case entity.ApplicationStatusApplied:
		title = "Application received"
		message = fmt.Sprintf("Your application for %q was received.", payload.JobTitle)
	case entity.ApplicationStatusAccepted:
		title = "Application accepted"
		message = fmt.Sprintf("You were accepted for %q. Good luck!", payload.JobTitle)
	case entity.ApplicationStatusRejected:
		title = "Application rejected"
		message = fmt.Sprintf("Your application for %q was not selected this time.", payload.JobTitle)
	case entity.ApplicationStatusComplete:
		title = "Job completed"
		message = fmt.Sprintf("The job %q was marked complete.", payload.JobTitle)
	default:
		title = "Application updated"
		message = fmt.Sprintf("Your application for %q is now %s.", payload.JobTitle, payload.Status)
	}

	if err := w.persist(ctx, payload.UserID, task.Type(), title, message, task.Payload()); err != nil {
		return err
	}

	user, err := w.UserRepository.FindByID(ctx, payload.UserID)
	if err == nil {
		w.deliver(ctx, user, title, message)
	}
	return nil
}

func (w *NotificationWorker) HandleCompletionReward(ctx context.Context, task *asynq.Task) error {
	var payload model.CompletionRewardPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.Log.Error("notification-worker", err.Error(), "HandleCompletionReward-payload", string(task.Payload()))
		return fmt.Errorf("unmarshal completion reward payload: %w: %v", asynq.SkipRetry, err)
	}

	title := "Hours credited"
	message := fmt.Sprintf("%.1f hours were credited to your wallet for %q.", payload.Hours, payload.JobTitle)

	if err := w.persist(ctx, payload.UserID, task.Type(), title, message, task.Payload()); err != nil {
		return err
	}

	user, err := w.UserRepository.FindByID(ctx, payload.UserID)
	if err == nil {
		w.deliver(ctx, user, title, message)
	}
	return nil
}

func (w *NotificationWorker) persist(ctx context.Context, userID uint64, notifType, title, message string, data []byte) error {
	_, err := w.NotificationRepository.Insert(ctx, &entity.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	})
	if err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}
	return nil
}

// deliver pushes the notification over email and chat. Both channels are
// best effort, the persisted row is the source of truth.
func (w *NotificationWorker) deliver(ctx context.Context, user *entity.User, title, message string) {
	if w.Mailer != nil && user.Email != "" {
		if err := w.Mailer.Send(user.Email, title, message); err != nil {
			w.Log.Warn("notification-worker", fmt.Sprintf("failed to send email: %v", err), "deliver", user.Email)
		}
	}
	if w.Chat != nil && user.ChatUserID.Valid {
		if err := w.Chat.Push(ctx, user.ChatUserID.String, fmt.Sprintf("%s\n%s", title, message)); err != nil {
			w.Log.Warn("notification-worker", fmt.Sprintf("failed to push chat message: %v", err), "deliver", user.ChatUserID.String)
		}
	}
}
