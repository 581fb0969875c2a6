package usecase

import (
	"context"
	"fmt"
	"time"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/gateway/chat"
	"timebank-service/src/internal/gateway/messaging"
	"timebank-service/src/internal/gateway/notification"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	"timebank-service/src/pkg/databases/mysql"
	httpError "timebank-service/src/pkg/http-error"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

type JobApplicationUseCase struct {
	Log                      log.Log
	Validate                 *validator.Validate
	DB                       mysql.DBInterface
	UserRepository           *repository.UserRepository
	JobRepository            *repository.JobRepository
	JobApplicationRepository *repository.JobApplicationRepository
	WalletRepository         *repository.WalletRepository
	TransactionRepository    *repository.TransactionRepository
	Config                   *viper.Viper
	Dispatcher               notification.Dispatcher
	Chat                     chat.Channel
	LedgerProducer           *messaging.LedgerProducer
}

func NewJobApplicationUseCase(
	logger log.Log,
	validate *validator.Validate,
	db mysql.DBInterface,
	userRepository *repository.UserRepository,
	jobRepository *repository.JobRepository,
	jobApplicationRepository *repository.JobApplicationRepository,
	walletRepository *repository.WalletRepository,
	transactionRepository *repository.TransactionRepository,
	cfg *viper.Viper,
	dispatcher notification.Dispatcher,
	chatChannel chat.Channel,
	ledgerProducer *messaging.LedgerProducer,
) *JobApplicationUseCase {
	return &JobApplicationUseCase{
		Log:                      logger,
		Validate:                 validate,
		DB:                       db,
		UserRepository:           userRepository,
		JobRepository:            jobRepository,
		JobApplicationRepository: jobApplicationRepository,
		WalletRepository:         walletRepository,
		TransactionRepository:    transactionRepository,
		Config:                   cfg,
		Dispatcher:               dispatcher,
		Chat:                     chatChannel,
		LedgerProducer:           ledgerProducer,
	}
}

// Apply creates an application in 'applied'. The duplicate check, the
// one-active-job check and the insert share a transaction; the
// (job_id, user_id) unique key backs the duplicate check against races.
func (c *JobApplicationUseCase) Apply(ctx context.Context, request *model.ApplyRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("job-app-usecase", err.Error(), "Apply-validation", utils.ConvertString(request))
		return result
	}

	user, err := c.UserRepository.FindByID(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("user with id %d not found", request.UserID)
		result.Error = errObj
		c.Log.Error("job-app-usecase", errObj.Message, "Apply", utils.ConvertString(request))
		return result
	}
	if !user.Verified {
		errObj := httpError.NewForbidden()
		errObj.Kind = httpError.KindBusinessRule
		errObj.Message = "user must be verified to apply for jobs"
		result.Error = errObj
		return result
	}

	job, err := c.JobRepository.FindByID(ctx, request.JobID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("job with id %d not found", request.JobID)
		result.Error = errObj
		c.Log.Error("job-app-usecase", errObj.Message, "Apply", utils.ConvertString(request))
		return result
	}

	db, err := c.DB.GetDB()
	if err != nil {
		result.Error = httpError.NewInternalServerError()
		return result
	}

	var applicationID uint64
	txErr := mysql.WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		exists, err := c.JobApplicationRepository.Exists(ctx, tx, request.JobID, request.UserID)
		if err != nil {
			return err
		}
		if exists {
			errObj := httpError.NewConflict()
			errObj.Message = "you have already applied for this job"
			return errObj
		}

		accepted, err := c.JobApplicationRepository.CountAcceptedByUser(ctx, tx, request.UserID)
		if err != nil {
			return err
		}
		if accepted > 0 {
			errObj := httpError.NewConflict()
			errObj.Kind = httpError.KindBusinessRule
			errObj.Message = "finish or leave your current job before applying to another"
			return errObj
		}

		applicationID, err = c.JobApplicationRepository.Insert(ctx, tx, request.JobID, request.UserID, entity.ApplicationStatusApplied)
		return err
	})

	if txErr != nil {
		if commonErr, ok := txErr.(*httpError.CommonError); ok {
			result.Error = commonErr
			c.Log.Error("job-app-usecase", commonErr.Message, "Apply", utils.ConvertString(request))
			return result
		}
		c.Log.Error("job-app-usecase", txErr.Error(), "Apply-tx", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	c.notifyStatus(ctx, applicationID, entity.ApplicationStatusApplied, request.UserID, job.Title)
	c.notifyCreator(ctx, applicationID, job, user)

	result.Data = model.ApplyResponse{
		ApplicationID: applicationID,
		Status:        entity.ApplicationStatusApplied,
	}
	return result
}

// UpdateStatus moves an application along its lifecycle. A transition to
// 'complete' settles the reward in the same transaction: guarded status
// flip, wallet credit for the worker, one job_completion ledger row with
// the employer as source of funds.
func (c *JobApplicationUseCase) UpdateStatus(ctx context.Context, request *model.UpdateApplicationStatusRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("job-app-usecase", err.Error(), "UpdateStatus-validation", utils.ConvertString(request))
		return result
	}

	db, err := c.DB.GetDB()
	if err != nil {
		result.Error = httpError.NewInternalServerError()
		return result
	}

	var app *entity.ApplicationWithJob
	var rewardHours float64

	txErr := mysql.WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		var err error
		app, err = c.JobApplicationRepository.FindWithJobForEmployer(ctx, tx, request.ApplicationID, request.EmployerID)
		if err != nil {
			errObj := httpError.NewForbidden()
			errObj.Message = "unauthorized or application not found"
			return errObj
		}

		if !entity.CanTransitionApplication(app.Status, request.Status) {
			errObj := httpError.NewConflict()
			errObj.Message = fmt.Sprintf("cannot move application from %s to %s", app.Status, request.Status)
			return errObj
		}

		if request.Status == entity.ApplicationStatusAccepted {
			accepted, err := c.JobApplicationRepository.CountAcceptedByUser(ctx, tx, app.UserID)
			if err != nil {
				return err
			}
			if accepted > 0 {
				errObj := httpError.NewConflict()
				errObj.Kind = httpError.KindBusinessRule
				errObj.Message = "applicant is already working an accepted job"
				return errObj
			}
		}

		updated, err := c.JobApplicationRepository.UpdateStatusGuarded(ctx, tx, app.ID, app.Status, request.Status)
		if err != nil {
			return err
		}
		if !updated {
			errObj := httpError.NewConflict()
			errObj.Message = "application was updated concurrently, please retry"
			return errObj
		}

		if request.Status == entity.ApplicationStatusComplete {
			credited, err := c.WalletRepository.Credit(ctx, tx, app.UserID, app.TimeBalanceHours)
			if err != nil {
				return err
			}
			if !credited {
				errObj := httpError.NewConflict()
				errObj.Kind = httpError.KindDependency
				errObj.Message = "worker wallet not found, reward cannot be settled"
				return errObj
			}

			employerID := app.JobCreatorID
			if _, err := c.TransactionRepository.Append(ctx, tx, &employerID, app.UserID, app.TimeBalanceHours, entity.TransactionTypeJobCompletion); err != nil {
				return err
			}
			rewardHours = app.TimeBalanceHours
		}

		return nil
	})

	if txErr != nil {
		if commonErr, ok := txErr.(*httpError.CommonError); ok {
			result.Error = commonErr
			c.Log.Error("job-app-usecase", commonErr.Message, "UpdateStatus", utils.ConvertString(request))
			return result
		}
		c.Log.Error("job-app-usecase", txErr.Error(), "UpdateStatus-tx", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	c.notifyStatus(ctx, app.ID, request.Status, app.UserID, app.JobTitle)

	switch request.Status {
	case entity.ApplicationStatusComplete:
		if c.Dispatcher != nil {
			payload := model.CompletionRewardPayload{
				UserID:    app.UserID,
				Hours:     rewardHours,
				JobTitle:  app.JobTitle,
				Timestamp: time.Now(),
			}
			if err := c.Dispatcher.Enqueue(ctx, notification.TypeJobCompletionReward, payload); err != nil {
				c.Log.Warn("job-app-usecase", fmt.Sprintf("failed to enqueue completion reward: %v", err), "UpdateStatus", "")
			}
		}
		if c.LedgerProducer != nil {
			event := &model.JobCompletedEvent{
				EventID:     uuid.NewString(),
				JobID:       app.JobID,
				EmployerID:  app.JobCreatorID,
				WorkerID:    app.UserID,
				RewardHours: rewardHours,
			}
			if err := c.LedgerProducer.SendJobCompleted(event); err != nil {
				c.Log.Warn("job-app-usecase", fmt.Sprintf("failed to publish job completed event: %v", err), "UpdateStatus", event.EventID)
			}
		}
		c.switchWorkerMenu(ctx, app.UserID, c.Config.GetString("chat.menu.main"))
	case entity.ApplicationStatusAccepted:
		c.switchWorkerMenu(ctx, app.UserID, c.Config.GetString("chat.menu.on_job"))
	}

	result.Data = model.UpdateApplicationStatusResponse{
		ApplicationID: app.ID,
		Status:        request.Status,
		RewardHours:   rewardHours,
	}
	return result
}

func (c *JobApplicationUseCase) ListByUser(ctx context.Context, request *model.ListApplicationsByUserRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	applications, err := c.JobApplicationRepository.ListByUser(ctx, request.UserID)
	if err != nil {
		c.Log.Error("job-app-usecase", err.Error(), "ListByUser", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = applications
	return result
}

func (c *JobApplicationUseCase) ListApplicants(ctx context.Context, request *model.ListApplicantsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	job, err := c.JobRepository.FindByID(ctx, request.JobID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("job with id %d not found", request.JobID)
		result.Error = errObj
		return result
	}
	if job.CreatorUserID != request.EmployerID {
		errObj := httpError.NewForbidden()
		errObj.Message = "only the job creator can list applicants"
		result.Error = errObj
		return result
	}

	applicants, err := c.JobApplicationRepository.ListByJob(ctx, request.JobID)
	if err != nil {
		c.Log.Error("job-app-usecase", err.Error(), "ListApplicants", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = applicants
	return result
}

// notifyStatus queues the status-change notification; failures are logged
// and never fail the primary operation.
func (c *JobApplicationUseCase) notifyStatus(ctx context.Context, applicationID uint64, status string, userID uint64, jobTitle string) {
	if c.Dispatcher == nil {
		return
	}
	payload := model.ApplicationStatusPayload{
		ApplicationID: applicationID,
		Status:        status,
		UserID:        userID,
		JobTitle:      jobTitle,
		Timestamp:     time.Now(),
	}
	if err := c.Dispatcher.Enqueue(ctx, notification.TypeJobApplicationStatusUpdate, payload); err != nil {
		c.Log.Warn("job-app-usecase", fmt.Sprintf("failed to enqueue status notification: %v", err), "notifyStatus", "")
	}
}

// notifyCreator tells the job owner a new application arrived.
func (c *JobApplicationUseCase) notifyCreator(ctx context.Context, applicationID uint64, job *entity.Job, applicant *entity.User) {
	if c.Dispatcher == nil {
		return
	}
	payload := model.NewApplicationPayload{
		ApplicationID: applicationID,
		JobID:         job.ID,
		JobTitle:      job.Title,
		EmployerID:    job.CreatorUserID,
		ApplicantName: fmt.Sprintf("%s %s", applicant.FirstName, applicant.LastName),
		Timestamp:     time.Now(),
	}
	if err := c.Dispatcher.Enqueue(ctx, notification.TypeNewJobApplication, payload); err != nil {
		c.Log.Warn("job-app-usecase", fmt.Sprintf("failed to enqueue new application notification: %v", err), "notifyCreator", "")
	}
}

func (c *JobApplicationUseCase) switchWorkerMenu(ctx context.Context, userID uint64, menuState string) {
	if c.Chat == nil || menuState == "" {
		return
	}
	user, err := c.UserRepository.FindByID(ctx, userID)
	if err != nil || !user.ChatUserID.Valid {
		return
	}
	if err := c.Chat.SwitchMenu(ctx, user.ChatUserID.String, menuState); err != nil {
		c.Log.Warn("job-app-usecase", fmt.Sprintf("failed to switch chat menu: %v", err), "switchWorkerMenu", user.ChatUserID.String)
	}
}
