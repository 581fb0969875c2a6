package usecase

import (
	"context"
	"fmt"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/gateway/chat"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	"timebank-service/src/pkg/databases/mysql"
	httpError "timebank-service/src/pkg/http-error"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

type MatchUseCase struct {
	Log                      log.Log
	Validate                 *validator.Validate
	DB                       mysql.DBInterface
	UserRepository           *repository.UserRepository
	JobRepository            *repository.JobRepository
	JobApplicationRepository *repository.JobApplicationRepository
	AdminMatchRepository     *repository.AdminMatchRepository
	JobApplicationUseCase    *JobApplicationUseCase
	Chat                     chat.Channel
}

func NewMatchUseCase(
	logger log.Log,
	validate *validator.Validate,
	db mysql.DBInterface,
	userRepository *repository.UserRepository,
	jobRepository *repository.JobRepository,
	jobApplicationRepository *repository.JobApplicationRepository,
	adminMatchRepository *repository.AdminMatchRepository,
	jobApplicationUseCase *JobApplicationUseCase,
	chatChannel chat.Channel,
) *MatchUseCase {
	return &MatchUseCase{
		Log:                      logger,
		Validate:                 validate,
		DB:                       db,
		UserRepository:           userRepository,
		JobRepository:            jobRepository,
		JobApplicationRepository: jobApplicationRepository,
		AdminMatchRepository:     adminMatchRepository,
		JobApplicationUseCase:    jobApplicationUseCase,
		Chat:                     chatChannel,
	}
}

// CreateMatch records an admin pairing and seeds an 'applied' application
// for the user. The application insert is idempotent, so matching a user
// who already applied leaves their application untouched.
func (c *MatchUseCase) CreateMatch(ctx context.Context, request *model.CreateMatchRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("match-usecase", err.Error(), "CreateMatch-validation", utils.ConvertString(request))
		return result
	}

	job, err := c.JobRepository.FindByID(ctx, request.JobID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("job with id %d not found", request.JobID)
		result.Error = errObj
		return result
	}

	user, err := c.UserRepository.FindByID(ctx, request.UserID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("user with id %d not found", request.UserID)
		result.Error = errObj
		return result
	}
	if !user.Verified {
		errObj := httpError.NewConflict()
		errObj.Kind = httpError.KindBusinessRule
		errObj.Message = "only verified users can be matched"
		result.Error = errObj
		return result
	}

	db, err := c.DB.GetDB()
	if err != nil {
		result.Error = httpError.NewInternalServerError()
		return result
	}

	var matchID uint64
	txErr := mysql.WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		var err error
		matchID, err = c.AdminMatchRepository.Insert(ctx, tx, request.JobID, request.UserID, request.Reason)
		if err != nil {
			return err
		}

		if _, err := c.JobApplicationRepository.InsertIgnore(ctx, tx, request.JobID, request.UserID, entity.ApplicationStatusApplied); err != nil {
			return err
		}

		if !job.Broadcasted {
			return c.JobRepository.SetBroadcasted(ctx, tx, request.JobID, true)
		}
		return nil
	})

	if txErr != nil {
		c.Log.Error("match-usecase", txErr.Error(), "CreateMatch-tx", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	if c.Chat != nil && user.ChatUserID.Valid {
		message := fmt.Sprintf("An admin matched you with the job %q (%.1f hours). Check your applications to accept.", job.Title, job.TimeBalanceHours)
		if err := c.Chat.Push(ctx, user.ChatUserID.String, message); err != nil {
			c.Log.Warn("match-usecase", fmt.Sprintf("failed to push match message: %v", err), "CreateMatch", user.ChatUserID.String)
		}
	}

	result.Data = model.CreateMatchResponse{MatchID: matchID}
	return result
}

func (c *MatchUseCase) GetMatch(ctx context.Context, request *model.GetMatchRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	match, err := c.AdminMatchRepository.FindDetail(ctx, request.MatchID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("match with id %d not found", request.MatchID)
		result.Error = errObj
		return result
	}

	result.Data = match
	return result
}

func (c *MatchUseCase) ListMatches(ctx context.Context) utils.Result {
	var result utils.Result

	matches, err := c.AdminMatchRepository.List(ctx)
	if err != nil {
		c.Log.Error("match-usecase", err.Error(), "ListMatches", "")
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = matches
	return result
}

// AcceptMatch lets the matched user confirm the pairing; the application
// the match seeded moves through the regular lifecycle from here.
func (c *MatchUseCase) AcceptMatch(ctx context.Context, request *model.AcceptMatchRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	match, err := c.AdminMatchRepository.FindDetail(ctx, request.MatchID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("match with id %d not found", request.MatchID)
		result.Error = errObj
		return result
	}
	if match.UserID != request.UserID {
		errObj := httpError.NewForbidden()
		errObj.Message = "only the matched user can accept this match"
		result.Error = errObj
		return result
	}

	// The match already seeded an application, so accepting is a
	// confirmation. If the seed row is gone, fall back to a fresh apply.
	app, err := c.JobApplicationRepository.FindByJobAndUser(ctx, match.JobID, request.UserID)
	if err != nil {
		return c.JobApplicationUseCase.Apply(ctx, &model.ApplyRequest{
			JobID:  match.JobID,
			UserID: request.UserID,
		})
	}

	result.Data = model.ApplyResponse{
		ApplicationID: app.ID,
		Status:        app.Status,
	}
	return result
}

func (c *MatchUseCase) DeleteMatch(ctx context.Context, request *model.DeleteMatchRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	deleted, err := c.AdminMatchRepository.Delete(ctx, request.MatchID)
	if err != nil {
		c.Log.Error("match-usecase", err.Error(), "DeleteMatch", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if !deleted {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("match with id %d not found", request.MatchID)
		result.Error = errObj
		return result
	}

	result.Data = map[string]interface{}{"deleted": true}
	return result
}
