package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/gateway/notification"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/model/converter"
	"timebank-service/src/internal/repository"
	"timebank-service/src/pkg/databases/mysql"
	httpError "timebank-service/src/pkg/http-error"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

type VerificationUseCase struct {
	Log              log.Log
	Validate         *validator.Validate
	DB               mysql.DBInterface
	UserRepository   *repository.UserRepository
	WalletRepository *repository.WalletRepository
	Dispatcher       notification.Dispatcher
}

func NewVerificationUseCase(
	logger log.Log,
	validate *validator.Validate,
	db mysql.DBInterface,
	userRepository *repository.UserRepository,
	walletRepository *repository.WalletRepository,
	dispatcher notification.Dispatcher,
) *VerificationUseCase {
	return &VerificationUseCase{
		Log:              logger,
		Validate:         validate,
		DB:               db,
		UserRepository:   userRepository,
		WalletRepository: walletRepository,
		Dispatcher:       dispatcher,
	}
}

func (c *VerificationUseCase) ListUnverified(ctx context.Context) utils.Result {
	var result utils.Result

	users, err := c.UserRepository.ListUnverified(ctx)
	if err != nil {
		c.Log.Error("verification-usecase", err.Error(), "ListUnverified", "")
		result.Error = httpError.NewInternalServerError()
		return result
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *converter.UserToResponse(&users[i]))
	}
	result.Data = responses
	return result
}

// Verify flips a pending user to verified and opens their wallet at zero
// in the same transaction. The status guard makes a second approval a
// conflict rather than a double wallet insert.
func (c *VerificationUseCase) Verify(ctx context.Context, request *model.VerifyUserRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
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
	if user.Status != entity.UserStatusPending {
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("user is already %s", user.Status)
		result.Error = errObj
		return result
	}

	db, err := c.DB.GetDB()
	if err != nil {
		result.Error = httpError.NewInternalServerError()
		return result
	}

	txErr := mysql.WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		verified, err := c.UserRepository.Verify(ctx, tx, request.UserID)
		if err != nil {
			return err
		}
		if !verified {
			errObj := httpError.NewConflict()
			errObj.Message = "user was verified or rejected concurrently"
			return errObj
		}
		return c.WalletRepository.Create(ctx, tx, request.UserID)
	})

	if txErr != nil {
		if commonErr, ok := txErr.(*httpError.CommonError); ok {
			result.Error = commonErr
			return result
		}
		c.Log.Error("verification-usecase", txErr.Error(), "Verify-tx", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	c.dispatchDecision(ctx, request.UserID, entity.UserStatusVerified, request.AdminName, "")

	user.Status = entity.UserStatusVerified
	user.Verified = true
	result.Data = model.VerifyUserResponse{
		User: *converter.UserToResponse(user),
		Wallet: model.WalletResponse{
			UserID:  request.UserID,
			Balance: 0,
		},
	}
	return result
}

func (c *VerificationUseCase) Reject(ctx context.Context, request *model.RejectUserRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
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
	if user.Status != entity.UserStatusPending {
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("user is already %s", user.Status)
		result.Error = errObj
		return result
	}

	db, err := c.DB.GetDB()
	if err != nil {
		result.Error = httpError.NewInternalServerError()
		return result
	}

	reason := sql.NullString{String: request.Reason, Valid: request.Reason != ""}
	txErr := mysql.WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		rejected, err := c.UserRepository.Reject(ctx, tx, request.UserID, reason)
		if err != nil {
			return err
		}
		if !rejected {
			errObj := httpError.NewConflict()
			errObj.Message = "user was verified or rejected concurrently"
			return errObj
		}
		return nil
	})

	if txErr != nil {
		if commonErr, ok := txErr.(*httpError.CommonError); ok {
			result.Error = commonErr
			return result
		}
		c.Log.Error("verification-usecase", txErr.Error(), "Reject-tx", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	c.dispatchDecision(ctx, request.UserID, entity.UserStatusRejected, request.AdminName, request.Reason)

	user.Status = entity.UserStatusRejected
	result.Data = converter.UserToResponse(user)
	return result
}

func (c *VerificationUseCase) dispatchDecision(ctx context.Context, userID uint64, status, adminName, reason string) {
	if c.Dispatcher == nil {
		return
	}
	taskType := notification.TypeUserVerificationApproved
	if status == entity.UserStatusRejected {
		taskType = notification.TypeUserVerificationRejected
	}
	payload := model.VerificationDecisionPayload{
		UserID:          userID,
		Status:          status,
		AdminName:       adminName,
		RejectionReason: reason,
		Timestamp:       time.Now(),
	}
	if err := c.Dispatcher.Enqueue(ctx, taskType, payload); err != nil {
		c.Log.Warn("verification-usecase", fmt.Sprintf("failed to enqueue verification decision: %v", err), "dispatchDecision", "")
	}
}
