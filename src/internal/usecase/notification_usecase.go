package usecase

import (
	"context"
	"fmt"

	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	httpError "timebank-service/src/pkg/http-error"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
)

type NotificationUseCase struct {
	Log                    log.Log
	Validate               *validator.Validate
	NotificationRepository *repository.NotificationRepository
}

func NewNotificationUseCase(
	logger log.Log,
	validate *validator.Validate,
	notificationRepository *repository.NotificationRepository,
) *NotificationUseCase {
	return &NotificationUseCase{
		Log:                    logger,
		Validate:               validate,
		NotificationRepository: notificationRepository,
	}
}

func (c *NotificationUseCase) List(ctx context.Context, request *model.ListNotificationsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	limit := request.Limit
	if limit == 0 {
		limit = 50
	}

	notifications, err := c.NotificationRepository.ListByUser(ctx, request.UserID, limit, request.Offset)
	if err != nil {
		c.Log.Error("notification-usecase", err.Error(), "List", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = notifications
	return result
}

func (c *NotificationUseCase) UnreadCount(ctx context.Context, userID uint64) utils.Result {
	var result utils.Result

	count, err := c.NotificationRepository.UnreadCount(ctx, userID)
	if err != nil {
		c.Log.Error("notification-usecase", err.Error(), "UnreadCount", "")
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = model.UnreadCountResponse{Count: count}
	return result
}

func (c *NotificationUseCase) MarkRead(ctx context.Context, request *model.MarkNotificationReadRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	marked, err := c.NotificationRepository.MarkRead(ctx, request.NotificationID, request.UserID)
	if err != nil {
		c.Log.Error("notification-usecase", err.Error(), "MarkRead", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if !marked {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("notification with id %d not found", request.NotificationID)
		result.Error = errObj
		return result
	}

	result.Data = map[string]interface{}{"read": true}
	return result
}
