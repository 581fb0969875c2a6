package http

import (
	"timebank-service/src/internal/delivery/http/middleware"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/usecase"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	Log     log.Log
	UseCase *usecase.NotificationUseCase
}

func NewNotificationController(useCase *usecase.NotificationUseCase, logger log.Log) *NotificationController {
	return &NotificationController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *NotificationController) List(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := &model.ListNotificationsRequest{
		UserID: auth.Metadata.UserID,
		Limit:  ctx.QueryInt("limit"),
		Offset: ctx.QueryInt("offset"),
	}

	result := c.UseCase.List(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ListNotifications", fiber.StatusOK, ctx)
}

func (c *NotificationController) UnreadCount(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.UnreadCount(ctx.Context(), auth.Metadata.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "UnreadCount", fiber.StatusOK, ctx)
}

func (c *NotificationController) MarkRead(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	notificationID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.MarkRead(ctx.Context(), &model.MarkNotificationReadRequest{
		NotificationID: uint64(notificationID),
		UserID:         auth.Metadata.UserID,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "MarkNotificationRead", fiber.StatusOK, ctx)
}
