package http

import (
	"timebank-service/src/internal/delivery/http/middleware"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/usecase"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletController struct {
	Log     log.Log
	UseCase *usecase.TransferUseCase
}

func NewWalletController(useCase *usecase.TransferUseCase, logger log.Log) *WalletController {
	return &WalletController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *WalletController) Transfer(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.TransferRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.Transfer", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.FromUserID = auth.Metadata.UserID

	result := c.UseCase.Transfer(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Transfer", fiber.StatusOK, ctx)
}

func (c *WalletController) GetBalance(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.GetBalance(ctx.Context(), &model.GetUserRequest{ID: auth.Metadata.UserID})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "GetBalance", fiber.StatusOK, ctx)
}

func (c *WalletController) GetHistory(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := &model.TransferHistoryRequest{
		UserID: auth.Metadata.UserID,
		Limit:  ctx.QueryInt("limit"),
		Offset: ctx.QueryInt("offset"),
	}

	result := c.UseCase.GetHistory(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "GetHistory", fiber.StatusOK, ctx)
}

func (c *WalletController) GetFamilyMembers(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.GetFamilyMembers(ctx.Context(), &model.GetUserRequest{ID: auth.Metadata.UserID})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "GetFamilyMembers", fiber.StatusOK, ctx)
}
