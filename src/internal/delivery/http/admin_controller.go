package http

import (
	"timebank-service/src/internal/delivery/http/middleware"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/usecase"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminController groups the verification queue and the matching surface.
type AdminController struct {
	Log                 log.Log
	VerificationUseCase *usecase.VerificationUseCase
	MatchUseCase        *usecase.MatchUseCase
}

func NewAdminController(verificationUseCase *usecase.VerificationUseCase, matchUseCase *usecase.MatchUseCase, logger log.Log) *AdminController {
	return &AdminController{
		Log:                 logger,
		VerificationUseCase: verificationUseCase,
		MatchUseCase:        matchUseCase,
	}
}

func (c *AdminController) ListUnverified(ctx *fiber.Ctx) error {
	result := c.VerificationUseCase.ListUnverified(ctx.Context())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ListUnverified", fiber.StatusOK, ctx)
}

func (c *AdminController) VerifyUser(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	userID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.VerificationUseCase.Verify(ctx.Context(), &model.VerifyUserRequest{
		UserID:    uint64(userID),
		AdminName: auth.Metadata.FullName,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "VerifyUser", fiber.StatusOK, ctx)
}

func (c *AdminController) RejectUser(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	userID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	request := new(model.RejectUserRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.RejectUser", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = uint64(userID)
	request.AdminName = auth.Metadata.FullName

	result := c.VerificationUseCase.Reject(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "RejectUser", fiber.StatusOK, ctx)
}

func (c *AdminController) CreateMatch(ctx *fiber.Ctx) error {
	request := new(model.CreateMatchRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.CreateMatch", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}

	result := c.MatchUseCase.CreateMatch(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "CreateMatch", fiber.StatusCreated, ctx)
}

func (c *AdminController) GetMatch(ctx *fiber.Ctx) error {
	matchID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.MatchUseCase.GetMatch(ctx.Context(), &model.GetMatchRequest{MatchID: uint64(matchID)})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "GetMatch", fiber.StatusOK, ctx)
}

func (c *AdminController) ListMatches(ctx *fiber.Ctx) error {
	result := c.MatchUseCase.ListMatches(ctx.Context())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ListMatches", fiber.StatusOK, ctx)
}

func (c *AdminController) DeleteMatch(ctx *fiber.Ctx) error {
	matchID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.MatchUseCase.DeleteMatch(ctx.Context(), &model.DeleteMatchRequest{MatchID: uint64(matchID)})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "DeleteMatch", fiber.StatusOK, ctx)
}
