package http

import (
	"timebank-service/src/internal/delivery/http/middleware"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/usecase"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// MatchController is the member-facing side of admin matching.
type MatchController struct {
	Log     log.Log
	UseCase *usecase.MatchUseCase
}

func NewMatchController(useCase *usecase.MatchUseCase, logger log.Log) *MatchController {
	return &MatchController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *MatchController) Accept(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	matchID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.AcceptMatch(ctx.Context(), &model.AcceptMatchRequest{
		MatchID: uint64(matchID),
		UserID:  auth.Metadata.UserID,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "AcceptMatch", fiber.StatusOK, ctx)
}
