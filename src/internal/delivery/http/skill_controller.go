package http

import (
	"timebank-service/src/internal/delivery/http/middleware"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/usecase"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type SkillController struct {
	Log     log.Log
	UseCase *usecase.SkillUseCase
}

func NewSkillController(useCase *usecase.SkillUseCase, logger log.Log) *SkillController {
	return &SkillController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *SkillController) Create(ctx *fiber.Ctx) error {
	request := new(model.CreateSkillRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("skill-controller", err.Error(), "Create-BodyParser", "")
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.CreateSkill(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "CreateSkill", fiber.StatusCreated, ctx)
}

func (c *SkillController) List(ctx *fiber.Ctx) error {
	result := c.UseCase.ListSkills(ctx.Context())
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ListSkills", fiber.StatusOK, ctx)
}

func (c *SkillController) Get(ctx *fiber.Ctx) error {
	skillID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.GetSkill(ctx.Context(), &model.GetSkillRequest{SkillID: uint64(skillID)})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "GetSkill", fiber.StatusOK, ctx)
}

func (c *SkillController) Update(ctx *fiber.Ctx) error {
	skillID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	request := new(model.UpdateSkillRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("skill-controller", err.Error(), "Update-BodyParser", "")
		return utils.ResponseError(err, ctx)
	}
	request.SkillID = uint64(skillID)

	result := c.UseCase.UpdateSkill(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "UpdateSkill", fiber.StatusOK, ctx)
}

func (c *SkillController) Delete(ctx *fiber.Ctx) error {
	skillID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.DeleteSkill(ctx.Context(), &model.DeleteSkillRequest{SkillID: uint64(skillID)})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "DeleteSkill", fiber.StatusOK, ctx)
}

func (c *SkillController) SetMySkills(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.SetUserSkillsRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("skill-controller", err.Error(), "SetMySkills-BodyParser", "")
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.Metadata.UserID

	result := c.UseCase.SetUserSkills(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "SetUserSkills", fiber.StatusOK, ctx)
}

func (c *SkillController) ListMySkills(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.ListUserSkills(ctx.Context(), &model.GetUserRequest{ID: auth.Metadata.UserID})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ListUserSkills", fiber.StatusOK, ctx)
}
