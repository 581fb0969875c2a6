package http

import (
	"timebank-service/src/internal/delivery/http/middleware"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/usecase"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type JobApplicationController struct {
	Log     log.Log
	UseCase *usecase.JobApplicationUseCase
}

func NewJobApplicationController(useCase *usecase.JobApplicationUseCase, logger log.Log) *JobApplicationController {
	return &JobApplicationController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *JobApplicationController) Apply(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	jobID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.Apply(ctx.Context(), &model.ApplyRequest{
		JobID:  uint64(jobID),
		UserID: auth.Metadata.UserID,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Apply", fiber.StatusCreated, ctx)
}

func (c *JobApplicationController) UpdateStatus(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	applicationID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	request := new(model.UpdateApplicationStatusRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("JobApplicationController.UpdateStatus", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.ApplicationID = uint64(applicationID)
	request.EmployerID = auth.Metadata.UserID

	result := c.UseCase.UpdateStatus(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "UpdateApplicationStatus", fiber.StatusOK, ctx)
}

func (c *JobApplicationController) ListMine(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.ListByUser(ctx.Context(), &model.ListApplicationsByUserRequest{
		UserID: auth.Metadata.UserID,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ListMyApplications", fiber.StatusOK, ctx)
}

func (c *JobApplicationController) ListApplicants(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	jobID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.ListApplicants(ctx.Context(), &model.ListApplicantsRequest{
		JobID:      uint64(jobID),
		EmployerID: auth.Metadata.UserID,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ListApplicants", fiber.StatusOK, ctx)
}
