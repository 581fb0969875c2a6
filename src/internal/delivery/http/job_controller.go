package http

import (
	"timebank-service/src/internal/delivery/http/middleware"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/usecase"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type JobController struct {
	Log     log.Log
	UseCase *usecase.JobUseCase
}

func NewJobController(useCase *usecase.JobUseCase, logger log.Log) *JobController {
	return &JobController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *JobController) Create(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	request := new(model.CreateJobRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("JobController.Create", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.CreatorUserID = auth.Metadata.UserID

	result := c.UseCase.Create(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "CreateJob", fiber.StatusCreated, ctx)
}

func (c *JobController) Get(ctx *fiber.Ctx) error {
	jobID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.Get(ctx.Context(), &model.GetJobRequest{JobID: uint64(jobID)})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "GetJob", fiber.StatusOK, ctx)
}

func (c *JobController) List(ctx *fiber.Ctx) error {
	request := &model.ListJobsRequest{
		Limit:  ctx.QueryInt("limit"),
		Offset: ctx.QueryInt("offset"),
	}

	result := c.UseCase.ListBroadcasted(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ListJobs", fiber.StatusOK, ctx)
}

func (c *JobController) ListMine(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.ListMine(ctx.Context(), auth.Metadata.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "ListMyJobs", fiber.StatusOK, ctx)
}

func (c *JobController) Update(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	jobID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	request := new(model.UpdateJobRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("JobController.Update", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.JobID = uint64(jobID)
	request.CreatorUserID = auth.Metadata.UserID

	result := c.UseCase.Update(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "UpdateJob", fiber.StatusOK, ctx)
}

func (c *JobController) Delete(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	jobID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.Delete(ctx.Context(), &model.DeleteJobRequest{
		JobID:         uint64(jobID),
		CreatorUserID: auth.Metadata.UserID,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "DeleteJob", fiber.StatusOK, ctx)
}

func (c *JobController) Broadcast(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)
	jobID, err := ctx.ParamsInt("id")
	if err != nil {
		return utils.ResponseError(err, ctx)
	}

	result := c.UseCase.Broadcast(ctx.Context(), &model.BroadcastJobRequest{
		JobID:         uint64(jobID),
		CreatorUserID: auth.Metadata.UserID,
	})
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "BroadcastJob", fiber.StatusOK, ctx)
}

func (c *JobController) Nearby(ctx *fiber.Ctx) error {
	request := &model.NearbyJobsRequest{
		Lat:      ctx.QueryFloat("lat"),
		Lon:      ctx.QueryFloat("lon"),
		RadiusKm: ctx.QueryFloat("radius_km"),
	}

	result := c.UseCase.Nearby(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "NearbyJobs", fiber.StatusOK, ctx)
}
