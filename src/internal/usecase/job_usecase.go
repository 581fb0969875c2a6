package usecase

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	"timebank-service/src/pkg/databases/mysql"
	httpError "timebank-service/src/pkg/http-error"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	goRedis "github.com/redis/go-redis/v9"
)

// jobGeoKey is the sorted set holding broadcasted job coordinates.
const jobGeoKey = "jobs:locations"

const defaultNearbyRadiusKm = 10

type JobUseCase struct {
	Log           log.Log
	Validate      *validator.Validate
	DB            mysql.DBInterface
	JobRepository *repository.JobRepository
	Redis         goRedis.UniversalClient
}

func NewJobUseCase(
	logger log.Log,
	validate *validator.Validate,
	db mysql.DBInterface,
	jobRepository *repository.JobRepository,
	redisClient goRedis.UniversalClient,
) *JobUseCase {
	return &JobUseCase{
		Log:           logger,
		Validate:      validate,
		DB:            db,
		JobRepository: jobRepository,
		Redis:         redisClient,
	}
}

func (c *JobUseCase) Create(ctx context.Context, request *model.CreateJobRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("job-usecase", err.Error(), "Create-validation", utils.ConvertString(request))
		return result
	}

	job := &entity.Job{
		CreatorUserID:    request.CreatorUserID,
		Title:            request.Title,
		Description:      request.Description,
		TimeBalanceHours: request.TimeBalanceHours,
	}
	if len(request.RequiredSkills) > 0 {
		skills, err := json.Marshal(request.RequiredSkills)
		if err != nil {
			result.Error = httpError.NewInternalServerError()
			return result
		}
		job.RequiredSkills = skills
	}
	if request.LocationLat != nil {
		job.LocationLat = sql.NullFloat64{Float64: *request.LocationLat, Valid: true}
	}
	if request.LocationLon != nil {
		job.LocationLon = sql.NullFloat64{Float64: *request.LocationLon, Valid: true}
	}
	if request.StartTime != "" {
		if start, err := time.Parse(time.RFC3339, request.StartTime); err == nil {
			job.StartTime = sql.NullTime{Time: start, Valid: true}
		}
	}
	if request.EndTime != "" {
		if end, err := time.Parse(time.RFC3339, request.EndTime); err == nil {
			job.EndTime = sql.NullTime{Time: end, Valid: true}
		}
	}

	id, err := c.JobRepository.Create(ctx, job)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "Create", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	job.ID = id

	result.Data = job
	return result
}

func (c *JobUseCase) Get(ctx context.Context, request *model.GetJobRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	job, err := c.JobRepository.FindByIDWithCreator(ctx, request.JobID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("job with id %d not found", request.JobID)
		result.Error = errObj
		return result
	}

	result.Data = job
	return result
}

// ListBroadcasted is the public board: only jobs the creator chose to
// broadcast show up.
func (c *JobUseCase) ListBroadcasted(ctx context.Context, request *model.ListJobsRequest) utils.Result {
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

	jobs, err := c.JobRepository.ListBroadcasted(ctx, limit, request.Offset)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "ListBroadcasted", "")
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = jobs
	return result
}

func (c *JobUseCase) ListMine(ctx context.Context, creatorUserID uint64) utils.Result {
	var result utils.Result

	jobs, err := c.JobRepository.ListByCreator(ctx, creatorUserID)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "ListMine", strconv.FormatUint(creatorUserID, 10))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = jobs
	return result
}

func (c *JobUseCase) Update(ctx context.Context, request *model.UpdateJobRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	job := &entity.Job{
		ID:               request.JobID,
		CreatorUserID:    request.CreatorUserID,
		Title:            request.Title,
		Description:      request.Description,
		TimeBalanceHours: request.TimeBalanceHours,
	}
	if len(request.RequiredSkills) > 0 {
		skills, err := json.Marshal(request.RequiredSkills)
		if err != nil {
			result.Error = httpError.NewInternalServerError()
			return result
		}
		job.RequiredSkills = skills
	}
	if request.LocationLat != nil {
		job.LocationLat = sql.NullFloat64{Float64: *request.LocationLat, Valid: true}
	}
	if request.LocationLon != nil {
		job.LocationLon = sql.NullFloat64{Float64: *request.LocationLon, Valid: true}
	}

	updated, err := c.JobRepository.Update(ctx, job)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "Update", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if !updated {
		errObj := httpError.NewForbidden()
		errObj.Message = "job not found or you are not its creator"
		result.Error = errObj
		return result
	}

	result.Data = job
	return result
}

func (c *JobUseCase) Delete(ctx context.Context, request *model.DeleteJobRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	deleted, err := c.JobRepository.Delete(ctx, request.JobID, request.CreatorUserID)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "Delete", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if !deleted {
		errObj := httpError.NewForbidden()
		errObj.Message = "job not found or you are not its creator"
		result.Error = errObj
		return result
	}

	c.removeFromGeoIndex(ctx, request.JobID)

	result.Data = map[string]interface{}{"deleted": true}
	return result
}

// Broadcast publishes a job to the public board and, when it carries
// coordinates, to the geo index that backs Nearby.
func (c *JobUseCase) Broadcast(ctx context.Context, request *model.BroadcastJobRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	broadcasted, err := c.JobRepository.Broadcast(ctx, request.JobID, request.CreatorUserID)
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "Broadcast", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if !broadcasted {
		errObj := httpError.NewForbidden()
		errObj.Message = "job not found or you are not its creator"
		result.Error = errObj
		return result
	}

	if c.Redis != nil {
		job, err := c.JobRepository.FindByID(ctx, request.JobID)
		if err == nil && job.LocationLat.Valid && job.LocationLon.Valid {
			err = c.Redis.GeoAdd(ctx, jobGeoKey, &goRedis.GeoLocation{
				Name:      strconv.FormatUint(job.ID, 10),
				Latitude:  job.LocationLat.Float64,
				Longitude: job.LocationLon.Float64,
			}).Err()
			if err != nil {
				c.Log.Warn("job-usecase", fmt.Sprintf("failed to index job location: %v", err), "Broadcast", strconv.FormatUint(job.ID, 10))
			}
		}
	}

	result.Data = map[string]interface{}{"broadcasted": true}
	return result
}

// Nearby reads the geo index only; jobs without coordinates or not yet
// broadcasted never appear.
func (c *JobUseCase) Nearby(ctx context.Context, request *model.NearbyJobsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if c.Redis == nil {
		errObj := httpError.NewInternalServerError()
		errObj.Kind = httpError.KindDependency
		errObj.Message = "job location index is unavailable"
		result.Error = errObj
		return result
	}

	radius := request.RadiusKm
	if radius == 0 {
		radius = defaultNearbyRadiusKm
	}

	locations, err := c.Redis.GeoSearchLocation(ctx, jobGeoKey, &goRedis.GeoSearchLocationQuery{
		GeoSearchQuery: goRedis.GeoSearchQuery{
			Latitude:   request.Lat,
			Longitude:  request.Lon,
			Radius:     radius,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		c.Log.Error("job-usecase", err.Error(), "Nearby", utils.ConvertString(request))
		errObj := httpError.NewInternalServerError()
		errObj.Kind = httpError.KindDependency
		errObj.Message = "job location index is unavailable"
		result.Error = errObj
		return result
	}

	responses := make([]model.NearbyJobResponse, 0, len(locations))
	for _, loc := range locations {
		jobID, err := strconv.ParseUint(loc.Name, 10, 64)
		if err != nil {
			continue
		}
		responses = append(responses, model.NearbyJobResponse{
			JobID:      jobID,
			DistanceKm: loc.Dist,
			Lat:        loc.Latitude,
			Lon:        loc.Longitude,
		})
	}

	result.Data = responses
	return result
}

func (c *JobUseCase) removeFromGeoIndex(ctx context.Context, jobID uint64) {
	if c.Redis == nil {
		return
	}
	if err := c.Redis.ZRem(ctx, jobGeoKey, strconv.FormatUint(jobID, 10)).Err(); err != nil {
		c.Log.Warn("job-usecase", fmt.Sprintf("failed to remove job from location index: %v", err), "removeFromGeoIndex", strconv.FormatUint(jobID, 10))
	}
}
