package usecase

import (
	"context"
	"database/sql"
	"fmt"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	"timebank-service/src/pkg/databases/mysql"
	httpError "timebank-service/src/pkg/http-error"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

type SkillUseCase struct {
	Log             log.Log
	Validate        *validator.Validate
	DB              mysql.DBInterface
	SkillRepository *repository.SkillRepository
}

func NewSkillUseCase(
	logger log.Log,
	validate *validator.Validate,
	db mysql.DBInterface,
	skillRepository *repository.SkillRepository,
) *SkillUseCase {
	return &SkillUseCase{
		Log:             logger,
		Validate:        validate,
		DB:              db,
		SkillRepository: skillRepository,
	}
}

func (c *SkillUseCase) CreateSkill(ctx context.Context, request *model.CreateSkillRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("skill-usecase", err.Error(), "CreateSkill-validation", utils.ConvertString(request))
		return result
	}

	exists, err := c.SkillRepository.ExistsByName(ctx, request.Name)
	if err != nil {
		c.Log.Error("skill-usecase", err.Error(), "CreateSkill-ExistsByName", request.Name)
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if exists {
		errObj := httpError.NewConflict()
		errObj.Message = fmt.Sprintf("skill %q already exists", request.Name)
		result.Error = errObj
		return result
	}

	skill := &entity.Skill{
		Name:        request.Name,
		Description: sql.NullString{String: request.Description, Valid: request.Description != ""},
	}
	id, err := c.SkillRepository.Create(ctx, skill)
	if err != nil {
		c.Log.Error("skill-usecase", err.Error(), "CreateSkill", request.Name)
		result.Error = httpError.NewInternalServerError()
		return result
	}
	skill.ID = id

	result.Data = skill
	return result
}

func (c *SkillUseCase) ListSkills(ctx context.Context) utils.Result {
	var result utils.Result

	skills, err := c.SkillRepository.List(ctx)
	if err != nil {
		c.Log.Error("skill-usecase", err.Error(), "ListSkills", "")
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = skills
	return result
}

func (c *SkillUseCase) GetSkill(ctx context.Context, request *model.GetSkillRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	skill, err := c.SkillRepository.FindByID(ctx, request.SkillID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("skill with id %d not found", request.SkillID)
		result.Error = errObj
		return result
	}

	result.Data = skill
	return result
}

func (c *SkillUseCase) UpdateSkill(ctx context.Context, request *model.UpdateSkillRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	skill := &entity.Skill{
		ID:          request.SkillID,
		Name:        request.Name,
		Description: sql.NullString{String: request.Description, Valid: request.Description != ""},
	}
	updated, err := c.SkillRepository.Update(ctx, skill)
	if err != nil {
		c.Log.Error("skill-usecase", err.Error(), "UpdateSkill", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if !updated {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("skill with id %d not found", request.SkillID)
		result.Error = errObj
		return result
	}

	result.Data = skill
	return result
}

func (c *SkillUseCase) DeleteSkill(ctx context.Context, request *model.DeleteSkillRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	deleted, err := c.SkillRepository.Delete(ctx, request.SkillID)
	if err != nil {
		c.Log.Error("skill-usecase", err.Error(), "DeleteSkill", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if !deleted {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("skill with id %d not found", request.SkillID)
		result.Error = errObj
		return result
	}

	result.Data = map[string]interface{}{"deleted": true}
	return result
}

// SetUserSkills replaces the user's skill set in one transaction, creating
// catalog entries for names it has not seen before.
func (c *SkillUseCase) SetUserSkills(ctx context.Context, request *model.SetUserSkillsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("skill-usecase", err.Error(), "SetUserSkills-validation", utils.ConvertString(request))
		return result
	}

	db, err := c.DB.GetDB()
	if err != nil {
		result.Error = httpError.NewInternalServerError()
		return result
	}

	skills := make([]model.UserSkillResponse, 0, len(request.Skills))
	txErr := mysql.WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		skillIDs := make([]uint64, 0, len(request.Skills))
		for _, name := range request.Skills {
			id, err := c.SkillRepository.EnsureByName(ctx, tx, name)
			if err != nil {
				return err
			}
			skillIDs = append(skillIDs, id)
			skills = append(skills, model.UserSkillResponse{ID: id, Name: name})
		}
		return c.SkillRepository.ReplaceUserSkills(ctx, tx, request.UserID, skillIDs)
	})

	if txErr != nil {
		c.Log.Error("skill-usecase", txErr.Error(), "SetUserSkills-tx", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = skills
	return result
}

func (c *SkillUseCase) ListUserSkills(ctx context.Context, request *model.GetUserRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	skills, err := c.SkillRepository.ListByUser(ctx, request.ID)
	if err != nil {
		c.Log.Error("skill-usecase", err.Error(), "ListUserSkills", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = skills
	return result
}
