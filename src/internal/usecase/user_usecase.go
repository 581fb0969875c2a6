package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/gateway/notification"
	"timebank-service/src/internal/gateway/registry"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/model/converter"
	"timebank-service/src/internal/repository"
	"timebank-service/src/pkg/databases/mysql"
	httpError "timebank-service/src/pkg/http-error"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/nationalid"
	"timebank-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase struct {
	Log             log.Log
	Validate        *validator.Validate
	DB              mysql.DBInterface
	UserRepository  *repository.UserRepository
	SkillRepository *repository.SkillRepository
	Registry        registry.CitizenRegistry
	Dispatcher      notification.Dispatcher
}

func NewUserUseCase(
	logger log.Log,
	validate *validator.Validate,
	db mysql.DBInterface,
	userRepository *repository.UserRepository,
	skillRepository *repository.SkillRepository,
	citizenRegistry registry.CitizenRegistry,
	dispatcher notification.Dispatcher,
) *UserUseCase {
	return &UserUseCase{
		Log:             logger,
		Validate:        validate,
		DB:              db,
		UserRepository:  userRepository,
		SkillRepository: skillRepository,
		Registry:        citizenRegistry,
		Dispatcher:      dispatcher,
	}
}

// Register creates a pending user. The national id must pass the checksum
// and resolve in the citizen registry; the registry's family id becomes
// the household used for transfer restrictions.
func (c *UserUseCase) Register(ctx context.Context, request *model.RegisterUserRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("user-usecase", err.Error(), "Register-validation", request.Email)
		return result
	}

	normalizedID := nationalid.Normalize(request.NationalID)
	if err := nationalid.Validate(normalizedID); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("invalid national id: %v", err.Error())
		result.Error = errObj
		return result
	}

	if err := c.checkUniqueness(ctx, request, normalizedID); err != nil {
		result.Error = err
		return result
	}

	citizen, err := c.Registry.FindCitizenByNationalID(ctx, normalizedID)
	if err != nil {
		if errors.Is(err, registry.ErrCitizenNotFound) {
			errObj := httpError.NewUnprocessableEntity()
			errObj.Kind = httpError.KindBusinessRule
			errObj.Message = "national id is not present in the citizen registry"
			result.Error = errObj
			return result
		}
		c.Log.Error("user-usecase", err.Error(), "Register-registry", normalizedID)
		errObj := httpError.NewInternalServerError()
		errObj.Kind = httpError.KindDependency
		errObj.Message = "citizen registry is unavailable, please retry later"
		result.Error = errObj
		return result
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.Log.Error("user-usecase", err.Error(), "Register-hash", request.Email)
		result.Error = httpError.NewInternalServerError()
		return result
	}

	user := &entity.User{
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Email:        request.Email,
		Phone:        request.Phone,
		NationalID:   normalizedID,
		PasswordHash: string(hash),
	}
	if request.DOB != "" {
		dob, err := time.Parse("2006-01-02", request.DOB)
		if err == nil {
			user.DOB = sql.NullTime{Time: dob, Valid: true}
		}
	}

	db, err := c.DB.GetDB()
	if err != nil {
		result.Error = httpError.NewInternalServerError()
		return result
	}

	txErr := mysql.WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		id, err := c.UserRepository.Create(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = id

		profile := &entity.UserProfile{
			UserID:    id,
			Household: sql.NullString{String: citizen.FamilyID, Valid: citizen.FamilyID != ""},
		}
		if request.Lat != nil {
			profile.Lat = sql.NullFloat64{Float64: *request.Lat, Valid: true}
		}
		if request.Lon != nil {
			profile.Lon = sql.NullFloat64{Float64: *request.Lon, Valid: true}
		}
		return c.UserRepository.CreateProfile(ctx, tx, profile)
	})

	if txErr != nil {
		c.Log.Error("user-usecase", txErr.Error(), "Register-tx", request.Email)
		result.Error = httpError.NewInternalServerError()
		return result
	}

	if c.Dispatcher != nil {
		payload := model.NewUserRegistrationPayload{
			UserID:    user.ID,
			UserName:  fmt.Sprintf("%s %s", user.FirstName, user.LastName),
			UserEmail: user.Email,
			Timestamp: time.Now(),
		}
		if err := c.Dispatcher.Enqueue(ctx, notification.TypeNewUserRegistration, payload); err != nil {
			c.Log.Warn("user-usecase", fmt.Sprintf("failed to enqueue registration notification: %v", err), "Register", user.Email)
		}
	}

	user.Status = entity.UserStatusPending
	result.Data = converter.UserToResponse(user)
	return result
}

func (c *UserUseCase) GetProfile(ctx context.Context, request *model.GetUserRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	user, err := c.UserRepository.FindByID(ctx, request.ID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("user with id %d not found", request.ID)
		result.Error = errObj
		return result
	}

	response := converter.UserToResponse(user)
	if household, err := c.UserRepository.Household(ctx, user.ID); err == nil && household.Valid {
		response.Household = household.String
	}
	if skills, err := c.SkillRepository.ListByUser(ctx, user.ID); err == nil {
		for _, skill := range skills {
			response.Skills = append(response.Skills, model.UserSkillResponse{ID: skill.ID, Name: skill.Name})
		}
	}

	result.Data = response
	return result
}

func (c *UserUseCase) checkUniqueness(ctx context.Context, request *model.RegisterUserRequest, nationalID string) error {
	checks := []struct {
		fn    func(context.Context, string) (bool, error)
		arg   string
		field string
	}{
		{c.UserRepository.ExistsByEmail, request.Email, "email"},
		{c.UserRepository.ExistsByPhone, request.Phone, "phone"},
		{c.UserRepository.ExistsByNationalID, nationalID, "national id"},
	}

	for _, check := range checks {
		exists, err := check.fn(ctx, check.arg)
		if err != nil {
			c.Log.Error("user-usecase", err.Error(), "checkUniqueness", check.field)
			return httpError.NewInternalServerError()
		}
		if exists {
			errObj := httpError.NewConflict()
			errObj.Message = fmt.Sprintf("%s is already registered", check.field)
			return errObj
		}
	}
	return nil
}
