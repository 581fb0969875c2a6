package converter

import (
	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/model"
)

func UserToResponse(user *entity.User) *model.UserResponse {
	return &model.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Status:    user.Status,
		Verified:  user.Verified,
		CreatedAt: user.CreatedAt,
	}
}
