package model

type ApplyRequest struct {
	JobID  uint64 `json:"job_id" validate:"required"`
	UserID uint64 `json:"-" validate:"required"`
}

type ApplyResponse struct {
	ApplicationID uint64 `json:"application_id"`
	Status        string `json:"status"`
}

type UpdateApplicationStatusRequest struct {
	ApplicationID uint64 `json:"-" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=accepted rejected complete"`
	EmployerID    uint64 `json:"-" validate:"required"`
}

type UpdateApplicationStatusResponse struct {
	ApplicationID uint64  `json:"application_id"`
	Status        string  `json:"status"`
	RewardHours   float64 `json:"reward_hours,omitempty"`
}

type ListApplicationsByUserRequest struct {
	UserID uint64 `json:"-" validate:"required"`
}

type ListApplicantsRequest struct {
	JobID      uint64 `json:"-" validate:"required"`
	EmployerID uint64 `json:"-" validate:"required"`
}
