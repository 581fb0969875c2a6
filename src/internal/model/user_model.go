package model

import "time"

type RegisterUserRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"required,max=20"`
	NationalID string `json:"national_id" validate:"required,max=20"`
	Password   string `json:"password" validate:"required,min=8,max=100"`
	DOB        string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Lat        *float64 `json:"lat,omitempty"`
	Lon        *float64 `json:"lon,omitempty"`
}

type UserResponse struct {
	ID        uint64     `json:"id"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Status    string     `json:"status,omitempty"`
	Verified  bool       `json:"verified"`
	Household string     `json:"household,omitempty"`
	Skills    []UserSkillResponse `json:"skills,omitempty"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
}

type GetUserRequest struct {
	ID uint64 `json:"-" validate:"required"`
}

type VerifyUserRequest struct {
	UserID    uint64 `json:"-" validate:"required"`
	AdminName string `json:"admin_name" validate:"max=100"`
}

type RejectUserRequest struct {
	UserID    uint64 `json:"-" validate:"required"`
	Reason    string `json:"reason" validate:"max=500"`
	AdminName string `json:"admin_name" validate:"max=100"`
}

type VerifyUserResponse struct {
	User   UserResponse    `json:"user"`
	Wallet WalletResponse  `json:"wallet"`
}
