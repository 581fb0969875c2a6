package entity

import (
	"database/sql"
	"time"
)

const (
	UserStatusPending  = "pending"
	UserStatusVerified = "verified"
	UserStatusRejected = "rejected"
)

type User struct {
	ID              uint64         `json:"id" db:"id"`
	FirstName       string         `json:"first_name" db:"first_name"`
	LastName        string         `json:"last_name" db:"last_name"`
	Email           string         `json:"email" db:"email"`
	Phone           string         `json:"phone" db:"phone"`
	NationalID      string         `json:"national_id" db:"national_id"`
	PasswordHash    string         `json:"-" db:"password_hash"`
	Role            string         `json:"role" db:"role"`
	Status          string         `json:"status" db:"status"`
	Verified        bool           `json:"verified" db:"verified"`
	RejectionReason sql.NullString `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ChatUserID      sql.NullString `json:"-" db:"chat_user_id"`
	DOB             sql.NullTime   `json:"dob,omitempty" db:"dob"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
}

type UserProfile struct {
	UserID    uint64          `json:"user_id" db:"user_id"`
	Lat       sql.NullFloat64 `json:"lat" db:"lat"`
	Lon       sql.NullFloat64 `json:"lon" db:"lon"`
	Household sql.NullString  `json:"household" db:"household"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// FamilyMember is a verified user sharing the caller's household.
type FamilyMember struct {
	ID        uint64          `json:"id" db:"id"`
	FirstName string          `json:"first_name" db:"first_name"`
	LastName  string          `json:"last_name" db:"last_name"`
	Email     string          `json:"email" db:"email"`
	Household sql.NullString  `json:"household" db:"household"`
	Balance   sql.NullFloat64 `json:"balance" db:"balance"`
}
