package entity

import (
	"database/sql"
	"time"
)

type AdminMatch struct {
	ID        uint64    `json:"id" db:"id"`
	JobID     uint64    `json:"job_id" db:"job_id"`
	UserID    uint64    `json:"user_id" db:"user_id"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type AdminMatchDetail struct {
	AdminMatch
	JobTitle         string         `json:"job_title" db:"job_title"`
	JobDescription   string         `json:"job_description" db:"job_description"`
	TimeBalanceHours float64        `json:"time_balance_hours" db:"time_balance_hours"`
	UserEmail        string         `json:"user_email" db:"user_email"`
	UserFirstName    string         `json:"user_first_name" db:"user_first_name"`
	UserLastName     string         `json:"user_last_name" db:"user_last_name"`
	ChatUserID       sql.NullString `json:"-" db:"chat_user_id"`
}
