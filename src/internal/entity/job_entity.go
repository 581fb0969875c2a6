package entity

import (
	"database/sql"
	"time"
)

type Job struct {
	ID               uint64          `json:"id" db:"id"`
	CreatorUserID    uint64          `json:"creator_user_id" db:"creator_user_id"`
	Title            string          `json:"title" db:"title"`
	Description      string          `json:"description" db:"description"`
	RequiredSkills   []byte          `json:"required_skills" db:"required_skills"` // JSON array
	LocationLat      sql.NullFloat64 `json:"location_lat" db:"location_lat"`
	LocationLon      sql.NullFloat64 `json:"location_lon" db:"location_lon"`
	TimeBalanceHours float64         `json:"time_balance_hours" db:"time_balance_hours"`
	StartTime        sql.NullTime    `json:"start_time" db:"start_time"`
	EndTime          sql.NullTime    `json:"end_time" db:"end_time"`
	Broadcasted      bool            `json:"broadcasted" db:"broadcasted"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

type JobWithCreator struct {
	Job
	CreatorFirstName string `json:"creator_first_name" db:"creator_first_name"`
	CreatorLastName  string `json:"creator_last_name" db:"creator_last_name"`
	CreatorEmail     string `json:"creator_email" db:"creator_email"`
}

type JobWithApplicationCount struct {
	Job
	ApplicationCount int `json:"application_count" db:"application_count"`
}
