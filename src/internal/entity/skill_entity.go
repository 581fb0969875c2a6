package entity

import (
	"database/sql"
	"time"
)

type Skill struct {
	ID          uint64         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description sql.NullString `json:"description" db:"description"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// UserSkill is a catalog skill attached to a user.
type UserSkill struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
