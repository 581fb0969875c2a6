package model

type CreateSkillRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateSkillRequest struct {
	SkillID     uint64 `json:"-" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type GetSkillRequest struct {
	SkillID uint64 `json:"-" validate:"required"`
}

type DeleteSkillRequest struct {
	SkillID uint64 `json:"-" validate:"required"`
}

// SetUserSkillsRequest replaces the caller's skill set wholesale; names
// missing from the catalog are created on the fly.
type SetUserSkillsRequest struct {
	UserID uint64   `json:"-" validate:"required"`
	Skills []string `json:"skills" validate:"max=20,dive,required,max=100"`
}

type UserSkillResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
