package model

type CreateMatchRequest struct {
	JobID  uint64 `json:"job_id" validate:"required"`
	UserID uint64 `json:"user_id" validate:"required"`
	Reason string `json:"reason" validate:"required,max=500"`
}

type CreateMatchResponse struct {
	MatchID       uint64 `json:"match_id"`
	ApplicationID uint64 `json:"application_id,omitempty"`
}

type GetMatchRequest struct {
	MatchID uint64 `json:"-" validate:"required"`
}

type AcceptMatchRequest struct {
	MatchID uint64 `json:"-" validate:"required"`
	UserID  uint64 `json:"-" validate:"required"`
}

type DeleteMatchRequest struct {
	MatchID uint64 `json:"-" validate:"required"`
}
