package model

type CreateJobRequest struct {
	CreatorUserID    uint64   `json:"-" validate:"required"`
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"required"`
	RequiredSkills   []string `json:"required_skills" validate:"omitempty,dive,max=100"`
	LocationLat      *float64 `json:"location_lat,omitempty" validate:"omitempty,latitude"`
	LocationLon      *float64 `json:"location_lon,omitempty" validate:"omitempty,longitude"`
	TimeBalanceHours float64  `json:"time_balance_hours" validate:"required,gt=0"`
	StartTime        string   `json:"start_time,omitempty"`
	EndTime          string   `json:"end_time,omitempty"`
}

type UpdateJobRequest struct {
	JobID            uint64   `json:"-" validate:"required"`
	CreatorUserID    uint64   `json:"-" validate:"required"`
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"required"`
	RequiredSkills   []string `json:"required_skills" validate:"omitempty,dive,max=100"`
	LocationLat      *float64 `json:"location_lat,omitempty" validate:"omitempty,latitude"`
	LocationLon      *float64 `json:"location_lon,omitempty" validate:"omitempty,longitude"`
	TimeBalanceHours float64  `json:"time_balance_hours" validate:"required,gt=0"`
}

type GetJobRequest struct {
	JobID uint64 `json:"-" validate:"required"`
}

type ListJobsRequest struct {
	Limit  int `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `json:"offset" validate:"omitempty,min=0"`
}

type DeleteJobRequest struct {
	JobID         uint64 `json:"-" validate:"required"`
	CreatorUserID uint64 `json:"-" validate:"required"`
}

type BroadcastJobRequest struct {
	JobID         uint64 `json:"-" validate:"required"`
	CreatorUserID uint64 `json:"-" validate:"required"`
}

type NearbyJobsRequest struct {
	Lat      float64 `json:"lat" validate:"required,latitude"`
	Lon      float64 `json:"lon" validate:"required,longitude"`
	RadiusKm float64 `json:"radius_km" validate:"omitempty,gt=0,max=100"`
}

type NearbyJobResponse struct {
	JobID      uint64  `json:"job_id"`
	DistanceKm float64 `json:"distance_km"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}
