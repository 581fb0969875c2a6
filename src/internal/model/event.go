package model

// Event is anything the kafka gateway can publish; GetId becomes the
// message key.
type Event interface {
	GetId() string
}

type TransferEvent struct {
	EventID    string  `json:"event_id"`
	FromUserID uint64  `json:"from_user_id"`
	ToUserID   uint64  `json:"to_user_id"`
	Hours      float64 `json:"hours"`
	NewBalance float64 `json:"new_balance"`
}

func (e *TransferEvent) GetId() string {
	return e.EventID
}

type JobCompletedEvent struct {
	EventID     string  `json:"event_id"`
	JobID       uint64  `json:"job_id"`
	EmployerID  uint64  `json:"employer_id"`
	WorkerID    uint64  `json:"worker_id"`
	RewardHours float64 `json:"reward_hours"`
}

func (e *JobCompletedEvent) GetId() string {
	return e.EventID
}
