package entity

import "time"

const (
	ApplicationStatusApplied  = "applied"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
	ApplicationStatusComplete = "complete"
)

// applicationTransitions is the full lifecycle: applied → accepted|rejected,
// accepted → complete|rejected. complete and rejected are terminal.
var applicationTransitions = map[string][]string{
	ApplicationStatusApplied:  {ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusAccepted: {ApplicationStatusComplete, ApplicationStatusRejected},
	ApplicationStatusRejected: {},
	ApplicationStatusComplete: {},
}

func IsValidApplicationStatus(status string) bool {
	_, ok := applicationTransitions[status]
	return ok
}

func IsTerminalApplicationStatus(status string) bool {
	next, ok := applicationTransitions[status]
	return ok && len(next) == 0
}

func CanTransitionApplication(from, to string) bool {
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type JobApplication struct {
	ID        uint64    `json:"id" db:"id"`
	JobID     uint64    `json:"job_id" db:"job_id"`
	UserID    uint64    `json:"user_id" db:"user_id"`
	Status    string    `json:"status" db:"status"`
	AppliedAt time.Time `json:"applied_at" db:"applied_at"`
}

// ApplicationWithJob carries the job columns a status transition needs.
type ApplicationWithJob struct {
	ID               uint64  `json:"id" db:"id"`
	JobID            uint64  `json:"job_id" db:"job_id"`
	UserID           uint64  `json:"user_id" db:"user_id"`
	Status           string  `json:"status" db:"status"`
	JobCreatorID     uint64  `json:"job_creator_id" db:"job_creator_id"`
	JobTitle         string  `json:"job_title" db:"job_title"`
	TimeBalanceHours float64 `json:"time_balance_hours" db:"time_balance_hours"`
}

// ApplicationDetail is an application joined with its job and employer,
// shaped for the worker-facing listing.
type ApplicationDetail struct {
	ID               uint64    `json:"id" db:"id"`
	Status           string    `json:"status" db:"status"`
	AppliedAt        time.Time `json:"applied_at" db:"applied_at"`
	JobID            uint64    `json:"job_id" db:"job_id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	TimeBalanceHours float64   `json:"time_balance_hours" db:"time_balance_hours"`
	EmployerName     string    `json:"employer_name" db:"employer_name"`
	EmployerEmail    string    `json:"employer_email" db:"employer_email"`
	EmployerPhone    string    `json:"employer_phone" db:"employer_phone"`
}

// Applicant is an application joined with the applying user, shaped for
// the employer-facing listing.
type Applicant struct {
	ApplicationID uint64    `json:"application_id" db:"application_id"`
	Status        string    `json:"status" db:"status"`
	AppliedAt     time.Time `json:"applied_at" db:"applied_at"`
	UserID        uint64    `json:"user_id" db:"user_id"`
	Email         string    `json:"email" db:"email"`
	FirstName     string    `json:"first_name" db:"first_name"`
	LastName      string    `json:"last_name" db:"last_name"`
}
