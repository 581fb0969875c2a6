package model

import "time"

// Payloads carried by queued notification tasks. Delivery is at-least-once,
// handlers must tolerate replays.

type NewUserRegistrationPayload struct {
	UserID    uint64    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	Timestamp time.Time `json:"timestamp"`
}

type VerificationDecisionPayload struct {
	UserID          uint64    `json:"user_id"`
	Status          string    `json:"status"`
	AdminName       string    `json:"admin_name"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewApplicationPayload is addressed to the job creator when someone
// applies; the applicant gets the regular status payload.
type NewApplicationPayload struct {
	ApplicationID uint64    `json:"application_id"`
	JobID         uint64    `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	EmployerID    uint64    `json:"employer_id"`
	ApplicantName string    `json:"applicant_name"`
	Timestamp     time.Time `json:"timestamp"`
}

type ApplicationStatusPayload struct {
	ApplicationID uint64    `json:"application_id"`
	Status        string    `json:"status"`
	UserID        uint64    `json:"user_id"`
	JobTitle      string    `json:"job_title"`
	Timestamp     time.Time `json:"timestamp"`
}

type CompletionRewardPayload struct {
	UserID    uint64    `json:"user_id"`
	Hours     float64   `json:"hours"`
	JobTitle  string    `json:"job_title"`
	Timestamp time.Time `json:"timestamp"`
}
