package entity

import "time"

const (
	TransactionTypeTransfer      = "transfer"
	TransactionTypeJobCompletion = "job_completion"
)

type Wallet struct {
	UserID    uint64    `json:"user_id" db:"user_id"`
	Balance   float64   `json:"balance" db:"balance"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Transaction is an append-only ledger row. FromUserID is nil only for
// system-sourced entries; rows are never updated or deleted.
type Transaction struct {
	ID         uint64    `json:"id" db:"id"`
	FromUserID *uint64   `json:"from_user_id" db:"from_user_id"`
	ToUserID   uint64    `json:"to_user_id" db:"to_user_id"`
	Amount     float64   `json:"amount" db:"amount"`
	Type       string    `json:"type" db:"type"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// TransactionHistory is a ledger row labeled relative to the queried user.
type TransactionHistory struct {
	ID            uint64    `json:"id" db:"id"`
	Hours         float64   `json:"hours" db:"hours"`
	Type          string    `json:"type" db:"type"`
	Direction     string    `json:"direction" db:"direction"`
	OtherUserID   *uint64   `json:"other_user_id" db:"other_user_id"`
	OtherUserName string    `json:"other_user_name" db:"other_user_name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
