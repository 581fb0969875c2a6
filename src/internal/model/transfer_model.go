package model

import (
	"time"

	"timebank-service/src/internal/entity"
)

type TransferRequest struct {
	FromUserID uint64  `json:"-" validate:"required"`
	ToUserID   uint64  `json:"to_user_id" validate:"required"`
	Hours      float64 `json:"hours" validate:"required,gt=0"`
}

type TransferResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	NewBalance  float64             `json:"new_balance"`
}

type TransactionResponse struct {
	ID        uint64    `json:"id"`
	Hours     float64   `json:"hours"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type TransferHistoryRequest struct {
	UserID uint64 `json:"-" validate:"required"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `json:"offset" validate:"omitempty,min=0"`
}

type TransferHistoryResponse struct {
	Entries []entity.TransactionHistory `json:"entries"`
	Total   int                         `json:"total"`
	Limit   int                         `json:"limit"`
	Offset  int                         `json:"offset"`
}

type WalletResponse struct {
	UserID  uint64  `json:"user_id"`
	Balance float64 `json:"balance"`
}
