package converter

import (
	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/model"
)

func TransactionToResponse(tx *entity.Transaction) *model.TransactionResponse {
	return &model.TransactionResponse{
		ID:        tx.ID,
		Hours:     tx.Amount,
		Type:      tx.Type,
		CreatedAt: tx.CreatedAt,
	}
}
