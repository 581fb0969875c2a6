package repository

import (
	"context"

	"timebank-service/src/internal/entity"
	"timebank-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type TransactionRepository struct {
	DB mysql.DBInterface
}

func NewTransactionRepository(db mysql.DBInterface) *TransactionRepository {
	return &TransactionRepository{
		DB: db,
	}
}

// Append inserts one immutable ledger row. fromUserID is nil only for
// system-sourced entries. There is no update or delete on this table.
func (r *TransactionRepository) Append(ctx context.Context, ext sqlx.ExtContext, fromUserID *uint64, toUserID uint64, amount float64, txType string) (uint64, error) {
	query := `INSERT INTO transactions (from_user_id, to_user_id, amount, type) VALUES (?, ?, ?, ?)`
	res, err := ext.ExecContext(ctx, query, fromUserID, toUserID, amount, txType)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *TransactionRepository) History(ctx context.Context, userID uint64, limit, offset int) ([]entity.TransactionHistory, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var history []entity.TransactionHistory
	query := `
		SELECT
			t.id,
			t.amount AS hours,
			t.type,
			t.created_at,
			CASE
				WHEN t.from_user_id = ? THEN 'sent'
				ELSE 'received'
			END AS direction,
			CASE
				WHEN t.from_user_id = ? THEN COALESCE(CONCAT(u_to.first_name, ' ', u_to.last_name), '')
				ELSE COALESCE(CONCAT(u_from.first_name, ' ', u_from.last_name), '')
			END AS other_user_name,
			CASE
				WHEN t.from_user_id = ? THEN t.to_user_id
				ELSE t.from_user_id
			END AS other_user_id
		FROM transactions t
		LEFT JOIN users u_from ON t.from_user_id = u_from.id
		LEFT JOIN users u_to ON t.to_user_id = u_to.id
		WHERE t.from_user_id = ? OR t.to_user_id = ?
		ORDER BY t.created_at DESC
		LIMIT ? OFFSET ?
	`

	err = db.SelectContext(ctx, &history, query, userID, userID, userID, userID, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return history, nil
}

func (r *TransactionRepository) CountByUser(ctx context.Context, userID uint64) (int, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	var count int
	query := `SELECT COUNT(*) FROM transactions WHERE from_user_id = ? OR to_user_id = ?`
	err = db.GetContext(ctx, &count, query, userID, userID)
	if err != nil {
		return 0, err
	}
	return count, nil
}
