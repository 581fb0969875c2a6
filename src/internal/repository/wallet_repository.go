package repository

import (
	"context"

	"timebank-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type WalletRepository struct {
	DB mysql.DBInterface
}

func NewWalletRepository(db mysql.DBInterface) *WalletRepository {
	return &WalletRepository{
		DB: db,
	}
}

func (r *WalletRepository) Create(ctx context.Context, ext sqlx.ExtContext, userID uint64) error {
	query := `INSERT INTO wallets (user_id, balance) VALUES (?, 0)`
	_, err := ext.ExecContext(ctx, query, userID)
	return err
}

func (r *WalletRepository) GetBalance(ctx context.Context, ext sqlx.ExtContext, userID uint64) (float64, error) {
	var balance float64
	query := `SELECT balance FROM wallets WHERE user_id = ? LIMIT 1`
	err := sqlx.GetContext(ctx, ext, &balance, query, userID)
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Credit adds amount to the wallet. The caller owns the transaction.
func (r *WalletRepository) Credit(ctx context.Context, ext sqlx.ExtContext, userID uint64, amount float64) (bool, error) {
	query := `UPDATE wallets SET balance = balance + ?, updated_at = NOW() WHERE user_id = ?`
	res, err := ext.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// Debit subtracts amount with a conditional update. ok=false means the
// balance guard did not match, so concurrent debits cannot overdraw.
func (r *WalletRepository) Debit(ctx context.Context, ext sqlx.ExtContext, userID uint64, amount float64) (bool, error) {
	query := `UPDATE wallets SET balance = balance - ?, updated_at = NOW() WHERE user_id = ? AND balance >= ?`
	res, err := ext.ExecContext(ctx, query, amount, userID, amount)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *WalletRepository) Exists(ctx context.Context, userID uint64) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	var found uint64
	query := `SELECT user_id FROM wallets WHERE user_id = ? LIMIT 1`
	err = db.GetContext(ctx, &found, query, userID)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
