package repository

import (
	"context"

	"timebank-service/src/internal/entity"
	"timebank-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type AdminMatchRepository struct {
	DB mysql.DBInterface
}

func NewAdminMatchRepository(db mysql.DBInterface) *AdminMatchRepository {
	return &AdminMatchRepository{
		DB: db,
	}
}

func (r *AdminMatchRepository) Insert(ctx context.Context, ext sqlx.ExtContext, jobID, userID uint64, reason string) (uint64, error) {
	query := `INSERT INTO admin_matches (job_id, user_id, reason) VALUES (?, ?, ?)`
	res, err := ext.ExecContext(ctx, query, jobID, userID, reason)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *AdminMatchRepository) FindDetail(ctx context.Context, matchID uint64) (*entity.AdminMatchDetail, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var match entity.AdminMatchDetail
	query := `
		SELECT am.id, am.job_id, am.user_id, am.reason, am.created_at,
		       j.title AS job_title,
		       j.description AS job_description,
		       j.time_balance_hours,
		       u.email AS user_email,
		       u.first_name AS user_first_name,
		       u.last_name AS user_last_name,
		       u.chat_user_id
		FROM admin_matches am
		JOIN jobs j ON am.job_id = j.id
		JOIN users u ON am.user_id = u.id
		WHERE am.id = ?
		LIMIT 1
	`
	err = db.GetContext(ctx, &match, query, matchID)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *AdminMatchRepository) List(ctx context.Context) ([]entity.AdminMatchDetail, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var matches []entity.AdminMatchDetail
	query := `
		SELECT am.id, am.job_id, am.user_id, am.reason, am.created_at,
		       j.title AS job_title,
		       j.description AS job_description,
		       j.time_balance_hours,
		       u.email AS user_email,
		       u.first_name AS user_first_name,
		       u.last_name AS user_last_name,
		       u.chat_user_id
		FROM admin_matches am
		JOIN jobs j ON am.job_id = j.id
		JOIN users u ON am.user_id = u.id
		ORDER BY am.created_at DESC
	`
	err = db.SelectContext(ctx, &matches, query)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *AdminMatchRepository) Delete(ctx context.Context, matchID uint64) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `DELETE FROM admin_matches WHERE id = ?`
	res, err := db.ExecContext(ctx, query, matchID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
