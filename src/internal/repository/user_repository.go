package repository

import (
	"context"
	"database/sql"

	"timebank-service/src/internal/entity"
	"timebank-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	DB mysql.DBInterface
}

func NewUserRepository(db mysql.DBInterface) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var user entity.User
	query := `
		SELECT id, first_name, last_name, email, phone, national_id, password_hash,
		       role, status, verified, rejection_reason, chat_user_id, dob, created_at
		FROM users
		WHERE id = ?
		LIMIT 1
	`
	err = db.GetContext(ctx, &user, query, id)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT id FROM users WHERE email = ? LIMIT 1`, email)
}

func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, `SELECT id FROM users WHERE phone = ? LIMIT 1`, phone)
}

func (r *UserRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	return r.exists(ctx, `SELECT id FROM users WHERE national_id = ? LIMIT 1`, nationalID)
}

func (r *UserRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	var id uint64
	err = db.GetContext(ctx, &id, query, arg)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *UserRepository) Create(ctx context.Context, ext sqlx.ExtContext, user *entity.User) (uint64, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, phone, national_id, password_hash, role, status, verified, dob)
		VALUES (?, ?, ?, ?, ?, ?, 'member', 'pending', false, ?)
	`
	res, err := ext.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.Phone,
		user.NationalID, user.PasswordHash, user.DOB,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *UserRepository) CreateProfile(ctx context.Context, ext sqlx.ExtContext, profile *entity.UserProfile) error {
	query := `INSERT INTO user_profiles (user_id, lat, lon, household) VALUES (?, ?, ?, ?)`
	_, err := ext.ExecContext(ctx, query, profile.UserID, profile.Lat, profile.Lon, profile.Household)
	return err
}

// Verify flips a pending user to verified. ok=false means the user was not
// pending anymore (or does not exist), the decision guard for double review.
func (r *UserRepository) Verify(ctx context.Context, ext sqlx.ExtContext, userID uint64) (bool, error) {
	query := `UPDATE users SET status = 'verified', verified = true WHERE id = ? AND status = 'pending'`
	res, err := ext.ExecContext(ctx, query, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *UserRepository) Reject(ctx context.Context, ext sqlx.ExtContext, userID uint64, reason sql.NullString) (bool, error) {
	query := `UPDATE users SET status = 'rejected', verified = false, rejection_reason = ? WHERE id = ? AND status = 'pending'`
	res, err := ext.ExecContext(ctx, query, reason, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *UserRepository) ListUnverified(ctx context.Context) ([]entity.User, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var users []entity.User
	query := `
		SELECT id, first_name, last_name, email, phone, national_id, password_hash,
		       role, status, verified, rejection_reason, chat_user_id, dob, created_at
		FROM users
		WHERE status = 'pending'
		ORDER BY created_at DESC
	`
	err = db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListAdmins(ctx context.Context) ([]entity.User, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var admins []entity.User
	query := `
		SELECT id, first_name, last_name, email, phone, national_id, password_hash,
		       role, status, verified, rejection_reason, chat_user_id, dob, created_at
		FROM users
		WHERE role = 'admin'
	`
	err = db.SelectContext(ctx, &admins, query)
	if err != nil {
		return nil, err
	}
	return admins, nil
}

// SameHousehold reports whether both users share a non-null household.
func (r *UserRepository) SameHousehold(ctx context.Context, fromUserID, toUserID uint64) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	var household string
	query := `
		SELECT up1.household
		FROM user_profiles up1
		JOIN user_profiles up2 ON up1.household = up2.household
		WHERE up1.user_id = ? AND up2.user_id = ?
		LIMIT 1
	`
	err = db.GetContext(ctx, &household, query, fromUserID, toUserID)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *UserRepository) FamilyMembers(ctx context.Context, userID uint64) ([]entity.FamilyMember, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var members []entity.FamilyMember
	query := `
		SELECT u.id, u.first_name, u.last_name, u.email, up.household, w.balance
		FROM users u
		JOIN user_profiles up ON u.id = up.user_id
		LEFT JOIN wallets w ON u.id = w.user_id
		WHERE up.household = (SELECT household FROM user_profiles WHERE user_id = ?)
		  AND u.id != ?
		  AND u.status = 'verified'
		ORDER BY u.first_name, u.last_name
	`
	err = db.SelectContext(ctx, &members, query, userID, userID)
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *UserRepository) Household(ctx context.Context, userID uint64) (sql.NullString, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return sql.NullString{}, err
	}

	var household sql.NullString
	query := `SELECT household FROM user_profiles WHERE user_id = ? LIMIT 1`
	err = db.GetContext(ctx, &household, query, userID)
	if err != nil {
		if isNoRows(err) {
			return sql.NullString{}, nil
		}
		return sql.NullString{}, err
	}
	return household, nil
}
