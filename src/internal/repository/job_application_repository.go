package repository

import (
	"context"

	"timebank-service/src/internal/entity"
	"timebank-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type JobApplicationRepository struct {
	DB mysql.DBInterface
}

func NewJobApplicationRepository(db mysql.DBInterface) *JobApplicationRepository {
	return &JobApplicationRepository{
		DB: db,
	}
}

func (r *JobApplicationRepository) Exists(ctx context.Context, ext sqlx.ExtContext, jobID, userID uint64) (bool, error) {
	var id uint64
	query := `SELECT id FROM job_applications WHERE job_id = ? AND user_id = ? LIMIT 1`
	err := sqlx.GetContext(ctx, ext, &id, query, jobID, userID)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *JobApplicationRepository) FindByJobAndUser(ctx context.Context, jobID, userID uint64) (*entity.JobApplication, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var app entity.JobApplication
	query := `SELECT id, job_id, user_id, status, applied_at FROM job_applications WHERE job_id = ? AND user_id = ? LIMIT 1`
	err = db.GetContext(ctx, &app, query, jobID, userID)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// CountAcceptedByUser locks the user's accepted applications so a
// concurrent apply inside another transaction waits for this one.
func (r *JobApplicationRepository) CountAcceptedByUser(ctx context.Context, ext sqlx.ExtContext, userID uint64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM job_applications WHERE user_id = ? AND status = 'accepted' FOR UPDATE`
	err := sqlx.GetContext(ctx, ext, &count, query, userID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *JobApplicationRepository) Insert(ctx context.Context, ext sqlx.ExtContext, jobID, userID uint64, status string) (uint64, error) {
	query := `INSERT INTO job_applications (job_id, user_id, status) VALUES (?, ?, ?)`
	res, err := ext.ExecContext(ctx, query, jobID, userID, status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// InsertIgnore relies on the (job_id, user_id) unique key, so creating the
// same application twice is a no-op instead of an error.
func (r *JobApplicationRepository) InsertIgnore(ctx context.Context, ext sqlx.ExtContext, jobID, userID uint64, status string) (bool, error) {
	query := `INSERT IGNORE INTO job_applications (job_id, user_id, status) VALUES (?, ?, ?)`
	res, err := ext.ExecContext(ctx, query, jobID, userID, status)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// FindWithJobForEmployer resolves an application only when its job belongs
// to the acting employer, locking the row for the transition.
func (r *JobApplicationRepository) FindWithJobForEmployer(ctx context.Context, ext sqlx.ExtContext, applicationID, employerID uint64) (*entity.ApplicationWithJob, error) {
	var app entity.ApplicationWithJob
	query := `
		SELECT ja.id, ja.job_id, ja.user_id, ja.status,
		       j.creator_user_id AS job_creator_id,
		       j.title AS job_title,
		       j.time_balance_hours
		FROM job_applications ja
		JOIN jobs j ON ja.job_id = j.id
		WHERE ja.id = ? AND j.creator_user_id = ?
		LIMIT 1
		FOR UPDATE
	`
	err := sqlx.GetContext(ctx, ext, &app, query, applicationID, employerID)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatusGuarded only moves id from its expected current status, so a
// concurrent transition loses instead of double-applying.
func (r *JobApplicationRepository) UpdateStatusGuarded(ctx context.Context, ext sqlx.ExtContext, applicationID uint64, fromStatus, toStatus string) (bool, error) {
	query := `UPDATE job_applications SET status = ? WHERE id = ? AND status = ?`
	res, err := ext.ExecContext(ctx, query, toStatus, applicationID, fromStatus)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *JobApplicationRepository) ListByUser(ctx context.Context, userID uint64) ([]entity.ApplicationDetail, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var applications []entity.ApplicationDetail
	query := `
		SELECT ja.id, ja.status, ja.applied_at,
		       j.id AS job_id,
		       j.title,
		       j.description,
		       j.time_balance_hours,
		       CONCAT(u.first_name, ' ', u.last_name) AS employer_name,
		       u.email AS employer_email,
		       u.phone AS employer_phone
		FROM job_applications ja
		JOIN jobs j ON ja.job_id = j.id
		JOIN users u ON j.creator_user_id = u.id
		WHERE ja.user_id = ?
		ORDER BY ja.applied_at DESC
	`
	err = db.SelectContext(ctx, &applications, query, userID)
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *JobApplicationRepository) ListByJob(ctx context.Context, jobID uint64) ([]entity.Applicant, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var applicants []entity.Applicant
	query := `
		SELECT ja.id AS application_id, ja.status, ja.applied_at,
		       u.id AS user_id, u.email, u.first_name, u.last_name
		FROM job_applications ja
		JOIN users u ON ja.user_id = u.id
		WHERE ja.job_id = ?
		ORDER BY ja.applied_at DESC
	`
	err = db.SelectContext(ctx, &applicants, query, jobID)
	if err != nil {
		return nil, err
	}
	return applicants, nil
}
