package repository

import (
	"context"

	"timebank-service/src/internal/entity"
	"timebank-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

type JobRepository struct {
	DB mysql.DBInterface
}

func NewJobRepository(db mysql.DBInterface) *JobRepository {
	return &JobRepository{
		DB: db,
	}
}

func (r *JobRepository) Create(ctx context.Context, job *entity.Job) (uint64, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO jobs (creator_user_id, title, description, required_skills,
		                  location_lat, location_lon, time_balance_hours, start_time, end_time, broadcasted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, false)
	`
	res, err := db.ExecContext(ctx, query,
		job.CreatorUserID, job.Title, job.Description, job.RequiredSkills,
		job.LocationLat, job.LocationLon, job.TimeBalanceHours, job.StartTime, job.EndTime,
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

func (r *JobRepository) FindByID(ctx context.Context, id uint64) (*entity.Job, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var job entity.Job
	query := `
		SELECT id, creator_user_id, title, description, required_skills,
		       location_lat, location_lon, time_balance_hours, start_time, end_time, broadcasted, created_at
		FROM jobs
		WHERE id = ?
		LIMIT 1
	`
	err = db.GetContext(ctx, &job, query, id)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) FindByIDWithCreator(ctx context.Context, id uint64) (*entity.JobWithCreator, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var job entity.JobWithCreator
	query := `
		SELECT j.id, j.creator_user_id, j.title, j.description, j.required_skills,
		       j.location_lat, j.location_lon, j.time_balance_hours, j.start_time, j.end_time,
		       j.broadcasted, j.created_at,
		       u.first_name AS creator_first_name,
		       u.last_name AS creator_last_name,
		       u.email AS creator_email
		FROM jobs j
		JOIN users u ON j.creator_user_id = u.id
		WHERE j.id = ?
		LIMIT 1
	`
	err = db.GetContext(ctx, &job, query, id)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListBroadcasted returns only publicly visible jobs, newest first.
func (r *JobRepository) ListBroadcasted(ctx context.Context, limit, offset int) ([]entity.JobWithCreator, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var jobs []entity.JobWithCreator
	query := `
		SELECT j.id, j.creator_user_id, j.title, j.description, j.required_skills,
		       j.location_lat, j.location_lon, j.time_balance_hours, j.start_time, j.end_time,
		       j.broadcasted, j.created_at,
		       u.first_name AS creator_first_name,
		       u.last_name AS creator_last_name,
		       u.email AS creator_email
		FROM jobs j
		JOIN users u ON j.creator_user_id = u.id
		WHERE j.broadcasted = true
		ORDER BY j.created_at DESC
		LIMIT ? OFFSET ?
	`
	err = db.SelectContext(ctx, &jobs, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) ListByCreator(ctx context.Context, creatorUserID uint64) ([]entity.JobWithApplicationCount, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var jobs []entity.JobWithApplicationCount
	query := `
		SELECT j.id, j.creator_user_id, j.title, j.description, j.required_skills,
		       j.location_lat, j.location_lon, j.time_balance_hours, j.start_time, j.end_time,
		       j.broadcasted, j.created_at,
		       COUNT(ja.id) AS application_count
		FROM jobs j
		LEFT JOIN job_applications ja ON j.id = ja.job_id
		WHERE j.creator_user_id = ?
		GROUP BY j.id
		ORDER BY j.created_at DESC
	`
	err = db.SelectContext(ctx, &jobs, query, creatorUserID)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update is owner-scoped; ok=false means no row belongs to that creator.
func (r *JobRepository) Update(ctx context.Context, job *entity.Job) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `
		UPDATE jobs
		SET title = ?, description = ?, required_skills = ?,
		    location_lat = ?, location_lon = ?, time_balance_hours = ?
		WHERE id = ? AND creator_user_id = ?
	`
	res, err := db.ExecContext(ctx, query,
		job.Title, job.Description, job.RequiredSkills,
		job.LocationLat, job.LocationLon, job.TimeBalanceHours,
		job.ID, job.CreatorUserID,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *JobRepository) Delete(ctx context.Context, jobID, creatorUserID uint64) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `DELETE FROM jobs WHERE id = ? AND creator_user_id = ?`
	res, err := db.ExecContext(ctx, query, jobID, creatorUserID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *JobRepository) Broadcast(ctx context.Context, jobID, creatorUserID uint64) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	query := `UPDATE jobs SET broadcasted = true WHERE id = ? AND creator_user_id = ?`
	res, err := db.ExecContext(ctx, query, jobID, creatorUserID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// SetBroadcasted is the admin path, not owner-scoped, and joins whatever
// transaction the caller is holding.
func (r *JobRepository) SetBroadcasted(ctx context.Context, ext sqlx.ExtContext, jobID uint64, broadcasted bool) error {
	query := `UPDATE jobs SET broadcasted = ? WHERE id = ?`
	_, err := ext.ExecContext(ctx, query, broadcasted, jobID)
	return err
}
