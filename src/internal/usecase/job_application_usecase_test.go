package usecase

import (
	"context"
	"testing"
	"time"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/gateway/notification"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	httpError "timebank-service/src/pkg/http-error"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobApplicationUseCase(t *testing.T) (*JobApplicationUseCase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	uc := NewJobApplicationUseCase(
		testLogger(),
		validator.New(),
		db,
		repository.NewUserRepository(db),
		repository.NewJobRepository(db),
		repository.NewJobApplicationRepository(db),
		repository.NewWalletRepository(db),
		repository.NewTransactionRepository(db),
		viper.New(),
		nil,
		nil,
		nil,
	)
	return uc, mock
}

func userRow(id uint64, status string, verified bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "phone", "national_id", "password_hash",
		"role", "status", "verified", "rejection_reason", "chat_user_id", "dob", "created_at",
	}).AddRow(id, "Ana", "Silva", "ana@example.com", "5551234", "1234567890121", "x",
		"member", status, verified, nil, nil, nil, time.Now())
}

func jobRow(id, creatorID uint64, hours float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "creator_user_id", "title", "description", "required_skills",
		"location_lat", "location_lon", "time_balance_hours", "start_time", "end_time", "broadcasted", "created_at",
	}).AddRow(id, creatorID, "Garden help", "Weeding and watering", nil,
		nil, nil, hours, nil, nil, true, time.Now())
}

func TestApplyCreatesApplication(t *testing.T) {
	uc, mock := newJobApplicationUseCase(t)
	dispatcher := &fakeDispatcher{}
	uc.Dispatcher = dispatcher

	mock.ExpectQuery(`FROM users`).WithArgs(2).WillReturnRows(userRow(2, entity.UserStatusVerified, true))
	mock.ExpectQuery(`FROM jobs`).WithArgs(9).WillReturnRows(jobRow(9, 1, 3))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM job_applications`).
		WithArgs(9, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_applications`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO job_applications`).
		WithArgs(9, 2, "applied").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	result := uc.Apply(context.Background(), &model.ApplyRequest{JobID: 9, UserID: 2})

	require.NoError(t, result.Error)
	response, ok := result.Data.(model.ApplyResponse)
	require.True(t, ok)
	assert.Equal(t, uint64(5), response.ApplicationID)
	assert.Equal(t, entity.ApplicationStatusApplied, response.Status)

	// both sides hear about the application: confirmation to the
	// applicant, a creator-addressed alert to the job owner
	require.Equal(t, []string{
		notification.TypeJobApplicationStatusUpdate,
		notification.TypeNewJobApplication,
	}, dispatcher.tasks)
	creatorPayload, ok := dispatcher.payloads[1].(model.NewApplicationPayload)
	require.True(t, ok)
	assert.Equal(t, uint64(1), creatorPayload.EmployerID)
	assert.Equal(t, "Ana Silva", creatorPayload.ApplicantName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyRequiresVerifiedUser(t *testing.T) {
	uc, mock := newJobApplicationUseCase(t)

	mock.ExpectQuery(`FROM users`).WithArgs(2).WillReturnRows(userRow(2, entity.UserStatusPending, false))

	result := uc.Apply(context.Background(), &model.ApplyRequest{JobID: 9, UserID: 2})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 403, commonErr.Code)
	assert.Equal(t, httpError.KindBusinessRule, commonErr.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTwiceIsConflict(t *testing.T) {
	uc, mock := newJobApplicationUseCase(t)

	mock.ExpectQuery(`FROM users`).WithArgs(2).WillReturnRows(userRow(2, entity.UserStatusVerified, true))
	mock.ExpectQuery(`FROM jobs`).WithArgs(9).WillReturnRows(jobRow(9, 1, 3))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM job_applications`).
		WithArgs(9, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectRollback()

	result := uc.Apply(context.Background(), &model.ApplyRequest{JobID: 9, UserID: 2})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 409, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyBlockedByActiveJob(t *testing.T) {
	uc, mock := newJobApplicationUseCase(t)

	mock.ExpectQuery(`FROM users`).WithArgs(2).WillReturnRows(userRow(2, entity.UserStatusVerified, true))
	mock.ExpectQuery(`FROM jobs`).WithArgs(9).WillReturnRows(jobRow(9, 1, 3))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM job_applications`).
		WithArgs(9, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_applications`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	result := uc.Apply(context.Background(), &model.ApplyRequest{JobID: 9, UserID: 2})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 409, commonErr.Code)
	assert.Equal(t, httpError.KindBusinessRule, commonErr.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func applicationWithJobRow(id, jobID, userID uint64, status string, creatorID uint64, hours float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "job_id", "user_id", "status", "job_creator_id", "job_title", "time_balance_hours",
	}).AddRow(id, jobID, userID, status, creatorID, "Garden help", hours)
}

// Completing an accepted application credits the worker and appends one
// job_completion ledger row with the employer as source, all in one
// transaction.
func TestCompleteApplicationSettlesReward(t *testing.T) {
	uc, mock := newJobApplicationUseCase(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM job_applications ja`).
		WithArgs(5, 1).
		WillReturnRows(applicationWithJobRow(5, 9, 2, entity.ApplicationStatusAccepted, 1, 3))
	mock.ExpectExec(`UPDATE job_applications SET status = \?`).
		WithArgs("complete", 5, "accepted").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE wallets SET balance = balance \+ \?`).
		WithArgs(3.0, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(1, 2, 3.0, "job_completion").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	result := uc.UpdateStatus(context.Background(), &model.UpdateApplicationStatusRequest{
		ApplicationID: 5,
		Status:        entity.ApplicationStatusComplete,
		EmployerID:    1,
	})

	require.NoError(t, result.Error)
	response, ok := result.Data.(model.UpdateApplicationStatusResponse)
	require.True(t, ok)
	assert.Equal(t, entity.ApplicationStatusComplete, response.Status)
	assert.Equal(t, 3.0, response.RewardHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteTerminalApplicationIsConflict(t *testing.T) {
	uc, mock := newJobApplicationUseCase(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM job_applications ja`).
		WithArgs(5, 1).
		WillReturnRows(applicationWithJobRow(5, 9, 2, entity.ApplicationStatusComplete, 1, 3))
	mock.ExpectRollback()

	result := uc.UpdateStatus(context.Background(), &model.UpdateApplicationStatusRequest{
		ApplicationID: 5,
		Status:        entity.ApplicationStatusComplete,
		EmployerID:    1,
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 409, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A worker accepted on one job cannot be accepted on a second one, even
// by a different employer.
func TestAcceptWhileWorkerOnActiveJobIsConflict(t *testing.T) {
	uc, mock := newJobApplicationUseCase(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM job_applications ja`).
		WithArgs(5, 1).
		WillReturnRows(applicationWithJobRow(5, 9, 2, entity.ApplicationStatusApplied, 1, 3))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_applications`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	result := uc.UpdateStatus(context.Background(), &model.UpdateApplicationStatusRequest{
		ApplicationID: 5,
		Status:        entity.ApplicationStatusAccepted,
		EmployerID:    1,
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 409, commonErr.Code)
	assert.Equal(t, httpError.KindBusinessRule, commonErr.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusByNonCreatorIsForbidden(t *testing.T) {
	uc, mock := newJobApplicationUseCase(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM job_applications ja`).
		WithArgs(5, 8).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	result := uc.UpdateStatus(context.Background(), &model.UpdateApplicationStatusRequest{
		ApplicationID: 5,
		Status:        entity.ApplicationStatusAccepted,
		EmployerID:    8,
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 403, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusConcurrentTransitionLoses(t *testing.T) {
	uc, mock := newJobApplicationUseCase(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM job_applications ja`).
		WithArgs(5, 1).
		WillReturnRows(applicationWithJobRow(5, 9, 2, entity.ApplicationStatusApplied, 1, 3))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM job_applications`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE job_applications SET status = \?`).
		WithArgs("accepted", 5, "applied").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	result := uc.UpdateStatus(context.Background(), &model.UpdateApplicationStatusRequest{
		ApplicationID: 5,
		Status:        entity.ApplicationStatusAccepted,
		EmployerID:    1,
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 409, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
