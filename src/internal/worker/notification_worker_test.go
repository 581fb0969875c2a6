package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/gateway/notification"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	"timebank-service/src/pkg/log"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() log.Log {
	v := viper.New()
	v.Set("log.level", "ERROR")
	v.Set("app.name", "timebank-test")
	log.InitLogger(v)
	return log.GetLogger()
}

type stubDB struct {
	db *sqlx.DB
}

func (s *stubDB) GetDB() (*sqlx.DB, error) {
	return s.db, nil
}

type fakeUserFinder struct {
	users  map[uint64]*entity.User
	admins []entity.User
}

func (f *fakeUserFinder) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return user, nil
}

func (f *fakeUserFinder) ListAdmins(ctx context.Context) ([]entity.User, error) {
	return f.admins, nil
}

func newWorker(t *testing.T, users *fakeUserFinder) (*NotificationWorker, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewNotificationRepository(&stubDB{db: sqlx.NewDb(db, "sqlmock")})
	return NewNotificationWorker(testLogger(), users, repo, nil, nil), mock
}

func TestNewRegistrationFansOutToAdmins(t *testing.T) {
	users := &fakeUserFinder{admins: []entity.User{{ID: 100, Email: "admin1@example.com"}, {ID: 101, Email: "admin2@example.com"}}}
	w, mock := newWorker(t, users)

	payload, err := json.Marshal(model.NewUserRegistrationPayload{
		UserID:    7,
		UserName:  "Ana Silva",
		UserEmail: "ana@example.com",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs(100, notification.TypeNewUserRegistration, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs(101, notification.TypeNewUserRegistration, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	task := asynq.NewTask(notification.TypeNewUserRegistration, payload)
	require.NoError(t, w.HandleNewUserRegistration(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The new-application task lands in the employer's inbox, not the
// applicant's.
func TestNewApplicationPersistsForEmployer(t *testing.T) {
	users := &fakeUserFinder{users: map[uint64]*entity.User{1: {ID: 1, Email: "employer@example.com"}}}
	w, mock := newWorker(t, users)

	payload, err := json.Marshal(model.NewApplicationPayload{
		ApplicationID: 5,
		JobID:         9,
		JobTitle:      "Garden help",
		EmployerID:    1,
		ApplicantName: "Ana Silva",
		Timestamp:     time.Now(),
	})
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs(1, notification.TypeNewJobApplication, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	task := asynq.NewTask(notification.TypeNewJobApplication, payload)
	require.NoError(t, w.HandleNewApplication(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMalformedPayloadIsNotRetried(t *testing.T) {
	w, mock := newWorker(t, &fakeUserFinder{})

	task := asynq.NewTask(notification.TypeJobCompletionReward, []byte("{not json"))
	err := w.HandleCompletionReward(context.Background(), task)

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationDecisionPersistsForUser(t *testing.T) {
	users := &fakeUserFinder{users: map[uint64]*entity.User{7: {ID: 7, Email: "ana@example.com"}}}
	w, mock := newWorker(t, users)

	payload, err := json.Marshal(model.VerificationDecisionPayload{
		UserID: 7,
		Status: entity.UserStatusVerified,
	})
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs(7, notification.TypeUserVerificationApproved, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	task := asynq.NewTask(notification.TypeUserVerificationApproved, payload)
	require.NoError(t, w.HandleVerificationDecision(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageFailureIsRetried(t *testing.T) {
	users := &fakeUserFinder{users: map[uint64]*entity.User{7: {ID: 7}}}
	w, mock := newWorker(t, users)

	payload, err := json.Marshal(model.ApplicationStatusPayload{
		ApplicationID: 5,
		Status:        entity.ApplicationStatusAccepted,
		UserID:        7,
		JobTitle:      "Garden help",
	})
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO notifications`).
		WillReturnError(errors.New("connection reset"))

	task := asynq.NewTask(notification.TypeJobApplicationStatusUpdate, payload)
	err = w.HandleApplicationStatus(context.Background(), task)

	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
	assert.NoError(t, mock.ExpectationsWereMet())
}
