package usecase

import (
	"context"
	"testing"

	"timebank-service/src/internal/gateway/registry"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	httpError "timebank-service/src/pkg/http-error"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	citizen *registry.Citizen
	err     error
}

func (f *fakeRegistry) FindCitizenByNationalID(ctx context.Context, nationalID string) (*registry.Citizen, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.citizen, nil
}

type fakeDispatcher struct {
	tasks    []string
	payloads []interface{}
}

func (f *fakeDispatcher) Enqueue(ctx context.Context, taskType string, payload interface{}) error {
	f.tasks = append(f.tasks, taskType)
	f.payloads = append(f.payloads, payload)
	return nil
}

func newUserUseCase(t *testing.T, reg registry.CitizenRegistry, dispatcher *fakeDispatcher) (*UserUseCase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	uc := NewUserUseCase(
		testLogger(),
		validator.New(),
		db,
		repository.NewUserRepository(db),
		repository.NewSkillRepository(db),
		reg,
		dispatcher,
	)
	return uc, mock
}

func registerRequest() *model.RegisterUserRequest {
	return &model.RegisterUserRequest{
		FirstName:  "Ana",
		LastName:   "Silva",
		Email:      "ana@example.com",
		Phone:      "5551234",
		NationalID: "1234567890121",
		Password:   "sup3r-secret",
	}
}

func TestRegisterCreatesPendingUser(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	reg := &fakeRegistry{citizen: &registry.Citizen{
		NationalID: "1234567890121",
		FirstName:  "Ana",
		LastName:   "Silva",
		FamilyID:   "fam-42",
	}}
	uc, mock := newUserUseCase(t, reg, dispatcher)

	mock.ExpectQuery(`SELECT id FROM users WHERE email`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT id FROM users WHERE phone`).
		WithArgs("5551234").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT id FROM users WHERE national_id`).
		WithArgs("1234567890121").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("Ana", "Silva", "ana@example.com", "5551234", "1234567890121", sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec(`INSERT INTO user_profiles`).
		WithArgs(10, nil, nil, "fam-42").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result := uc.Register(context.Background(), registerRequest())

	require.NoError(t, result.Error)
	response, ok := result.Data.(*model.UserResponse)
	require.True(t, ok)
	assert.Equal(t, uint64(10), response.ID)
	assert.Equal(t, "pending", response.Status)
	assert.False(t, response.Verified)
	assert.Equal(t, []string{"notification:new_user_registration"}, dispatcher.tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsBadChecksum(t *testing.T) {
	uc, mock := newUserUseCase(t, &fakeRegistry{}, nil)

	request := registerRequest()
	request.NationalID = "1234567890129"

	result := uc.Register(context.Background(), request)

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 400, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	uc, mock := newUserUseCase(t, &fakeRegistry{}, nil)

	mock.ExpectQuery(`SELECT id FROM users WHERE email`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	result := uc.Register(context.Background(), registerRequest())

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 409, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUnknownCitizenIsRejected(t *testing.T) {
	uc, mock := newUserUseCase(t, &fakeRegistry{err: registry.ErrCitizenNotFound}, nil)

	mock.ExpectQuery(`SELECT id FROM users WHERE email`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT id FROM users WHERE phone`).
		WithArgs("5551234").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT id FROM users WHERE national_id`).
		WithArgs("1234567890121").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result := uc.Register(context.Background(), registerRequest())

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 422, commonErr.Code)
	assert.Equal(t, httpError.KindBusinessRule, commonErr.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
