package usecase

import (
	"context"
	"testing"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	httpError "timebank-service/src/pkg/http-error"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerificationUseCase(t *testing.T) (*VerificationUseCase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	uc := NewVerificationUseCase(
		testLogger(),
		validator.New(),
		db,
		repository.NewUserRepository(db),
		repository.NewWalletRepository(db),
		nil,
	)
	return uc, mock
}

// Approving a pending user opens their wallet at zero in the same
// transaction as the status flip.
func TestVerifyPendingUserOpensWallet(t *testing.T) {
	uc, mock := newVerificationUseCase(t)

	mock.ExpectQuery(`FROM users`).WithArgs(4).WillReturnRows(userRow(4, entity.UserStatusPending, false))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET status = 'verified'`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO wallets`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result := uc.Verify(context.Background(), &model.VerifyUserRequest{UserID: 4, AdminName: "Root Admin"})

	require.NoError(t, result.Error)
	response, ok := result.Data.(model.VerifyUserResponse)
	require.True(t, ok)
	assert.Equal(t, entity.UserStatusVerified, response.User.Status)
	assert.True(t, response.User.Verified)
	assert.Equal(t, 0.0, response.Wallet.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyAlreadyDecidedUserIsConflict(t *testing.T) {
	uc, mock := newVerificationUseCase(t)

	mock.ExpectQuery(`FROM users`).WithArgs(4).WillReturnRows(userRow(4, entity.UserStatusVerified, true))

	result := uc.Verify(context.Background(), &model.VerifyUserRequest{UserID: 4})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 409, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyConcurrentDecisionRollsBack(t *testing.T) {
	uc, mock := newVerificationUseCase(t)

	mock.ExpectQuery(`FROM users`).WithArgs(4).WillReturnRows(userRow(4, entity.UserStatusPending, false))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET status = 'verified'`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	result := uc.Verify(context.Background(), &model.VerifyUserRequest{UserID: 4})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 409, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRejectPendingUserStoresReason(t *testing.T) {
	uc, mock := newVerificationUseCase(t)

	mock.ExpectQuery(`FROM users`).WithArgs(4).WillReturnRows(userRow(4, entity.UserStatusPending, false))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET status = 'rejected'`).
		WithArgs("id mismatch", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result := uc.Reject(context.Background(), &model.RejectUserRequest{UserID: 4, Reason: "id mismatch"})

	require.NoError(t, result.Error)
	response, ok := result.Data.(*model.UserResponse)
	require.True(t, ok)
	assert.Equal(t, entity.UserStatusRejected, response.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
