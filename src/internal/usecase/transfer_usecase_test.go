package usecase

import (
	"context"
	"testing"
	"time"

	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	httpError "timebank-service/src/pkg/http-error"
	"timebank-service/src/pkg/log"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
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

func newMockDB(t *testing.T) (*stubDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &stubDB{db: sqlx.NewDb(db, "sqlmock")}, mock
}

func newTransferUseCase(t *testing.T) (*TransferUseCase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	uc := NewTransferUseCase(
		testLogger(),
		validator.New(),
		db,
		repository.NewUserRepository(db),
		repository.NewWalletRepository(db),
		repository.NewTransactionRepository(db),
		viper.New(),
		nil,
	)
	return uc, mock
}

func TestTransferBetweenHouseholdMembers(t *testing.T) {
	uc, mock := newTransferUseCase(t)

	mock.ExpectQuery(`SELECT up1\.household`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"household"}).AddRow("fam-42"))
	mock.ExpectQuery(`SELECT user_id FROM wallets`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(2))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance FROM wallets`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(10.0))
	mock.ExpectExec(`UPDATE wallets SET balance = balance - \?`).
		WithArgs(4.0, 1, 4.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE wallets SET balance = balance \+ \?`).
		WithArgs(4.0, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(1, 2, 4.0, "transfer").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectCommit()

	result := uc.Transfer(context.Background(), &model.TransferRequest{
		FromUserID: 1,
		ToUserID:   2,
		Hours:      4,
	})

	require.NoError(t, result.Error)
	response, ok := result.Data.(model.TransferResponse)
	require.True(t, ok)
	assert.Equal(t, uint64(77), response.Transaction.ID)
	assert.Equal(t, 4.0, response.Transaction.Hours)
	assert.Equal(t, 6.0, response.NewBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferToSelfIsRejected(t *testing.T) {
	uc, mock := newTransferUseCase(t)

	result := uc.Transfer(context.Background(), &model.TransferRequest{
		FromUserID: 1,
		ToUserID:   1,
		Hours:      2,
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 400, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferOutsideHouseholdIsForbidden(t *testing.T) {
	uc, mock := newTransferUseCase(t)

	mock.ExpectQuery(`SELECT up1\.household`).
		WithArgs(1, 9).
		WillReturnRows(sqlmock.NewRows([]string{"household"}))

	result := uc.Transfer(context.Background(), &model.TransferRequest{
		FromUserID: 1,
		ToUserID:   9,
		Hours:      2,
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 403, commonErr.Code)
	assert.Equal(t, httpError.KindBusinessRule, commonErr.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferInsufficientBalanceRollsBack(t *testing.T) {
	uc, mock := newTransferUseCase(t)

	mock.ExpectQuery(`SELECT up1\.household`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"household"}).AddRow("fam-42"))
	mock.ExpectQuery(`SELECT user_id FROM wallets`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(2))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance FROM wallets`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(1.5))
	mock.ExpectRollback()

	result := uc.Transfer(context.Background(), &model.TransferRequest{
		FromUserID: 1,
		ToUserID:   2,
		Hours:      4,
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 422, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A concurrent debit can drain the wallet between the balance read and the
// conditional update; the zero-row update must abort the transfer.
func TestTransferDebitGuardLosesRace(t *testing.T) {
	uc, mock := newTransferUseCase(t)

	mock.ExpectQuery(`SELECT up1\.household`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"household"}).AddRow("fam-42"))
	mock.ExpectQuery(`SELECT user_id FROM wallets`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(2))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance FROM wallets`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(10.0))
	mock.ExpectExec(`UPDATE wallets SET balance = balance - \?`).
		WithArgs(4.0, 1, 4.0).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	result := uc.Transfer(context.Background(), &model.TransferRequest{
		FromUserID: 1,
		ToUserID:   2,
		Hours:      4,
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 422, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferToMissingWalletIsNotFound(t *testing.T) {
	uc, mock := newTransferUseCase(t)

	mock.ExpectQuery(`SELECT up1\.household`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"household"}).AddRow("fam-42"))
	mock.ExpectQuery(`SELECT user_id FROM wallets`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	result := uc.Transfer(context.Background(), &model.TransferRequest{
		FromUserID: 1,
		ToUserID:   2,
		Hours:      4,
	})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 404, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHistoryReturnsTotalCount(t *testing.T) {
	uc, mock := newTransferUseCase(t)

	mock.ExpectQuery(`FROM transactions t`).
		WithArgs(3, 3, 3, 3, 3, 2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hours", "type", "created_at", "direction", "other_user_name", "other_user_id"}).
			AddRow(21, 4.0, "transfer", time.Now(), "sent", "Ana Silva", 2).
			AddRow(20, 3.0, "job_completion", time.Now(), "received", "Bo Chen", 5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM transactions`).
		WithArgs(3, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	result := uc.GetHistory(context.Background(), &model.TransferHistoryRequest{
		UserID: 3,
		Limit:  2,
	})

	require.NoError(t, result.Error)
	history, ok := result.Data.(model.TransferHistoryResponse)
	require.True(t, ok)
	assert.Len(t, history.Entries, 2)
	assert.Equal(t, 9, history.Total)
	assert.Equal(t, 2, history.Limit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBalance(t *testing.T) {
	uc, mock := newTransferUseCase(t)

	mock.ExpectQuery(`SELECT balance FROM wallets`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(7.5))

	result := uc.GetBalance(context.Background(), &model.GetUserRequest{ID: 3})

	require.NoError(t, result.Error)
	wallet, ok := result.Data.(model.WalletResponse)
	require.True(t, ok)
	assert.Equal(t, 7.5, wallet.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
