package usecase

import (
	"context"
	"fmt"
	"time"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/gateway/messaging"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/model/converter"
	"timebank-service/src/internal/repository"
	"timebank-service/src/pkg/databases/mysql"
	httpError "timebank-service/src/pkg/http-error"
	"timebank-service/src/pkg/log"
	"timebank-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

const defaultHistoryLimit = 50

type TransferUseCase struct {
	Log                   log.Log
	Validate              *validator.Validate
	DB                    mysql.DBInterface
	UserRepository        *repository.UserRepository
	WalletRepository      *repository.WalletRepository
	TransactionRepository *repository.TransactionRepository
	Config                *viper.Viper
	LedgerProducer        *messaging.LedgerProducer
}

func NewTransferUseCase(
	logger log.Log,
	validate *validator.Validate,
	db mysql.DBInterface,
	userRepository *repository.UserRepository,
	walletRepository *repository.WalletRepository,
	transactionRepository *repository.TransactionRepository,
	cfg *viper.Viper,
	ledgerProducer *messaging.LedgerProducer,
) *TransferUseCase {
	return &TransferUseCase{
		Log:                   logger,
		Validate:              validate,
		DB:                    db,
		UserRepository:        userRepository,
		WalletRepository:      walletRepository,
		TransactionRepository: transactionRepository,
		Config:                cfg,
		LedgerProducer:        ledgerProducer,
	}
}

// Transfer moves hours between two wallets in the same household. The
// debit, credit and ledger append commit in one transaction or not at all.
func (c *TransferUseCase) Transfer(ctx context.Context, request *model.TransferRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("transfer-usecase", err.Error(), "Transfer-validation", utils.ConvertString(request))
		return result
	}

	if request.FromUserID == request.ToUserID {
		errObj := httpError.NewBadRequest()
		errObj.Message = "cannot transfer to yourself"
		result.Error = errObj
		return result
	}

	sameHousehold, err := c.UserRepository.SameHousehold(ctx, request.FromUserID, request.ToUserID)
	if err != nil {
		c.Log.Error("transfer-usecase", err.Error(), "Transfer-SameHousehold", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if !sameHousehold {
		errObj := httpError.NewForbidden()
		errObj.Kind = httpError.KindBusinessRule
		errObj.Message = "transfers are only allowed between household members"
		result.Error = errObj
		c.Log.Error("transfer-usecase", errObj.Message, "Transfer", utils.ConvertString(request))
		return result
	}

	hasWallet, err := c.WalletRepository.Exists(ctx, request.ToUserID)
	if err != nil {
		c.Log.Error("transfer-usecase", err.Error(), "Transfer-Exists", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}
	if !hasWallet {
		errObj := httpError.NewNotFound()
		errObj.Message = "recipient wallet not found"
		result.Error = errObj
		return result
	}

	db, err := c.DB.GetDB()
	if err != nil {
		c.Log.Error("transfer-usecase", err.Error(), "Transfer-GetDB", "")
		result.Error = httpError.NewInternalServerError()
		return result
	}

	var newBalance float64
	var entry entity.Transaction

	txErr := mysql.WithTransaction(ctx, db, func(tx *sqlx.Tx) error {
		balance, err := c.WalletRepository.GetBalance(ctx, tx, request.FromUserID)
		if err != nil {
			errObj := httpError.NewNotFound()
			errObj.Message = "sender wallet not found"
			return errObj
		}

		if balance < request.Hours {
			errObj := httpError.NewUnprocessableEntity()
			errObj.Message = "insufficient hours balance"
			return errObj
		}

		// the conditional update is the real guard against a concurrent
		// debit spending the same balance
		debited, err := c.WalletRepository.Debit(ctx, tx, request.FromUserID, request.Hours)
		if err != nil {
			return err
		}
		if !debited {
			errObj := httpError.NewUnprocessableEntity()
			errObj.Message = "insufficient hours balance"
			return errObj
		}

		credited, err := c.WalletRepository.Credit(ctx, tx, request.ToUserID, request.Hours)
		if err != nil {
			return err
		}
		if !credited {
			errObj := httpError.NewNotFound()
			errObj.Message = "recipient wallet not found"
			return errObj
		}

		fromID := request.FromUserID
		entryID, err := c.TransactionRepository.Append(ctx, tx, &fromID, request.ToUserID, request.Hours, entity.TransactionTypeTransfer)
		if err != nil {
			return err
		}

		newBalance = balance - request.Hours
		entry = entity.Transaction{
			ID:         entryID,
			FromUserID: &fromID,
			ToUserID:   request.ToUserID,
			Amount:     request.Hours,
			Type:       entity.TransactionTypeTransfer,
			CreatedAt:  time.Now(),
		}
		return nil
	})

	if txErr != nil {
		if commonErr, ok := txErr.(*httpError.CommonError); ok {
			result.Error = commonErr
			c.Log.Error("transfer-usecase", commonErr.Message, "Transfer", utils.ConvertString(request))
			return result
		}
		c.Log.Error("transfer-usecase", txErr.Error(), "Transfer-tx", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	if c.LedgerProducer != nil {
		event := &model.TransferEvent{
			EventID:    uuid.NewString(),
			FromUserID: request.FromUserID,
			ToUserID:   request.ToUserID,
			Hours:      request.Hours,
			NewBalance: newBalance,
		}
		if err := c.LedgerProducer.SendTransfer(event); err != nil {
			c.Log.Warn("transfer-usecase", fmt.Sprintf("failed to publish transfer event: %v", err), "Transfer", event.EventID)
		}
	}

	result.Data = model.TransferResponse{
		Transaction: *converter.TransactionToResponse(&entry),
		NewBalance:  newBalance,
	}
	return result
}

func (c *TransferUseCase) GetBalance(ctx context.Context, request *model.GetUserRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	db, err := c.DB.GetDB()
	if err != nil {
		result.Error = httpError.NewInternalServerError()
		return result
	}

	balance, err := c.WalletRepository.GetBalance(ctx, db, request.ID)
	if err != nil {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("wallet for user %d not found", request.ID)
		result.Error = errObj
		c.Log.Error("transfer-usecase", err.Error(), "GetBalance", utils.ConvertString(request))
		return result
	}

	result.Data = model.WalletResponse{
		UserID:  request.ID,
		Balance: balance,
	}
	return result
}

func (c *TransferUseCase) GetHistory(ctx context.Context, request *model.TransferHistoryRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	limit := request.Limit
	if limit == 0 {
		limit = defaultHistoryLimit
	}

	history, err := c.TransactionRepository.History(ctx, request.UserID, limit, request.Offset)
	if err != nil {
		c.Log.Error("transfer-usecase", err.Error(), "GetHistory", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	total, err := c.TransactionRepository.CountByUser(ctx, request.UserID)
	if err != nil {
		c.Log.Error("transfer-usecase", err.Error(), "GetHistory-CountByUser", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = model.TransferHistoryResponse{
		Entries: history,
		Total:   total,
		Limit:   limit,
		Offset:  request.Offset,
	}
	return result
}

func (c *TransferUseCase) GetFamilyMembers(ctx context.Context, request *model.GetUserRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	members, err := c.UserRepository.FamilyMembers(ctx, request.ID)
	if err != nil {
		c.Log.Error("transfer-usecase", err.Error(), "GetFamilyMembers", utils.ConvertString(request))
		result.Error = httpError.NewInternalServerError()
		return result
	}

	result.Data = members
	return result
}
