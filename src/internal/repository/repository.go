package repository

import (
	"context"
	"database/sql"
	"errors"

	"timebank-service/src/internal/entity"
)

// UserFinder is what the notification worker needs from the user store.
type UserFinder interface {
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
	ListAdmins(ctx context.Context) ([]entity.User, error)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
