package mysql

import (
	"context"
	"fmt"
	"time"

	"timebank-service/src/pkg/log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

type DBInterface interface {
	GetDB() (*sqlx.DB, error)
}

type database struct {
	db *sqlx.DB
}

// buildDSN always sets clientFoundRows so RowsAffected reports matched
// rows. Owner-scoped updates and guards read RowsAffected == 0 as "no
// such row", which breaks on the driver's changed-rows default when an
// update writes values the row already has.
func buildDSN(v *viper.Viper) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=false&clientFoundRows=true",
		v.GetString("database.username"),
		v.GetString("database.password"),
		v.GetString("database.host"),
		v.GetInt("database.port"),
		v.GetString("database.name"),
	)
}

func InitConnection(v *viper.Viper, logger log.Log) (DBInterface, error) {
	dsn := buildDSN(v)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		logger.Error("mysql-init", err.Error(), "connect", "")
		return &database{}, err
	}

	maxOpen := v.GetInt("database.pool.max_open")
	if maxOpen == 0 {
		maxOpen = 20
	}
	maxIdle := v.GetInt("database.pool.max_idle")
	if maxIdle == 0 {
		maxIdle = 5
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &database{db: db}, nil
}

func (d *database) GetDB() (*sqlx.DB, error) {
	if d.db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	return d.db, nil
}

// WithTransaction runs fn inside a transaction and rolls back when fn
// returns an error or panics.
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
