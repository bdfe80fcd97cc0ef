package repository

import (
	"database/sql"
	"errors"

	"github.com/hirepipe/hirepipe/internal/logger"
)

// rollbackOnErr rolls the transaction back when *err is non-nil on the way
// out. Meant for deferred use alongside an explicit Commit.
func rollbackOnErr(tx *sql.Tx, err *error, log logger.Logger) {
	if *err == nil {
		return
	}
	if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
		log.Error("failed to rollback transaction", logger.Error(rbErr))
	}
}
