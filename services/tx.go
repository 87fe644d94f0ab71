package services

import (
	"context"
	"database/sql"

	"github.com/Dosada05/cricket-system/repositories"
)

// dbTx — транзакция глазами сервисного слоя: executor для репозиторных
// методов плюс управление жизненным циклом. *sql.Tx её реализует.
type dbTx interface {
	repositories.SQLExecutor
	Commit() error
	Rollback() error
}

// txStarter открывает транзакции для многошаговых операций сервисов.
type txStarter interface {
	BeginTx(ctx context.Context) (dbTx, error)
}

type sqlTxStarter struct {
	db *sql.DB
}

func (s sqlTxStarter) BeginTx(ctx context.Context) (dbTx, error) {
	return s.db.BeginTx(ctx, nil)
}
