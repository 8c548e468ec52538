// Package slotlock сериализует конкурентные бронирования одного слота.
//
// Каждая транзакция допуска пишет строку (event_id, start_time) в slot_locks.
// Вторая транзакция на тот же слот ждет блокировку строки до коммита первой,
// а следующие за блокировкой запросы (READ COMMITTED) уже видят новую бронь.
package slotlock

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Acquire берет блокировку слота до конца текущей транзакции
func (r *Repository) Acquire(ctx context.Context, eventID int64, start time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_locks").
		Columns("event_id", "start_time").
		Values(eventID, start.UTC()).
		Suffix("ON CONFLICT (event_id, start_time) DO UPDATE SET locked_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Acquire - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Acquire - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
