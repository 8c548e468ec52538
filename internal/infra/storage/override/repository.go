package override

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"event_id",
	"date",
	"is_unavailable",
	"override_config_json",
	"location",
	"override_max_participants",
	"created_at",
	"updated_at",
}

// Repository репозиторий override'ов расписания по датам
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или заменяет override события на дату
func (r *Repository) Upsert(ctx context.Context, o *domain.Override) (*domain.Override, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_overrides").
		Columns("event_id", "date", "is_unavailable", "override_config_json", "location", "override_max_participants").
		Values(o.EventID, o.Date.Format(domain.DateFormat), o.IsUnavailable, o.Config, o.Location, o.MaxParticipants).
		Suffix(`ON CONFLICT (event_id, date) DO UPDATE SET
			is_unavailable = EXCLUDED.is_unavailable,
			override_config_json = EXCLUDED.override_config_json,
			location = EXCLUDED.location,
			override_max_participants = EXCLUDED.override_max_participants,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return o, nil
}

// GetByEventAndDate override на конкретную дату
func (r *Repository) GetByEventAndDate(ctx context.Context, eventID int64, date time.Time) (*domain.Override, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("event_overrides").
		Where(squirrel.Eq{"event_id": eventID, "date": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEventAndDate - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEventAndDate - scan override: %v", ErrScanRow, err)
	}

	return o, nil
}

// ListByEventInRange override'ы в диапазоне дат [from, to] включительно
func (r *Repository) ListByEventInRange(ctx context.Context, eventID int64, from, to time.Time) ([]*domain.Override, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("event_overrides").
		Where(squirrel.Eq{"event_id": eventID}).
		Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEventInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEventInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.Override, 0)
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEventInRange - scan row: %v", ErrScanRow, err)
		}
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEventInRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Delete удаляет override даты: дата возвращается к недельному шаблону
func (r *Repository) Delete(ctx context.Context, eventID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("event_overrides").
		Where(squirrel.Eq{"event_id": eventID, "date": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOverride(row scanner) (*domain.Override, error) {
	var (
		o    domain.Override
		date time.Time
	)

	err := row.Scan(
		&o.ID,
		&o.EventID,
		&date,
		&o.IsUnavailable,
		&o.Config,
		&o.Location,
		&o.MaxParticipants,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// DATE приходит с произвольной зоной драйвера, приводим к полуночи UTC
	y, m, d := date.Date()
	o.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return &o, nil
}
