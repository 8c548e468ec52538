package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"tenant_id",
	"slug",
	"title",
	"timezone",
	"schedule_type",
	"duration_min",
	"interval_min",
	"max_participants",
	"min_notice_general",
	"min_notice_first",
	"active_start",
	"active_end",
	"access_mode",
	"location",
	"config",
	"created_at",
	"updated_at",
}

// Repository репозиторий событий
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает событие. Занятый slug тенанта - ErrEventAlreadyExists.
func (r *Repository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	config := event.Config
	if config == nil {
		config = domain.WeeklyConfig{}
	}

	query, args, err := psqlbuilder.Insert("events").
		Columns(columns[1:16]...).
		Values(
			event.TenantID,
			event.Slug,
			event.Title,
			event.Timezone,
			event.ScheduleType,
			event.DurationMin,
			event.IntervalMin,
			event.MaxParticipants,
			event.MinNoticeGeneral,
			event.MinNoticeFirst,
			event.ActiveStart,
			event.ActiveEnd,
			event.AccessMode,
			event.Location,
			config,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrEventAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	event.Config = config
	return event, nil
}

// GetByID получает событие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByTenantAndSlug получает событие по тенанту и slug (публичный идентификатор)
func (r *Repository) GetByTenantAndSlug(ctx context.Context, tenantID, slug string) (*domain.Event, error) {
	return r.getOne(ctx, "GetByTenantAndSlug", squirrel.Eq{"tenant_id": tenantID, "slug": slug})
}

// ListByTenant все события тенанта, по slug
func (r *Repository) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("events").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("slug ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %v", ErrScanRow, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// Update перезаписывает настраиваемые поля события (slug и тенант не меняются)
func (r *Repository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	config := event.Config
	if config == nil {
		config = domain.WeeklyConfig{}
	}

	query, args, err := psqlbuilder.Update("events").
		Set("title", event.Title).
		Set("timezone", event.Timezone).
		Set("schedule_type", event.ScheduleType).
		Set("duration_min", event.DurationMin).
		Set("interval_min", event.IntervalMin).
		Set("max_participants", event.MaxParticipants).
		Set("min_notice_general", event.MinNoticeGeneral).
		Set("min_notice_first", event.MinNoticeFirst).
		Set("active_start", event.ActiveStart).
		Set("active_end", event.ActiveEnd).
		Set("access_mode", event.AccessMode).
		Set("location", event.Location).
		Set("config", config).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": event.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&event.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	event.Config = config
	return event, nil
}

// Delete удаляет событие вместе с override'ами, сессиями, приглашениями и бронями (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("events").
		Where(squirrel.Eq{"id": id}).
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
		return ErrEventNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("events").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	event, err := scanEvent(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan event: %v", ErrScanRow, op, err)
	}

	return event, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row scanner) (*domain.Event, error) {
	var event domain.Event

	err := row.Scan(
		&event.ID,
		&event.TenantID,
		&event.Slug,
		&event.Title,
		&event.Timezone,
		&event.ScheduleType,
		&event.DurationMin,
		&event.IntervalMin,
		&event.MaxParticipants,
		&event.MinNoticeGeneral,
		&event.MinNoticeFirst,
		&event.ActiveStart,
		&event.ActiveEnd,
		&event.AccessMode,
		&event.Location,
		&event.Config,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &event, nil
}
