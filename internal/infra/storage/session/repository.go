package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"event_id",
	"start_time",
	"end_time",
	"max_participants",
	"location",
	"host_name",
	"created_at",
	"updated_at",
}

// Repository репозиторий сессий (режим MANUAL)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает сессию
func (r *Repository) Create(ctx context.Context, s *domain.EventSession) (*domain.EventSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_sessions").
		Columns("event_id", "start_time", "end_time", "max_participants", "location", "host_name").
		Values(s.EventID, s.StartTime.UTC(), s.EndTime.UTC(), s.MaxParticipants, s.Location, s.HostName).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrSessionAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return s, nil
}

// GetByID получает сессию события по ID
func (r *Repository) GetByID(ctx context.Context, eventID, id int64) (*domain.EventSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("event_sessions").
		Where(squirrel.Eq{"id": id, "event_id": eventID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListByEventInRange сессии, начинающиеся в [from, to)
func (r *Repository) ListByEventInRange(ctx context.Context, eventID int64, from, to time.Time) ([]*domain.EventSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("event_sessions").
		Where(squirrel.Eq{"event_id": eventID}).
		Where(squirrel.GtOrEq{"start_time": from.UTC()}).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEventInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEventInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.EventSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEventInRange - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEventInRange - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}

// Update перезаписывает время, вместимость, место и ведущего сессии
func (r *Repository) Update(ctx context.Context, s *domain.EventSession) (*domain.EventSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("event_sessions").
		Set("start_time", s.StartTime.UTC()).
		Set("end_time", s.EndTime.UTC()).
		Set("max_participants", s.MaxParticipants).
		Set("location", s.Location).
		Set("host_name", s.HostName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID, "event_id": s.EventID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrSessionAlreadyExists
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return s, nil
}

// Delete удаляет сессию события
func (r *Repository) Delete(ctx context.Context, eventID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("event_sessions").
		Where(squirrel.Eq{"id": id, "event_id": eventID}).
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
		return ErrSessionNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (*domain.EventSession, error) {
	var s domain.EventSession

	err := row.Scan(
		&s.ID,
		&s.EventID,
		&s.StartTime,
		&s.EndTime,
		&s.MaxParticipants,
		&s.Location,
		&s.HostName,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.StartTime = s.StartTime.UTC()
	s.EndTime = s.EndTime.UTC()
	return &s, nil
}
