package invitee

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

var columns = []string{"id", "event_id", "token", "email", "status", "created_at", "updated_at"}

// Repository репозиторий приглашений
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает приглашение. Коллизия токена - ErrTokenAlreadyExists.
func (r *Repository) Create(ctx context.Context, inv *domain.Invitee) (*domain.Invitee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invitees").
		Columns("event_id", "token", "email", "status").
		Values(inv.EventID, inv.Token, inv.Email, inv.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrTokenAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return inv, nil
}

// GetByToken получает приглашение события по токену.
// Внутри транзакции строка блокируется (FOR UPDATE): токен может быть использован только одной бронью.
func (r *Repository) GetByToken(ctx context.Context, eventID int64, token string) (*domain.Invitee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("invitees").
		Where(squirrel.Eq{"event_id": eventID, "token": token})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	inv, err := scanInvitee(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInviteeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan invitee: %w", ErrScanRow, err)
	}

	return inv, nil
}

// ListByEvent приглашения события, новые первыми
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Invitee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("invitees").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEvent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEvent - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	invitees := make([]*domain.Invitee, 0)
	for rows.Next() {
		inv, err := scanInvitee(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEvent - scan row: %v", ErrScanRow, err)
		}
		invitees = append(invitees, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEvent - rows error: %v", ErrScanRow, err)
	}

	return invitees, nil
}

// UpdateStatus меняет статус приглашения
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.InviteeStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invitees").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInviteeNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanInvitee(row scanner) (*domain.Invitee, error) {
	var inv domain.Invitee
	if err := row.Scan(&inv.ID, &inv.EventID, &inv.Token, &inv.Email, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
