package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, w *Window) error
	GetByID(ctx context.Context, id string) (*Window, error)
	List(ctx context.Context, filter Filter) ([]*Window, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const windowColumns = "id, professional_id, mode, day_of_week, specific_date, start_time::text, end_time::text, recurrence_end, is_active, created_at"

func (r *pgxRepository) Create(ctx context.Context, w *Window) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.availability_windows").
		Columns("professional_id", "mode", "day_of_week", "specific_date", "start_time", "end_time", "recurrence_end", "is_active").
		Values(w.ProfessionalID, w.Mode, w.DayOfWeek, w.SpecificDate, w.StartTime, w.EndTime, w.RecurrenceEnd, w.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create window query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&w.ID, &w.CreatedAt)
}

func scanWindow(row pgx.Row) (*Window, error) {
	var w Window
	if err := row.Scan(
		&w.ID, &w.ProfessionalID, &w.Mode, &w.DayOfWeek, &w.SpecificDate,
		&w.StartTime, &w.EndTime, &w.RecurrenceEnd, &w.IsActive, &w.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan window failed: %w", err)
	}
	return &w, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Window, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(windowColumns).
		From("public.availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get window query failed: %w", err)
	}

	return scanWindow(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Window, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(windowColumns).
		From("public.availability_windows").
		Where(squirrel.Eq{"professional_id": filter.ProfessionalID}).
		OrderBy("mode", "day_of_week NULLS LAST", "specific_date NULLS LAST", "start_time")

	if filter.OnlyActive {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list windows query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list windows failed: %w", err)
	}
	defer rows.Close()

	var windows []*Window
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	return windows, nil
}

func (r *pgxRepository) SetActive(ctx context.Context, id string, active bool) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.availability_windows").
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build toggle window query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("toggle window failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.availability_windows").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete window query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete window failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
