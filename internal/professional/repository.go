package professional

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Professional) error
	GetByID(ctx context.Context, id string) (*Professional, error)
	GetByUserID(ctx context.Context, userID string) (*Professional, error)
	List(ctx context.Context, filter Filter) ([]*Professional, int, error)
	Update(ctx context.Context, p *Professional) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Professional) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.professionals").
		Columns("user_id", "specialization", "skills", "experience_level", "hourly_rate", "is_available", "is_active").
		Values(p.UserID, p.Specialization, p.Skills, p.ExperienceLevel, p.HourlyRate, p.IsAvailable, p.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create professional query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create professional failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getBy(ctx context.Context, pred squirrel.Eq) (*Professional, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"p.id", "p.user_id", "coalesce(u.display_name, '')",
		"p.specialization", "p.skills", "p.experience_level", "p.hourly_rate",
		"p.is_available", "p.is_active", "p.created_at", "p.updated_at",
	).
		From("public.professionals p").
		Join("public.users u ON p.user_id = u.id").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get professional query failed: %w", err)
	}

	var p Professional
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.UserID, &p.DisplayName,
		&p.Specialization, &p.Skills, &p.ExperienceLevel, &p.HourlyRate,
		&p.IsAvailable, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get professional failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Professional, error) {
	return r.getBy(ctx, squirrel.Eq{"p.id": id})
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Professional, error) {
	return r.getBy(ctx, squirrel.Eq{"p.user_id": userID})
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Professional, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"p.id", "p.user_id", "coalesce(u.display_name, '')",
		"p.specialization", "p.skills", "p.experience_level", "p.hourly_rate",
		"p.is_available", "p.is_active", "p.created_at", "p.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.professionals p").
		Join("public.users u ON p.user_id = u.id").
		Where(squirrel.Eq{"p.is_active": true})

	if filter.Specialization != "" {
		query = query.Where(squirrel.ILike{"p.specialization": "%" + filter.Specialization + "%"})
	}
	if filter.OnlyAvailable {
		query = query.Where(squirrel.Eq{"p.is_available": true})
	}

	query = query.OrderBy("p.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list professionals query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list professionals failed: %w", err)
	}
	defer rows.Close()

	var pros []*Professional
	var total int

	for rows.Next() {
		var p Professional
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.DisplayName,
			&p.Specialization, &p.Skills, &p.ExperienceLevel, &p.HourlyRate,
			&p.IsAvailable, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan professional failed: %w", err)
		}
		pros = append(pros, &p)
	}

	return pros, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *Professional) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.professionals").
		Set("specialization", p.Specialization).
		Set("skills", p.Skills).
		Set("experience_level", p.ExperienceLevel).
		Set("hourly_rate", p.HourlyRate).
		Set("is_available", p.IsAvailable).
		Set("is_active", p.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update professional query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update professional failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
