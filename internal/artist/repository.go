package artist

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
	Create(ctx context.Context, a *Artist) error
	GetByID(ctx context.Context, id string) (*Artist, error)
	GetByUserID(ctx context.Context, userID string) (*Artist, error)
	List(ctx context.Context, filter Filter) ([]*Artist, int, error)
	Update(ctx context.Context, a *Artist) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, a *Artist) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.artists").
		Columns("user_id", "stage_name", "genres", "bio").
		Values(a.UserID, a.StageName, a.Genres, a.Bio).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create artist query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create artist failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getBy(ctx context.Context, pred squirrel.Eq) (*Artist, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.user_id", "coalesce(u.display_name, '')",
		"a.stage_name", "a.genres", "a.bio", "a.created_at", "a.updated_at",
	).
		From("public.artists a").
		Join("public.users u ON a.user_id = u.id").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get artist query failed: %w", err)
	}

	var a Artist
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.UserID, &a.DisplayName,
		&a.StageName, &a.Genres, &a.Bio, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get artist failed: %w", err)
	}
	return &a, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Artist, error) {
	return r.getBy(ctx, squirrel.Eq{"a.id": id})
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Artist, error) {
	return r.getBy(ctx, squirrel.Eq{"a.user_id": userID})
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Artist, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"a.id", "a.user_id", "coalesce(u.display_name, '')",
		"a.stage_name", "a.genres", "a.bio", "a.created_at", "a.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.artists a").
		Join("public.users u ON a.user_id = u.id")

	if filter.Genre != "" {
		query = query.Where(squirrel.ILike{"a.genres": "%" + filter.Genre + "%"})
	}

	query = query.OrderBy("a.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list artists query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list artists failed: %w", err)
	}
	defer rows.Close()

	var artists []*Artist
	var total int

	for rows.Next() {
		var a Artist
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.DisplayName,
			&a.StageName, &a.Genres, &a.Bio, &a.CreatedAt, &a.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan artist failed: %w", err)
		}
		artists = append(artists, &a)
	}

	return artists, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Artist) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.artists").
		Set("stage_name", a.StageName).
		Set("genres", a.Genres).
		Set("bio", a.Bio).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update artist query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update artist failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
