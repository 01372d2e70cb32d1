package demo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, d *Demo) error
	GetByID(ctx context.Context, id string) (*Demo, error)
	ListByArtist(ctx context.Context, artistID string, onlyPublic bool) ([]*Demo, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const demoColumns = "id, artist_id, title, genre, description, audio_path, audio_content_type, audio_size, cover_path, is_public, created_at, updated_at"

func scanDemo(row pgx.Row) (*Demo, error) {
	var d Demo
	err := row.Scan(
		&d.ID, &d.ArtistID, &d.Title, &d.Genre, &d.Description,
		&d.AudioPath, &d.AudioContentType, &d.AudioSize, &d.CoverPath,
		&d.IsPublic, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *pgxRepository) Create(ctx context.Context, d *Demo) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.demos").
		Columns(
			"artist_id", "title", "genre", "description",
			"audio_path", "audio_content_type", "audio_size", "cover_path", "is_public",
		).
		Values(
			d.ArtistID, d.Title, d.Genre, d.Description,
			d.AudioPath, d.AudioContentType, d.AudioSize, d.CoverPath, d.IsPublic,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create demo query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Demo, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(demoColumns).
		From("public.demos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get demo query failed: %w", err)
	}

	d, err := scanDemo(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get demo failed: %w", err)
	}
	return d, nil
}

func (r *pgxRepository) ListByArtist(ctx context.Context, artistID string, onlyPublic bool) ([]*Demo, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(demoColumns).
		From("public.demos").
		Where(squirrel.Eq{"artist_id": artistID}).
		OrderBy("created_at DESC")

	if onlyPublic {
		query = query.Where(squirrel.Eq{"is_public": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list demos query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list demos failed: %w", err)
	}
	defer rows.Close()

	var demos []*Demo
	for rows.Next() {
		d, err := scanDemo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan demo failed: %w", err)
		}
		demos = append(demos, d)
	}
	return demos, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.demos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete demo query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete demo failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
