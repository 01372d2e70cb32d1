package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloria-studio/session-booking-backend/internal/pkg/apperror"
)

// ErrSlotTaken is returned when the database exclusion constraint rejects an
// insert or reschedule that raced past the in-process conflict check.
var ErrSlotTaken = apperror.New(http.StatusConflict, "scheduling_conflict", "time slot was just taken by another booking")

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, booking *Booking) error
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ListActiveBetween returns pending and confirmed bookings for the
	// professional that start within [from, to). excludeBookingID is used
	// during reschedules to ignore the booking itself.
	ListActiveBetween(ctx context.Context, professionalID string, from, to time.Time, excludeBookingID string) ([]*Booking, error)

	// ListConfirmedEndedBefore returns confirmed bookings whose interval has
	// fully elapsed, for the completion sweep.
	ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `b.id, b.artist_id, coalesce(nullif(a.stage_name, ''), au.display_name), ` +
	`b.professional_id, pu.display_name, ` +
	`b.session_type, b.start_time, b.duration_hours, b.status, b.total_cost, ` +
	`b.location, b.notes, b.special_requirements, b.created_at, b.updated_at`

func bookingJoins(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	return q.From("public.bookings b").
		Join("public.artists a ON b.artist_id = a.id").
		Join("public.users au ON a.user_id = au.id").
		Join("public.professionals p ON b.professional_id = p.id").
		Join("public.users pu ON p.user_id = pu.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.ArtistID, &b.ArtistStageName,
		&b.ProfessionalID, &b.ProfessionalName,
		&b.SessionType, &b.StartTime, &b.DurationHours, &b.Status, &b.TotalCost,
		&b.Location, &b.Notes, &b.SpecialRequirements, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"artist_id", "professional_id", "session_type",
			"start_time", "duration_hours", "status", "total_cost",
			"location", "notes", "special_requirements",
		).
		Values(
			b.ArtistID, b.ProfessionalID, b.SessionType,
			b.StartTime, b.DurationHours, b.Status, b.TotalCost,
			b.Location, b.Notes, b.SpecialRequirements,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := bookingJoins(psql.Select(bookingColumns)).
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

// sortColumns maps the exposed sort keys to their ORDER BY columns. Anything
// outside this map falls back to the default ordering.
var sortColumns = map[string]string{
	"start_time": "b.start_time",
	"created_at": "b.created_at",
	"status":     "b.status",
}

func orderClause(filter Filter) string {
	col, ok := sortColumns[filter.SortBy]
	if !ok {
		col = "b.start_time"
	}
	dir := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := bookingJoins(psql.Select(bookingColumns + ", count(*) OVER() as total_count"))

	if filter.ArtistID != "" {
		query = query.Where(squirrel.Eq{"b.artist_id": filter.ArtistID})
	}
	if filter.ProfessionalID != "" {
		query = query.Where(squirrel.Eq{"b.professional_id": filter.ProfessionalID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.StartTimeFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.start_time": filter.StartTimeFrom})
	}
	if filter.StartTimeTo != nil {
		query = query.Where(squirrel.Lt{"b.start_time": filter.StartTimeTo})
	}

	query = query.OrderBy(orderClause(filter))

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("session_type", b.SessionType).
		Set("start_time", b.StartTime).
		Set("duration_hours", b.DurationHours).
		Set("status", b.Status).
		Set("total_cost", b.TotalCost).
		Set("location", b.Location).
		Set("notes", b.Notes).
		Set("special_requirements", b.SpecialRequirements).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListActiveBetween(ctx context.Context, professionalID string, from, to time.Time, excludeBookingID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := bookingJoins(psql.Select(bookingColumns)).
		Where(squirrel.Eq{"b.professional_id": professionalID}).
		Where(squirrel.Eq{"b.status": []Status{StatusPending, StatusConfirmed}}).
		Where(squirrel.GtOrEq{"b.start_time": from}).
		Where(squirrel.Lt{"b.start_time": to}).
		OrderBy("b.start_time ASC")

	if excludeBookingID != "" {
		query = query.Where(squirrel.NotEq{"b.id": excludeBookingID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list active bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list active bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *pgxRepository) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := bookingJoins(psql.Select(bookingColumns)).
		Where(squirrel.Eq{"b.status": StatusConfirmed}).
		Where(squirrel.Expr("b.start_time + make_interval(hours => b.duration_hours) <= ?", cutoff)).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list elapsed bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list elapsed bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
