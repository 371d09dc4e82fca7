package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/paging"
)

// Repository defines storage access for bookings.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)

	// SetStatusIfWaiting applies the WAITING -> status transition as a
	// single conditional update and reports whether a row was changed.
	// A false result means the booking is missing or no longer WAITING.
	SetStatusIfWaiting(ctx context.Context, id int64, status Status) (bool, error)

	// ListByBooker returns a page of the booker's bookings matching the
	// state filter, ordered by start descending.
	ListByBooker(ctx context.Context, bookerID int64, state State, page paging.Page) ([]*Booking, error)
	// ListByOwnerItems is the same query filtered to bookings on items the
	// given user owns instead of bookings the user made.
	ListByOwnerItems(ctx context.Context, ownerID int64, state State, page paging.Page) ([]*Booking, error)
}

const bookingColumns = "b.id, b.start_time, b.end_time, b.item_id, i.name, i.owner_id, b.booker_id, u.name, b.status"

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	const query = `
		INSERT INTO bookings (start_time, end_time, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query, b.Start, b.End, b.ItemID, b.BookerID, b.Status).
		Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	const query = `
		SELECT b.id, b.start_time, b.end_time, b.item_id, i.name, i.owner_id, b.booker_id, u.name, b.status
		FROM bookings b
		JOIN items i ON b.item_id = i.id
		JOIN users u ON b.booker_id = u.id
		WHERE b.id = $1
	`

	var b Booking
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName, &b.Status,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	return &b, nil
}

func (r *pgxRepository) SetStatusIfWaiting(ctx context.Context, id int64, status Status) (bool, error) {
	const query = `
		UPDATE bookings
		SET status = $1
		WHERE id = $2 AND status = 'WAITING'
	`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID int64, state State, page paging.Page) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"b.booker_id": bookerID}, state, page)
}

func (r *pgxRepository) ListByOwnerItems(ctx context.Context, ownerID int64, state State, page paging.Page) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"i.owner_id": ownerID}, state, page)
}

func (r *pgxRepository) list(ctx context.Context, scope squirrel.Sqlizer, state State, page paging.Page) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	qb := psql.Select(
		"b.id", "b.start_time", "b.end_time", "b.item_id", "i.name", "i.owner_id",
		"b.booker_id", "u.name", "b.status",
	).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id").
		Where(scope)

	if cond := stateCondition(state, time.Now()); cond != nil {
		qb = qb.Where(cond)
	}

	qb = qb.OrderBy(page.Sort.OrderBy()).
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName, &b.ItemOwnerID,
			&b.BookerID, &b.BookerName, &b.Status,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

// stateCondition translates a query-time state into the SQL predicate
// evaluated against now. ALL yields no predicate.
//
//	FUTURE:  start > now
//	PAST:    end < now
//	CURRENT: start <= now <= end
//	WAITING / REJECTED / APPROVED: status equality
func stateCondition(state State, now time.Time) squirrel.Sqlizer {
	switch state {
	case StateFuture:
		return squirrel.Gt{"b.start_time": now}
	case StatePast:
		return squirrel.Lt{"b.end_time": now}
	case StateCurrent:
		return squirrel.And{
			squirrel.LtOrEq{"b.start_time": now},
			squirrel.GtOrEq{"b.end_time": now},
		}
	case StateWaiting, StateRejected, StateApproved:
		return squirrel.Eq{"b.status": string(state)}
	default:
		return nil
	}
}
