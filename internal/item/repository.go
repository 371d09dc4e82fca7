package item

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

// Repository defines storage access for items, their comments and the
// booking lookups backing the item view.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, it *Item) error
	ListByOwner(ctx context.Context, ownerID int64, page paging.Page) ([]*Item, error)
	Search(ctx context.Context, text string, page paging.Page) ([]*Item, error)

	// LastBooking returns the booking of the item with the greatest start
	// among those already finished at now, or nil when none exists.
	LastBooking(ctx context.Context, itemID int64, now time.Time) (*BookingSummary, error)
	// NextBooking returns the booking of the item with the smallest start
	// among those starting after now, or nil when none exists.
	NextBooking(ctx context.Context, itemID int64, now time.Time) (*BookingSummary, error)
	// ApprovedBookings returns the approved bookings a user holds on an item.
	ApprovedBookings(ctx context.Context, itemID, bookerID int64) ([]BookingSummary, error)

	CreateComment(ctx context.Context, cm *Comment) error
	CommentsByItem(ctx context.Context, itemID int64) ([]Comment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	const query = `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query, it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Scan(&it.ID); err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	const query = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1
	`

	var it Item
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}

	return &it, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	const query = `
		UPDATE items
		SET name = $1, description = $2, available = $3
		WHERE id = $4
	`

	ct, err := r.pool.Exec(ctx, query, it.Name, it.Description, it.Available, it.ID)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, page paging.Page) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy(page.Sort.OrderBy()).
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query failed: %w", err)
	}

	return r.queryItems(ctx, query, args...)
}

func (r *pgxRepository) Search(ctx context.Context, text string, page paging.Page) ([]*Item, error) {
	pattern := "%" + text + "%"
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy(page.Sort.OrderBy()).
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search items query failed: %w", err)
	}

	return r.queryItems(ctx, query, args...)
}

func (r *pgxRepository) queryItems(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}

func (r *pgxRepository) LastBooking(ctx context.Context, itemID int64, now time.Time) (*BookingSummary, error) {
	const query = `
		SELECT id, booker_id, start_time, end_time
		FROM bookings
		WHERE item_id = $1 AND end_time < $2
		ORDER BY start_time DESC
		LIMIT 1
	`

	return r.queryBookingSummary(ctx, query, itemID, now)
}

func (r *pgxRepository) NextBooking(ctx context.Context, itemID int64, now time.Time) (*BookingSummary, error) {
	const query = `
		SELECT id, booker_id, start_time, end_time
		FROM bookings
		WHERE item_id = $1 AND start_time > $2
		ORDER BY start_time ASC
		LIMIT 1
	`

	return r.queryBookingSummary(ctx, query, itemID, now)
}

func (r *pgxRepository) queryBookingSummary(ctx context.Context, query string, args ...any) (*BookingSummary, error) {
	var b BookingSummary
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.BookerID, &b.Start, &b.End); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking summary failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) ApprovedBookings(ctx context.Context, itemID, bookerID int64) ([]BookingSummary, error) {
	const query = `
		SELECT id, booker_id, start_time, end_time
		FROM bookings
		WHERE item_id = $1 AND booker_id = $2 AND status = 'APPROVED'
	`

	rows, err := r.pool.Query(ctx, query, itemID, bookerID)
	if err != nil {
		return nil, fmt.Errorf("list approved bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []BookingSummary
	for rows.Next() {
		var b BookingSummary
		if err := rows.Scan(&b.ID, &b.BookerID, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("scan booking summary failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) CreateComment(ctx context.Context, cm *Comment) error {
	const query = `
		INSERT INTO comments (text, item_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created
	`

	if err := r.pool.QueryRow(ctx, query, cm.Text, cm.ItemID, cm.AuthorID).
		Scan(&cm.ID, &cm.Created); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) CommentsByItem(ctx context.Context, itemID int64) ([]Comment, error) {
	const query = `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.item_id = $1
		ORDER BY c.id
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.Text, &cm.ItemID, &cm.AuthorID, &cm.AuthorName, &cm.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, cm)
	}

	return comments, rows.Err()
}
