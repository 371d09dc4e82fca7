package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/paging"
)

// Repository defines storage access for item requests.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id int64) (*Request, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]*Request, error)
	ListOthers(ctx context.Context, requestorID int64, page paging.Page) ([]*Request, error)
	ItemsByRequest(ctx context.Context, requestID int64) ([]Item, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *Request) error {
	const query = `
		INSERT INTO requests (description, requestor_id)
		VALUES ($1, $2)
		RETURNING id, created
	`

	if err := r.pool.QueryRow(ctx, query, req.Description, req.RequestorID).
		Scan(&req.ID, &req.Created); err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Request, error) {
	const query = `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE id = $1
	`

	var req Request
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}

	return &req, nil
}

func (r *pgxRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]*Request, error) {
	const query = `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE requestor_id = $1
		ORDER BY created DESC
	`

	rows, err := r.pool.Query(ctx, query, requestorID)
	if err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *pgxRepository) ListOthers(ctx context.Context, requestorID int64, page paging.Page) ([]*Request, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "description", "requestor_id", "created").
		From("requests").
		Where(squirrel.NotEq{"requestor_id": requestorID}).
		OrderBy(page.Sort.OrderBy()).
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *pgxRepository) ItemsByRequest(ctx context.Context, requestID int64) ([]Item, error) {
	const query = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE request_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list items by request failed: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func scanRequests(rows pgx.Rows) ([]*Request, error) {
	var requests []*Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, fmt.Errorf("scan request failed: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}
