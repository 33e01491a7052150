package marketplace

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaopro/gestaopro/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id int64) (Order, error)
	Create(ctx context.Context, orderData string) (Order, error)
	Update(ctx context.Context, id int64, form UpdateForm) (Order, error)
	Delete(ctx context.Context, id int64) error
}

const columns = "id, order_data, created_at, updated_at"

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func scanRow(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.OrderData, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, httpx.ErrNotFound
	}
	return o, err
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM marketplace_orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OrderData, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Order, error) {
	return scanRow(r.db.QueryRow(ctx, `SELECT `+columns+` FROM marketplace_orders WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, orderData string) (Order, error) {
	now := time.Now().UTC()
	query := `INSERT INTO marketplace_orders (order_data, created_at, updated_at) VALUES ($1, $2, $2) RETURNING ` + columns
	return scanRow(r.db.QueryRow(ctx, query, orderData, now))
}

func (r *repository) Update(ctx context.Context, id int64, form UpdateForm) (Order, error) {
	if form.OrderData != nil {
		query := `UPDATE marketplace_orders SET order_data = $1, updated_at = $2 WHERE id = $3 RETURNING ` + columns
		return scanRow(r.db.QueryRow(ctx, query, *form.OrderData, time.Now().UTC(), id))
	}
	// updated_at refreshes even when no field changed.
	query := `UPDATE marketplace_orders SET updated_at = $1 WHERE id = $2 RETURNING ` + columns
	return scanRow(r.db.QueryRow(ctx, query, time.Now().UTC(), id))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM marketplace_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
