package sales

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaopro/gestaopro/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context) ([]Sale, error)
	Get(ctx context.Context, id int64) (Sale, error)
	Create(ctx context.Context, form CreateForm) (Sale, error)
	Update(ctx context.Context, id int64, form UpdateForm) (Sale, error)
	Delete(ctx context.Context, id int64) error
}

const columns = "id, product_id, product_name, customer_name, quantity, sale_date, total_revenue, total_cost, total_profit, created_at, updated_at"

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func scanRow(row pgx.Row) (Sale, error) {
	var s Sale
	err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.CustomerName, &s.Quantity, &s.SaleDate,
		&s.TotalRevenue, &s.TotalCost, &s.TotalProfit, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sale{}, httpx.ErrNotFound
	}
	return s, err
}

func (r *repository) List(ctx context.Context) ([]Sale, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM sales ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.CustomerName, &s.Quantity, &s.SaleDate,
			&s.TotalRevenue, &s.TotalCost, &s.TotalProfit, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Sale, error) {
	return scanRow(r.db.QueryRow(ctx, `SELECT `+columns+` FROM sales WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, form CreateForm) (Sale, error) {
	now := time.Now().UTC()
	query := `INSERT INTO sales (product_id, product_name, customer_name, quantity, sale_date, total_revenue, total_cost, total_profit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING ` + columns
	return scanRow(r.db.QueryRow(ctx, query, form.ProductID, form.ProductName, form.CustomerName, form.Quantity,
		form.SaleDate, form.TotalRevenue, form.TotalCost, form.TotalProfit, now))
}

func (r *repository) Update(ctx context.Context, id int64, form UpdateForm) (Sale, error) {
	sets := []string{}
	args := []interface{}{}
	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if form.ProductID != nil {
		addSet("product_id", *form.ProductID)
	}
	if form.ProductName != nil {
		addSet("product_name", *form.ProductName)
	}
	if form.CustomerName != nil {
		addSet("customer_name", *form.CustomerName)
	}
	if form.Quantity != nil {
		addSet("quantity", *form.Quantity)
	}
	if form.SaleDate != nil {
		addSet("sale_date", *form.SaleDate)
	}
	if form.TotalRevenue != nil {
		addSet("total_revenue", *form.TotalRevenue)
	}
	if form.TotalCost != nil {
		addSet("total_cost", *form.TotalCost)
	}
	if form.TotalProfit != nil {
		addSet("total_profit", *form.TotalProfit)
	}
	addSet("updated_at", time.Now().UTC())

	args = append(args, id)
	query := `UPDATE sales SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + columns
	return scanRow(r.db.QueryRow(ctx, query, args...))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
