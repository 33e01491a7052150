package products

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
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, form CreateForm) (Product, error)
	Update(ctx context.Context, id int64, form UpdateForm) (Product, error)
	Delete(ctx context.Context, id int64) error
}

const columns = "id, name, description, cost, price, stock, cost_details, created_at, updated_at"

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func scanRow(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Cost, &p.Price, &p.Stock, &p.CostDetails, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Cost, &p.Price, &p.Stock, &p.CostDetails, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	return scanRow(r.db.QueryRow(ctx, `SELECT `+columns+` FROM products WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, form CreateForm) (Product, error) {
	now := time.Now().UTC()
	query := `INSERT INTO products (name, description, cost, price, stock, cost_details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING ` + columns
	return scanRow(r.db.QueryRow(ctx, query, form.Name, form.Description, form.Cost, form.Price, form.Stock, form.CostDetails, now))
}

func (r *repository) Update(ctx context.Context, id int64, form UpdateForm) (Product, error) {
	sets := []string{}
	args := []interface{}{}
	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if form.Name != nil {
		addSet("name", *form.Name)
	}
	if form.Description != nil {
		addSet("description", *form.Description)
	}
	if form.Cost != nil {
		addSet("cost", *form.Cost)
	}
	if form.Price != nil {
		addSet("price", *form.Price)
	}
	if form.Stock != nil {
		addSet("stock", *form.Stock)
	}
	if form.CostDetails != nil {
		addSet("cost_details", *form.CostDetails)
	}
	addSet("updated_at", time.Now().UTC())

	args = append(args, id)
	query := `UPDATE products SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + columns
	return scanRow(r.db.QueryRow(ctx, query, args...))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
