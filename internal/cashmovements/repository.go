package cashmovements

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
	List(ctx context.Context) ([]CashMovement, error)
	Get(ctx context.Context, id int64) (CashMovement, error)
	Create(ctx context.Context, form CreateForm) (CashMovement, error)
	Update(ctx context.Context, id int64, form UpdateForm) (CashMovement, error)
	Delete(ctx context.Context, id int64) error
}

const columns = "id, description, value, type, date, category, reason, created_at, updated_at"

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func scanRow(row pgx.Row) (CashMovement, error) {
	var m CashMovement
	err := row.Scan(&m.ID, &m.Description, &m.Value, &m.Type, &m.Date, &m.Category, &m.Reason, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return CashMovement{}, httpx.ErrNotFound
	}
	return m, err
}

func (r *repository) List(ctx context.Context) ([]CashMovement, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM cash_movements ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []CashMovement
	for rows.Next() {
		var m CashMovement
		if err := rows.Scan(&m.ID, &m.Description, &m.Value, &m.Type, &m.Date, &m.Category, &m.Reason, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (CashMovement, error) {
	return scanRow(r.db.QueryRow(ctx, `SELECT `+columns+` FROM cash_movements WHERE id = $1`, id))
}

func (r *repository) Create(ctx context.Context, form CreateForm) (CashMovement, error) {
	now := time.Now().UTC()
	query := `INSERT INTO cash_movements (description, value, type, date, category, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING ` + columns
	return scanRow(r.db.QueryRow(ctx, query, form.Description, form.Value, form.Type, form.Date, form.Category, form.Reason, now))
}

func (r *repository) Update(ctx context.Context, id int64, form UpdateForm) (CashMovement, error) {
	sets := []string{}
	args := []interface{}{}
	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if form.Description != nil {
		addSet("description", *form.Description)
	}
	if form.Value != nil {
		addSet("value", *form.Value)
	}
	if form.Type != nil {
		addSet("type", *form.Type)
	}
	if form.Date != nil {
		addSet("date", *form.Date)
	}
	if form.Category != nil {
		addSet("category", *form.Category)
	}
	if form.Reason != nil {
		addSet("reason", *form.Reason)
	}
	addSet("updated_at", time.Now().UTC())

	args = append(args, id)
	query := `UPDATE cash_movements SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + columns
	return scanRow(r.db.QueryRow(ctx, query, args...))
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cash_movements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
