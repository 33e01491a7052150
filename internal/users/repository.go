package users

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaopro/gestaopro/internal/platform/db"
	"github.com/gestaopro/gestaopro/internal/platform/httpx"
)

type Repository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, form CreateForm) (User, error)
	// CreateIfUsernameAbsent inserts the user unless the username already
	// exists, in which case the existing row is returned with created=false.
	// Check and insert run in one transaction.
	CreateIfUsernameAbsent(ctx context.Context, form CreateForm) (user User, created bool, err error)
	Update(ctx context.Context, id int64, form UpdateForm) (User, error)
	Delete(ctx context.Context, id int64) error
}

const columns = "id, username, password_hash, created_at, updated_at"

const uniqueViolation = "23505"

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func scanRow(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, httpx.ErrNotFound
	}
	return u, err
}

func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return httpx.ErrDuplicate
	}
	return err
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (User, error) {
	return scanRow(r.db.QueryRow(ctx, `SELECT `+columns+` FROM users WHERE id = $1`, id))
}

func (r *repository) GetByUsername(ctx context.Context, username string) (User, error) {
	return scanRow(r.db.QueryRow(ctx, `SELECT `+columns+` FROM users WHERE username = $1`, username))
}

func (r *repository) Create(ctx context.Context, form CreateForm) (User, error) {
	now := time.Now().UTC()
	query := `INSERT INTO users (username, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $3) RETURNING ` + columns
	u, err := scanRow(r.db.QueryRow(ctx, query, form.Username, form.PasswordHash, now))
	if err != nil {
		return User{}, mapUnique(err)
	}
	return u, nil
}

func (r *repository) CreateIfUsernameAbsent(ctx context.Context, form CreateForm) (User, bool, error) {
	var user User
	created := false
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		existing, err := scanRow(tx.QueryRow(ctx, `SELECT `+columns+` FROM users WHERE username = $1`, form.Username))
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, httpx.ErrNotFound) {
			return err
		}
		now := time.Now().UTC()
		query := `INSERT INTO users (username, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $3) RETURNING ` + columns
		inserted, err := scanRow(tx.QueryRow(ctx, query, form.Username, form.PasswordHash, now))
		if err != nil {
			return mapUnique(err)
		}
		user = inserted
		created = true
		return nil
	})
	if err != nil {
		return User{}, false, err
	}
	return user, created, nil
}

func (r *repository) Update(ctx context.Context, id int64, form UpdateForm) (User, error) {
	sets := []string{}
	args := []interface{}{}
	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if form.Username != nil {
		addSet("username", *form.Username)
	}
	if form.PasswordHash != nil {
		addSet("password_hash", *form.PasswordHash)
	}
	addSet("updated_at", time.Now().UTC())

	args = append(args, id)
	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + columns
	u, err := scanRow(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return User{}, mapUnique(err)
	}
	return u, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
