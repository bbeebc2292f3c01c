// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/o-lebedeva/tx-bank/internal/domain"
	"github.com/o-lebedeva/tx-bank/pkg/dbpkg"
	"github.com/o-lebedeva/tx-bank/pkg/errorspkg"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    users (username, hashed_password, full_name, email, role)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, username, hashed_password, full_name, email, role, created_at
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Username,
		arg.HashedPassword,
		arg.FullName,
		arg.Email,
		arg.Role,
	)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.HashedPassword,
		&u.FullName,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "users_username_key":
				return u, domain.ErrUsernameAlreadyExists
			case "users_email_key":
				return u, domain.ErrEmailAlreadyExists
			}
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getQuery = `
SELECT
	id, username, hashed_password, full_name, email, role, created_at
FROM users
WHERE id = $1
`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.HashedPassword,
		&u.FullName,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getByUsernameQuery = `
SELECT
	id, username, hashed_password, full_name, email, role, created_at
FROM users
WHERE username = $1
`

// GetByUsername returns the user with the given username.
func (r *RepoPGS) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByUsernameQuery, username)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.HashedPassword,
		&u.FullName,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const listQuery = `
SELECT
	id, username, hashed_password, full_name, email, role, created_at
FROM users
ORDER BY id
`

// List returns all stored users ordered by id.
func (r *RepoPGS) List(ctx context.Context) ([]domain.User, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.User{}

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.HashedPassword,
			&u.FullName,
			&u.Email,
			&u.Role,
			&u.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, u)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
