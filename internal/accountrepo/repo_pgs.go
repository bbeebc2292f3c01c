// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/o-lebedeva/tx-bank/internal/domain"
	"github.com/o-lebedeva/tx-bank/pkg/dbpkg"
	"github.com/o-lebedeva/tx-bank/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (owner, balance)
VALUES
    ($1, $2)
RETURNING id, owner, balance, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, owner, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, owner, balance)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Owner,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_owner_fkey" {
				return a, domain.ErrOwnerNotFound
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, owner, balance, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Owner,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const existsQuery = `
SELECT EXISTS (
	SELECT 1 FROM accounts WHERE id = $1
)
`

// Exists reports whether an account with the given id is stored.
func (r *RepoPGS) Exists(ctx context.Context, id int32) (bool, error) {
	l := zerolog.Ctx(ctx)

	var exists bool

	err := r.db.QueryRowContext(ctx, existsQuery, id).Scan(&exists)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return exists, nil
}

const getBalanceQuery = `
SELECT balance FROM accounts
WHERE id = $1
`

// GetBalance returns the current balance of the account with the given id.
func (r *RepoPGS) GetBalance(ctx context.Context, id int32) (string, error) {
	l := zerolog.Ctx(ctx)

	var balance string

	err := r.db.QueryRowContext(ctx, getBalanceQuery, id).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return "", errorspkg.ErrInternal
	}

	return balance, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, owner, balance, created_at
`

// AddBalance applies a signed amount to the account's balance and returns
// the changed account. The accounts_balance_check constraint rejects any
// update that would leave the balance negative.
func (r *RepoPGS) AddBalance(ctx context.Context, amount string, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Owner,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientFunds
			}
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
