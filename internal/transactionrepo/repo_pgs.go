// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/o-lebedeva/tx-bank/internal/accountrepo"
	"github.com/o-lebedeva/tx-bank/internal/domain"
	"github.com/o-lebedeva/tx-bank/pkg/dbpkg"
	"github.com/o-lebedeva/tx-bank/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS bound to an ongoing database
// transaction. Create is not available on it.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const insertQuery = `
INSERT INTO
    transactions (account_id, amount)
VALUES
    ($1, $2)
RETURNING id, account_id, amount, created_at
`

func (r *RepoPGS) insert(ctx context.Context, db dbpkg.SQLInterface, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := db.QueryRowContext(ctx, insertQuery, arg.AccountID, arg.Amount)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "transactions_account_id_fkey" {
				return t, domain.ErrAccountNotExists
			}
		}

		l.Error().Err(err).Msgf("insert(ctx, db, %+v)", arg)

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

// Create persists the transaction and applies its amount to the account
// balance within a single database transaction.
//
// The balance update runs first and takes the account row lock, so two
// concurrent debits against the same account serialize on it; the
// accounts_balance_check constraint then rejects whichever one would drive
// the committed balance below zero. Either both mutations commit or neither
// does.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransactionTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)

	result.Account, err = accountRepo.AddBalance(ctx, arg.Amount, arg.AccountID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return result, domain.ErrAccountNotExists
		}

		return result, err
	}

	result.Transaction, err = r.insert(ctx, tx, arg)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

const getQuery = `
SELECT
	id, account_id, amount, created_at
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT
	id, account_id, amount, created_at
FROM transactions
ORDER BY id
`

// List returns all stored transactions ordered by id.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Amount, &t.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
