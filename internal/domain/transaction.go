package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidID indicates that the given id is not a valid positive identifier.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidTransaction indicates an empty or malformed transaction draft.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrInvalidAmount indicates that the amount cannot be parsed as a number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates that the transaction would make the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrNoTransactions indicates that the transaction log holds no records at all.
	ErrNoTransactions = errors.New("no transactions found")
)

// Transaction holds a single committed balance change for an account.
// Amount is signed: positive credits the account, negative debits it.
type Transaction struct {
	ID        int64     `json:"id"`
	AccountID int32     `json:"account_id"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTransactionParams is the draft a caller submits for persistence.
type CreateTransactionParams struct {
	AccountID int32  `json:"account_id"`
	Amount    string `json:"amount"`
}

// TransactionTxResult is the outcome of a committed transaction:
// the persisted record and the account with its updated balance.
type TransactionTxResult struct {
	Transaction Transaction `json:"transaction"`
	Account     Account     `json:"account"`
}
