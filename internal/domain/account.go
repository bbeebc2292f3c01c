// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNotExists indicates that a transaction references a missing account.
	ErrAccountNotExists = errors.New("no account exists with provided account id")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
)

// Account holds the current balance for its owner.
type Account struct {
	ID        int32     `json:"id"`
	Owner     string    `json:"owner"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
