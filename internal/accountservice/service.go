// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/o-lebedeva/tx-bank/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, owner, balance string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	Exists(ctx context.Context, id int32) (bool, error)
	GetBalance(ctx context.Context, id int32) (string, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns an account with zero balance for the given owner.
func (s *Service) Create(ctx context.Context, owner string) (domain.Account, error) {
	account, err := s.repo.Create(ctx, owner, "0")
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	if id < 1 {
		return domain.Account{}, domain.ErrInvalidID
	}

	return s.repo.Get(ctx, id)
}

// Exists reports whether the account with the given id is stored.
func (s *Service) Exists(ctx context.Context, id int32) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// GetBalance returns the current balance of the given account.
// Store errors are propagated unchanged.
func (s *Service) GetBalance(ctx context.Context, id int32) (string, error) {
	return s.repo.GetBalance(ctx, id)
}
