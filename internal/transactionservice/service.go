// Package transactionservice manages business logic layer of transactions.
//
// It is the single authority deciding whether a proposed transaction may be
// committed: a draft passes structural validation, an account existence
// check and a balance sufficiency check, in that order, before the store is
// touched. A failure at any step leaves the stores untouched.
package transactionservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/o-lebedeva/tx-bank/internal/domain"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
}

// AccountService provides the account store interface needed by the
// transaction service layer.
type AccountService interface {
	Exists(ctx context.Context, id int32) (bool, error)
	GetBalance(ctx context.Context, id int32) (string, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
}

// New returns transaction service struct to manage transaction business logic.
func New(tr Repo, as AccountService) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

// List returns all stored transactions.
//
// An empty transaction log is an error, not a valid empty result. This
// mirrors the user listing contract and is deliberate.
func (s *Service) List(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(transactions) == 0 {
		return nil, domain.ErrNoTransactions
	}

	return transactions, nil
}

// Get returns the transaction with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	if id < 1 {
		return domain.Transaction{}, domain.ErrInvalidID
	}

	transaction, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}

	return transaction, nil
}

// Create validates the draft against live account state and commits it.
//
// The checks run strictly in order: structural validation, account
// existence, balance sufficiency. Only then is the store asked to persist
// the transaction and apply the balance change as one atomic operation.
// The repo re-checks sufficiency at commit time, so a concurrent debit
// that drains the account between the projection and the commit fails with
// domain.ErrInsufficientFunds instead of overdrawing.
func (s *Service) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransactionTxResult

	if arg.AccountID < 1 || arg.Amount == "" {
		return result, domain.ErrInvalidTransaction
	}

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return result, domain.ErrInvalidAmount
	}

	exists, err := s.checkAccountExists(ctx, arg.AccountID)
	if err != nil {
		return result, err
	}

	if !exists {
		l.Info().Int32("account_id", arg.AccountID).Msg(domain.ErrAccountNotExists.Error())
		return result, domain.ErrAccountNotExists
	}

	currentBalance, err := s.checkAccountBalance(ctx, arg.AccountID)
	if err != nil {
		return result, err
	}

	projected := currentBalance.Add(amount)

	if projected.IsNegative() {
		return result, domain.ErrInsufficientFunds
	}

	result, err = s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}

func (s *Service) checkAccountExists(ctx context.Context, accountID int32) (bool, error) {
	l := zerolog.Ctx(ctx)

	exists, err := s.accountService.Exists(ctx, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return false, err
	}

	return exists, nil
}

func (s *Service) checkAccountBalance(ctx context.Context, accountID int32) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	balance, err := s.accountService.GetBalance(ctx, accountID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	currentBalance, err := decimal.NewFromString(balance)
	if err != nil {
		l.Error().Err(err).Send()
		return decimal.Decimal{}, err
	}

	return currentBalance, nil
}
