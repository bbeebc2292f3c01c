package transactionservice

import (
	"context"
	"testing"
	"time"

	gomock "github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/o-lebedeva/tx-bank/internal/domain"
	"github.com/o-lebedeva/tx-bank/pkg/errorspkg"
	"github.com/o-lebedeva/tx-bank/pkg/randompkg"
)

func randomTransaction(accountID int32) domain.Transaction {
	return domain.Transaction{
		ID:        randompkg.Int64Between(1, 1000),
		AccountID: accountID,
		Amount:    randompkg.AmountBetween(-100, 100),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	accountID := randompkg.Int32Between(1, 100)
	transactions := []domain.Transaction{
		randomTransaction(accountID),
		randomTransaction(accountID),
	}

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, got []domain.Transaction)
		wantError     error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					List(gomock.Any()).
					Times(1).
					Return(transactions, nil)
			},
			checkResponse: func(t *testing.T, got []domain.Transaction) {
				if !cmp.Equal(got, transactions) {
					t.Errorf("service.List() = %+v, want %+v", got, transactions)
				}
			},
		},
		{
			// An empty transaction log is a ErrNoTransactions failure,
			// never an empty success list.
			name: "EmptyStore",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					List(gomock.Any()).
					Times(1).
					Return([]domain.Transaction{}, nil)
			},
			wantError: domain.ErrNoTransactions,
		},
		{
			name: "RepoErr",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					List(gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			service := New(repo, accountService)

			tc.buildStubs(repo)

			got, err := service.List(context.Background())
			if err != nil {
				if err == tc.wantError {
					return
				}

				t.Fatalf("service.List() got error %v, want %v", err, tc.wantError)
			}

			tc.checkResponse(t, got)
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	transaction := randomTransaction(randompkg.Int32Between(1, 100))

	testCases := []struct {
		name          string
		id            int64
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, got domain.Transaction)
		wantError     error
	}{
		{
			name: "OK",
			id:   transaction.ID,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(transaction.ID)).
					Times(1).
					Return(transaction, nil)
			},
			checkResponse: func(t *testing.T, got domain.Transaction) {
				if !cmp.Equal(got, transaction) {
					t.Errorf("service.Get() = %+v, want %+v", got, transaction)
				}
			},
		},
		{
			name: "InvalidID",
			id:   0,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrInvalidID,
		},
		{
			name: "NegativeID",
			id:   -5,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrInvalidID,
		},
		{
			name: "NotFound",
			id:   transaction.ID + 1,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(transaction.ID+1)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrTransactionNotFound)
			},
			wantError: domain.ErrTransactionNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			service := New(repo, accountService)

			tc.buildStubs(repo)

			got, err := service.Get(context.Background(), tc.id)
			if err != nil {
				if err == tc.wantError {
					return
				}

				t.Fatalf("service.Get(ctx, %v) got error %v, want %v", tc.id, err, tc.wantError)
			}

			tc.checkResponse(t, got)
		})
	}
}

// TestGetIdempotence pins that two reads without an intervening write return
// identical results.
func TestGetIdempotence(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo, NewMockAccountService(ctrl))

	transaction := randomTransaction(randompkg.Int32Between(1, 100))

	repo.EXPECT().
		Get(gomock.Any(), gomock.Eq(transaction.ID)).
		Times(2).
		Return(transaction, nil)

	first, err := service.Get(context.Background(), transaction.ID)
	if err != nil {
		t.Fatalf("service.Get(ctx, %v) returned error: %v", transaction.ID, err)
	}

	second, err := service.Get(context.Background(), transaction.ID)
	if err != nil {
		t.Fatalf("service.Get(ctx, %v) returned error: %v", transaction.ID, err)
	}

	if !cmp.Equal(first, second) {
		t.Errorf("repeated service.Get() differ: %+v vs %+v", first, second)
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	accountID := randompkg.Int32Between(1, 100)

	testCases := []struct {
		name          string
		arg           domain.CreateTransactionParams
		buildStubs    func(repo *MockRepo, accountService *MockAccountService)
		checkResponse func(t *testing.T, got domain.TransactionTxResult)
		wantError     error
	}{
		{
			name: "OKDebitWithinBalance",
			arg:  domain.CreateTransactionParams{AccountID: accountID, Amount: "-60"},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().
					Exists(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(true, nil)
				accountService.EXPECT().
					GetBalance(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return("100", nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(domain.CreateTransactionParams{AccountID: accountID, Amount: "-60"})).
					Times(1).
					Return(domain.TransactionTxResult{
						Transaction: domain.Transaction{ID: 1, AccountID: accountID, Amount: "-60"},
						Account:     domain.Account{ID: accountID, Balance: "40"},
					}, nil)
			},
			checkResponse: func(t *testing.T, got domain.TransactionTxResult) {
				if got.Transaction.ID == 0 {
					t.Error("persisted transaction has no assigned id")
				}

				if got.Account.Balance != "40" {
					t.Errorf("account balance = %v, want 40", got.Account.Balance)
				}
			},
		},
		{
			// Credits always pass regardless of the current balance.
			name: "OKCreditOnZeroBalance",
			arg:  domain.CreateTransactionParams{AccountID: accountID, Amount: "50"},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().
					Exists(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(true, nil)
				accountService.EXPECT().
					GetBalance(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return("0", nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(domain.CreateTransactionParams{AccountID: accountID, Amount: "50"})).
					Times(1).
					Return(domain.TransactionTxResult{
						Transaction: domain.Transaction{ID: 2, AccountID: accountID, Amount: "50"},
						Account:     domain.Account{ID: accountID, Balance: "50"},
					}, nil)
			},
			checkResponse: func(t *testing.T, got domain.TransactionTxResult) {
				if got.Transaction.Amount != "50" {
					t.Errorf("transaction amount = %v, want 50", got.Transaction.Amount)
				}
			},
		},
		{
			// Debit that exactly zeroes the balance is admissible.
			name: "OKDebitToZero",
			arg:  domain.CreateTransactionParams{AccountID: accountID, Amount: "-100"},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().
					Exists(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(true, nil)
				accountService.EXPECT().
					GetBalance(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return("100", nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionTxResult{
						Transaction: domain.Transaction{ID: 3, AccountID: accountID, Amount: "-100"},
						Account:     domain.Account{ID: accountID, Balance: "0"},
					}, nil)
			},
			checkResponse: func(t *testing.T, got domain.TransactionTxResult) {
				if got.Account.Balance != "0" {
					t.Errorf("account balance = %v, want 0", got.Account.Balance)
				}
			},
		},
		{
			name: "EmptyDraft",
			arg:  domain.CreateTransactionParams{},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidTransaction,
		},
		{
			name: "MissingAmount",
			arg:  domain.CreateTransactionParams{AccountID: accountID},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidTransaction,
		},
		{
			name: "UnparsableAmount",
			arg:  domain.CreateTransactionParams{AccountID: accountID, Amount: "ten"},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidAmount,
		},
		{
			// The existence check precedes any balance read.
			name: "AccountNotExists",
			arg:  domain.CreateTransactionParams{AccountID: 9999, Amount: "10"},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().
					Exists(gomock.Any(), gomock.Eq(int32(9999))).
					Times(1).
					Return(false, nil)
				accountService.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrAccountNotExists,
		},
		{
			name: "InsufficientFunds",
			arg:  domain.CreateTransactionParams{AccountID: accountID, Amount: "-150"},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().
					Exists(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(true, nil)
				accountService.EXPECT().
					GetBalance(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return("100", nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInsufficientFunds,
		},
		{
			name: "ExistsErr",
			arg:  domain.CreateTransactionParams{AccountID: accountID, Amount: "10"},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().
					Exists(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(false, errorspkg.ErrInternal)
				accountService.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: errorspkg.ErrInternal,
		},
		{
			name: "GetBalanceErr",
			arg:  domain.CreateTransactionParams{AccountID: accountID, Amount: "10"},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().
					Exists(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(true, nil)
				accountService.EXPECT().
					GetBalance(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return("", errorspkg.ErrInternal)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: errorspkg.ErrInternal,
		},
		{
			// A concurrent debit can drain the account between the
			// projection and the commit; the store's own check fires then.
			name: "InsufficientFundsAtCommit",
			arg:  domain.CreateTransactionParams{AccountID: accountID, Amount: "-60"},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().
					Exists(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(true, nil)
				accountService.EXPECT().
					GetBalance(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return("100", nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionTxResult{}, domain.ErrInsufficientFunds)
			},
			wantError: domain.ErrInsufficientFunds,
		},
		{
			name: "RepoCreateErr",
			arg:  domain.CreateTransactionParams{AccountID: accountID, Amount: "10"},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().
					Exists(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(true, nil)
				accountService.EXPECT().
					GetBalance(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return("100", nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionTxResult{}, errorspkg.ErrInternal)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			service := New(repo, accountService)

			tc.buildStubs(repo, accountService)

			got, err := service.Create(context.Background(), tc.arg)
			if err != nil {
				if err == tc.wantError {
					return
				}

				t.Fatalf("service.Create(ctx, %+v) got error %v, want %v", tc.arg, err, tc.wantError)
			}

			tc.checkResponse(t, got)
		})
	}
}
