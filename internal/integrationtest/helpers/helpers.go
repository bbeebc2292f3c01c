// Package helpers provides shared database seeding helpers for integration tests.
package helpers

import (
	"context"
	"testing"

	"github.com/o-lebedeva/tx-bank/internal/accountrepo"
	"github.com/o-lebedeva/tx-bank/internal/domain"
	"github.com/o-lebedeva/tx-bank/internal/userrepo"
	"github.com/o-lebedeva/tx-bank/pkg/dbpkg"
	"github.com/o-lebedeva/tx-bank/pkg/passpkg"
	"github.com/o-lebedeva/tx-bank/pkg/randompkg"
)

// SeedUser creates random User inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
		Role:           "user",
	}

	userRepo := userrepo.NewRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccountWithBalance creates an Account with the given balance inside a test transaction.
func SeedAccountWithBalance(t *testing.T, tx dbpkg.SQLInterface, username, balance string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.Create(context.Background(), username, balance)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %v, %v) returned error: %v",
			username, balance, err)
	}

	return account
}
