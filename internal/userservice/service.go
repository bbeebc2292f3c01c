// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/o-lebedeva/tx-bank/internal/domain"
	"github.com/o-lebedeva/tx-bank/pkg/errorspkg"
	"github.com/o-lebedeva/tx-bank/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, id int32) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// NewUserWithoutPassword returns the user with credential data removed.
// Every user record leaving the service passes through here.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Create creates and returns a user without credential data.
func (s *Service) Create(ctx context.Context, username, password, fullname, email string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       fullname,
		Email:          email,
		Role:           "user",
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	return NewUserWithoutPassword(gotUser), nil
}

// List returns all users without credential data.
//
// An empty user store is an error, not a valid empty result.
func (s *Service) List(ctx context.Context) ([]domain.UserWithoutPassword, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, domain.ErrNoUsers
	}

	result := make([]domain.UserWithoutPassword, 0, len(users))
	for _, u := range users {
		result = append(result, NewUserWithoutPassword(u))
	}

	return result, nil
}

// Get returns the user with the given id without credential data.
func (s *Service) Get(ctx context.Context, id int32) (domain.UserWithoutPassword, error) {
	if id < 1 {
		return domain.UserWithoutPassword{}, domain.ErrInvalidID
	}

	gotUser, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return NewUserWithoutPassword(gotUser), nil
}

// GetByCredentials returns the user matching the username/password pair,
// without credential data. A missing user and a wrong password are reported
// identically so the caller cannot probe for existing usernames.
func (s *Service) GetByCredentials(ctx context.Context, username, password string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	if username == "" || password == "" {
		return result, domain.ErrInvalidCredentials
	}

	gotUser, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return result, domain.ErrWrongCredentials
		}

		return result, err
	}

	if err := passpkg.Check(password, gotUser.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return result, domain.ErrWrongCredentials
	}

	return NewUserWithoutPassword(gotUser), nil
}
