package domain

import (
	"errors"
	"time"
)

var (
	// ErrUsernameAlreadyExists indicates that the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrEmailAlreadyExists indicates that the user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoUsers indicates that the user store holds no records at all.
	ErrNoUsers = errors.New("no users found")
	// ErrWrongCredentials indicates that the username/password pair matched no user.
	ErrWrongCredentials = errors.New("wrong username or password")
	// ErrInvalidCredentials indicates an empty username or password in a credential lookup.
	ErrInvalidCredentials = errors.New("username and password are required")
)

// RoleAdmin marks users allowed to list all users and transactions.
const RoleAdmin = "admin"

// User holds user data including the hashed password.
type User struct {
	ID             int32     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
}

// UserWithoutPassword is User data excluding credential data.
// Every user record leaving the service boundary must be of this shape.
type UserWithoutPassword struct {
	ID        int32     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
