package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user exists for the given id.
var ErrUserNotFound = errors.New("user not found")

// ErrUserRevoked is returned when the targeted user's key was already revoked.
var ErrUserRevoked = errors.New("user is revoked")

// UserRepository stores API users. FindByPrefix narrows the bcrypt
// comparison in Service.Authenticate to users sharing a key prefix, and
// CountAll backs the superuser bootstrap check.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByPrefix(ctx context.Context, prefix string) ([]User, error)
	List(ctx context.Context) ([]User, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int, error)
}
