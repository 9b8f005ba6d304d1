package auth

import (
	"time"

	"github.com/google/uuid"
)

// Roles assignable to API users. Superusers carry no role.
const (
	RolePlanner = "planner" // full read/write access
	RoleViewer  = "viewer"  // read-only access
)

// User represents a row in the users table.
type User struct {
	ID           uuid.UUID
	Name         string
	Role         *string // nil for superuser
	IsSuperuser  bool
	ApiKeyPrefix string
	ApiKeyHash   string
	CreatedAt    time.Time
	RevokedAt    *time.Time
}

// Identity is stored in the request context after authentication.
type Identity struct {
	UserID      uuid.UUID
	UserName    string
	Role        *string // nil for superuser
	IsSuperuser bool
}

// CanWrite reports whether the identity may mutate resources.
func (i *Identity) CanWrite() bool {
	return i.IsSuperuser || (i.Role != nil && *i.Role == RolePlanner)
}
