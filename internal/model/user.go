package model

import "time"

// Role values stored in the `user_roles` table.  Admin is required for
// the availability updater and movie management endpoints; every account
// implicitly holds the user role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an application account as stored in the `users` table.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// UserRole is a row in the `user_roles` table.  Roles are looked up from
// the table on each admin request rather than trusted from token claims,
// so a revoked admin loses access as soon as the row is deleted.
type UserRole struct {
	UserID    uint64    // user_roles.user_id
	Role      string    // user_roles.role
	CreatedAt time.Time // user_roles.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the token value is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (null if active)
	CreatedAt time.Time  // refresh_tokens.created_at
}
