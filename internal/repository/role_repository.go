package repository

import (
	"context"
	"database/sql"
)

// RoleRepo reads the `user_roles` table.  Admin access is decided from
// this table on every admin request, not from token claims, so revoking
// a role takes effect without waiting for tokens to expire.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// HasRole reports whether the user holds the named role.
func (r *RoleRepo) HasRole(ctx context.Context, userID uint64, role string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id=? AND role=?)",
		userID, role).Scan(&exists)
	return exists, err
}

// Grant inserts a role for the user; granting an already-held role is a
// no-op thanks to the unique (user_id, role) key.
func (r *RoleRepo) Grant(ctx context.Context, userID uint64, role string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO user_roles (user_id, role) VALUES (?,?)",
		userID, role)
	return err
}
