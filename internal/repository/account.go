package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// AccountRepository removes a user together with everything they own.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// DeleteAccount deletes the posts of userID, then the profile, then the user in one transaction.
// Likes and comments of the deleted posts go with them; those left on other posts remain.
func (r *AccountRepository) DeleteAccount(ctx context.Context, userID string) error {
	steps := []struct {
		name  string
		query string
	}{
		{"posts", `DELETE FROM posts WHERE user_id = ?`},
		{"profile", `DELETE FROM profiles WHERE user_id = ?`},
		{"user", `DELETE FROM users WHERE id = ?`},
	}

	return WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		for _, step := range steps {
			if _, err := tx.ExecContext(ctx, step.query, userID); err != nil {
				return fmt.Errorf("deleting %s: %w", step.name, err)
			}
		}
		return nil
	})
}
