// Package tokens declares the server-side repository contract for session
// token records and its PostgreSQL implementation.
package tokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/habitauth/internal/server/models"
)

// Repository stores at most one token record per user.
type Repository interface {
	// FindByUserID returns the user's current token record or
	// common.ErrorNotFound.
	FindByUserID(ctx context.Context, userID string) (*models.Token, error)

	// FindByToken looks a record up by exact token value or returns
	// common.ErrorNotFound.
	FindByToken(ctx context.Context, token string) (*models.Token, error)

	// Upsert inserts the record or replaces the user's existing one.
	Upsert(ctx context.Context, token *models.Token) error

	// Delete removes a record by token value. Deleting an unknown token is
	// not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes every record whose expiry is at or before now
	// and reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
