// Package users declares the server-side repository contract for user
// accounts and its PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/habitauth/internal/server/models"
)

// Repository persists user accounts. Lookups return common.ErrorNotFound
// when no row matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// FindByUsernameOrEmail returns any user holding either identifier.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
}
