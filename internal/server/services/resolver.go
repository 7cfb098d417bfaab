package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/server/models"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/users"
)

// Session is an authenticated principal together with its full user record.
type Session struct {
	Principal models.Principal
	User      *models.User
}

// SessionResolver runs the TokenValidator and loads the owning user.
type SessionResolver struct {
	validator *TokenValidator
	users     users.Repository
}

func NewSessionResolver(v *TokenValidator, u users.Repository) *SessionResolver {
	return &SessionResolver{validator: v, users: u}
}

// Resolve propagates validator failures unchanged. A user deleted between
// validation and this lookup yields common.ErrUserVanished.
func (r *SessionResolver) Resolve(ctx context.Context, raw string) (*Session, error) {
	principal, err := r.validator.Validate(ctx, raw)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetUserByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserVanished
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return &Session{Principal: *principal, User: user}, nil
}
