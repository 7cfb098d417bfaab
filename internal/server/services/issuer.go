package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/server/models"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/tokens"
)

var errSign = errors.New("error signing token")

// TokenIssuer mints session tokens and keeps at most one record per user.
// It writes through the repository it is given, so callers decide the
// transaction boundary.
type TokenIssuer struct {
	codec TokenCodec
	ttl   time.Duration
	now   func() time.Time
}

func NewTokenIssuer(codec TokenCodec, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{codec: codec, ttl: ttl, now: time.Now}
}

// IssueForNewUser always mints a fresh token for a user with no prior record.
func (i *TokenIssuer) IssueForNewUser(ctx context.Context, repo tokens.Repository, userID string) (*models.Token, error) {
	return i.mint(ctx, repo, userID)
}

// IssueOrReuse returns the user's current record unchanged while it is still
// fresh. Otherwise it mints a new token and replaces the record.
func (i *TokenIssuer) IssueOrReuse(ctx context.Context, repo tokens.Repository, userID string) (*models.Token, error) {
	existing, err := repo.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		if existing.ExpiresAt.After(i.now()) {
			return existing, nil
		}
	case errors.Is(err, common.ErrorNotFound):
	default:
		return nil, fmt.Errorf("error searching token: %w", err)
	}

	return i.mint(ctx, repo, userID)
}

func (i *TokenIssuer) mint(ctx context.Context, repo tokens.Repository, userID string) (*models.Token, error) {
	// the codec keeps whole seconds; the stored expiry must match the embedded one
	expiresAt := i.now().Add(i.ttl).Truncate(time.Second)

	value, err := i.codec.Sign(userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errSign, err)
	}

	token := &models.Token{UserID: userID, Token: value, ExpiresAt: expiresAt}
	if err := repo.Upsert(ctx, token); err != nil {
		return nil, fmt.Errorf("error saving token: %w", err)
	}
	return token, nil
}
