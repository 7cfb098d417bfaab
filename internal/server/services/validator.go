package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/logging"
	"github.com/dmitrijs2005/habitauth/internal/server/auth"
	"github.com/dmitrijs2005/habitauth/internal/server/models"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/users"
)

// TokenValidator resolves a raw authorization value to a Principal.
//
// Revocation is checked by store presence only. A stored token whose embedded
// expiry has passed is still accepted unless enforceExpiry is set.
type TokenValidator struct {
	tokens        tokens.Repository
	users         users.Repository
	codec         TokenCodec
	enforceExpiry bool
	now           func() time.Time
	log           logging.Logger
}

func NewTokenValidator(t tokens.Repository, u users.Repository, codec TokenCodec, enforceExpiry bool, log logging.Logger) *TokenValidator {
	return &TokenValidator{
		tokens:        t,
		users:         u,
		codec:         codec,
		enforceExpiry: enforceExpiry,
		now:           time.Now,
		log:           log,
	}
}

func (v *TokenValidator) Validate(ctx context.Context, raw string) (*models.Principal, error) {
	payload, err := v.Decode(ctx, raw)
	if err != nil {
		return nil, err
	}

	if v.enforceExpiry && !payload.ExpiresAt.After(v.now()) {
		return nil, common.ErrTokenExpired
	}

	user, err := v.users.GetUserByID(ctx, payload.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrOrphanedToken
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	return &models.Principal{UserID: user.ID, UserName: user.UserName, ExpiresAt: payload.ExpiresAt}, nil
}

// Decode runs the header, store and signature checks and returns the verified
// payload without looking the subject up. Expiry is reported, never enforced.
func (v *TokenValidator) Decode(ctx context.Context, raw string) (*auth.Payload, error) {
	token, ok := strings.CutPrefix(raw, common.BearerPrefix)
	if !ok {
		return nil, common.ErrMalformedHeader
	}

	if _, err := v.tokens.FindByToken(ctx, token); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error searching token: %w", err)
	}

	payload, err := v.codec.Verify(token)
	if err != nil {
		v.log.Warn(ctx, "stored token failed verification", "error", err)
		return nil, common.ErrBadSignature
	}

	return payload, nil
}
