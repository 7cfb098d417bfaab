// Package services contains server-side business logic: issuing, validating
// and revoking session tokens, and resolving them into authenticated users.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/server/auth"
)

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Sign(subject string, expiresAt time.Time) (string, error)
	Verify(token string) (*auth.Payload, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// CredentialChecker validates registration input.
type CredentialChecker interface {
	Verify(username, email string) error
}

// isDomainError reports whether err is a caller-facing failure that crosses
// the service boundary unchanged.
func isDomainError(err error) bool {
	return errors.Is(err, common.ErrorValidation) ||
		errors.Is(err, common.ErrorUnauthorized) ||
		errors.Is(err, common.ErrorAlreadyExists)
}

// publicError converts an internal failure to the error returned to callers.
// Deadline and cancellation stay matchable so the transport can report them
// as retryable.
func publicError(err error) error {
	switch {
	case isDomainError(err):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, context.DeadlineExceeded)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, context.Canceled)
	case errors.Is(err, errSign):
		return common.ErrorInternal
	default:
		return common.ErrStoreUnavailable
	}
}
