package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnauthorizedKinds(t *testing.T) {
	kinds := []error{
		ErrMalformedHeader,
		ErrTokenNotFound,
		ErrBadSignature,
		ErrOrphanedToken,
		ErrTokenExpired,
		ErrUserVanished,
		ErrInvalidCredentials,
	}
	for _, k := range kinds {
		assert.True(t, errors.Is(k, ErrorUnauthorized), k.Error())
		assert.False(t, errors.Is(k, ErrorValidation), k.Error())
	}
}

func TestValidationKinds(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidUsername, ErrorValidation)
	assert.ErrorIs(t, ErrInvalidEmail, ErrorValidation)
	assert.NotErrorIs(t, ErrInvalidEmail, ErrInvalidUsername)
}

func TestStoreUnavailableIsInternal(t *testing.T) {
	assert.ErrorIs(t, ErrStoreUnavailable, ErrorInternal)
	assert.NotErrorIs(t, ErrStoreUnavailable, ErrorUnauthorized)
}
