package auth

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dmitrijs2005/habitauth/internal/common"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CredentialVerifier checks registration input before anything is written.
type CredentialVerifier struct {
	invalidChars []string
}

// NewCredentialVerifier rejects usernames containing any of invalidChars.
func NewCredentialVerifier(invalidChars []string) *CredentialVerifier {
	return &CredentialVerifier{invalidChars: invalidChars}
}

// Verify returns common.ErrInvalidUsername or common.ErrInvalidEmail. The
// username is checked first.
func (v *CredentialVerifier) Verify(username, email string) error {
	if err := validation.Validate(username,
		validation.Required,
		validation.By(v.noInvalidCharacters),
	); err != nil {
		return common.ErrInvalidUsername
	}

	if err := validation.Validate(email,
		validation.Required,
		validation.Match(emailRegexp),
	); err != nil {
		return common.ErrInvalidEmail
	}

	return nil
}

func (v *CredentialVerifier) noInvalidCharacters(value interface{}) error {
	s, _ := value.(string)
	for _, c := range v.invalidChars {
		if strings.Contains(s, c) {
			return errors.New("contains " + c)
		}
	}
	return nil
}
