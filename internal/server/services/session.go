package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/dbx"
	"github.com/dmitrijs2005/habitauth/internal/logging"
	"github.com/dmitrijs2005/habitauth/internal/server/auth"
	"github.com/dmitrijs2005/habitauth/internal/server/config"
	"github.com/dmitrijs2005/habitauth/internal/server/models"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/repomanager"
)

// SessionService is the entry point used by the transport:
//   - Register: create a user and its first token in one transaction
//   - Login: check the password and return the current or a new token
//   - Logout: revoke a token by deleting its record
//   - ResolveSession, GetProfile: authenticate a raw authorization value
//   - CheckExpiry: report the embedded expiry of a stored token
//
// Store failures never leave this type raw; they are logged and replaced by
// common.ErrStoreUnavailable.
type SessionService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	credentials  CredentialChecker
	hasher       PasswordHasher
	issuer       *TokenIssuer
	validator    *TokenValidator
	resolver     *SessionResolver
	storeTimeout time.Duration
	log          logging.Logger
}

// NewSessionService wires the session components from server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *SessionService {
	log = log.With("module", "sessions")
	codec := auth.NewJWTCodec([]byte(cfg.SecretKey))

	validator := NewTokenValidator(m.Tokens(db), m.Users(db), codec, cfg.EnforceTokenExpiry, log)

	return &SessionService{
		db:           db,
		repomanager:  m,
		credentials:  auth.NewCredentialVerifier(cfg.InvalidUsernameCharacters),
		hasher:       auth.NewBcryptHasher(cfg.BcryptCost),
		issuer:       NewTokenIssuer(codec, cfg.TokenTTL),
		validator:    validator,
		resolver:     NewSessionResolver(validator, m.Users(db)),
		storeTimeout: cfg.StoreTimeout,
		log:          log,
	}
}

// Register validates the input, then creates the user and its first token
// atomically. A taken username or email yields common.ErrorAlreadyExists.
func (s *SessionService) Register(ctx context.Context, username, password, email string) (*models.Token, error) {
	if err := s.credentials.Verify(username, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrEmptyPassword) {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return nil, s.fail(ctx, "register", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var token *models.Token
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		usersRepo := s.repomanager.Users(tx)

		_, err := usersRepo.FindByUsernameOrEmail(ctx, username, email)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching user: %w", err)
		}

		user, err := usersRepo.Create(ctx, &models.User{
			ID:             uuid.NewString(),
			UserName:       username,
			Email:          email,
			HashedPassword: hash,
		})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		token, err = s.issuer.IssueForNewUser(ctx, s.repomanager.Tokens(tx), user.ID)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}

	s.log.Info(ctx, "user registered", "user_id", token.UserID, "username", username)
	return token, nil
}

// Login returns the user's current token while it is fresh, or a new one.
// Unknown users and wrong passwords both yield common.ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, username, password string) (*models.Token, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.fail(ctx, "login", err)
	}

	if !s.hasher.Check(password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	var token *models.Token
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		token, err = s.issuer.IssueOrReuse(ctx, s.repomanager.Tokens(tx), user.ID)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return token, nil
}

// Logout deletes the token carried by rawAuth. Revoking a token that is not
// stored is not an error.
func (s *SessionService) Logout(ctx context.Context, rawAuth string) error {
	token, ok := strings.CutPrefix(rawAuth, common.BearerPrefix)
	if !ok {
		return common.ErrMalformedHeader
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repomanager.Tokens(s.db).Delete(ctx, token); err != nil {
		return s.fail(ctx, "logout", err)
	}
	return nil
}

func (s *SessionService) ResolveSession(ctx context.Context, rawAuth string) (*models.Principal, error) {
	session, err := s.resolve(ctx, rawAuth)
	if err != nil {
		return nil, err
	}
	return &session.Principal, nil
}

// GetProfile returns the user record behind rawAuth.
func (s *SessionService) GetProfile(ctx context.Context, rawAuth string) (*models.User, error) {
	session, err := s.resolve(ctx, rawAuth)
	if err != nil {
		return nil, err
	}
	return session.User, nil
}

// CheckExpiry reports the expiry embedded in a stored token, including one
// that is already in the past.
func (s *SessionService) CheckExpiry(ctx context.Context, rawAuth string) (time.Time, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	payload, err := s.validator.Decode(ctx, rawAuth)
	if err != nil {
		return time.Time{}, s.fail(ctx, "check expiry", err)
	}
	return payload.ExpiresAt, nil
}

func (s *SessionService) resolve(ctx context.Context, rawAuth string) (*Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	session, err := s.resolver.Resolve(ctx, rawAuth)
	if err != nil {
		return nil, s.fail(ctx, "resolve session", err)
	}
	return session, nil
}

func (s *SessionService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// fail logs non-domain failures and returns the caller-facing error.
func (s *SessionService) fail(ctx context.Context, op string, err error) error {
	if isDomainError(err) {
		return err
	}
	s.log.Error(ctx, "operation failed", "op", op, "error", err)
	return publicError(err)
}
