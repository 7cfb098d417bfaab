package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/dbx"
	"github.com/dmitrijs2005/habitauth/internal/logging"
	"github.com/dmitrijs2005/habitauth/internal/server/config"
	"github.com/dmitrijs2005/habitauth/internal/server/models"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/habits"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.BcryptCost = 4
	return cfg
}

func newSessionService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	return NewSessionService(db, rm, cfg, logging.Nop())
}

// memStore is an in-memory users and tokens store keyed like the real tables:
// unique usernames and emails, one token row per user, unique token values.
type memStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	tokens map[string]*models.Token

	findUserErr  error
	createErr    error
	getByIDErr   error
	findTokenErr error
	upsertErr    error
	deleteErr    error

	// blockFindToken makes FindByToken wait for context cancellation.
	blockFindToken bool

	upserts int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}, tokens: map[string]*models.Token{}}
}

func (m *memStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, existing := range m.users {
		if existing.UserName == u.UserName || existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	cp := *u
	cp.JoinedAt = time.Now()
	m.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memStore) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.UserName == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findUserErr != nil {
		return nil, m.findUserErr
	}
	for _, u := range m.users {
		if u.UserName == username || u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memStore) FindByUserID(ctx context.Context, userID string) (*models.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) FindByToken(ctx context.Context, token string) (*models.Token, error) {
	if m.blockFindToken {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findTokenErr != nil {
		return nil, m.findTokenErr
	}
	for _, t := range m.tokens {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memStore) Upsert(ctx context.Context, token *models.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	cp := *token
	m.tokens[cp.UserID] = &cp
	m.upserts++
	return nil
}

func (m *memStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for userID, t := range m.tokens {
		if t.Token == token {
			delete(m.tokens, userID)
		}
	}
	return nil
}

func (m *memStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for userID, t := range m.tokens {
		if !t.ExpiresAt.After(now) {
			delete(m.tokens, userID)
			n++
		}
	}
	return n, nil
}

func (m *memStore) tokenCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

type fakeRepoManager struct {
	store *memStore
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository          { return m.store }
func (m *fakeRepoManager) Tokens(db dbx.DBTX) tokens.Repository        { return m.store }
func (m *fakeRepoManager) Habits(db dbx.DBTX) habits.Repository        { return nil }
