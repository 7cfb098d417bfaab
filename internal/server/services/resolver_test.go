package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/logging"
	"github.com/dmitrijs2005/habitauth/internal/server/auth"
	"github.com/dmitrijs2005/habitauth/internal/server/models"
)

// vanishingUsers finds a user once and then reports it gone.
type vanishingUsers struct {
	*memStore
	calls int
}

func (v *vanishingUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	v.calls++
	if v.calls > 1 {
		return nil, common.ErrorNotFound
	}
	return v.memStore.GetUserByID(ctx, id)
}

func seedSession(t *testing.T, store *memStore, codec *auth.JWTCodec) string {
	t.Helper()
	store.users["u1"] = &models.User{ID: "u1", UserName: "alice", Email: "alice@x.com"}
	tok, err := codec.Sign("u1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	store.tokens["u1"] = &models.Token{UserID: "u1", Token: tok, ExpiresAt: time.Now().Add(time.Hour)}
	return common.BearerPrefix + tok
}

func TestSessionResolver_Resolve(t *testing.T) {
	store := newMemStore()
	codec := auth.NewJWTCodec([]byte("k"))
	raw := seedSession(t, store, codec)

	r := NewSessionResolver(NewTokenValidator(store, store, codec, false, logging.Nop()), store)

	sess, err := r.Resolve(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.Principal.UserID)
	assert.Equal(t, "alice", sess.Principal.UserName)
	assert.Equal(t, "alice@x.com", sess.User.Email)
}

func TestSessionResolver_UserVanished(t *testing.T) {
	store := newMemStore()
	codec := auth.NewJWTCodec([]byte("k"))
	raw := seedSession(t, store, codec)

	users := &vanishingUsers{memStore: store}
	r := NewSessionResolver(NewTokenValidator(store, users, codec, false, logging.Nop()), users)

	_, err := r.Resolve(context.Background(), raw)
	assert.ErrorIs(t, err, common.ErrUserVanished)
	assert.Equal(t, 2, users.calls)
}

func TestSessionResolver_PropagatesValidatorErrors(t *testing.T) {
	store := newMemStore()
	codec := auth.NewJWTCodec([]byte("k"))
	r := NewSessionResolver(NewTokenValidator(store, store, codec, false, logging.Nop()), store)

	_, err := r.Resolve(context.Background(), "Bearer missing")
	assert.Equal(t, common.ErrTokenNotFound, err)
}
