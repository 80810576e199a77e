package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"isuride/backend/services/owner-service/internal/models"
	redisstore "isuride/backend/services/owner-service/internal/redis"
	"isuride/backend/services/owner-service/internal/repository"
)

type fakeOwnerRepo struct {
	owners map[string]*models.Owner
	calls  int
	err    error
}

func (f *fakeOwnerRepo) GetByAccessToken(_ context.Context, token string) (*models.Owner, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, o := range f.owners {
		if o.AccessToken == token {
			return o, nil
		}
	}
	return nil, repository.ErrOwnerNotFound
}

func (f *fakeOwnerRepo) GetByID(_ context.Context, id string) (*models.Owner, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if o, ok := f.owners[id]; ok {
		return o, nil
	}
	return nil, repository.ErrOwnerNotFound
}

func newOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: map[string]*models.Owner{
		"owner-1": {ID: "owner-1", Name: "Fleet", AccessToken: "tok-1"},
	}}
}

func TestAuthenticateSessionWithoutCache(t *testing.T) {
	repo := newOwnerRepo()
	svc := NewOwnerAuthService(repo, nil, nil, zap.NewNop())

	owner, err := svc.AuthenticateSession(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner.ID)

	_, err = svc.AuthenticateSession(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrOwnerNotFound)

	_, err = svc.AuthenticateSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrOwnerNotFound)
	assert.Equal(t, 2, repo.calls)
}

func TestAuthenticateSessionUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := newOwnerRepo()
	svc := NewOwnerAuthService(repo, redisstore.NewOwnerSessionStore(client, time.Minute), nil, zap.NewNop())

	for i := 0; i < 3; i++ {
		owner, err := svc.AuthenticateSession(context.Background(), "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "owner-1", owner.ID)
	}
	assert.Equal(t, 1, repo.calls)
	assert.True(t, mr.Exists(redisstore.Key("tok-1")))
}

func TestAuthenticateSessionFallsBackWhenCacheDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	repo := newOwnerRepo()
	svc := NewOwnerAuthService(repo, redisstore.NewOwnerSessionStore(client, time.Minute), nil, zap.NewNop())

	owner, err := svc.AuthenticateSession(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner.ID)
}

func TestAuthenticateSessionStorageError(t *testing.T) {
	boom := errors.New("db down")
	repo := newOwnerRepo()
	repo.err = boom

	_, err := NewOwnerAuthService(repo, nil, nil, zap.NewNop()).AuthenticateSession(context.Background(), "tok-1")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrOwnerNotFound)
}

func TestAuthenticateBearer(t *testing.T) {
	tokens := NewTokenService("secret", time.Minute)
	svc := NewOwnerAuthService(newOwnerRepo(), nil, tokens, zap.NewNop())

	signed, err := tokens.GenerateToken("owner-1")
	require.NoError(t, err)

	owner, err := svc.AuthenticateBearer(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner.ID)

	ghost, err := tokens.GenerateToken("owner-404")
	require.NoError(t, err)
	_, err = svc.AuthenticateBearer(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrOwnerNotFound)

	_, err = svc.AuthenticateBearer(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestAuthenticateBearerDisabled(t *testing.T) {
	svc := NewOwnerAuthService(newOwnerRepo(), nil, nil, zap.NewNop())
	_, err := svc.AuthenticateBearer(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrBearerDisabled)
}
