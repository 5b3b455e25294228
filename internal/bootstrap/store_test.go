package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot/taskpilot-web/config"
	"github.com/taskpilot/taskpilot-web/internal/session"
)

func TestOpenSessionStore_Memory(t *testing.T) {
	store, closeFn, err := OpenSessionStore(context.Background(), StoreOptions{
		Session: config.SessionConfig{Store: "memory", TTL: time.Hour},
	})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &session.MemoryStore{}, store)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpenSessionStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	store, closeFn, err := OpenSessionStore(context.Background(), StoreOptions{
		Session: config.SessionConfig{Store: "redis", TTL: time.Hour},
		Redis:   config.RedisConfig{Addr: mr.Addr()},
	})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &session.RedisStore{}, store)
	require.NoError(t, store.Save(context.Background(), &session.Session{ID: "s1", Token: "t"}))
	assert.True(t, mr.Exists("taskpilot:session:s1"))
}

func TestOpenSessionStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := OpenSessionStore(context.Background(), StoreOptions{
		Session: config.SessionConfig{Store: "redis"},
		Redis:   config.RedisConfig{Addr: addr},
		PingTO:  200 * time.Millisecond,
	})
	assert.Error(t, err)
}

func TestOpenSessionStore_Unknown(t *testing.T) {
	_, _, err := OpenSessionStore(context.Background(), StoreOptions{
		Session: config.SessionConfig{Store: "disk"},
	})
	assert.Error(t, err)
}

func TestOpenSessionStore_BadSweepSpec(t *testing.T) {
	_, _, err := OpenSessionStore(context.Background(), StoreOptions{
		Session:   config.SessionConfig{Store: "memory"},
		SweepSpec: "whenever",
	})
	assert.Error(t, err)
}
