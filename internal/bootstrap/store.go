package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskpilot/taskpilot-web/config"
	"github.com/taskpilot/taskpilot-web/internal/session"
)

type StoreOptions struct {
	Session config.SessionConfig
	Redis   config.RedisConfig
	PingTO  time.Duration
	// SweepSpec is the cron spec for reclaiming expired in-memory sessions.
	SweepSpec string
}

// OpenSessionStore builds the configured session store. The returned close
// function releases whatever the store holds and is safe to call once.
func OpenSessionStore(ctx context.Context, opt StoreOptions) (session.Store, func(), error) {
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}
	if opt.SweepSpec == "" {
		opt.SweepSpec = "@every 1m"
	}

	switch opt.Session.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     opt.Redis.Addr,
			Password: opt.Redis.Password,
			DB:       opt.Redis.DB,
		})

		pctx, cancel := context.WithTimeout(ctx, opt.PingTO)
		defer cancel()

		if err := client.Ping(pctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return session.NewRedisStore(client, opt.Session.TTL), func() { _ = client.Close() }, nil

	case "memory", "":
		store := session.NewMemoryStore(opt.Session.TTL)
		sweeper, err := store.StartSweeper(opt.SweepSpec)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { <-sweeper.Stop().Done() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", opt.Session.Store)
	}
}
