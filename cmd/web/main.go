package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskpilot/taskpilot-web/config"
	"github.com/taskpilot/taskpilot-web/internal/bootstrap"
	"github.com/taskpilot/taskpilot-web/internal/gateway"
	"github.com/taskpilot/taskpilot-web/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.OpenSessionStore(ctx, bootstrap.StoreOptions{
		Session: cfg.Session,
		Redis:   cfg.Redis,
	})
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer closeStore()

	client := gateway.New(gateway.Options{
		BaseURL:     cfg.Upstream.BaseURL,
		Timeout:     cfg.Upstream.Timeout,
		ReadRetries: cfg.Upstream.ReadRetries,
		RPS:         cfg.Upstream.RPS,
		Burst:       cfg.Upstream.Burst,
	})

	r, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "taskpilot-web",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Location:       loc,
		Gateway:        client,
		Store:          store,
		Sessions: session.NewManager(store, session.Options{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.CookieSecure,
		}),
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s (store=%s, upstream=%s)", cfg.Server.Port, cfg.Session.Store, cfg.Upstream.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
