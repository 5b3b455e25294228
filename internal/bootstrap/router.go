package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/taskpilot/taskpilot-web/internal/api/http"
	"github.com/taskpilot/taskpilot-web/internal/api/http/middleware"
	"github.com/taskpilot/taskpilot-web/internal/api/http/routes"
	"github.com/taskpilot/taskpilot-web/internal/gateway"
	"github.com/taskpilot/taskpilot-web/internal/session"
	"github.com/taskpilot/taskpilot-web/internal/web/render"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Location       *time.Location
	Gateway        *gateway.Client
	Store          session.Store
	Sessions       *session.Manager
	Now            func() time.Time
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())

	if len(dep.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if err := render.Install(r, dep.Location); err != nil {
		return nil, err
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.Gateway.Metrics())
	healthHandler.RegisterRoutes(r)

	routes.RegisterPages(r, routes.PageDeps{
		Gateway:  dep.Gateway,
		Sessions: dep.Sessions,
		Location: dep.Location,
		Now:      dep.Now,
	})

	return r, nil
}
