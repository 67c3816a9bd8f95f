package app

import (
	"net/http"
	"time"

	middle "uptime-monitor/internals/middleware"
	"uptime-monitor/internals/modules/check"
	"uptime-monitor/internals/modules/token"
	"uptime-monitor/internals/modules/user"
	"uptime-monitor/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middle.Logger(c.Logger))
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON[any](w, http.StatusOK, middleware.GetReqID(r.Context()), "ok", nil)
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Mount("/users", user.Routes(c.userHandler, c.authMW))
		v1.Mount("/tokens", token.Routes(c.tokenHandler, c.authMW))
		v1.Mount("/checks", check.Routes(c.checkHandler, c.authMW))
	})

	return r
}
