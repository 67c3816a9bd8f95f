package check

import (
	middle "uptime-monitor/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(authMW.Handle)

	r.Post("/", h.CreateCheck)
	r.Get("/{checkID}", h.GetCheck)
	r.Put("/{checkID}", h.UpdateCheck)
	r.Delete("/{checkID}", h.DeleteCheck)

	return r
}

/*
- POST: /checks -> create a check for the caller (at most checks.max_per_user)
	req auth : true
	body : CreateRequest
	resp : CheckResponse

- GET: /checks/{checkID}
- PUT: /checks/{checkID}   body : UpdateRequest
- DELETE: /checks/{checkID}
	req auth : true, caller must own the check
*/
