package token

import (
	middle "uptime-monitor/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateToken)
	r.With(authMW.Handle).Get("/{tokenID}", h.GetToken)
	r.With(authMW.Handle).Delete("/{tokenID}", h.DeleteToken)

	return r
}

/*
- POST: /tokens -> log in
	req auth : false
	body : CreateRequest
	resp : TokenResponse with accessToken

- GET: /tokens/{tokenID}    -> token record
- DELETE: /tokens/{tokenID} -> revoke
	req auth : true, caller must own the token
*/
