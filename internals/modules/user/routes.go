package user

import (
	middle "uptime-monitor/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Register)

	owner := r.With(authMW.Handle, middle.SamePhone("phone"))
	owner.Get("/{phone}", h.GetUser)
	owner.Put("/{phone}", h.UpdateUser)
	owner.Delete("/{phone}", h.DeleteUser)

	return r
}

/*
- POST: /users -> register user
	req auth : false
	body : RegisterRequest
	resp : UserResponse

- GET: /users/{phone} -> get own profile
	req auth : true
	resp : UserResponse

- PUT: /users/{phone} -> update names and/or password
	req auth : true
	body : UpdateRequest
	resp : UserResponse

- DELETE: /users/{phone} -> delete user and all of its checks
	req auth : true
*/
