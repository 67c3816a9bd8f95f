package middle

import (
	"net/http"

	"uptime-monitor/pkg/apperror"
	"uptime-monitor/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SamePhone only lets a request through when the URL parameter param equals
// the authenticated caller's phone. It must run after AuthMiddleware.Handle
// and after routing, e.g. via chi's With.
func SamePhone(param string) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			reqID := middleware.GetReqID(ctx)

			claims, ok := UserFromContext(ctx)
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, "user is unauthorised")
				return
			}

			if chi.URLParam(r, param) != claims.Phone() {
				utils.WriteError(w, http.StatusForbidden, reqID, apperror.Forbidden, "user do not have access")
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
