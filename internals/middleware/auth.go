package middle

/**
- Work of this file -> Auth package:
	- Validates bearer token through the token service
	- Stores claims in context
	- Exposes a helper to retrieve claims
**/

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"uptime-monitor/internals/security"
	"uptime-monitor/pkg/apperror"
	"uptime-monitor/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

type userCtxKeyType struct{}

var userCtxKey = userCtxKeyType{}

// TokenVerifier checks a bearer token, including its revocation state.
type TokenVerifier interface {
	Verify(ctx context.Context, accessToken string) (*security.RequestClaims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func (a *AuthMiddleware) Handle(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := middleware.GetReqID(ctx)

		token, err := a.extractBearerToken(r)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, reqID, apperror.Unauthorised, err.Error())
			return
		}

		claims, err := a.verifier.Verify(ctx, token)
		if err != nil {
			utils.FromAppError(w, reqID, err)
			return
		}

		newCtx := context.WithValue(ctx, userCtxKey, claims)
		next.ServeHTTP(w, r.WithContext(newCtx))
	}

	return http.HandlerFunc(fn)
}

func (*AuthMiddleware) extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")

	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid Authorization header")
	}

	return parts[1], nil
}

func UserFromContext(ctx context.Context) (*security.RequestClaims, bool) {
	claims, ok := ctx.Value(userCtxKey).(*security.RequestClaims)
	return claims, ok
}

// WithUser returns ctx carrying claims, as Handle would.
func WithUser(ctx context.Context, claims *security.RequestClaims) context.Context {
	return context.WithValue(ctx, userCtxKey, claims)
}
