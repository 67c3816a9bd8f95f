package security

import (
	"time"

	"uptime-monitor/config"
	"uptime-monitor/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
)

type TokenService struct {
	secret    string
	expiryMin int
	now       func() time.Time
}

func NewTokenService(authCfg *config.AuthConfig) *TokenService {
	return &TokenService{
		secret:    authCfg.Secret,
		expiryMin: authCfg.ExpiryMin,
		now:       time.Now,
	}
}

// AccessToken is a signed token together with the claims it carries.
type AccessToken struct {
	ID        string
	Phone     string
	Token     string
	ExpiresAt time.Time
}

// GenerateAccessToken signs a token for phone with a fresh jti.
func (ts *TokenService) GenerateAccessToken(phone string) (AccessToken, error) {
	const op string = "service.token.generate_access_token"

	now := ts.now()
	expiryTime := now.Add(time.Duration(ts.expiryMin) * time.Minute).Truncate(time.Second)

	payload := RequestClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        NewUUID().String(),
			Subject:   phone,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiryTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signedToken, err := token.SignedString([]byte(ts.secret))
	if err != nil {
		return AccessToken{}, apperror.New(apperror.Internal, op, err)
	}

	return AccessToken{
		ID:        payload.ID,
		Phone:     phone,
		Token:     signedToken,
		ExpiresAt: expiryTime,
	}, nil
}

func (ts *TokenService) ValidateAccessToken(accessToken string) (*RequestClaims, error) {
	const op string = "service.token.validate_access_token"

	claims := &RequestClaims{}

	token, err := jwt.ParseWithClaims(
		accessToken,
		claims,
		func(t *jwt.Token) (any, error) {
			return []byte(ts.secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.now),
	)

	if err != nil || !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, &apperror.Error{
			Kind:    apperror.Unauthorised,
			Op:      op,
			Err:     err,
			Message: "invalid token",
		}
	}

	return claims, nil
}
