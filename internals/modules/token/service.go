package token

import (
	"context"
	"time"

	"uptime-monitor/internals/modules/user"
	"uptime-monitor/internals/security"
	"uptime-monitor/pkg/apperror"
)

type Authenticator interface {
	Authenticate(ctx context.Context, phone, password string) (user.User, error)
}

type Service struct {
	repo     *Repository
	users    Authenticator
	tokenSvc *security.TokenService
	now      func() time.Time
}

func NewService(repo *Repository, users Authenticator, tokenSvc *security.TokenService) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		tokenSvc: tokenSvc,
		now:      time.Now,
	}
}

// Create checks the credentials and issues a token stored under its jti.
func (s *Service) Create(ctx context.Context, phone, password string) (IssuedToken, error) {
	u, err := s.users.Authenticate(ctx, phone, password)
	if err != nil {
		return IssuedToken{}, err
	}

	access, err := s.tokenSvc.GenerateAccessToken(u.Phone)
	if err != nil {
		return IssuedToken{}, err
	}

	t := Token{
		ID:      access.ID,
		Phone:   u.Phone,
		Expires: access.ExpiresAt.UnixMilli(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return IssuedToken{}, err
	}

	return IssuedToken{Token: t, AccessToken: access.Token}, nil
}

// Get returns the token record when it belongs to phone.
func (s *Service) Get(ctx context.Context, phone, id string) (Token, error) {
	const op string = "service.token.get"

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return Token{}, err
	}
	if t.Phone != phone {
		return Token{}, &apperror.Error{Kind: apperror.Forbidden, Op: op, Message: "token belongs to another user"}
	}
	return t, nil
}

// Delete revokes the token.
func (s *Service) Delete(ctx context.Context, phone, id string) error {
	if _, err := s.Get(ctx, phone, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Verify validates a bearer token and requires its record to still exist
// and be unexpired, so revoked tokens stop working immediately.
func (s *Service) Verify(ctx context.Context, accessToken string) (*security.RequestClaims, error) {
	const op string = "service.token.verify"

	claims, err := s.tokenSvc.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.Get(ctx, claims.TokenID())
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return nil, &apperror.Error{Kind: apperror.Unauthorised, Op: op, Message: "token revoked"}
		}
		return nil, err
	}
	if t.Phone != claims.Phone() || t.Expired(s.now()) {
		return nil, &apperror.Error{Kind: apperror.Unauthorised, Op: op, Message: "token expired"}
	}

	return claims, nil
}
