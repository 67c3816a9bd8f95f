package user

import (
	"context"
	"slices"
	"strings"
	"sync"

	"uptime-monitor/internals/security"
	"uptime-monitor/pkg/apperror"

	"github.com/rs/zerolog"
)

// CheckDeleter removes check records owned by a deleted user.
type CheckDeleter interface {
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   *Repository
	checks CheckDeleter
	// serialises read-modify-write of users' check lists
	mu     sync.Mutex
	logger *zerolog.Logger
}

func NewService(repo *Repository, checks CheckDeleter, logger *zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		checks: checks,
		logger: logger,
	}
}

func (s *Service) Register(ctx context.Context, data CreateUserCmd) (User, error) {
	const op string = "service.user.register"

	passwordHash, err := security.HashPassword(data.Password)
	if err != nil {
		return User{}, apperror.New(apperror.Internal, op, err).WithMessage("could not hash the password")
	}

	u := User{
		Phone:          strings.TrimSpace(data.Phone),
		FirstName:      strings.TrimSpace(data.FirstName),
		LastName:       strings.TrimSpace(data.LastName),
		HashedPassword: passwordHash,
		TosAgreement:   data.TosAgreement,
		Checks:         []string{},
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if apperror.IsKind(err, apperror.AlreadyExists) {
			return User{}, apperror.New(apperror.AlreadyExists, op, err).
				WithMessage("a user with that phone number already exists")
		}
		return User{}, err
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, phone string) (User, error) {
	return s.repo.Get(ctx, phone)
}

// Authenticate returns the user when password matches the stored hash.
func (s *Service) Authenticate(ctx context.Context, phone, password string) (User, error) {
	const op string = "service.user.authenticate"

	u, err := s.repo.Get(ctx, phone)
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return User{}, &apperror.Error{Kind: apperror.Unauthorised, Op: op, Message: "invalid phone or password"}
		}
		return User{}, err
	}

	ok, err := security.ComparePassword(password, u.HashedPassword)
	if err != nil {
		return User{}, apperror.New(apperror.Internal, op, err)
	}
	if !ok {
		return User{}, &apperror.Error{Kind: apperror.Unauthorised, Op: op, Message: "invalid phone or password"}
	}

	return u, nil
}

func (s *Service) Update(ctx context.Context, phone string, data UpdateUserCmd) (User, error) {
	const op string = "service.user.update"

	if data.Empty() {
		return User{}, &apperror.Error{Kind: apperror.InvalidInput, Op: op, Message: "nothing to update"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.repo.Get(ctx, phone)
	if err != nil {
		return User{}, err
	}

	if data.FirstName != nil {
		u.FirstName = strings.TrimSpace(*data.FirstName)
	}
	if data.LastName != nil {
		u.LastName = strings.TrimSpace(*data.LastName)
	}
	if data.Password != nil {
		hash, err := security.HashPassword(*data.Password)
		if err != nil {
			return User{}, apperror.New(apperror.Internal, op, err)
		}
		u.HashedPassword = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Delete removes the user and every check it owns. Checks that are already
// gone are ignored; other failures are logged and do not keep the user.
func (s *Service) Delete(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.repo.Get(ctx, phone)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, phone); err != nil {
		return err
	}

	for _, id := range u.Checks {
		if err := s.checks.Delete(ctx, id); err != nil && !apperror.IsKind(err, apperror.NotFound) {
			s.logger.Error().Err(err).Str("check_id", id).Str("phone", phone).Msg("failed to delete check of removed user")
		}
	}
	return nil
}

// AddCheck appends id to the user's checks unless limit is reached.
func (s *Service) AddCheck(ctx context.Context, phone, id string, limit int) error {
	const op string = "service.user.add_check"

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.repo.Get(ctx, phone)
	if err != nil {
		return err
	}
	if len(u.Checks) >= limit {
		return &apperror.Error{
			Kind:    apperror.LimitReached,
			Op:      op,
			Message: "the user already has the maximum number of checks",
		}
	}

	u.Checks = append(u.Checks, id)
	return s.repo.Update(ctx, u)
}

// RemoveCheck drops id from the user's checks. A missing user is not an error.
func (s *Service) RemoveCheck(ctx context.Context, phone, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.repo.Get(ctx, phone)
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return nil
		}
		return err
	}

	idx := slices.Index(u.Checks, id)
	if idx < 0 {
		return nil
	}
	u.Checks = slices.Delete(u.Checks, idx, idx+1)
	return s.repo.Update(ctx, u)
}
