package check

import (
	"context"
	"strings"

	"uptime-monitor/internals/security"
	"uptime-monitor/pkg/apperror"

	"github.com/rs/zerolog"
)

// Owners keeps each user's list of check ids.
type Owners interface {
	AddCheck(ctx context.Context, phone, id string, limit int) error
	RemoveCheck(ctx context.Context, phone, id string) error
}

type Service struct {
	repo       *Repository
	owners     Owners
	maxPerUser int
	logger     *zerolog.Logger
}

func NewService(repo *Repository, owners Owners, maxPerUser int, logger *zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		owners:     owners,
		maxPerUser: maxPerUser,
		logger:     logger,
	}
}

// Create stores a new check for phone. The owner's slot is reserved first
// and given back if the record cannot be written.
func (s *Service) Create(ctx context.Context, phone string, data CreateCheckCmd) (Check, error) {
	const op string = "service.check.create"

	id, err := security.RandomString(IDLength)
	if err != nil {
		return Check{}, apperror.New(apperror.Internal, op, err)
	}

	c := Check{
		ID:             id,
		OwnerPhone:     phone,
		Protocol:       data.Protocol,
		URL:            strings.TrimSpace(data.URL),
		Method:         data.Method,
		SuccessCodes:   data.SuccessCodes,
		TimeoutSeconds: data.TimeoutSeconds,
	}
	if err := Validate(&c); err != nil {
		return Check{}, apperror.New(apperror.InvalidInput, op, err).WithMessage(err.Error())
	}

	if err := s.owners.AddCheck(ctx, phone, c.ID, s.maxPerUser); err != nil {
		return Check{}, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if rbErr := s.owners.RemoveCheck(ctx, phone, c.ID); rbErr != nil {
			s.logger.Error().Err(rbErr).Str("check_id", c.ID).Msg("failed to release check slot")
		}
		return Check{}, err
	}

	return c, nil
}

// Get returns the check when phone owns it.
func (s *Service) Get(ctx context.Context, phone, id string) (Check, error) {
	const op string = "service.check.get"

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Check{}, err
	}
	if c.OwnerPhone != phone {
		return Check{}, &apperror.Error{Kind: apperror.Forbidden, Op: op, Message: "check belongs to another user"}
	}
	return c, nil
}

// Update changes the probe definition. State and LastChecked are kept.
func (s *Service) Update(ctx context.Context, phone, id string, data UpdateCheckCmd) (Check, error) {
	const op string = "service.check.update"

	if data.Empty() {
		return Check{}, &apperror.Error{Kind: apperror.InvalidInput, Op: op, Message: "nothing to update"}
	}

	c, err := s.Get(ctx, phone, id)
	if err != nil {
		return Check{}, err
	}

	if data.Protocol != nil {
		c.Protocol = *data.Protocol
	}
	if data.URL != nil {
		c.URL = strings.TrimSpace(*data.URL)
	}
	if data.Method != nil {
		c.Method = *data.Method
	}
	if data.SuccessCodes != nil {
		c.SuccessCodes = data.SuccessCodes
	}
	if data.TimeoutSeconds != nil {
		c.TimeoutSeconds = *data.TimeoutSeconds
	}

	if err := Validate(&c); err != nil {
		return Check{}, apperror.New(apperror.InvalidInput, op, err).WithMessage(err.Error())
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return Check{}, err
	}
	return c, nil
}

// Delete removes the check and its entry in the owner's list. The check's
// log file is left in place.
func (s *Service) Delete(ctx context.Context, phone, id string) error {
	c, err := s.Get(ctx, phone, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return err
	}

	if err := s.owners.RemoveCheck(ctx, phone, c.ID); err != nil {
		s.logger.Error().Err(err).Str("check_id", c.ID).Str("phone", phone).Msg("check deleted but owner list not updated")
	}
	return nil
}
