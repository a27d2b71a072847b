package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopgrid/commerce-api/internal/core/domain"
	"github.com/shopgrid/commerce-api/internal/core/ports"
)

// OperatorService implements signup, login, profile lookup and account
// provisioning.
type OperatorService struct {
	repo     ports.OperatorRepository
	codec    ports.TokenCodec
	throttle ports.LoginThrottle
	logger   zerolog.Logger
	now      func() time.Time
	hashCost int
}

// NewOperatorService wires the service. throttle may be nil to disable
// failed-login throttling.
func NewOperatorService(repo ports.OperatorRepository, codec ports.TokenCodec, throttle ports.LoginThrottle, logger zerolog.Logger) *OperatorService {
	return &OperatorService{
		repo:     repo,
		codec:    codec,
		throttle: throttle,
		logger:   logger,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
}

// Signup creates a shop_assistant or operator account and returns a token
// for it. Username uniqueness is decided by the repository insert.
func (s *OperatorService) Signup(ctx context.Context, input ports.CreateOperatorInput) (string, *domain.Operator, error) {
	if !input.Role.In(domain.SelfServiceRoles) {
		return "", nil, domain.ErrInvalidRole
	}

	op, err := s.create(ctx, input)
	if err != nil {
		return "", nil, err
	}

	token, err := s.codec.Encode(op.Identity())
	if err != nil {
		return "", nil, err
	}
	return token, op, nil
}

// Provision creates an account of any known role. It does not issue a token.
func (s *OperatorService) Provision(ctx context.Context, input ports.CreateOperatorInput) (*domain.Operator, error) {
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	return s.create(ctx, input)
}

// SeedSuperAdmin makes sure a super_admin account named username exists.
func (s *OperatorService) SeedSuperAdmin(ctx context.Context, username, password string) error {
	_, err := s.create(ctx, ports.CreateOperatorInput{
		OperatorName: "Super Admin",
		Username:     username,
		Password:     password,
		Role:         domain.RoleSuperAdmin,
	})
	if errors.Is(err, domain.ErrOperatorExists) {
		s.logger.Debug().Str("username", username).Msg("super admin already present")
		return nil
	}
	if err != nil {
		return err
	}
	s.logger.Info().Str("username", username).Msg("super admin seeded")
	return nil
}

func (s *OperatorService) create(ctx context.Context, input ports.CreateOperatorInput) (*domain.Operator, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(input.Password) > domain.MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, err
	}

	op := &domain.Operator{
		ID:           uuid.NewString(),
		OperatorName: input.OperatorName,
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
		JoinDate:     s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, op)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("operator_id", created.ID).Str("role", string(created.Role)).Msg("operator created")
	return created, nil
}

// Login verifies the password for username and returns a fresh token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *OperatorService) Login(ctx context.Context, username, password string) (string, *domain.Operator, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allowed(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("login throttle check failed, continuing")
		} else if !allowed {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	op, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrOperatorNotFound) {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
		}
	}

	token, err := s.codec.Encode(op.Identity())
	if err != nil {
		return "", nil, err
	}
	return token, op, nil
}

func (s *OperatorService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}

// Profile returns the account behind subjectID.
func (s *OperatorService) Profile(ctx context.Context, subjectID string) (*domain.Operator, error) {
	if subjectID == "" {
		return nil, domain.ErrOperatorNotFound
	}
	return s.repo.FindByID(ctx, subjectID)
}
