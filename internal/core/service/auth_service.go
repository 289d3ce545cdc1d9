package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/core/ports"
	"github.com/teampulse/feedback-system/internal/pkg/metrics"
	"github.com/teampulse/feedback-system/internal/pkg/security"
)

const (
	tokenType = "bearer"

	// dummyPassword is hashed once to give unknown emails a hash to verify against.
	dummyPassword = "unknown-account-placeholder"
)

// Registration rejection messages.
const (
	msgInvalidRole       = "Invalid role. Must be 'Manager' or 'Employee'."
	msgManagerIDRequired = "Manager ID is required for employees"
	msgEmailRegistered   = "Email already registered"
	msgInvalidManager    = "Invalid manager ID"
)

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenCodec
	throttle ports.LoginThrottle
	tokenTTL time.Duration
	logger   zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenCodec, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = security.DefaultTokenLifetime
	}
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, tokenTTL: tokenTTL, logger: logger}
}

// WithThrottle enables failed-login throttling.
func (s *AuthService) WithThrottle(t ports.LoginThrottle) *AuthService {
	s.throttle = t
	return s
}

// Register validates the registration in a fixed order and persists the new
// user. Each check assumes the previous ones passed.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Identity, error) {
	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, s.rejectRegistration(domain.NewValidationError(msgInvalidRole))
	}
	if role == domain.RoleEmployee && (input.ManagerID == nil || *input.ManagerID == 0) {
		return nil, s.rejectRegistration(domain.NewValidationError(msgManagerIDRequired))
	}

	_, err := s.repo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, s.rejectRegistration(domain.NewValidationError(msgEmailRegistered))
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	var managerID *int64
	if role == domain.RoleEmployee {
		manager, err := s.repo.FindByID(ctx, *input.ManagerID)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if manager == nil || manager.Role != domain.RoleManager {
			return nil, s.rejectRegistration(domain.NewValidationError(msgInvalidManager))
		}
		id := manager.ID
		managerID = &id
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, s.rejectRegistration(domain.NewValidationError(fmt.Sprintf("Registration failed: %v", err)))
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		ManagerID:    managerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, s.rejectRegistration(domain.NewValidationError(msgEmailRegistered))
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Int64("user_id", created.ID).Str("role", role.String()).Msg("user registered")
	return created.Identity(), nil
}

func (s *AuthService) rejectRegistration(err *domain.ValidationError) error {
	metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
	s.logger.Debug().Str("reason", err.Message).Msg("registration rejected")
	return err
}

// Login verifies the credentials and issues a bearer token. Unknown emails and
// wrong passwords fail identically with domain.ErrUnauthenticated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.unknownAccountHash())
			return nil, s.failLogin(ctx, email)
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, s.failLogin(ctx, email)
	}

	token, err := s.tokens.Encode(security.NewClaims(user.Email, user.ID, user.Role.String()), s.tokenTTL)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Int64("user_id", user.ID).Msg("login succeeded")

	return &ports.LoginResult{
		Token:     token,
		TokenType: tokenType,
		UserID:    user.ID,
		Role:      user.Role,
	}, nil
}

// unknownAccountHash is compared against when the email has no account, so
// every failed login costs one hash comparison.
func (s *AuthService) unknownAccountHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Warn().Err(err).Msg("placeholder hash failed")
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *AuthService) failLogin(ctx context.Context, email string) error {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle record failed")
		}
	}
	return domain.ErrUnauthenticated
}
