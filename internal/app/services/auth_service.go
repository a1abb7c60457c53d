package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/auth"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/metrics"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/throttle"
)

// LoginResult carries an issued admin token.
type LoginResult struct {
	Token     string
	ExpiresIn int64
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	// Login checks the credentials and issues a token. clientKey identifies the caller for throttling.
	Login(ctx context.Context, username, password, clientKey string) (*LoginResult, error)
}

type authServiceImpl struct {
	verifier   auth.CredentialVerifier
	jwtService *auth.JWTService
	limiter    throttle.LoginLimiter
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService. A nil limiter disables throttling.
func NewAuthService(
	verifier auth.CredentialVerifier,
	jwtService *auth.JWTService,
	limiter throttle.LoginLimiter,
	m *metrics.Metrics,
	logger zerolog.Logger,
) AuthService {
	if limiter == nil {
		limiter = throttle.Noop{}
	}
	return &authServiceImpl{
		verifier:   verifier,
		jwtService: jwtService,
		limiter:    limiter,
		metrics:    m,
		logger:     logger,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, username, password, clientKey string) (*LoginResult, error) {
	if err := s.limiter.Allow(ctx, clientKey); err != nil {
		s.metrics.ObserveLogin("throttled")
		s.logger.Warn().Str("client", clientKey).Msg("Login throttled")
		return nil, err
	}

	if err := s.verifier.Verify(ctx, username, password); err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			s.limiter.Fail(ctx, clientKey)
			s.metrics.ObserveLogin("failure")
		}
		return nil, err
	}
	s.limiter.Reset(ctx, clientKey)

	token, expiresIn, err := s.jwtService.GenerateToken(username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.metrics.ObserveLogin("success")
	return &LoginResult{Token: token, ExpiresIn: expiresIn}, nil
}
