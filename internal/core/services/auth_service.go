package services

import (
	"context"
	"time"

	"github.com/gracebase/steward/internal/apperrors"
	"github.com/gracebase/steward/internal/core/domain"
	portssvc "github.com/gracebase/steward/internal/core/ports/services"
	"github.com/gracebase/steward/internal/platform/config"
	"github.com/gracebase/steward/internal/utils"
)

// tokenService implements the TokenSvcFacade for issuing and validating JWTs.
// It requires access to application configuration for the signing secret,
// expiry duration and issuer.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// ValidateAccessToken parses and validates a token string and returns the
// user ID it was issued for.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", apperrors.NewUnauthorizedError("invalid or expired token")
	}
	if claims.Subject == "" {
		return "", apperrors.NewUnauthorizedError("token has no subject")
	}
	return claims.Subject, nil
}
