package services

import (
	"context"
	"time"

	"github.com/gracebase/steward/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed JWT for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAccessToken parses and validates a token string, returning the user ID claim.
	ValidateAccessToken(ctx context.Context, tokenString string) (string, error)
}
