package primary

import (
	"context"
	"time"

	"gitlab.com/pagetest.net/internal/domain"
)

// TokenService issues and checks the bearer tokens guarding the HTTP API.
type TokenService interface {
	// GenerateTokenHMAC signs an operator token valid for ttl
	GenerateTokenHMAC(ctx context.Context, method string, subject string, ttl time.Duration) (string, error)
	// VerifyTokenHMAC reports whether token carries a valid signature and has not expired
	VerifyTokenHMAC(ctx context.Context, token string) (bool, error)
	// DecodeTokenPayload reads the operator claims without verifying the signature
	DecodeTokenPayload(ctx context.Context, token string) (domain.OperatorClaims, error)
}
