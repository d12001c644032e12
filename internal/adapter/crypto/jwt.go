package crypto

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/pagetest.net/internal/config"
	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/domain"
	"gitlab.com/pagetest.net/internal/static/errs"
)

var _ primary.TokenService = (*TokenServiceImpl)(nil)

type TokenServiceImpl struct {
	HMACSecretKey string
	Method        string
	now           func() time.Time
}

func NewTokenService(jwtConfig *config.JwtConfig) *TokenServiceImpl {
	return &TokenServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
		Method:        jwtConfig.Method,
		now:           time.Now,
	}
}

func (t *TokenServiceImpl) GenerateTokenHMAC(ctx context.Context, method string, subject string, ttl time.Duration) (string, error) {
	if method == "" {
		method = t.Method
	}
	signingMethod, ok := jwt.GetSigningMethod(method).(*jwt.SigningMethodHMAC)
	if !ok {
		return "", fmt.Errorf("%w: %s", errs.UnsupportedSigning, method)
	}
	if t.HMACSecretKey == "" {
		return "", fmt.Errorf("%w: no secret configured", errs.GeneratingToken)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	issued := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
	}

	tok, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(t.HMACSecretKey))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.GeneratingToken, err)
	}
	return tok, nil
}

func (t *TokenServiceImpl) VerifyTokenHMAC(ctx context.Context, token string) (bool, error) {
	parsedToken, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errs.UnsupportedSigning, tok.Header["alg"])
		}
		return []byte(t.HMACSecretKey), nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		return false, fmt.Errorf("%w: %v", errs.InvalidToken, err)
	}

	return parsedToken.Valid, nil
}

func decodeSeg(segment string) ([]byte, error) {
	return jwt.NewParser().DecodeSegment(segment)
}

// DecodeTokenPayload reads the claims without checking the signature. Callers
// verify first.
func (t *TokenServiceImpl) DecodeTokenPayload(ctx context.Context, token string) (domain.OperatorClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return domain.OperatorClaims{}, fmt.Errorf("%w: malformed token", errs.InvalidToken)
	}

	payloadData, err := decodeSeg(parts[1])
	if err != nil {
		return domain.OperatorClaims{}, fmt.Errorf("failed to decode token payload: %w", err)
	}

	var claims domain.OperatorClaims
	if err := json.Unmarshal(payloadData, &claims); err != nil {
		return domain.OperatorClaims{}, fmt.Errorf("failed to parse token claims: %w", err)
	}
	return claims, nil
}
