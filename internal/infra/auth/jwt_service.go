// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

const (
	tokenIssuer  = "storefront"
	operatorRole = "operator"
)

var (
	// ErrTokenDisabled is returned when no operator secret is configured.
	ErrTokenDisabled = errors.New("operator tokens are disabled")
	// ErrInvalidToken is returned for tokens that fail parsing or validation.
	ErrInvalidToken = errors.New("invalid operator token")
)

// operatorClaims are the JWT claims carried by an operator token.
type operatorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte        // Secret key for signing operator tokens; empty disables authorization.
	ttl    time.Duration // Time-to-live for operator tokens.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// An empty operator secret yields a service that reports Enabled() == false.
func NewJWTService(cfg *config.Config) service.TokenService {
	var (
		secret string
		ttl    time.Duration
	)
	if cfg.Operator != nil {
		secret = cfg.Operator.Secret
		ttl = cfg.Operator.TokenTTL
	}

	return newJWTService(secret, ttl, time.Now)
}

func newJWTService(secret string, ttl time.Duration, now func() time.Time) *jwtService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

// Enabled implements service.TokenService.
func (s *jwtService) Enabled() bool {
	return len(s.secret) > 0
}

// IssueOperatorToken creates a signed token for the named operator.
func (s *jwtService) IssueOperatorToken(subject string) (string, error) {
	if !s.Enabled() {
		return "", ErrTokenDisabled
	}
	if subject == "" {
		return "", errors.New("operator subject is required")
	}

	issuedAt := s.now()
	claims := operatorClaims{
		Role: operatorRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign operator token")
	}

	return signed, nil
}

// ValidateOperatorToken checks the signature, issuer, expiry and role of a token string.
func (s *jwtService) ValidateOperatorToken(tokenString string) (*service.OperatorClaims, error) {
	if !s.Enabled() {
		return nil, ErrTokenDisabled
	}

	claims := &operatorClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(errors.Join(ErrInvalidToken, err), "failed to validate token")
	}

	if claims.Role != operatorRole {
		return nil, errors.Wrapf(ErrInvalidToken, "unexpected role %q", claims.Role)
	}

	return &service.OperatorClaims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
