package service

import (
	"time"
)

// OperatorClaims describes a validated operator token.
type OperatorClaims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// TokenService issues and validates operator tokens.
// Operator tokens gate product creation and order mutations when a secret is configured.
type TokenService interface {
	// Enabled reports whether operator authorization is configured.
	Enabled() bool

	// IssueOperatorToken creates a signed token for the named operator.
	IssueOperatorToken(subject string) (string, error)

	// ValidateOperatorToken parses and checks a token string.
	ValidateOperatorToken(tokenString string) (*OperatorClaims, error)
}
