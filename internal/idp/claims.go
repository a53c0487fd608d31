package idp

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"suichat/internal/domain"
)

var (
	// ErrMalformedToken is returned for a token that is not a parseable JWT
	// or lacks an expiry.
	ErrMalformedToken = errors.New("malformed id token")
	// ErrTokenExpired is returned for a token past its expiry.
	ErrTokenExpired = errors.New("id token expired")
)

// ParseClaims reads sub, iss, aud and exp from token without verifying its
// signature, and rejects it if expired at now. When aud is a list the first
// entry is used. Empty sub/iss/aud are returned as-is; key derivation
// rejects them.
func ParseClaims(token string, now time.Time) (domain.IDTokenClaims, error) {
	var out domain.IDTokenClaims

	mc := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, mc); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return out, fmt.Errorf("%w: exp: %v", ErrMalformedToken, err)
	}
	if exp == nil {
		return out, fmt.Errorf("%w: no exp claim", ErrMalformedToken)
	}
	if !now.Before(exp.Time) {
		return out, fmt.Errorf("%w at %s", ErrTokenExpired, exp.Time.UTC().Format(time.RFC3339))
	}

	if out.Subject, err = mc.GetSubject(); err != nil {
		return out, fmt.Errorf("%w: sub: %v", ErrMalformedToken, err)
	}
	if out.Issuer, err = mc.GetIssuer(); err != nil {
		return out, fmt.Errorf("%w: iss: %v", ErrMalformedToken, err)
	}
	aud, err := mc.GetAudience()
	if err != nil {
		return out, fmt.Errorf("%w: aud: %v", ErrMalformedToken, err)
	}
	if len(aud) > 0 {
		out.Audience = aud[0]
	}
	out.ExpiresAt = exp.Time
	return out, nil
}
