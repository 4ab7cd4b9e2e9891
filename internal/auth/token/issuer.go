package token

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Issuer builds typed access and refresh tokens bound to a subject email.
// Both delegate to the Codec with the configured lifetimes: minutes-scale for
// access tokens, days-scale for refresh tokens.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer creates an Issuer with lifetimes taken from the codec config.
func NewIssuer(codec *Codec) *Issuer {
	return &Issuer{
		codec:      codec,
		accessTTL:  time.Duration(codec.cfg.AccessTokenTTL) * time.Minute,
		refreshTTL: time.Duration(codec.cfg.RefreshTokenTTLDays) * 24 * time.Hour,
	}
}

// IssueAccess creates a short-lived access token for the subject.
func (i *Issuer) IssueAccess(email string) (string, error) {
	return i.issue(TypeAccess, email, i.accessTTL)
}

// IssueRefresh creates a long-lived refresh token for the subject.
func (i *Issuer) IssueRefresh(email string) (string, error) {
	return i.issue(TypeRefresh, email, i.refreshTTL)
}

func (i *Issuer) issue(tokenType, email string, ttl time.Duration) (string, error) {
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: email},
		TokenType:        tokenType,
	}
	return i.codec.Encode(claims, ttl)
}
