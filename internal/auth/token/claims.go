// Package token provides signed JWT encoding, decoding, and issuance for the
// access/refresh token pair. Tokens are stateless bearer credentials: validity
// is determined solely by signature and expiry at verification time.
package token

import (
	gojwt "github.com/golang-jwt/jwt/v5"
)

// Token type tags carried in the "type" claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims are the claims carried by every taskhive token: the registered
// claims (sub, iat, exp) plus the access/refresh type tag.
type Claims struct {
	gojwt.RegisteredClaims
	TokenType string `json:"type"`
}

// Email returns the token subject (the identity email).
func (c *Claims) Email() string {
	return c.RegisteredClaims.Subject
}
