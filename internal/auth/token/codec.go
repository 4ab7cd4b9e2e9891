package token

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/skillsenselab/taskhive/internal/errors"
)

// Codec encodes and decodes signed tokens with a fixed asymmetric algorithm.
// The private key signs, the public key verifies; both are loaded once at
// startup and never re-read.
type Codec struct {
	cfg  Config
	keys *KeyPair

	// now is swappable in tests.
	now func() time.Time
}

// NewCodec creates a Codec from validated config and loaded keys.
func NewCodec(cfg Config, keys *KeyPair) (*Codec, error) {
	cfg.ApplyDefaults()
	if keys == nil || keys.Private == nil || keys.Public == nil {
		return nil, fmt.Errorf("token: key pair is required")
	}
	return &Codec{cfg: cfg, keys: keys, now: time.Now}, nil
}

// Encode stamps the claims with iat = now and exp = now + ttl, then signs them.
func (c *Codec) Encode(claims *Claims, ttl time.Duration) (string, error) {
	now := c.now().UTC()
	claims.IssuedAt = gojwt.NewNumericDate(now)
	claims.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))

	t := gojwt.NewWithClaims(c.cfg.signingMethod(), claims)
	signed, err := t.SignedString(c.keys.Private)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry and returns the claims. Any failure
// (bad signature, expired, malformed) surfaces as an INVALID_TOKEN error.
// Type and subject semantics are the validator's job, not the codec's.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := gojwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		gojwt.WithValidMethods([]string{c.cfg.signingMethod().Alg()}),
		gojwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
	if err != nil {
		return nil, apperrors.InvalidToken().WithCause(err)
	}
	if !t.Valid {
		return nil, apperrors.InvalidToken()
	}
	return claims, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (c *Codec) keyFunc(t *gojwt.Token) (interface{}, error) {
	expected := c.cfg.signingMethod()
	if t.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
	}
	return c.keys.Public, nil
}
