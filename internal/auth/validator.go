// Package auth orchestrates the authentication core: bearer token validation
// against the user store and the registration/login/refresh flow.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/skillsenselab/taskhive/internal/auth/token"
	apperrors "github.com/skillsenselab/taskhive/internal/errors"
	"github.com/skillsenselab/taskhive/internal/users"
)

// TokenCookie is the cookie consulted when no Authorization header is present.
// The UI layer stores the token there as "Bearer <token>".
const TokenCookie = "access_token"

const bearerPrefix = "Bearer "

// Validator resolves a request's bearer token to an identity. The pipeline is
// strictly linear: extract, decode, check type, resolve subject. Any failure
// short-circuits with a 401-class error.
type Validator struct {
	codec *token.Codec
	store users.Store
}

// NewValidator creates a Validator.
func NewValidator(codec *token.Codec, store users.Store) *Validator {
	return &Validator{codec: codec, store: store}
}

// ExtractToken pulls the raw token from the Authorization header, falling
// back to the token cookie (stripping an optional "Bearer " prefix).
func ExtractToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		if len(h) > len(bearerPrefix) && strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
			return h[len(bearerPrefix):], nil
		}
	}

	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		raw := c.Value
		if len(raw) > len(bearerPrefix) && strings.EqualFold(raw[:len(bearerPrefix)], bearerPrefix) {
			raw = raw[len(bearerPrefix):]
		}
		return raw, nil
	}

	return "", apperrors.MissingToken()
}

// Validate runs the full pipeline for a request and yields the resolved
// identity. expectedType is "access" for normal endpoints and "refresh" for
// the refresh endpoint.
func (v *Validator) Validate(ctx context.Context, r *http.Request, expectedType string) (*users.User, error) {
	raw, err := ExtractToken(r)
	if err != nil {
		return nil, err
	}
	return v.ValidateToken(ctx, raw, expectedType)
}

// ValidateToken decodes a raw token, enforces the expected type, and resolves
// the subject via the user store.
func (v *Validator) ValidateToken(ctx context.Context, raw, expectedType string) (*users.User, error) {
	claims, err := v.codec.Decode(raw)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != expectedType {
		return nil, apperrors.WrongTokenType(claims.TokenType, expectedType)
	}

	user, err := v.store.FindByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, apperrors.UnknownSubject()
		}
		// Store failures stay distinct from authentication failures.
		return nil, err
	}
	return user, nil
}
