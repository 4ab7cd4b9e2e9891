package auth

import (
	"context"
	"errors"

	"github.com/skillsenselab/taskhive/internal/auth/password"
	"github.com/skillsenselab/taskhive/internal/auth/token"
	apperrors "github.com/skillsenselab/taskhive/internal/errors"
	"github.com/skillsenselab/taskhive/internal/logger"
	"github.com/skillsenselab/taskhive/internal/users"
)

// TokenPair is the wire shape for issued tokens. RefreshToken is omitted in
// refresh responses, which issue a new access token only.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Flow orchestrates registration and login: uniqueness checks, password
// hashing, and token pair issuance.
type Flow struct {
	store  users.Store
	hasher password.Hasher
	issuer *token.Issuer
	log    *logger.Logger
}

// NewFlow creates an auth Flow.
func NewFlow(store users.Store, hasher password.Hasher, issuer *token.Issuer, log *logger.Logger) *Flow {
	return &Flow{store: store, hasher: hasher, issuer: issuer, log: log.WithComponent("auth")}
}

// Register creates a new identity and issues a fresh token pair. Fails with
// DUPLICATE_EMAIL when the email is already registered.
func (f *Flow) Register(ctx context.Context, name, email, plaintext string) (*TokenPair, error) {
	_, err := f.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.DuplicateEmail()
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, err
	}

	hash, err := f.hasher.Hash(plaintext)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &users.User{Name: name, Email: email, PasswordHash: hash}
	// The store enforces the unique constraint, so a concurrent registration
	// of the same email still fails with DUPLICATE_EMAIL here.
	if err := f.store.Create(ctx, user); err != nil {
		return nil, err
	}

	f.log.Info("user registered", logger.Fields(logger.FieldUserID, user.ID, logger.FieldEmail, email))
	return f.issuePair(email)
}

// Login verifies credentials and issues a fresh token pair. Unknown email and
// wrong password collapse to the identical generic error.
func (f *Flow) Login(ctx context.Context, email, plaintext string) (*TokenPair, error) {
	user, err := f.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, err
	}

	if err := f.hasher.Verify(plaintext, user.PasswordHash); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	f.log.Info("user logged in", logger.Fields(logger.FieldUserID, user.ID))
	return f.issuePair(email)
}

// Refresh issues a new access token for an identity already validated as
// carrying a refresh token. The refresh token itself is not rotated.
func (f *Flow) Refresh(user *users.User) (*TokenPair, error) {
	access, err := f.issuer.IssueAccess(user.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &TokenPair{AccessToken: access, TokenType: "Bearer"}, nil
}

func (f *Flow) issuePair(email string) (*TokenPair, error) {
	access, err := f.issuer.IssueAccess(email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refresh, err := f.issuer.IssueRefresh(email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "Bearer"}, nil
}
