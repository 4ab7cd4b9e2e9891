package token

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/skillsenselab/taskhive/internal/errors"
)

var testKey = mustGenerateKey()

func mustGenerateKey() *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	return key
}

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	cfg := Config{Method: RS256, AccessTokenTTL: 15, RefreshTokenTTLDays: 7}
	codec, err := NewCodec(cfg, FromKeys(testKey))
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}
	return codec
}

func TestIssuer_ClaimTypes(t *testing.T) {
	codec := newTestCodec(t)
	issuer := NewIssuer(codec)

	tests := []struct {
		name     string
		issue    func(string) (string, error)
		wantType string
	}{
		{"access", issuer.IssueAccess, TypeAccess},
		{"refresh", issuer.IssueRefresh, TypeRefresh},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := tc.issue("a@x.com")
			if err != nil {
				t.Fatalf("issue error: %v", err)
			}
			claims, err := codec.Decode(raw)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if claims.TokenType != tc.wantType {
				t.Errorf("type claim = %q, want %q", claims.TokenType, tc.wantType)
			}
			if claims.Email() != "a@x.com" {
				t.Errorf("sub claim = %q, want %q", claims.Email(), "a@x.com")
			}
			if claims.IssuedAt == nil || claims.ExpiresAt == nil {
				t.Fatal("iat or exp claim missing")
			}
			if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
				t.Error("exp is not after iat")
			}
		})
	}
}

func TestIssuer_Lifetimes(t *testing.T) {
	codec := newTestCodec(t)
	issuer := NewIssuer(codec)

	access, _ := issuer.IssueAccess("a@x.com")
	refresh, _ := issuer.IssueRefresh("a@x.com")

	ac, err := codec.Decode(access)
	if err != nil {
		t.Fatalf("Decode(access) error: %v", err)
	}
	rc, err := codec.Decode(refresh)
	if err != nil {
		t.Fatalf("Decode(refresh) error: %v", err)
	}

	if got := ac.ExpiresAt.Sub(ac.IssuedAt.Time); got != 15*time.Minute {
		t.Errorf("access lifetime = %v, want 15m", got)
	}
	if got := rc.ExpiresAt.Sub(rc.IssuedAt.Time); got != 7*24*time.Hour {
		t.Errorf("refresh lifetime = %v, want 168h", got)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := newTestCodec(t)

	issued := time.Now()
	codec.now = func() time.Time { return issued }

	raw, err := codec.Encode(&Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "a@x.com"},
		TokenType:        TypeAccess,
	}, time.Minute)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	// Valid just before expiry, invalid just after, signature unchanged.
	codec.now = func() time.Time { return issued.Add(59 * time.Second) }
	if _, err := codec.Decode(raw); err != nil {
		t.Errorf("Decode() before expiry = %v, want nil", err)
	}

	codec.now = func() time.Time { return issued.Add(61 * time.Second) }
	_, err = codec.Decode(raw)
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("Decode() after expiry = %v, want INVALID_TOKEN", err)
	}
}

func TestCodec_DecodeFailures(t *testing.T) {
	codec := newTestCodec(t)

	otherKey := mustGenerateKey()
	otherCodec, _ := NewCodec(Config{Method: RS256}, FromKeys(otherKey))
	foreign, _ := NewIssuer(otherCodec).IssueAccess("a@x.com")

	// A token signed with an HMAC method must be rejected even though it
	// parses, to prevent algorithm confusion.
	hmacToken := gojwt.NewWithClaims(gojwt.SigningMethodHS256, &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "a@x.com",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: TypeAccess,
	})
	hmacRaw, _ := hmacToken.SignedString([]byte("secret"))

	tests := []struct {
		name string
		raw  string
	}{
		{"malformed", "not.a.token"},
		{"empty", ""},
		{"wrong key", foreign},
		{"hmac alg", hmacRaw},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(tc.raw)
			if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
				t.Errorf("Decode(%q) = %v, want INVALID_TOKEN", tc.name, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Method: RS256, PrivateKeyPath: "a.pem", PublicKeyPath: "b.pem", AccessTokenTTL: 15, RefreshTokenTTLDays: 7}, false},
		{"hmac rejected", Config{Method: "HS256", PrivateKeyPath: "a.pem", PublicKeyPath: "b.pem", AccessTokenTTL: 15, RefreshTokenTTLDays: 7}, true},
		{"missing private key", Config{Method: RS256, PublicKeyPath: "b.pem", AccessTokenTTL: 15, RefreshTokenTTLDays: 7}, true},
		{"zero access ttl", Config{Method: RS256, PrivateKeyPath: "a.pem", PublicKeyPath: "b.pem", RefreshTokenTTLDays: 7}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
