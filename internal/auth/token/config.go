package token

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod defines supported JWT signing algorithms. Only asymmetric
// families are allowed: access tokens must be verifiable with the public key
// alone.
type SigningMethod string

const (
	RS256 SigningMethod = "RS256"
	RS384 SigningMethod = "RS384"
	RS512 SigningMethod = "RS512"
	ES256 SigningMethod = "ES256"
	ES384 SigningMethod = "ES384"
	ES512 SigningMethod = "ES512"
)

// Config configures token signing and lifetimes.
type Config struct {
	// Method is the signing algorithm (default: RS256).
	Method SigningMethod `yaml:"algorithm" mapstructure:"algorithm"`

	// PrivateKeyPath is the PEM file holding the signing key.
	PrivateKeyPath string `yaml:"private_key_path" mapstructure:"private_key_path"`

	// PublicKeyPath is the PEM file holding the verification key.
	PublicKeyPath string `yaml:"public_key_path" mapstructure:"public_key_path"`

	// AccessTokenTTL is the access token lifetime in minutes (default: 15).
	AccessTokenTTL int `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`

	// RefreshTokenTTLDays is the refresh token lifetime in days (default: 7).
	RefreshTokenTTLDays int `yaml:"refresh_token_ttl_days" mapstructure:"refresh_token_ttl_days"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = RS256
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 15
	}
	if c.RefreshTokenTTLDays == 0 {
		c.RefreshTokenTTLDays = 7
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	switch c.Method {
	case RS256, RS384, RS512, ES256, ES384, ES512:
	default:
		return fmt.Errorf("unsupported signing method: %s", c.Method)
	}
	if c.PrivateKeyPath == "" {
		return errors.New("auth.private_key_path is required")
	}
	if c.PublicKeyPath == "" {
		return errors.New("auth.public_key_path is required")
	}
	if c.AccessTokenTTL < 1 {
		return fmt.Errorf("auth.access_token_ttl must be >= 1 (got: %d)", c.AccessTokenTTL)
	}
	if c.RefreshTokenTTLDays < 1 {
		return fmt.Errorf("auth.refresh_token_ttl_days must be >= 1 (got: %d)", c.RefreshTokenTTLDays)
	}
	return nil
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case RS384:
		return gojwt.SigningMethodRS384
	case RS512:
		return gojwt.SigningMethodRS512
	case ES256:
		return gojwt.SigningMethodES256
	case ES384:
		return gojwt.SigningMethodES384
	case ES512:
		return gojwt.SigningMethodES512
	default:
		return gojwt.SigningMethodRS256
	}
}

// KeyPair holds the process-wide signing keys, loaded once at startup.
type KeyPair struct {
	Private any
	Public  any
}

// LoadKeys reads and parses the PEM key files named by the config.
// Call once during startup initialization; the result is immutable.
func (c *Config) LoadKeys() (*KeyPair, error) {
	privPEM, err := os.ReadFile(c.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	pubPEM, err := os.ReadFile(c.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return c.ParseKeys(privPEM, pubPEM)
}

// ParseKeys parses PEM-encoded key material according to the signing method.
func (c *Config) ParseKeys(privPEM, pubPEM []byte) (*KeyPair, error) {
	switch c.Method {
	case ES256, ES384, ES512:
		priv, err := gojwt.ParseECPrivateKeyFromPEM(privPEM)
		if err != nil {
			return nil, fmt.Errorf("parse ECDSA private key: %w", err)
		}
		pub, err := gojwt.ParseECPublicKeyFromPEM(pubPEM)
		if err != nil {
			return nil, fmt.Errorf("parse ECDSA public key: %w", err)
		}
		return &KeyPair{Private: priv, Public: pub}, nil
	default:
		priv, err := gojwt.ParseRSAPrivateKeyFromPEM(privPEM)
		if err != nil {
			return nil, fmt.Errorf("parse RSA private key: %w", err)
		}
		pub, err := gojwt.ParseRSAPublicKeyFromPEM(pubPEM)
		if err != nil {
			return nil, fmt.Errorf("parse RSA public key: %w", err)
		}
		return &KeyPair{Private: priv, Public: pub}, nil
	}
}

// FromKeys builds a KeyPair directly from in-memory keys. Used by tests.
func FromKeys(priv *rsa.PrivateKey) *KeyPair {
	return &KeyPair{Private: priv, Public: &priv.PublicKey}
}

// FromECKeys builds a KeyPair from an in-memory ECDSA key. Used by tests.
func FromECKeys(priv *ecdsa.PrivateKey) *KeyPair {
	return &KeyPair{Private: priv, Public: &priv.PublicKey}
}
