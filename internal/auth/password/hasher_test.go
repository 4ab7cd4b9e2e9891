package password

import (
	"bytes"
	"errors"
	"testing"
)

func hashers() map[string]Hasher {
	return map[string]Hasher{
		"bcrypt":   NewBcryptHasher(WithCost(4)), // min cost keeps tests fast
		"argon2id": NewArgon2Hasher(WithArgon2Time(1), WithArgon2Memory(16*1024)),
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("correct horse battery staple")
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			if err := h.Verify("correct horse battery staple", hash); err != nil {
				t.Errorf("Verify() with matching password = %v, want nil", err)
			}
		})
	}
}

func TestHashVerify_Mismatch(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("secret-one")
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			if err := h.Verify("secret-two", hash); !errors.Is(err, ErrMismatch) {
				t.Errorf("Verify() with wrong password = %v, want ErrMismatch", err)
			}
		})
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not-a-hash")},
		{"truncated argon2", []byte("$argon2id$v=19$m=16")},
	}
	for name, h := range hashers() {
		for _, tc := range tests {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				if err := h.Verify("whatever", tc.hash); !errors.Is(err, ErrMismatch) {
					t.Errorf("Verify() on malformed hash = %v, want ErrMismatch", err)
				}
			})
		}
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			h1, err := h.Hash("same-password")
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			h2, err := h.Hash("same-password")
			if err != nil {
				t.Fatalf("Hash() error: %v", err)
			}
			if bytes.Equal(h1, h2) {
				t.Error("two hashes of the same password are identical, salt is not random")
			}
		})
	}
}

func TestBcrypt_LengthLimit(t *testing.T) {
	h := NewBcryptHasher(WithCost(4))
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := h.Hash(string(long)); err == nil {
		t.Error("Hash() accepted a password over the bcrypt 72-byte limit")
	}
}

func TestNewHasher_ConfigFactory(t *testing.T) {
	tests := []struct {
		algorithm Algorithm
		wantType  string
	}{
		{AlgorithmBcrypt, "*password.BcryptHasher"},
		{AlgorithmArgon2id, "*password.Argon2Hasher"},
		{"", "*password.BcryptHasher"}, // default
	}
	for _, tc := range tests {
		t.Run(string(tc.algorithm), func(t *testing.T) {
			h := NewHasher(Config{Algorithm: tc.algorithm})
			switch h.(type) {
			case *BcryptHasher:
				if tc.wantType != "*password.BcryptHasher" {
					t.Errorf("got BcryptHasher, want %s", tc.wantType)
				}
			case *Argon2Hasher:
				if tc.wantType != "*password.Argon2Hasher" {
					t.Errorf("got Argon2Hasher, want %s", tc.wantType)
				}
			default:
				t.Errorf("unexpected hasher type %T", h)
			}
		})
	}
}
