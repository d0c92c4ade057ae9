// Package cryptox implements the encryption layer for snippet content:
// password-based key derivation and authenticated symmetric encryption.
//
// Keys are derived with PBKDF2-HMAC-SHA256 so the same password and salt
// always produce the same key. A hash of the derived key (the verifier) is
// persisted alongside the salt so a password can be checked without touching
// any record. Content is sealed with AES-256-GCM and encoded as a single
// base64 blob (nonce || ciphertext) so it can live in a TEXT column.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"snippy/internal/common"
)

const (
	// Iterations is the PBKDF2 cost parameter.
	Iterations = 100_000

	// KeyLength is the derived key size in bytes (AES-256).
	KeyLength = 32

	// SaltLength is the size of the per-store random salt.
	SaltLength = 16

	nonceLength = 12
)

// MakeSalt generates a new random salt for a store enabling encryption
// for the first time.
func MakeSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey derives a deterministic symmetric key from a password and salt.
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeyLength, sha256.New)
}

// MakeVerifier returns a hash of the derived key. The verifier is safe to
// persist: it confirms a password without revealing the key.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// Encrypt seals plaintext with AES-GCM under the given key. A fresh random
// nonce is generated per call and prepended to the ciphertext before base64
// encoding, so the output is printable and self-contained.
func Encrypt(key []byte, plaintext string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. It returns common.ErrInvalidKeyOrData when the
// blob is malformed, has been tampered with, or was sealed under a different
// key. Callers are expected to map that error to a per-record placeholder
// rather than aborting a whole listing.
func Decrypt(key []byte, blob string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", common.ErrInvalidKeyOrData
	}
	if len(sealed) < nonceLength {
		return "", common.ErrInvalidKeyOrData
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce, ciphertext := sealed[:nonceLength], sealed[nonceLength:]
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", common.ErrInvalidKeyOrData
	}

	return string(plaintext), nil
}
