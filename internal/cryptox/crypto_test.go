package cryptox

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snippy/internal/common"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("0123456789abcdef")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, KeyLength)
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	salt := []byte("0123456789abcdef")

	key1 := DeriveKey([]byte("password-one"), salt)
	key2 := DeriveKey([]byte("password-two"), salt)
	assert.NotEqual(t, key1, key2)

	key3 := DeriveKey([]byte("password-one"), []byte("another-salt-val"))
	assert.NotEqual(t, key1, key3)
}

func TestMakeVerifier(t *testing.T) {
	key1 := DeriveKey([]byte("password-one"), []byte("0123456789abcdef"))
	key2 := DeriveKey([]byte("password-two"), []byte("0123456789abcdef"))

	assert.Equal(t, MakeVerifier(key1), MakeVerifier(key1))
	assert.NotEqual(t, MakeVerifier(key1), MakeVerifier(key2))
	assert.NotEqual(t, key1, MakeVerifier(key1), "the verifier never equals the key")
}

func TestMakeSalt(t *testing.T) {
	s1, err := MakeSalt()
	require.NoError(t, err)
	s2, err := MakeSalt()
	require.NoError(t, err)

	assert.Len(t, s1, SaltLength)
	assert.NotEqual(t, s1, s2)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	salt, err := MakeSalt()
	require.NoError(t, err)
	key := DeriveKey([]byte("correct horse"), salt)

	tests := []string{
		"echo 'hello world'",
		"",
		"multi\nline\ncontent\twith tabs",
		"unicode: привет, 世界",
	}

	for _, plaintext := range tests {
		blob, err := Encrypt(key, plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, blob)

		got, err := Decrypt(key, blob)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	key := DeriveKey([]byte("pw"), []byte("0123456789abcdef"))

	blob1, err := Encrypt(key, "same content")
	require.NoError(t, err)
	blob2, err := Encrypt(key, "same content")
	require.NoError(t, err)

	assert.NotEqual(t, blob1, blob2)
}

func TestDecrypt_WrongKey(t *testing.T) {
	salt := []byte("0123456789abcdef")
	key1 := DeriveKey([]byte("password-one"), salt)
	key2 := DeriveKey([]byte("password-two"), salt)

	blob, err := Encrypt(key1, "top secret")
	require.NoError(t, err)

	_, err = Decrypt(key2, blob)
	assert.True(t, errors.Is(err, common.ErrInvalidKeyOrData))
}

func TestDecrypt_CorruptedData(t *testing.T) {
	key := DeriveKey([]byte("pw"), []byte("0123456789abcdef"))

	_, err := Decrypt(key, "not base64 at all!!!")
	assert.True(t, errors.Is(err, common.ErrInvalidKeyOrData))

	_, err = Decrypt(key, "c2hvcnQ=") // valid base64, shorter than a nonce
	assert.True(t, errors.Is(err, common.ErrInvalidKeyOrData))

	blob, err := Encrypt(key, "payload")
	require.NoError(t, err)
	tampered := blob[:len(blob)-4] + "AAA="
	_, err = Decrypt(key, tampered)
	assert.True(t, errors.Is(err, common.ErrInvalidKeyOrData))
}
