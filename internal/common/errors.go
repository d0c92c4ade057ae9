// Package common defines shared sentinel errors used across snippy
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("snippet not found")

	// Crypto / authentication errors.
	ErrInvalidKeyOrData     = errors.New("invalid key or corrupted data")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrKeyRequired          = errors.New("encryption key required")
	ErrEncryptionDisabled   = errors.New("encryption is not enabled")

	// Execution errors.
	ErrUnsupportedLanguage    = errors.New("language is not executable")
	ErrInterpreterUnavailable = errors.New("interpreter not available")
	ErrTimeout                = errors.New("execution timed out")
	ErrExecution              = errors.New("execution failed")

	// Export errors.
	ErrInvalidExportFormat = errors.New("unsupported export format")
)
