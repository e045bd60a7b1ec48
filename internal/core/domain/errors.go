// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Feed errors
	ErrFeedUnavailable = errors.New("feed unavailable")
	ErrEmptyFeed       = errors.New("feed returned empty body")

	// Resolver errors
	ErrResolverNotFound   = errors.New("resolver not found")
	ErrResolverInitFailed = errors.New("resolver initialization failed")
	ErrUnresolved         = errors.New("address could not be resolved to a country")

	// Verification errors
	ErrVerifyCanceled = errors.New("verification canceled")

	// Configuration errors
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidQuota   = errors.New("invalid quota value")
	ErrInvalidCountry = errors.New("invalid country code")
	ErrMissingFeedURL = errors.New("feed url is required")

	// Export errors
	ErrExportFailed      = errors.New("export failed")
	ErrInvalidOutputPath = errors.New("invalid output path")
)
