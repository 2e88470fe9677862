package errors

import "errors"

// Domain errors
var (
	// Validation errors
	ErrPathNotFound     = errors.New("scan path does not exist")
	ErrPathTraversal    = errors.New("directory traversal attempt detected")
	ErrPathUnresolvable = errors.New("scan path could not be resolved")

	// Artifact errors
	ErrInvalidManifest  = errors.New("invalid JSON in manifest")
	ErrInvalidLockfile  = errors.New("invalid JSON in lockfile")
	ErrArtifactTooLarge = errors.New("artifact exceeds size limit")

	// Cache errors
	ErrCacheMiss    = errors.New("cache entry not found")
	ErrCacheExpired = errors.New("cache entry expired")

	// Probe errors
	ErrInvalidURL       = errors.New("invalid URL format")
	ErrLocalhostBlocked = errors.New("localhost access not allowed")
	ErrPrivateIPBlocked = errors.New("private IP access not allowed")
)
