package constants

import "io/fs"

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// LockJSONDepthCap bounds recursion into package-lock.json trees.
	LockJSONDepthCap = 10
	// LockJSONArrayCap bounds how many elements of a lockfile array are visited.
	LockJSONArrayCap = 100
	// LockJSONStructuredLimitBytes is the size past which a JSON lockfile is
	// scanned with the text fallback instead of being parsed.
	LockJSONStructuredLimitBytes = 50 * 1024 * 1024
	// LockBinarySkipLimitBytes is the size past which a binary lockfile is
	// skipped entirely.
	LockBinarySkipLimitBytes = 100 * 1024 * 1024
	// LockTextChunkBytes is the read chunk size for text lockfiles.
	LockTextChunkBytes = 8 * 1024
	// LockBinaryChunkBytes is the read chunk size for binary lockfiles.
	LockBinaryChunkBytes = 16 * 1024
)

const (
	// DefaultScanWorkers is the worker pool size when none is configured.
	DefaultScanWorkers = 4
	// MaxBatchSize caps how many targets are dispatched per batch.
	MaxBatchSize = 50
	// DefaultCacheTTLSecs is how long a cached scan result stays fresh.
	DefaultCacheTTLSecs = 3600
	// ProbeTimeoutSecs bounds the single outbound request of a URL probe.
	ProbeTimeoutSecs = 10
)
