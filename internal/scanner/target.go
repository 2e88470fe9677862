package scanner

// TargetKind classifies a discovered artifact by the reader that handles it.
type TargetKind int

const (
	// KindManifest is a package.json declaring dependencies.
	KindManifest TargetKind = iota
	// KindLockJSON is a package-lock.json resolved dependency tree.
	KindLockJSON
	// KindLockText is a text lockfile (yarn.lock, pnpm-lock.yaml, *.lock).
	KindLockText
	// KindLockBinary is a binary lockfile (bun.lockb).
	KindLockBinary
	// KindNodeModulesDir is an installed node_modules directory.
	KindNodeModulesDir
)

func (k TargetKind) String() string {
	switch k {
	case KindManifest:
		return "manifest"
	case KindLockJSON:
		return "lock-json"
	case KindLockText:
		return "lock-text"
	case KindLockBinary:
		return "lock-binary"
	case KindNodeModulesDir:
		return "node-modules"
	}
	return "unknown"
}

// Target is a discovered scannable artifact. Created during discovery and
// consumed exactly once by its reader.
type Target struct {
	Kind TargetKind
	Path string
}
