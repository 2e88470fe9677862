package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sharedErrors "github.com/khanhnv2901/r2s-cli/internal/shared/errors"
)

// ErrPathEscape indicates the resolved path would escape the trusted root directory.
var ErrPathEscape = errors.New("path escapes base directory")

// ValidateScanRoot resolves a user-supplied scan path, following symlinks,
// and rejects anything that fails to resolve, carries a parent-directory
// marker after resolution, or does not exist. The returned path is absolute.
func ValidateScanRoot(path string) (string, error) {
	if path == "" {
		return "", sharedErrors.ErrPathUnresolvable
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", sharedErrors.ErrPathUnresolvable, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", sharedErrors.ErrPathNotFound, abs)
		}
		return "", fmt.Errorf("%w: %v", sharedErrors.ErrPathUnresolvable, err)
	}

	if strings.Contains(resolved, "..") {
		return "", fmt.Errorf("%w: %s", sharedErrors.ErrPathTraversal, resolved)
	}

	if _, err := os.Stat(resolved); err != nil {
		return "", fmt.Errorf("%w: %s", sharedErrors.ErrPathNotFound, resolved)
	}

	return resolved, nil
}

// ResolveWithin joins the provided path elements under the given base directory
// and ensures the resulting path never traverses outside of that base. The
// returned path is absolute.
func ResolveWithin(base string, elems ...string) (string, error) {
	if base == "" {
		return "", errors.New("base directory is required")
	}

	cleanBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve base path: %w", err)
	}

	joined := filepath.Join(append([]string{cleanBase}, elems...)...)
	target, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("resolve target path: %w", err)
	}

	rel, err := filepath.Rel(cleanBase, target)
	if err != nil {
		return "", fmt.Errorf("relativize path: %w", err)
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, target)
	}

	return target, nil
}
