package location

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrUNCPath is returned when a path canonicalizes to a UNC form
// ("//server/share"): path.Clean collapses the leading "//" to "/", which
// would make two distinct sources collide under one SourceID.
var ErrUNCPath = errors.New("location: UNC paths are not supported")

// CanonicalPath is a filesystem path in its one canonical spelling:
// absolute, cleaned, NFC-normalized, forward-slashed, and symlink-resolved
// when the path exists. Datasource files and schema sources are keyed by
// this form so that the same file spelled two ways (a macOS NFD filename,
// a relative vs. absolute path, a symlink) still resolves to one identity.
//
// CanonicalPath is a value type with an unexported field; the zero value
// is invalid — check with IsZero.
type CanonicalPath struct {
	path string
}

// NewCanonicalPath canonicalizes p: absolute (which also cleans "." and
// ".." segments), symlinks resolved when the target exists, NFC Unicode
// normalization, forward slashes on every platform.
//
// A path that does not exist is not an error — the absolute form is used
// as-is, so callers may canonicalize a path they are about to create. Any
// other symlink-resolution failure (permission denied, a symlink loop) is
// surfaced, as is a UNC path.
func NewCanonicalPath(p string) (CanonicalPath, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return CanonicalPath{}, fmt.Errorf("canonicalize %q: %w", p, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if !os.IsNotExist(err) {
			return CanonicalPath{}, fmt.Errorf("canonicalize %q: %w", p, err)
		}
		resolved = abs
	}

	canonical := strings.ReplaceAll(filepath.ToSlash(norm.NFC.String(resolved)), `\`, "/")
	if strings.HasPrefix(canonical, "//") {
		return CanonicalPath{}, fmt.Errorf("%w: %q", ErrUNCPath, p)
	}
	return CanonicalPath{path: canonical}, nil
}

// String returns the canonical path string, the only way to read the value
// back out.
func (c CanonicalPath) String() string { return c.path }

// IsZero reports whether c is the invalid zero value.
func (c CanonicalPath) IsZero() bool { return c.path == "" }

// Base returns the last path element, or "" for the zero value.
func (c CanonicalPath) Base() string {
	if c.IsZero() {
		return ""
	}
	return path.Base(c.path)
}

// SourceID returns the SourceID identifying this path as a source.
func (c CanonicalPath) SourceID() (SourceID, error) {
	return NewSourceID(c.path)
}
