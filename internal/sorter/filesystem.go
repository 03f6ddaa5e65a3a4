package sorter

import (
	"io"
	"time"
)

// Timestamps holds the filesystem timestamps relevant to date resolution.
// Either field may be the zero time when the underlying filesystem does
// not track it (birth time in particular is unavailable on many Unix
// filesystems).
type Timestamps struct {
	Birth    time.Time
	Modified time.Time
}

// FilesystemManager provides an interface for source-side filesystem
// operations. It abstracts file access to enable testing without touching
// the real filesystem.
type FilesystemManager interface {
	// Resolve validates a raw path and returns a Path object.
	// It resolves the path to an absolute path, stats it, and validates
	// it's a regular file or directory (not a symlink, device, etc.).
	Resolve(rawPath string) (*Path, error)

	// Open opens a file for reading.
	Open(path *Path) (io.ReadCloser, error)

	// Timestamps returns the birth and modification times for a path.
	// Unavailable timestamps are returned as the zero time, not an error.
	Timestamps(path *Path) (Timestamps, error)

	// FindFiles discovers regular files under the given directory path.
	// When recursive is true, files in subdirectories are included.
	// Files matching the manager's skip patterns are excluded.
	FindFiles(path *Path, recursive bool) ([]*Path, error)

	// Remove deletes a file. Used for move semantics after a successful
	// store at the destination.
	Remove(path *Path) error
}
