package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"picsort/internal/sorter"

	"github.com/djherbis/times"
)

// OSFilesystemManager is the real filesystem implementation of
// sorter.FilesystemManager. It performs actual filesystem operations
// using the os package.
type OSFilesystemManager struct {
	skip *SkipMatcher
}

// NewOSFilesystemManager creates a filesystem manager that operates on the
// real filesystem. skipPatterns are matched against discovered files and
// directories in addition to the built-in defaults.
func NewOSFilesystemManager(skipPatterns []string) *OSFilesystemManager {
	return &OSFilesystemManager{
		skip: NewSkipMatcher(skipPatterns),
	}
}

// Resolve validates a raw path and returns a Path object.
func (m *OSFilesystemManager) Resolve(rawPath string) (*sorter.Path, error) {
	// Convert to absolute path
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	// Stat the path
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	// Check for special file types we don't support
	mode := info.Mode()
	if mode&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("symlinks not supported: %s", absPath)
	}
	if mode&os.ModeDevice != 0 {
		return nil, fmt.Errorf("device files not supported: %s", absPath)
	}
	if mode&os.ModeNamedPipe != 0 {
		return nil, fmt.Errorf("named pipes not supported: %s", absPath)
	}
	if mode&os.ModeSocket != 0 {
		return nil, fmt.Errorf("sockets not supported: %s", absPath)
	}

	return sorter.NewPath(absPath, info.IsDir(), info), nil
}

// Open opens a file for reading.
func (m *OSFilesystemManager) Open(path *sorter.Path) (io.ReadCloser, error) {
	if path.IsDir() {
		return nil, fmt.Errorf("cannot open directory as file: %s", path.String())
	}
	return os.Open(path.String())
}

// Timestamps returns the birth and modification times for a path.
// Birth time is unavailable on many Unix filesystems; it is reported as
// the zero time in that case rather than an error.
func (m *OSFilesystemManager) Timestamps(path *sorter.Path) (sorter.Timestamps, error) {
	t, err := times.Stat(path.String())
	if err != nil {
		return sorter.Timestamps{}, fmt.Errorf("stat timestamps: %w", err)
	}

	ts := sorter.Timestamps{Modified: t.ModTime()}
	if t.HasBirthTime() {
		ts.Birth = t.BirthTime()
	}
	return ts, nil
}

// Remove deletes a file. Directories are refused.
func (m *OSFilesystemManager) Remove(path *sorter.Path) error {
	if path.IsDir() {
		return fmt.Errorf("cannot remove directory: %s", path.String())
	}
	if err := os.Remove(path.String()); err != nil {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

// FindFiles discovers regular files under the given directory path,
// excluding files and directories matched by the skip patterns.
func (m *OSFilesystemManager) FindFiles(path *sorter.Path, recursive bool) ([]*sorter.Path, error) {
	if !path.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path.String())
	}

	var paths []*sorter.Path

	if recursive {
		err := filepath.WalkDir(path.String(), func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path.String() && m.skip.Match(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if m.skip.Match(d.Name()) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("stat %s: %w", p, err)
			}
			paths = append(paths, sorter.NewPath(p, false, info))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking directory: %w", err)
		}
	} else {
		entries, err := os.ReadDir(path.String())
		if err != nil {
			return nil, fmt.Errorf("reading directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			if m.skip.Match(entry.Name()) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
			}
			fullPath := filepath.Join(path.String(), entry.Name())
			paths = append(paths, sorter.NewPath(fullPath, false, info))
		}
	}

	return paths, nil
}

// Compile-time check that OSFilesystemManager implements sorter.FilesystemManager
var _ sorter.FilesystemManager = (*OSFilesystemManager)(nil)
