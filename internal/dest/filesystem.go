package dest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"picsort/internal/sorter"
)

// FilesystemDestination is a local-filesystem implementation of the
// Destination interface. Destination paths are absolute paths; missing
// intermediate directories are created on store.
type FilesystemDestination struct {
	root string
}

// NewFilesystemDestination creates a destination rooted at the given
// directory. Nothing is created here: Store makes directories on demand,
// so a dry run never touches the disk.
func NewFilesystemDestination(root string) (*FilesystemDestination, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving destination root: %w", err)
	}
	return &FilesystemDestination{root: absRoot}, nil
}

// Root returns the absolute destination root.
func (d *FilesystemDestination) Root() string {
	return d.root
}

// Exists reports whether anything occupies destPath.
func (d *FilesystemDestination) Exists(destPath string) (bool, error) {
	_, err := os.Stat(destPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat destination: %w", err)
}

// Store copies the source file to destPath, creating intermediate
// directories as needed. The write is atomic: data goes to a temp file in
// the destination directory first, then an os.Rename puts it in place, so
// a crash never leaves a half-written image at the final path.
func (d *FilesystemDestination) Store(srcPath string, destPath string) error {
	// Source first: a store that fails to open its input must not leave
	// empty directories behind.
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	// Temp file in the same directory so the rename stays on one device.
	tmpFile, err := os.CreateTemp(destDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, src); err != nil {
		tmpFile.Close()
		return fmt.Errorf("copying content: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// ValidateSetup verifies that the destination root is usable. A missing
// root is fine, the first Store creates it; anything present must be a
// directory.
func (d *FilesystemDestination) ValidateSetup() error {
	info, err := os.Stat(d.root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("destination root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destination root is not a directory: %s", d.root)
	}
	return nil
}

// Compile-time check that FilesystemDestination implements sorter.Destination
var _ sorter.Destination = (*FilesystemDestination)(nil)
