package testutil

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"picsort/internal/sorter"
)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Content     []byte
	Size        int64 // overrides len(Content) when non-zero
	Permissions fs.FileMode
	ModTime     time.Time
	BirthTime   time.Time // zero = filesystem does not track it
	IsDirectory bool
}

// MockFilesystemManager is an in-memory filesystem for testing.
// FindFiles returns files in sorted path order so tests are deterministic.
type MockFilesystemManager struct {
	files map[string]*MockFile
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files: make(map[string]*MockFile),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFilesystemManager) AddFile(path string, content []byte) {
	now := time.Now()
	m.files[path] = &MockFile{
		Content:     content,
		Permissions: 0644,
		ModTime:     now,
		IsDirectory: false,
	}
}

// AddFileWithTimes adds a file with explicit birth and modification times.
// A zero birth time models a filesystem without birth-time support.
func (m *MockFilesystemManager) AddFileWithTimes(path string, content []byte, birth, modified time.Time) {
	m.files[path] = &MockFile{
		Content:     content,
		Permissions: 0644,
		ModTime:     modified,
		BirthTime:   birth,
		IsDirectory: false,
	}
}

// AddDirectory adds a directory to the mock filesystem.
func (m *MockFilesystemManager) AddDirectory(path string) {
	now := time.Now()
	m.files[path] = &MockFile{
		Permissions: 0755,
		ModTime:     now,
		IsDirectory: true,
	}
}

// AddFileWithSize adds an empty file that reports the given size,
// avoiding the need to allocate megabytes of content in size-tier tests.
func (m *MockFilesystemManager) AddFileWithSize(path string, size int64) {
	now := time.Now()
	m.files[path] = &MockFile{
		Size:        size,
		Permissions: 0644,
		ModTime:     now,
		IsDirectory: false,
	}
}

// Removed reports whether the file at path has been removed.
func (m *MockFilesystemManager) Removed(path string) bool {
	_, ok := m.files[path]
	return !ok
}

func (m *MockFilesystemManager) Resolve(rawPath string) (*sorter.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, err
	}

	file, ok := m.files[absPath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", absPath)
	}

	return sorter.NewPath(absPath, file.IsDirectory, m.info(absPath, file)), nil
}

func (m *MockFilesystemManager) Open(path *sorter.Path) (io.ReadCloser, error) {
	file, ok := m.files[path.String()]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path.String())
	}
	if file.IsDirectory {
		return nil, fmt.Errorf("cannot open directory: %s", path.String())
	}
	return io.NopCloser(bytes.NewReader(file.Content)), nil
}

func (m *MockFilesystemManager) Timestamps(path *sorter.Path) (sorter.Timestamps, error) {
	file, ok := m.files[path.String()]
	if !ok {
		return sorter.Timestamps{}, fmt.Errorf("file not found: %s", path.String())
	}
	return sorter.Timestamps{
		Birth:    file.BirthTime,
		Modified: file.ModTime,
	}, nil
}

func (m *MockFilesystemManager) FindFiles(path *sorter.Path, recursive bool) ([]*sorter.Path, error) {
	if !path.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path.String())
	}

	prefix := path.String() + string(filepath.Separator)

	var names []string
	for p, f := range m.files {
		if f.IsDirectory || !strings.HasPrefix(p, prefix) {
			continue
		}
		if !recursive && strings.Contains(p[len(prefix):], string(filepath.Separator)) {
			continue
		}
		names = append(names, p)
	}
	sort.Strings(names)

	paths := make([]*sorter.Path, len(names))
	for i, p := range names {
		paths[i] = sorter.NewPath(p, false, m.info(p, m.files[p]))
	}
	return paths, nil
}

func (m *MockFilesystemManager) Remove(path *sorter.Path) error {
	if _, ok := m.files[path.String()]; !ok {
		return fmt.Errorf("file not found: %s", path.String())
	}
	delete(m.files, path.String())
	return nil
}

func (m *MockFilesystemManager) info(path string, file *MockFile) fs.FileInfo {
	size := int64(len(file.Content))
	if file.Size != 0 {
		size = file.Size
	}
	return &mockFileInfo{
		name:     filepath.Base(path),
		size:     size,
		mode:     file.Permissions,
		modTime:  file.ModTime,
		isDir:    file.IsDirectory,
		mockFile: file,
	}
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name     string
	size     int64
	mode     fs.FileMode
	modTime  time.Time
	isDir    bool
	mockFile *MockFile
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return m.mockFile }

// Compile-time check
var _ sorter.FilesystemManager = (*MockFilesystemManager)(nil)
