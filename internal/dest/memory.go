package dest

import (
	"fmt"
	"os"
	"sync"

	"picsort/internal/sorter"
)

// MemoryDestination is an in-memory implementation of the Destination
// interface, useful for testing and dry-run inspection. This
// implementation is safe for concurrent use.
type MemoryDestination struct {
	files map[string][]byte // destPath -> content
	mu    sync.RWMutex
}

// NewMemoryDestination creates a new in-memory destination.
func NewMemoryDestination() *MemoryDestination {
	return &MemoryDestination{
		files: make(map[string][]byte),
	}
}

// Exists reports whether something was stored at destPath.
func (m *MemoryDestination) Exists(destPath string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[destPath]
	return ok, nil
}

// Store reads the source file and records its content at destPath.
func (m *MemoryDestination) Store(srcPath string, destPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading source file: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[destPath] = data
	return nil
}

// ValidateSetup always succeeds for the in-memory destination.
func (m *MemoryDestination) ValidateSetup() error {
	return nil
}

// Put records content at destPath without reading any source file.
// Test helper for pre-populating collisions.
func (m *MemoryDestination) Put(destPath string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[destPath] = content
}

// Get returns the content stored at destPath.
func (m *MemoryDestination) Get(destPath string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[destPath]
	return data, ok
}

// Count returns the number of stored files.
func (m *MemoryDestination) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// Compile-time check that MemoryDestination implements sorter.Destination
var _ sorter.Destination = (*MemoryDestination)(nil)
