package testutil

import (
	"fmt"
	"sync"

	"picsort/internal/sorter"
)

// StubDestination records stores without touching any real storage, so
// service tests can run entirely against the mock filesystem.
type StubDestination struct {
	mu       sync.Mutex
	existing map[string]bool
	stored   map[string]string // destPath -> srcPath
	storeErr error
}

// NewStubDestination creates an empty stub destination.
func NewStubDestination() *StubDestination {
	return &StubDestination{
		existing: make(map[string]bool),
		stored:   make(map[string]string),
	}
}

// AddExisting marks destPath as already occupied, without a store.
func (d *StubDestination) AddExisting(destPath string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.existing[destPath] = true
}

// FailStores makes every subsequent Store call return err.
func (d *StubDestination) FailStores(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.storeErr = err
}

// Stored returns the source path stored at destPath, if any.
func (d *StubDestination) Stored(destPath string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	src, ok := d.stored[destPath]
	return src, ok
}

// StoreCount returns the number of successful stores.
func (d *StubDestination) StoreCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.stored)
}

func (d *StubDestination) Exists(destPath string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.existing[destPath] {
		return true, nil
	}
	_, ok := d.stored[destPath]
	return ok, nil
}

func (d *StubDestination) Store(srcPath string, destPath string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.storeErr != nil {
		return fmt.Errorf("store failed: %w", d.storeErr)
	}
	d.stored[destPath] = srcPath
	return nil
}

func (d *StubDestination) ValidateSetup() error {
	return nil
}

// Compile-time check
var _ sorter.Destination = (*StubDestination)(nil)
