package sorter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// maxCollisionProbes bounds the numeric-suffix search. The search is
// deterministic and normally terminates after a handful of probes; the
// cap guards against a destination that reports every path as taken.
const maxCollisionProbes = 10000

// ErrTooManyCollisions indicates the numeric-suffix search exhausted its
// probe limit without finding a free destination path.
var ErrTooManyCollisions = errors.New("too many destination name collisions")

// ResolveCollision returns a destination path that collides neither with
// an existing entry at the destination nor with a path already claimed
// earlier in the run. When the planned path is free it is returned
// unchanged; otherwise _1, _2, ... are appended to the filename stem
// (extension preserved) until a free path is found.
func ResolveCollision(dest Destination, planned *PlannedDestination, claimed map[string]bool) (string, error) {
	path := planned.Path()
	free, err := pathFree(dest, claimed, path)
	if err != nil {
		return "", err
	}
	if free {
		return path, nil
	}

	ext := filepath.Ext(planned.Name)
	stem := strings.TrimSuffix(planned.Name, ext)

	for n := 1; n <= maxCollisionProbes; n++ {
		candidate := filepath.Join(planned.Dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		free, err := pathFree(dest, claimed, candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrTooManyCollisions, path)
}

// pathFree reports whether path is unoccupied at the destination and
// unclaimed by an earlier file of this run. The claimed set is what keeps
// a dry run planning identically to a real run: a dry run stores nothing,
// so the destination alone cannot see collisions between the run's own
// files.
func pathFree(dest Destination, claimed map[string]bool, path string) (bool, error) {
	if claimed[path] {
		return false, nil
	}
	exists, err := dest.Exists(path)
	if err != nil {
		return false, fmt.Errorf("probing destination: %w", err)
	}
	return !exists, nil
}
