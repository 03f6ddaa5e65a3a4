package dest

import (
	"context"
	"fmt"

	"picsort/internal/config"
	"picsort/internal/sorter"
)

// NewDestinationFromConfig creates a Destination implementation based on
// the destination config type. target is the job's target root, used by
// the filesystem backend.
func NewDestinationFromConfig(ctx context.Context, cfg config.DestinationConfig, target string) (sorter.Destination, error) {
	switch cfg.Type {
	case "", "filesystem":
		if target == "" {
			return nil, fmt.Errorf("filesystem destination requires a target directory")
		}
		return NewFilesystemDestination(target)
	case "memory":
		return NewMemoryDestination(), nil
	case "s3":
		return NewS3Destination(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown destination type: %s", cfg.Type)
	}
}
