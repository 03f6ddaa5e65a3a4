package dest

import (
	"context"
	"testing"

	"picsort/internal/config"
)

func TestNewDestinationFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("empty type defaults to filesystem", func(t *testing.T) {
		d, err := NewDestinationFromConfig(ctx, config.DestinationConfig{}, t.TempDir())
		if err != nil {
			t.Fatalf("NewDestinationFromConfig() error = %v", err)
		}
		if _, ok := d.(*FilesystemDestination); !ok {
			t.Errorf("got %T, want *FilesystemDestination", d)
		}
	})

	t.Run("filesystem type requires a target", func(t *testing.T) {
		_, err := NewDestinationFromConfig(ctx, config.DestinationConfig{Type: "filesystem"}, "")
		if err == nil {
			t.Error("expected error for missing target")
		}
	})

	t.Run("memory type", func(t *testing.T) {
		d, err := NewDestinationFromConfig(ctx, config.DestinationConfig{Type: "memory"}, "")
		if err != nil {
			t.Fatalf("NewDestinationFromConfig() error = %v", err)
		}
		if _, ok := d.(*MemoryDestination); !ok {
			t.Errorf("got %T, want *MemoryDestination", d)
		}
	})

	t.Run("unknown type fails", func(t *testing.T) {
		_, err := NewDestinationFromConfig(ctx, config.DestinationConfig{Type: "ftp"}, "")
		if err == nil {
			t.Error("expected error for unknown type")
		}
	})
}
