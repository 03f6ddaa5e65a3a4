package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/home/user/.local/share/picsort")

	if cfg.SortBy != "date" {
		t.Errorf("SortBy = %q, want date", cfg.SortBy)
	}
	if !cfg.KeepOriginal {
		t.Error("KeepOriginal = false, want true")
	}
	if cfg.LogDir != filepath.Join("/home/user/.local/share/picsort", "log") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.Destination.Type != "filesystem" {
		t.Errorf("Destination.Type = %q, want filesystem", cfg.Destination.Type)
	}
	if cfg.Overwrite || cfg.DryRun || cfg.Rename {
		t.Error("boolean flags should default to false")
	}
}

func TestManager_ReadWrite(t *testing.T) {
	m := &Manager{}

	original := NewConfig("/base")
	original.Source = "/photos/inbox"
	original.Target = "/photos/sorted"
	original.SortBy = "name"
	original.Structure = "YYYY/MM/DD"
	original.Rename = true
	original.Filesystem.Skip = []string{"*.tmp", "backup"}
	original.Destination = DestinationConfig{
		Type:     "s3",
		S3Bucket: "my-photos",
		S3Region: "eu-central-1",
	}

	var buf bytes.Buffer
	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.Source != original.Source || got.Target != original.Target {
		t.Errorf("paths differ: %+v", got)
	}
	if got.SortBy != "name" || got.Structure != "YYYY/MM/DD" || !got.Rename {
		t.Errorf("sort settings differ: %+v", got)
	}
	if got.Destination.Type != "s3" || got.Destination.S3Bucket != "my-photos" {
		t.Errorf("destination differs: %+v", got.Destination)
	}
	if len(got.Filesystem.Skip) != 2 || got.Filesystem.Skip[0] != "*.tmp" {
		t.Errorf("skip patterns differ: %v", got.Filesystem.Skip)
	}
}

func TestManager_Read(t *testing.T) {
	t.Run("parses a handwritten config", func(t *testing.T) {
		input := `
source = "/photos/inbox"
target = "/photos/sorted"
sort_by = "size"
keep_original = false

[filesystem]
skip = ["PRIVATE"]
`
		m := &Manager{}
		cfg, err := m.Read(bytes.NewBufferString(input))
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if cfg.SortBy != "size" {
			t.Errorf("SortBy = %q, want size", cfg.SortBy)
		}
		if cfg.KeepOriginal {
			t.Error("KeepOriginal = true, want false")
		}
		if len(cfg.Filesystem.Skip) != 1 || cfg.Filesystem.Skip[0] != "PRIVATE" {
			t.Errorf("Skip = %v", cfg.Filesystem.Skip)
		}
	})

	t.Run("rejects malformed toml", func(t *testing.T) {
		m := &Manager{}
		if _, err := m.Read(bytes.NewBufferString("source = [broken")); err == nil {
			t.Error("Read() expected error for malformed input")
		}
	})
}

func TestInit(t *testing.T) {
	t.Run("creates a new config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "picsort.toml")

		if err := Init(path, NewConfig("/base")); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		cfg, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if cfg.SortBy != "date" {
			t.Errorf("SortBy = %q, want date", cfg.SortBy)
		}
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "picsort.toml")
		if err := os.WriteFile(path, []byte("source = \"/keep\"\n"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}

		if err := Init(path, NewConfig("/base")); err == nil {
			t.Error("Init() expected error for existing file")
		}

		cfg, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if cfg.Source != "/keep" {
			t.Error("existing config was overwritten")
		}
	})
}
