package sorter

import (
	"fmt"
	"path/filepath"
	"strings"
)

// imageExtensions is the allow-list of file extensions processed by a run.
// Matching is case-insensitive; keys are lower-cased with the dot.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".webp": true,
	".nef":  true, // Nikon RAW
	".cr2":  true, // Canon RAW
	".arw":  true, // Sony RAW
	".dng":  true, // Adobe Digital Negative
	".raw":  true,
}

// IsImageFile reports whether the path has an extension on the allow-list.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Job is the immutable configuration bundle for one sort run.
// Constructed once before the run starts; never mutated during it.
type Job struct {
	// Source is the root directory to enumerate.
	Source string
	// Target is the destination root: an absolute directory for the
	// filesystem backend, or a key prefix for the S3 backend.
	Target string
	// Criterion selects the subdirectory algorithm.
	Criterion SortCriterion
	// Structure is the date-token template for ByDate sorting.
	// Empty means the default year/month layout.
	Structure string
	// Rename replaces filenames with the resolved timestamp.
	Rename bool
	// Overwrite replaces existing destination files instead of
	// resolving collisions with numeric suffixes.
	Overwrite bool
	// DryRun plans and reports destinations without mutating anything.
	DryRun bool
	// KeepOriginal copies instead of moving.
	KeepOriginal bool
}

// Validate checks the job fields that can be checked without touching the
// filesystem. Source existence is the orchestrator's concern since it owns
// the FilesystemManager.
func (j *Job) Validate() error {
	if j.Source == "" {
		return fmt.Errorf("source directory is required")
	}
	if j.Target == "" {
		return fmt.Errorf("target directory is required")
	}
	if j.Criterion != ByDate && j.Criterion != ByName && j.Criterion != BySize {
		return fmt.Errorf("invalid sort criterion: %d", int(j.Criterion))
	}
	return nil
}

// PlannedDestination is the planner's output for one source file: where
// the file should end up, before collision resolution.
type PlannedDestination struct {
	// Dir is the destination directory (target root + subdirectory).
	Dir string
	// Name is the destination filename.
	Name string
}

// Path returns the full destination path.
func (d *PlannedDestination) Path() string {
	return filepath.Join(d.Dir, d.Name)
}
