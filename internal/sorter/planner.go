package sorter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Size tier thresholds in bytes. Comparisons are strict: a file of
// exactly 1,000,000 bytes is Medium, exactly 10,000,000 is Large.
const (
	smallLimit  = 1_000_000
	mediumLimit = 10_000_000
)

// renameLayout is the filename layout applied when the job requests
// renaming: YYYYMMdd_HHmmss plus the original extension.
const renameLayout = "20060102_150405"

// PathPlanner computes the destination for one source file. Plan is a
// pure function of its inputs: one job + one source path + one resolved
// date yields exactly one PlannedDestination, with no side effects.
type PathPlanner struct{}

// NewPathPlanner creates a PathPlanner.
func NewPathPlanner() *PathPlanner {
	return &PathPlanner{}
}

// Plan computes the destination directory and filename for src.
// The error case (empty subdirectory) is fatal for this file only,
// never for the whole run.
func (p *PathPlanner) Plan(job *Job, src *Path, taken time.Time) (*PlannedDestination, error) {
	subdir, err := p.subdirectory(job, src, taken)
	if err != nil {
		return nil, err
	}
	if subdir == "" {
		return nil, fmt.Errorf("empty destination subdirectory for %s", src.String())
	}

	name := filepath.Base(src.String())
	if job.Rename {
		name = taken.Format(renameLayout) + filepath.Ext(name)
	}

	return &PlannedDestination{
		Dir:  filepath.Join(job.Target, subdir),
		Name: name,
	}, nil
}

// subdirectory computes the destination subdirectory for src, branching
// on the job's sort criterion.
func (p *PathPlanner) subdirectory(job *Job, src *Path, taken time.Time) (string, error) {
	switch job.Criterion {
	case ByDate:
		template := job.Structure
		if template == "" {
			template = DefaultStructure
		}
		return RenderTemplate(template, taken), nil

	case ByName:
		base := filepath.Base(src.String())
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if stem == "" {
			return "Other", nil
		}
		first, _ := utf8.DecodeRuneInString(stem)
		return strings.ToUpper(string(first)), nil

	case BySize:
		if src.Info() == nil {
			return "", fmt.Errorf("no file info for %s", src.String())
		}
		return sizeTier(src.Info().Size()), nil

	default:
		return "", fmt.Errorf("unknown sort criterion: %d", int(job.Criterion))
	}
}

// sizeTier maps a file length in bytes to its bucket name.
func sizeTier(size int64) string {
	switch {
	case size < smallLimit:
		return "Small"
	case size < mediumLimit:
		return "Medium"
	default:
		return "Large"
	}
}
