package sorter

import "fmt"

// SortCriterion selects which destination-subdirectory algorithm the
// planner uses. Set once per run.
type SortCriterion int

const (
	// ByDate buckets files by their resolved capture date, rendered
	// through the structure template.
	ByDate SortCriterion = iota
	// ByName buckets files by the upper-cased first letter of the
	// filename stem.
	ByName
	// BySize buckets files into Small/Medium/Large tiers.
	BySize
)

// String returns the CLI spelling of the criterion.
func (c SortCriterion) String() string {
	switch c {
	case ByDate:
		return "date"
	case ByName:
		return "name"
	case BySize:
		return "size"
	default:
		return fmt.Sprintf("SortCriterion(%d)", int(c))
	}
}

// ParseCriterion parses the CLI spelling of a sort criterion.
func ParseCriterion(s string) (SortCriterion, error) {
	switch s {
	case "date":
		return ByDate, nil
	case "name":
		return ByName, nil
	case "size":
		return BySize, nil
	default:
		return 0, fmt.Errorf("unknown sort criterion: %q (want date, name or size)", s)
	}
}
