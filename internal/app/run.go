package app

// SortRun tracks one CLI-initiated run for logging purposes. Every run
// gets a fresh ID so its log lines can be grepped out of the shared log
// file.
type SortRun struct {
	ID        string
	Operation string
	Status    string // "success", "error" or "canceled"
}

// NewSortRun creates a new in-memory run record with status "success".
func NewSortRun(id, operation string) *SortRun {
	return &SortRun{
		ID:        id,
		Operation: operation,
		Status:    "success",
	}
}

// Fail marks the run as failed.
func (r *SortRun) Fail() {
	r.Status = "error"
}

// Cancel marks the run as canceled.
func (r *SortRun) Cancel() {
	r.Status = "canceled"
}
