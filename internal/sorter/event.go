package sorter

// EventKind identifies a lifecycle event in a sort run's event stream.
type EventKind int

const (
	// RunStarted is emitted once, before the first file.
	RunStarted EventKind = iota
	// ItemSorted is emitted for each successfully processed file.
	ItemSorted
	// ItemFailed is emitted for a file whose processing failed.
	// Non-fatal: the run continues with the next file.
	ItemFailed
	// RunCompleted is the terminal event of a run that processed
	// every enumerated file.
	RunCompleted
	// RunCanceled is the terminal event of a cooperatively canceled
	// run. Already-processed files are not rolled back.
	RunCanceled
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case RunStarted:
		return "started"
	case ItemSorted:
		return "sorted"
	case ItemFailed:
		return "failed"
	case RunCompleted:
		return "completed"
	case RunCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Event is one entry in the finite, ordered event sequence streamed out
// of Service.Run. The run's outcome is observed entirely through this
// sequence; there is no other return channel.
type Event struct {
	Kind EventKind

	// Source is the original file path. Set for ItemSorted and ItemFailed.
	Source string
	// Destination is the final destination path. Set for ItemSorted.
	Destination string
	// Percent is the integer progress 0-100 after this item. Set for
	// ItemSorted and ItemFailed.
	Percent int
	// Err carries the per-item failure. Set for ItemFailed.
	Err error
}
