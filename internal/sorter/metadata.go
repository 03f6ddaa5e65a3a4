package sorter

import (
	"errors"
	"io"
	"time"
)

// ErrNoCaptureTime indicates the file carries no usable embedded capture
// timestamp. Callers treat any error from CaptureTime the same way, but
// this sentinel lets implementations distinguish "no field" from a decode
// failure in their own logging.
var ErrNoCaptureTime = errors.New("no capture time in metadata")

// MetadataReader extracts the embedded capture timestamp from an image.
// Implementations try the capture-specific fields first (date-time-original,
// then date-time-digitized) before the generic date-time field, and return
// the first successfully parsed, non-zero value.
type MetadataReader interface {
	CaptureTime(r io.Reader) (time.Time, error)
}
