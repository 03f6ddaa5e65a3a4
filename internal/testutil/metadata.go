package testutil

import (
	"io"
	"time"

	"picsort/internal/sorter"
)

// StubMetadataReader returns a canned capture time, or an error when none
// is set. It ignores the file content entirely.
type StubMetadataReader struct {
	captureTime time.Time
	err         error
}

// NewStubMetadataReader creates a reader that reports no capture time.
func NewStubMetadataReader() *StubMetadataReader {
	return &StubMetadataReader{err: sorter.ErrNoCaptureTime}
}

// SetCaptureTime makes subsequent CaptureTime calls return t.
func (r *StubMetadataReader) SetCaptureTime(t time.Time) {
	r.captureTime = t
	r.err = nil
}

// SetError makes subsequent CaptureTime calls fail with err.
func (r *StubMetadataReader) SetError(err error) {
	r.captureTime = time.Time{}
	r.err = err
}

func (r *StubMetadataReader) CaptureTime(io.Reader) (time.Time, error) {
	if r.err != nil {
		return time.Time{}, r.err
	}
	return r.captureTime, nil
}

// Compile-time check
var _ sorter.MetadataReader = (*StubMetadataReader)(nil)
