// Package exif reads embedded capture timestamps from image files.
package exif

import (
	"fmt"
	"io"
	"strings"
	"time"

	"picsort/internal/sorter"

	"github.com/rwcarlsen/goexif/exif"
)

// exifTimeLayout is the timestamp format mandated by the EXIF standard.
const exifTimeLayout = "2006:01:02 15:04:05"

// dateFields are the EXIF fields consulted, in priority order: the
// capture-specific fields first, then the generic one from the primary
// image block.
var dateFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// Reader is the goexif implementation of sorter.MetadataReader.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// CaptureTime returns the first successfully parsed, non-zero timestamp
// among the EXIF date fields. Decode failures and absent fields surface
// as errors; the caller degrades to its next date source.
func (*Reader) CaptureTime(r io.Reader) (time.Time, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return time.Time{}, fmt.Errorf("decoding exif: %w", err)
	}

	for _, field := range dateFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		t, err := ParseExifTime(raw)
		if err != nil || t.IsZero() {
			continue
		}
		return t, nil
	}

	return time.Time{}, sorter.ErrNoCaptureTime
}

// ParseExifTime parses an EXIF "YYYY:MM:DD HH:MM:SS" timestamp in local
// time. Cameras that have no clock value write all-zero timestamps; those
// fail to parse and are reported as errors.
func ParseExifTime(raw string) (time.Time, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "\x00")
	t, err := time.ParseInLocation(exifTimeLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing exif timestamp %q: %w", raw, err)
	}
	return t, nil
}

// Compile-time check that Reader implements sorter.MetadataReader
var _ sorter.MetadataReader = (*Reader)(nil)
