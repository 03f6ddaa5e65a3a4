package exif

import (
	"bytes"
	"testing"
	"time"
)

func TestParseExifTime(t *testing.T) {
	t.Run("standard timestamp", func(t *testing.T) {
		got, err := ParseExifTime("2023:08:20 14:30:05")
		if err != nil {
			t.Fatalf("ParseExifTime() error = %v", err)
		}
		want := time.Date(2023, 8, 20, 14, 30, 5, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("trailing NUL padding is stripped", func(t *testing.T) {
		got, err := ParseExifTime("2023:08:20 14:30:05\x00")
		if err != nil {
			t.Fatalf("ParseExifTime() error = %v", err)
		}
		if got.Year() != 2023 {
			t.Errorf("year = %d, want 2023", got.Year())
		}
	})

	t.Run("all-zero camera timestamp fails", func(t *testing.T) {
		if _, err := ParseExifTime("0000:00:00 00:00:00"); err == nil {
			t.Error("expected error for all-zero timestamp")
		}
	})

	t.Run("malformed input fails", func(t *testing.T) {
		for _, raw := range []string{"", "2023-08-20 14:30:05", "not a date"} {
			if _, err := ParseExifTime(raw); err == nil {
				t.Errorf("ParseExifTime(%q) expected error", raw)
			}
		}
	})
}

func TestReader_CaptureTime(t *testing.T) {
	t.Run("non-image bytes fail to decode", func(t *testing.T) {
		r := NewReader()
		if _, err := r.CaptureTime(bytes.NewReader([]byte("plain text, no exif"))); err == nil {
			t.Error("expected decode error for non-image input")
		}
	})

	t.Run("empty input fails to decode", func(t *testing.T) {
		r := NewReader()
		if _, err := r.CaptureTime(bytes.NewReader(nil)); err == nil {
			t.Error("expected decode error for empty input")
		}
	})
}
