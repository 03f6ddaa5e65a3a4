package sorter

import "time"

// minPlausibleYear is the plausibility floor for capture dates. Consumer
// digital cameras predating it are rare enough that anything earlier is
// treated as a broken clock.
const minPlausibleYear = 1995

// suspiciousDates are calendar dates (time-of-day ignored) that cameras
// commonly write after a clock reset, e.g. battery loss. A metadata
// timestamp landing exactly on one of these days is not trusted.
//
// The list is a hand-picked heuristic; a photo legitimately taken on one
// of these days falls back to filesystem timestamps.
var suspiciousDates = map[[3]int]bool{
	{1970, 1, 1}: true,
	{1980, 1, 1}: true,
	{2000, 1, 1}: true,
	{2010, 1, 1}: true,
	{2020, 1, 1}: true,
}

// DateResolver produces the best-available "taken" timestamp for a file
// using a layered fallback policy: embedded capture metadata, then
// filesystem timestamps, then the current clock time. It never fails.
type DateResolver struct {
	meta   MetadataReader
	fsmgr  FilesystemManager
	clock  Clock
	logger Logger
}

// NewDateResolver creates a DateResolver with the provided dependencies.
func NewDateResolver(meta MetadataReader, fsmgr FilesystemManager, clock Clock, logger Logger) *DateResolver {
	return &DateResolver{
		meta:   meta,
		fsmgr:  fsmgr,
		clock:  clock,
		logger: logger,
	}
}

// Resolve returns the capture timestamp for the file at path.
//
// Metadata read errors (corrupt file, unsupported container, I/O failure)
// are swallowed and treated as "no metadata": resolution degrades to the
// next tier rather than failing the caller.
func (r *DateResolver) Resolve(path *Path) time.Time {
	now := r.clock.Now()

	if t, ok := r.metadataTime(path); ok {
		if r.plausible(t, now, true) {
			return t
		}
		r.logger.Debug("metadata date rejected", "path", path.String(), "date", t)
	}

	if t, ok := r.filesystemTime(path); ok {
		// The filesystem tier skips the suspicious-date table: an epoch
		// mtime is a real (if odd) filesystem fact, not a camera reset.
		if r.plausible(t, now, false) {
			return t
		}
		r.logger.Debug("filesystem date rejected", "path", path.String(), "date", t)
	}

	return now
}

// metadataTime reads the embedded capture timestamp, reporting ok=false
// when the file has no usable metadata.
func (r *DateResolver) metadataTime(path *Path) (time.Time, bool) {
	f, err := r.fsmgr.Open(path)
	if err != nil {
		r.logger.Debug("opening file for metadata", "path", path.String(), "error", err)
		return time.Time{}, false
	}
	defer f.Close()

	t, err := r.meta.CaptureTime(f)
	if err != nil {
		return time.Time{}, false
	}
	if t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// filesystemTime returns the earlier of the file's birth and modification
// times. A file copied or touched later than its true creation should not
// appear newer than its original date. Reports ok=false when neither
// timestamp is available.
func (r *DateResolver) filesystemTime(path *Path) (time.Time, bool) {
	ts, err := r.fsmgr.Timestamps(path)
	if err != nil {
		r.logger.Debug("reading filesystem timestamps", "path", path.String(), "error", err)
		return time.Time{}, false
	}

	switch {
	case ts.Birth.IsZero() && ts.Modified.IsZero():
		return time.Time{}, false
	case ts.Birth.IsZero():
		return ts.Modified, true
	case ts.Modified.IsZero():
		return ts.Birth, true
	case ts.Birth.Before(ts.Modified):
		return ts.Birth, true
	default:
		return ts.Modified, true
	}
}

// plausible applies the plausibility filter: no future dates, no years
// before the floor, and (for metadata only) no known camera-reset dates.
// A rejected timestamp is discarded entirely, never partially trusted.
func (r *DateResolver) plausible(t time.Time, now time.Time, checkSuspicious bool) bool {
	if t.After(now) {
		return false
	}
	if t.Year() < minPlausibleYear {
		return false
	}
	if checkSuspicious {
		y, m, d := t.Date()
		if suspiciousDates[[3]int{y, int(m), d}] {
			return false
		}
	}
	return true
}
