package sorter_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"picsort/internal/sorter"
	"picsort/internal/testutil"
)

// serviceFixture bundles a Service with its fakes.
type serviceFixture struct {
	svc   *sorter.Service
	fsmgr *testutil.MockFilesystemManager
	meta  *testutil.StubMetadataReader
	dest  *testutil.StubDestination
	clock *testutil.StubClock
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	fsmgr := testutil.NewMockFilesystemManager()
	meta := testutil.NewStubMetadataReader()
	dest := testutil.NewStubDestination()
	clock := testutil.FixedClock()

	resolver := sorter.NewDateResolver(meta, fsmgr, clock, sorter.NewNopLogger())
	svc := sorter.NewService(resolver, sorter.NewPathPlanner(), fsmgr, dest, sorter.NewNopLogger())

	return &serviceFixture{svc: svc, fsmgr: fsmgr, meta: meta, dest: dest, clock: clock}
}

// collect drains the event stream into a slice.
func collect(t *testing.T, events <-chan sorter.Event) []sorter.Event {
	t.Helper()
	var out []sorter.Event
	for e := range events {
		out = append(out, e)
	}
	return out
}

func defaultJob() *sorter.Job {
	return &sorter.Job{
		Source:       "/photos/in",
		Target:       "/photos/out",
		Criterion:    sorter.ByDate,
		KeepOriginal: true,
	}
}

func TestService_Run(t *testing.T) {
	t.Run("sorts files and reports progress", func(t *testing.T) {
		f := newServiceFixture(t)
		f.fsmgr.AddDirectory("/photos/in")
		taken := time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC)
		f.meta.SetCaptureTime(taken)
		f.fsmgr.AddFile("/photos/in/a.jpg", []byte("aaa"))
		f.fsmgr.AddFile("/photos/in/b.jpg", []byte("bbb"))

		events, err := f.svc.Run(context.Background(), defaultJob())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		got := collect(t, events)
		if len(got) != 4 {
			t.Fatalf("got %d events, want 4: %+v", len(got), got)
		}
		if got[0].Kind != sorter.RunStarted {
			t.Errorf("first event = %v, want started", got[0].Kind)
		}
		if got[3].Kind != sorter.RunCompleted {
			t.Errorf("last event = %v, want completed", got[3].Kind)
		}

		wantDest := filepath.Join("/photos/out", "2023", "08", "a.jpg")
		if got[1].Kind != sorter.ItemSorted || got[1].Destination != wantDest {
			t.Errorf("event 1 = %+v, want sorted to %s", got[1], wantDest)
		}
		if got[1].Percent != 50 || got[2].Percent != 100 {
			t.Errorf("percents = %d, %d, want 50, 100", got[1].Percent, got[2].Percent)
		}
		if f.dest.StoreCount() != 2 {
			t.Errorf("stored %d files, want 2", f.dest.StoreCount())
		}
	})

	t.Run("ignores files outside the extension allow-list", func(t *testing.T) {
		f := newServiceFixture(t)
		f.fsmgr.AddDirectory("/photos/in")
		f.meta.SetCaptureTime(time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC))
		f.fsmgr.AddFile("/photos/in/a.JPG", []byte("img")) // case-insensitive match
		f.fsmgr.AddFile("/photos/in/notes.txt", []byte("text"))
		f.fsmgr.AddFile("/photos/in/video.mp4", []byte("vid"))

		events, err := f.svc.Run(context.Background(), defaultJob())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		var sorted []string
		for _, e := range collect(t, events) {
			if e.Kind == sorter.ItemSorted {
				sorted = append(sorted, e.Source)
			}
		}
		if len(sorted) != 1 || sorted[0] != "/photos/in/a.JPG" {
			t.Errorf("sorted = %v, want only /photos/in/a.JPG", sorted)
		}
	})

	t.Run("keep original leaves the source in place", func(t *testing.T) {
		f := newServiceFixture(t)
		f.fsmgr.AddDirectory("/photos/in")
		f.meta.SetCaptureTime(time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC))
		f.fsmgr.AddFile("/photos/in/a.jpg", []byte("img"))

		events, _ := f.svc.Run(context.Background(), defaultJob())
		collect(t, events)

		if f.fsmgr.Removed("/photos/in/a.jpg") {
			t.Error("source file was removed despite keep_original")
		}
	})

	t.Run("move removes the source after a successful store", func(t *testing.T) {
		f := newServiceFixture(t)
		f.fsmgr.AddDirectory("/photos/in")
		f.meta.SetCaptureTime(time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC))
		f.fsmgr.AddFile("/photos/in/a.jpg", []byte("img"))

		job := defaultJob()
		job.KeepOriginal = false
		events, _ := f.svc.Run(context.Background(), job)
		collect(t, events)

		if !f.fsmgr.Removed("/photos/in/a.jpg") {
			t.Error("source file still present after move")
		}
		if f.dest.StoreCount() != 1 {
			t.Errorf("stored %d files, want 1", f.dest.StoreCount())
		}
	})

	t.Run("dry run plans identically but mutates nothing", func(t *testing.T) {
		plannedPaths := func(dryRun bool) []string {
			f := newServiceFixture(t)
			f.fsmgr.AddDirectory("/photos/in")
			f.meta.SetCaptureTime(time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC))
			f.fsmgr.AddFile("/photos/in/a.jpg", []byte("img"))
			f.fsmgr.AddFile("/photos/in/b.jpg", []byte("img"))

			job := defaultJob()
			job.DryRun = dryRun
			job.KeepOriginal = false
			events, err := f.svc.Run(context.Background(), job)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			var paths []string
			for _, e := range collect(t, events) {
				if e.Kind == sorter.ItemSorted {
					paths = append(paths, e.Destination)
				}
			}

			if dryRun {
				if f.dest.StoreCount() != 0 {
					t.Errorf("dry run stored %d files, want 0", f.dest.StoreCount())
				}
				if f.fsmgr.Removed("/photos/in/a.jpg") {
					t.Error("dry run removed a source file")
				}
			}
			return paths
		}

		real := plannedPaths(false)
		dry := plannedPaths(true)
		if len(real) != len(dry) {
			t.Fatalf("destination counts differ: real %d, dry %d", len(real), len(dry))
		}
		for i := range real {
			if real[i] != dry[i] {
				t.Errorf("destination %d differs: real %q, dry %q", i, real[i], dry[i])
			}
		}
	})

	t.Run("same-named sources get suffixes in dry and real runs alike", func(t *testing.T) {
		destinations := func(dryRun bool) []string {
			f := newServiceFixture(t)
			f.fsmgr.AddDirectory("/photos/in")
			f.meta.SetCaptureTime(time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC))
			f.fsmgr.AddFile("/photos/in/x/a.jpg", []byte("one"))
			f.fsmgr.AddFile("/photos/in/y/a.jpg", []byte("two"))

			job := defaultJob()
			job.DryRun = dryRun
			events, err := f.svc.Run(context.Background(), job)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			var paths []string
			for _, e := range collect(t, events) {
				if e.Kind == sorter.ItemSorted {
					paths = append(paths, e.Destination)
				}
			}
			return paths
		}

		want := []string{
			filepath.Join("/photos/out", "2023", "08", "a.jpg"),
			filepath.Join("/photos/out", "2023", "08", "a_1.jpg"),
		}
		for _, dryRun := range []bool{false, true} {
			got := destinations(dryRun)
			if len(got) != len(want) {
				t.Fatalf("dryRun=%v: got %d destinations, want %d", dryRun, len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("dryRun=%v: destination %d = %q, want %q", dryRun, i, got[i], want[i])
				}
			}
		}
	})

	t.Run("collisions resolve with numeric suffixes", func(t *testing.T) {
		f := newServiceFixture(t)
		f.fsmgr.AddDirectory("/photos/in")
		f.meta.SetCaptureTime(time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC))
		f.fsmgr.AddFile("/photos/in/a.jpg", []byte("img"))
		f.dest.AddExisting(filepath.Join("/photos/out", "2023", "08", "a.jpg"))
		f.dest.AddExisting(filepath.Join("/photos/out", "2023", "08", "a_1.jpg"))

		events, _ := f.svc.Run(context.Background(), defaultJob())
		got := collect(t, events)

		want := filepath.Join("/photos/out", "2023", "08", "a_2.jpg")
		if got[1].Kind != sorter.ItemSorted || got[1].Destination != want {
			t.Errorf("event = %+v, want sorted to %s", got[1], want)
		}
	})

	t.Run("overwrite skips collision probing", func(t *testing.T) {
		f := newServiceFixture(t)
		f.fsmgr.AddDirectory("/photos/in")
		f.meta.SetCaptureTime(time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC))
		f.fsmgr.AddFile("/photos/in/a.jpg", []byte("img"))
		f.dest.AddExisting(filepath.Join("/photos/out", "2023", "08", "a.jpg"))

		job := defaultJob()
		job.Overwrite = true
		events, _ := f.svc.Run(context.Background(), job)
		got := collect(t, events)

		want := filepath.Join("/photos/out", "2023", "08", "a.jpg")
		if got[1].Kind != sorter.ItemSorted || got[1].Destination != want {
			t.Errorf("event = %+v, want sorted to %s", got[1], want)
		}
	})

	t.Run("per-file failures do not abort the run", func(t *testing.T) {
		f := newServiceFixture(t)
		f.fsmgr.AddDirectory("/photos/in")
		f.meta.SetCaptureTime(time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC))
		f.fsmgr.AddFile("/photos/in/a.jpg", []byte("img"))
		f.fsmgr.AddFile("/photos/in/b.jpg", []byte("img"))
		f.dest.FailStores(errors.New("disk full"))

		events, err := f.svc.Run(context.Background(), defaultJob())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		got := collect(t, events)
		failed := 0
		for _, e := range got {
			if e.Kind == sorter.ItemFailed {
				failed++
				if e.Err == nil {
					t.Error("ItemFailed event carries no error")
				}
			}
		}
		if failed != 2 {
			t.Errorf("failed = %d, want 2", failed)
		}
		if got[len(got)-1].Kind != sorter.RunCompleted {
			t.Errorf("last event = %v, want completed", got[len(got)-1].Kind)
		}
	})

	t.Run("second run while active fails immediately", func(t *testing.T) {
		f := newServiceFixture(t)
		f.fsmgr.AddDirectory("/photos/in")
		f.meta.SetCaptureTime(time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC))
		f.fsmgr.AddFile("/photos/in/a.jpg", []byte("img"))

		events, err := f.svc.Run(context.Background(), defaultJob())
		if err != nil {
			t.Fatalf("first Run() error = %v", err)
		}

		// The first run is blocked on its unconsumed event stream.
		if _, err := f.svc.Run(context.Background(), defaultJob()); !errors.Is(err, sorter.ErrAlreadyRunning) {
			t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
		}

		collect(t, events)

		// After the first run drains, a new run may start.
		events2, err := f.svc.Run(context.Background(), defaultJob())
		if err != nil {
			t.Fatalf("third Run() error = %v", err)
		}
		collect(t, events2)
	})

	t.Run("cancellation is cooperative and terminal", func(t *testing.T) {
		f := newServiceFixture(t)
		f.fsmgr.AddDirectory("/photos/in")
		f.meta.SetCaptureTime(time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC))
		f.fsmgr.AddFile("/photos/in/a.jpg", []byte("img"))
		f.fsmgr.AddFile("/photos/in/b.jpg", []byte("img"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Run itself still succeeds; the worker notices at the first
		// file boundary.
		events, err := f.svc.Run(ctx, defaultJob())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		got := collect(t, events)
		if len(got) != 2 {
			t.Fatalf("got %d events, want 2: %+v", len(got), got)
		}
		if got[0].Kind != sorter.RunStarted || got[1].Kind != sorter.RunCanceled {
			t.Errorf("events = %+v, want started then canceled", got)
		}
		if f.dest.StoreCount() != 0 {
			t.Errorf("stored %d files after cancel, want 0", f.dest.StoreCount())
		}
	})

	t.Run("missing source fails synchronously", func(t *testing.T) {
		f := newServiceFixture(t)

		if _, err := f.svc.Run(context.Background(), defaultJob()); err == nil {
			t.Error("Run() expected error for missing source directory")
		}
	})

	t.Run("invalid job fails synchronously", func(t *testing.T) {
		f := newServiceFixture(t)
		job := defaultJob()
		job.Target = ""

		if _, err := f.svc.Run(context.Background(), job); err == nil {
			t.Error("Run() expected error for missing target")
		}
	})
}
