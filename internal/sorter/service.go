package sorter

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrAlreadyRunning is returned by Run when a run is already in progress
// on this Service. A second run is never queued or interleaved.
var ErrAlreadyRunning = errors.New("a sort run is already in progress")

// Service orchestrates one sort run: it enumerates eligible source files,
// resolves a capture date and plans a destination for each, performs the
// copy or move, and streams lifecycle events to the caller.
//
// Files are processed one at a time in enumeration order by a single
// worker goroutine; the goroutine exists only so the caller is not
// blocked while consuming the event stream.
type Service struct {
	resolver *DateResolver
	planner  *PathPlanner
	fsmgr    FilesystemManager
	dest     Destination
	logger   Logger

	running atomic.Bool
}

// NewService creates a Service with the provided dependencies.
func NewService(resolver *DateResolver, planner *PathPlanner, fsmgr FilesystemManager, dest Destination, logger Logger) *Service {
	return &Service{
		resolver: resolver,
		planner:  planner,
		fsmgr:    fsmgr,
		dest:     dest,
		logger:   logger,
	}
}

// Run validates the job and starts a run, returning its event stream.
// The channel yields a finite, ordered sequence: RunStarted, one
// ItemSorted or ItemFailed per file, then RunCompleted or RunCanceled.
// It is closed after the terminal event.
//
// Configuration errors and ErrAlreadyRunning are reported synchronously;
// once a channel is returned, no error aborts the run as a whole.
// Cancellation via ctx is cooperative, checked at file boundaries.
func (s *Service) Run(ctx context.Context, job *Job) (<-chan Event, error) {
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job: %w", err)
	}

	src, err := s.fsmgr.Resolve(job.Source)
	if err != nil {
		return nil, fmt.Errorf("resolving source: %w", err)
	}
	if !src.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", src.String())
	}

	if err := s.dest.ValidateSetup(); err != nil {
		return nil, fmt.Errorf("validating destination: %w", err)
	}

	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}

	files, err := s.enumerate(src)
	if err != nil {
		s.running.Store(false)
		return nil, fmt.Errorf("enumerating source files: %w", err)
	}

	s.logger.Info("run starting", "source", job.Source, "target", job.Target,
		"criterion", job.Criterion.String(), "files", len(files), "dry_run", job.DryRun)

	events := make(chan Event)
	go s.process(ctx, job, files, events)
	return events, nil
}

// enumerate returns all image files under src, recursively, in the order
// the filesystem walk yields them.
func (s *Service) enumerate(src *Path) ([]*Path, error) {
	all, err := s.fsmgr.FindFiles(src, true)
	if err != nil {
		return nil, err
	}

	files := all[:0]
	for _, f := range all {
		if IsImageFile(f.String()) {
			files = append(files, f)
		}
	}
	return files, nil
}

// process is the run's single worker. It owns the event channel and
// always closes it after a terminal event.
func (s *Service) process(ctx context.Context, job *Job, files []*Path, events chan<- Event) {
	// The run flag clears before the channel closes, so a caller that
	// drained the stream can start a new run immediately.
	defer close(events)
	defer s.running.Store(false)

	events <- Event{Kind: RunStarted}

	// Destination paths chosen for earlier files of this run. Consulted
	// during collision resolution so planning does not depend on stored
	// files being visible at the destination yet, which also keeps dry
	// runs planning exactly like real runs.
	claimed := make(map[string]bool)

	total := len(files)
	for i, f := range files {
		select {
		case <-ctx.Done():
			s.logger.Info("run canceled", "processed", i, "total", total)
			events <- Event{Kind: RunCanceled}
			return
		default:
		}

		percent := (i + 1) * 100 / total

		destPath, err := s.processFile(job, f, claimed)
		if err != nil {
			// Isolated to this file; the run continues.
			s.logger.Warn("file failed", "path", f.String(), "error", err)
			events <- Event{Kind: ItemFailed, Source: f.String(), Percent: percent, Err: err}
			continue
		}

		events <- Event{Kind: ItemSorted, Source: f.String(), Destination: destPath, Percent: percent}
	}

	s.logger.Info("run completed", "total", total)
	events <- Event{Kind: RunCompleted}
}

// processFile resolves, plans and stores a single file, returning the
// final destination path. The chosen path is claimed before any store so
// later files of the run collide against it in dry and real runs alike.
func (s *Service) processFile(job *Job, f *Path, claimed map[string]bool) (string, error) {
	taken := s.resolver.Resolve(f)

	planned, err := s.planner.Plan(job, f, taken)
	if err != nil {
		return "", fmt.Errorf("planning destination: %w", err)
	}

	destPath := planned.Path()
	if !job.Overwrite {
		destPath, err = ResolveCollision(s.dest, planned, claimed)
		if err != nil {
			return "", err
		}
	}
	claimed[destPath] = true

	if job.DryRun {
		s.logger.Debug("dry run, skipping store", "path", f.String(), "destination", destPath)
		return destPath, nil
	}

	if err := s.dest.Store(f.String(), destPath); err != nil {
		return "", fmt.Errorf("storing file: %w", err)
	}

	if !job.KeepOriginal {
		if err := s.fsmgr.Remove(f); err != nil {
			return "", fmt.Errorf("removing original after move: %w", err)
		}
	}

	return destPath, nil
}
