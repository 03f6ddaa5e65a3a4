package app

import (
	"context"
	"fmt"
	"os"

	"picsort/internal/config"
	"picsort/internal/dest"
	"picsort/internal/exif"
	"picsort/internal/fs"
	"picsort/internal/sorter"
)

// App is the application layer between the CLI and the sorter.Service.
// It constructs all dependencies from config and manages the log file
// lifecycle on Close.
type App struct {
	cfg     *config.Config
	fsmgr   sorter.FilesystemManager
	dest    sorter.Destination
	service *sorter.Service
	run     *SortRun
	logFile *os.File
	logger  sorter.Logger
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Sort", "Plan").
// The caller must call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, operation string) (*App, error) {
	return newApp(ctx, cfg, operation, sorter.UUIDGenerator{})
}

// newApp is NewApp with an injectable ID generator for deterministic tests.
func newApp(ctx context.Context, cfg *config.Config, operation string, idgen sorter.IDGenerator) (*App, error) {
	fsmgr := fs.NewOSFilesystemManager(cfg.Filesystem.Skip)

	d, err := dest.NewDestinationFromConfig(ctx, cfg.Destination, cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("creating destination: %w", err)
	}

	run := NewSortRun(idgen.New(), operation)

	slogger, logFile, err := newLogger(cfg.LogDir, run.ID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	resolver := sorter.NewDateResolver(exif.NewReader(), fsmgr, sorter.RealClock{}, logger)
	svc := sorter.NewService(resolver, sorter.NewPathPlanner(), fsmgr, d, logger)

	return &App{
		cfg:     cfg,
		fsmgr:   fsmgr,
		dest:    d,
		service: svc,
		run:     run,
		logFile: logFile,
		logger:  logger,
	}, nil
}

// Job builds the immutable job for this run from the config.
func (a *App) Job() (*sorter.Job, error) {
	criterion, err := sorter.ParseCriterion(a.cfg.SortBy)
	if err != nil {
		return nil, err
	}

	return &sorter.Job{
		Source:       a.cfg.Source,
		Target:       a.cfg.Target,
		Criterion:    criterion,
		Structure:    a.cfg.Structure,
		Rename:       a.cfg.Rename,
		Overwrite:    a.cfg.Overwrite,
		DryRun:       a.cfg.DryRun,
		KeepOriginal: a.cfg.KeepOriginal,
	}, nil
}

// Sort starts a run and returns its event stream. Configuration errors
// and an already-running state are reported synchronously.
func (a *App) Sort(ctx context.Context) (<-chan sorter.Event, error) {
	job, err := a.Job()
	if err != nil {
		a.run.Fail()
		return nil, err
	}

	events, err := a.service.Run(ctx, job)
	if err != nil {
		a.run.Fail()
		return nil, err
	}
	return events, nil
}

// RunID returns the unique ID of this run, as tagged in the log file.
func (a *App) RunID() string {
	return a.run.ID
}

// Observe updates the run record from a terminal event.
func (a *App) Observe(e sorter.Event) {
	switch e.Kind {
	case sorter.RunCanceled:
		a.run.Cancel()
	case sorter.ItemFailed:
		a.run.Fail()
	}
}

// Close finalizes the run record and closes the log file.
func (a *App) Close() error {
	a.logger.Info("run finished", "operation", a.run.Operation, "status", a.run.Status)
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
