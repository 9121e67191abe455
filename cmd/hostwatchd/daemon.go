// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/bureau-foundation/hostwatch/lib/archive"
	"github.com/bureau-foundation/hostwatch/lib/clock"
	"github.com/bureau-foundation/hostwatch/lib/command"
	"github.com/bureau-foundation/hostwatch/lib/config"
	"github.com/bureau-foundation/hostwatch/lib/hostmetrics"
	"github.com/bureau-foundation/hostwatch/lib/snapshot"
	"github.com/bureau-foundation/hostwatch/lib/updates"
)

// State is a daemon lifecycle phase. Phases only advance.
type State int32

const (
	StateStarting State = iota
	StateBootPipeline
	StateSampling
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateBootPipeline:
		return "boot-pipeline"
	case StateSampling:
		return "sampling"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// daemonOptions carries the dependencies that tests replace.
type daemonOptions struct {
	Clock  clock.Clock
	Logger *slog.Logger

	// DiskRunner runs df. Default: command.Exec bounded by
	// disk_timeout.
	DiskRunner command.Runner

	// UpdateRunner runs the package manager. Default: command.Exec
	// bounded by update_timeout.
	UpdateRunner command.Runner

	// Once stops after the first sampling iteration.
	Once bool
}

// Daemon owns the run flag and the boot-time results.
type Daemon struct {
	config    *config.Config
	clock     clock.Clock
	logger    *slog.Logger
	once      bool
	sampler   *hostmetrics.Sampler
	checker   *updates.Checker
	archiver  *archive.Creator
	publisher *snapshot.Publisher

	// running is cleared by Stop, which the signal goroutine calls.
	// The loop reads it once per iteration.
	running atomic.Bool
	state   atomic.Int32

	iterations int
}

func newDaemon(cfg *config.Config, options daemonOptions) *Daemon {
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.DiskRunner == nil {
		options.DiskRunner = command.Exec{Timeout: cfg.DiskTimeout}
	}
	if options.UpdateRunner == nil {
		options.UpdateRunner = command.Exec{Timeout: cfg.UpdateTimeout}
	}

	daemon := &Daemon{
		config: cfg,
		clock:  options.Clock,
		logger: options.Logger,
		once:   options.Once,
		sampler: hostmetrics.NewSampler(hostmetrics.SamplerConfig{
			ProcRoot: cfg.ProcRoot(),
			Window:   cfg.SampleWindow,
			Runner:   options.DiskRunner,
			Clock:    options.Clock,
			Logger:   options.Logger,
		}),
		checker: updates.NewChecker(updates.Config{
			Root:      cfg.RootDir,
			ReportDir: cfg.LogsDir(),
			Runner:    options.UpdateRunner,
			Clock:     options.Clock,
			Logger:    options.Logger,
		}),
		archiver: &archive.Creator{
			Source:    cfg.BackupSource,
			Directory: cfg.BackupDir(),
			Clock:     options.Clock,
			Logger:    options.Logger,
		},
		publisher: &snapshot.Publisher{
			Path:     cfg.PublishPath,
			Encoding: snapshot.Encoding(cfg.Encoding),
		},
	}
	daemon.running.Store(true)
	return daemon
}

// State returns the current lifecycle phase.
func (d *Daemon) State() State {
	return State(d.state.Load())
}

func (d *Daemon) setState(state State) {
	d.state.Store(int32(state))
	d.logger.Debug("daemon state", "state", state.String())
}

// Stop clears the run flag. The loop exits after the iteration in
// flight. Safe to call from any goroutine, any number of times.
func (d *Daemon) Stop() {
	if d.running.Swap(false) {
		d.logger.Info("stopping daemon")
	}
}

// Run executes the whole lifecycle and returns when the daemon has
// stopped. The only error is a failure to create the output
// directories, which happens before any signal handler is installed.
func (d *Daemon) Run(ctx context.Context) error {
	d.setState(StateStarting)
	if err := d.config.EnsurePaths(); err != nil {
		return fmt.Errorf("creating output directories: %w", err)
	}
	stopSignals := d.handleSignals()
	defer stopSignals()

	d.logger.Info("daemon started",
		"base_dir", d.config.BaseDir,
		"publish_path", d.config.PublishPath,
		"encoding", d.config.Encoding,
	)

	d.setState(StateBootPipeline)
	boot := d.bootPipeline(ctx)

	d.setState(StateSampling)
	for d.running.Load() {
		boot = d.iterate(ctx, boot)
		if d.once {
			break
		}
	}

	d.setState(StateStopping)
	d.logger.Info("daemon stopped", "iterations", d.iterations)
	d.setState(StateStopped)
	return nil
}

// handleSignals clears the run flag on SIGINT or SIGTERM. The returned
// function uninstalls the handler.
func (d *Daemon) handleSignals() func() {
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case received := <-signals:
				d.logger.Info("received signal", "signal", received.String())
				d.Stop()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}

// bootPipeline runs the one-shot tasks. It always returns a Boot;
// failures are carried inside the results.
func (d *Daemon) bootPipeline(ctx context.Context) snapshot.Boot {
	d.logger.Info("running boot tasks")

	boot := snapshot.Boot{
		Identity: hostmetrics.ReadIdentity(ctx),
		Updates:  d.checker.Check(ctx),
		Archive:  d.archiver.Create(),
	}
	boot = boot.WithHistory(d.listHistory())
	boot.Time = d.clock.Now()

	d.logger.Info("boot tasks completed, starting sampling loop",
		"distro", boot.Updates.Distro,
		"count", boot.Updates.Count,
		"archive_status", boot.Archive.Status,
		"filename", boot.Archive.Filename,
	)
	return boot
}

// listHistory lists archives and reports, logging and publishing an
// empty listing on error.
func (d *Daemon) listHistory() ([]archive.Entry, []archive.Entry) {
	archives, err := archive.ListArchives(d.config.BackupDir(), d.config.ArchiveHistory)
	if err != nil {
		d.logger.Warn("listing archives failed", "path", d.config.BackupDir(), "error", err)
	}
	reports, err := archive.ListReports(d.config.LogsDir(), d.config.ReportHistory)
	if err != nil {
		d.logger.Warn("listing update reports failed", "path", d.config.LogsDir(), "error", err)
	}
	return archives, reports
}

// iterate samples, assembles, and publishes one snapshot. It returns
// boot with refreshed history when refresh_history is enabled.
func (d *Daemon) iterate(ctx context.Context, boot snapshot.Boot) snapshot.Boot {
	sample := d.sampler.Sample(ctx)
	if d.config.RefreshHistory {
		boot = boot.WithHistory(d.listHistory())
	}

	document := snapshot.Assemble(boot, sample, d.clock.Now())
	if err := d.publisher.Publish(document); err != nil {
		d.logger.Error("publishing snapshot failed", "path", d.config.PublishPath, "error", err)
	}
	d.iterations++
	return boot
}
