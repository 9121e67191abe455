// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostmetrics

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bureau-foundation/hostwatch/lib/clock"
	"github.com/bureau-foundation/hostwatch/lib/command"
)

// DefaultWindow is the CPU sampling window between the two /proc/stat
// reads. It dominates the cost of a sampling iteration.
const DefaultWindow = time.Second

// Sample is one point-in-time set of readings.
type Sample struct {
	CPUPercent float64
	Memory     Memory
	Disk       Disk
	Uptime     string
}

// SamplerConfig configures a Sampler. Zero values select the
// production defaults.
type SamplerConfig struct {
	// ProcRoot is the directory holding stat, meminfo, and uptime.
	// Default: /proc.
	ProcRoot string

	// Window is the delay between the two CPU reads. Default:
	// DefaultWindow.
	Window time.Duration

	// Runner executes df. Default: command.Exec with no timeout.
	Runner command.Runner

	// Clock provides the sampling wait. Default: clock.Real().
	Clock clock.Clock

	// Logger receives failure-kind transitions. Default: slog.Default().
	Logger *slog.Logger
}

// Sampler collects Samples. Each collector degrades independently; the
// Sampler logs a warning when a collector starts failing (or changes
// failure kind) and an info line when it recovers, so a persistently
// missing tool does not flood the log once per second.
//
// A Sampler is meant to be driven by a single goroutine.
type Sampler struct {
	procRoot string
	window   time.Duration
	runner   command.Runner
	clock    clock.Clock
	logger   *slog.Logger

	failing map[string]string
}

// NewSampler returns a Sampler with defaults applied.
func NewSampler(config SamplerConfig) *Sampler {
	sampler := &Sampler{
		procRoot: config.ProcRoot,
		window:   config.Window,
		runner:   config.Runner,
		clock:    config.Clock,
		logger:   config.Logger,
		failing:  make(map[string]string),
	}
	if sampler.procRoot == "" {
		sampler.procRoot = "/proc"
	}
	if sampler.window <= 0 {
		sampler.window = DefaultWindow
	}
	if sampler.runner == nil {
		sampler.runner = command.Exec{}
	}
	if sampler.clock == nil {
		sampler.clock = clock.Real()
	}
	if sampler.logger == nil {
		sampler.logger = slog.Default()
	}
	return sampler
}

// Sample takes a full set of readings. It blocks for at least the CPU
// window.
func (s *Sampler) Sample(ctx context.Context) Sample {
	var sample Sample
	sample.CPUPercent = s.CPUPercent()

	memory, err := ReadMemory(filepath.Join(s.procRoot, "meminfo"))
	s.observe("memory", err)
	sample.Memory = memory

	disk, err := DiskUsage(ctx, s.runner)
	s.observe("disk", err)
	sample.Disk = disk

	uptime, err := ReadUptime(filepath.Join(s.procRoot, "uptime"))
	s.observe("uptime", err)
	sample.Uptime = uptime

	return sample
}

// CPUPercent reads /proc/stat, waits one window, reads it again, and
// returns the utilization between the two reads. Returns 0 if either
// read fails. The window is waited even when the first read fails, so
// the loop period never drops below one window.
func (s *Sampler) CPUPercent() float64 {
	path := filepath.Join(s.procRoot, "stat")

	previous, err := ReadCPUStats(path)
	s.clock.Sleep(s.window)
	if err != nil {
		s.observe("cpu", err)
		return 0
	}

	current, err := ReadCPUStats(path)
	s.observe("cpu", err)
	if err != nil {
		return 0
	}
	return CPUPercent(previous, current)
}

// observe records the outcome of one collector and logs transitions.
func (s *Sampler) observe(collector string, err error) {
	previous, wasFailing := s.failing[collector]
	if err == nil {
		if wasFailing {
			delete(s.failing, collector)
			s.logger.Info("metric collector recovered", "collector", collector)
		}
		return
	}

	kind := FailureKind(err)
	if wasFailing && previous == kind {
		s.logger.Debug("metric collector still failing", "collector", collector, "kind", kind, "error", err)
		return
	}
	s.failing[collector] = kind
	s.logger.Warn("metric collector failed, reporting default value",
		"collector", collector, "kind", kind, "error", err)
}
