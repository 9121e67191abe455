// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package updates

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/hostwatch/lib/clock"
	"github.com/bureau-foundation/hostwatch/lib/command"
)

// ReportPrefix starts every report file name; history listings match
// on it.
const ReportPrefix = "updates_"

// FileTimeFormat is the timestamp layout embedded in report and archive
// file names. It sorts lexically in time order.
const FileTimeFormat = "20060102_150405"

// Result is the outcome of one check, embedded unchanged in every
// published snapshot.
type Result struct {
	Count   int       `json:"count"`
	List    []Package `json:"list"`
	Distro  string    `json:"distro"`
	LogFile string    `json:"log_file"`
}

// Config configures a Checker.
type Config struct {
	// Root prefixes the release marker files and /usr/bin/checkupdates.
	// Default: "/".
	Root string

	// ReportDir receives the updates_<timestamp>.log report. Required.
	ReportDir string

	// Runner executes the package manager. Default: command.Exec.
	Runner command.Runner

	// Clock stamps the report. Default: clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Checker runs the update check.
type Checker struct {
	root      string
	reportDir string
	runner    command.Runner
	clock     clock.Clock
	logger    *slog.Logger
}

// NewChecker returns a Checker with defaults applied.
func NewChecker(config Config) *Checker {
	checker := &Checker{
		root:      config.Root,
		reportDir: config.ReportDir,
		runner:    config.Runner,
		clock:     config.Clock,
		logger:    config.Logger,
	}
	if checker.root == "" {
		checker.root = "/"
	}
	if checker.runner == nil {
		checker.runner = command.Exec{}
	}
	if checker.clock == nil {
		checker.clock = clock.Real()
	}
	if checker.logger == nil {
		checker.logger = slog.Default()
	}
	return checker
}

// Check detects the distribution, queries pending upgrades, and writes
// the report. It always returns a Result; List is never nil.
func (c *Checker) Check(ctx context.Context) Result {
	now := c.clock.Now()
	family := DetectFamily(c.root)
	c.logger.Info("checking for package updates", "distro", family.String())

	packages, queryErr := c.query(ctx, family)
	if queryErr != nil {
		c.logger.Warn("update query failed, reporting no packages",
			"distro", family.String(), "error", queryErr)
		packages = nil
	}
	if packages == nil {
		packages = []Package{}
	}

	reportName := ReportPrefix + now.Format(FileTimeFormat) + ".log"
	reportPath := filepath.Join(c.reportDir, reportName)
	render := func(w io.Writer) error {
		if queryErr != nil {
			return WriteFailureReport(w, now, family, queryErr)
		}
		return WriteReport(w, now, family, packages)
	}
	if err := writeReportFile(reportPath, render); err != nil {
		c.logger.Error("writing update report failed", "path", reportPath, "error", err)
	} else {
		c.logger.Info("update report written", "path", reportPath,
			"count", len(packages), "query_failed", queryErr != nil)
	}

	return Result{
		Count:   len(packages),
		List:    packages,
		Distro:  family.String(),
		LogFile: reportName,
	}
}

// query runs the family's package manager and parses its output. A
// non-zero exit is parsed like a zero one: checkupdates exits 2 when
// nothing is pending and pacman -Qu exits 1.
func (c *Checker) query(ctx context.Context, family Family) ([]Package, error) {
	switch family {
	case FamilyArch:
		name, args := "pacman", []string{"-Qu"}
		if exists(filepath.Join(c.root, "usr", "bin", "checkupdates")) {
			name, args = "checkupdates", nil
		}
		result, err := c.runner.Run(ctx, name, args...)
		if err != nil {
			return nil, err
		}
		return parsePacman(string(result.Stdout)), nil

	case FamilyDebian:
		result, err := c.runner.Run(ctx, "apt", "list", "--upgradable")
		if err != nil {
			return nil, err
		}
		return parseApt(string(result.Stdout)), nil

	default:
		return nil, nil
	}
}

func writeReportFile(path string, render func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := render(file); err != nil {
		file.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}
	return nil
}
