// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/hostwatch/lib/clock"
	"github.com/bureau-foundation/hostwatch/lib/config"
	"github.com/bureau-foundation/hostwatch/lib/process"
	"github.com/bureau-foundation/hostwatch/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

// overrides holds the flags that replace config file values when they
// are explicitly set.
type overrides struct {
	baseDir        string
	backupSource   string
	publishPath    string
	encoding       string
	logLevel       string
	logFormat      string
	refreshHistory bool
}

func run(args []string) error {
	var (
		configPath  string
		flagValues  overrides
		once        bool
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("hostwatchd", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to the config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&flagValues.baseDir, "base-dir", "", "directory holding output/ and web/")
	flagSet.StringVar(&flagValues.backupSource, "backup-source", "", "directory tree archived at boot")
	flagSet.StringVar(&flagValues.publishPath, "publish-path", "", "snapshot file rewritten every iteration (default: <base-dir>/web/data.json)")
	flagSet.StringVar(&flagValues.encoding, "encoding", "", "snapshot encoding: json or cbor")
	flagSet.StringVar(&flagValues.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flagSet.StringVar(&flagValues.logFormat, "log-format", "", "log format: auto, json, text")
	flagSet.BoolVar(&flagValues.refreshHistory, "refresh-history", false, "re-list archives and reports every iteration")
	flagSet.BoolVar(&once, "once", false, "run the boot tasks and one sampling iteration, then exit")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return fmt.Errorf("unexpected argument: %s", extra[0])
	}

	if showVersion {
		version.Print(os.Stdout, "hostwatchd")
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, flagSet, flagValues)
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(os.Stderr, cfg.Log, term.IsTerminal(int(os.Stderr.Fd())))
	if err != nil {
		return err
	}

	daemon := newDaemon(cfg, daemonOptions{
		Clock:  clock.Real(),
		Logger: logger,
		Once:   once,
	})
	return daemon.Run(context.Background())
}

// applyOverrides copies each explicitly set flag into cfg.
func applyOverrides(cfg *config.Config, flagSet *pflag.FlagSet, values overrides) {
	if flagSet.Changed("base-dir") {
		cfg.BaseDir = values.baseDir
	}
	if flagSet.Changed("backup-source") {
		cfg.BackupSource = values.backupSource
	}
	if flagSet.Changed("publish-path") {
		cfg.PublishPath = values.publishPath
	}
	if flagSet.Changed("encoding") {
		cfg.Encoding = values.encoding
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = values.logLevel
	}
	if flagSet.Changed("log-format") {
		cfg.Log.Format = values.logFormat
	}
	if flagSet.Changed("refresh-history") {
		cfg.RefreshHistory = values.refreshHistory
	}
}
