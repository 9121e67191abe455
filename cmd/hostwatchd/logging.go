// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/hostwatch/lib/config"
)

// newLogger builds the daemon logger. Format "auto" picks the text
// handler when terminal is true and JSON otherwise.
func newLogger(w io.Writer, logConfig config.LogConfig, terminal bool) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logConfig.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logConfig.Level, err)
	}
	options := &slog.HandlerOptions{Level: level}

	format := logConfig.Format
	if format == "auto" {
		format = "json"
		if terminal {
			format = "text"
		}
	}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, options)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, options)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", logConfig.Format)
	}
}
