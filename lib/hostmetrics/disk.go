// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostmetrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/bureau-foundation/hostwatch/lib/command"
)

// Disk is the root filesystem section of a sample. Sizes are df's
// human-readable strings ("46G"); Percent is the numeral df prints with
// its "%" removed, kept as a string for dashboard compatibility.
type Disk struct {
	Total     string `json:"total"`
	Used      string `json:"used"`
	Available string `json:"available"`
	Percent   string `json:"percent"`
}

// ZeroDisk is the placeholder reported when df cannot be read.
var ZeroDisk = Disk{Total: "0G", Used: "0G", Available: "0G", Percent: "0"}

// DiskUsage runs `df -h /` through runner and parses the root
// filesystem row. Returns ZeroDisk with an error on any failure.
func DiskUsage(ctx context.Context, runner command.Runner) (Disk, error) {
	result, err := runner.Run(ctx, "df", "-h", "/")
	if err != nil {
		return ZeroDisk, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if result.ExitCode != 0 {
		return ZeroDisk, fmt.Errorf("%w: df exited %d: %s", ErrCommand, result.ExitCode,
			strings.TrimSpace(string(result.Stderr)))
	}
	return parseDF(string(result.Stdout))
}

// parseDF extracts usage from df's second output line:
//
//	Filesystem      Size  Used Avail Use% Mounted on
//	/dev/nvme0n1p2  468G  201G  244G  46% /
func parseDF(output string) (Disk, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) < 2 {
		return ZeroDisk, fmt.Errorf("%w: df printed %d line(s), want at least 2", ErrMalformed, len(lines))
	}
	fields := strings.Fields(lines[1])
	if len(fields) < 5 {
		return ZeroDisk, fmt.Errorf("%w: df row has %d field(s), want at least 5", ErrMalformed, len(fields))
	}
	return Disk{
		Total:     fields[1],
		Used:      fields[2],
		Available: fields[3],
		Percent:   strings.TrimSuffix(fields[4], "%"),
	}, nil
}
