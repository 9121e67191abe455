// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostmetrics

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// UnknownUptime is reported when /proc/uptime cannot be read.
const UnknownUptime = "N/A"

// ReadUptime reads the first field of the uptime file at path (seconds
// since boot, fractional) and formats it with FormatUptime.
func ReadUptime(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UnknownUptime, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return UnknownUptime, fmt.Errorf("%w: %s is empty", ErrMalformed, path)
	}
	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || seconds < 0 {
		return UnknownUptime, fmt.Errorf("%w: uptime field %q", ErrMalformed, fields[0])
	}
	return FormatUptime(seconds), nil
}

// FormatUptime renders whole hours and leftover minutes: "26h 3m".
func FormatUptime(seconds float64) string {
	total := int64(seconds)
	return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
}
