// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostmetrics

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// CPUReading captures cumulative CPU time from the aggregate line of
// /proc/stat for delta computation:
//
//	cpu  user nice system idle iowait irq softirq steal [guest guest_nice]
//
// busy  = user + nice + system + irq + softirq + steal
// total = sum of every reported field
type CPUReading struct {
	Busy  uint64
	Total uint64
}

// ReadCPUStats parses the first line of the stat file at path. At least
// the four classic fields (user nice system idle) must be present;
// kernels that report fewer trailing fields contribute what they have.
func ReadCPUStats(path string) (*CPUReading, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, path, err)
		}
		return nil, fmt.Errorf("%w: %s is empty", ErrMalformed, path)
	}

	fields := strings.Fields(scanner.Text())
	if len(fields) < 5 || fields[0] != "cpu" {
		return nil, fmt.Errorf("%w: unexpected first line in %s", ErrMalformed, path)
	}

	values := make([]uint64, len(fields)-1)
	for i, field := range fields[1:] {
		parsed, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d of %s: %v", ErrMalformed, i+1, path, err)
		}
		values[i] = parsed
	}

	var reading CPUReading
	for i, value := range values {
		reading.Total += value
		// 0=user 1=nice 2=system, 5=irq 6=softirq 7=steal
		if i <= 2 || (i >= 5 && i <= 7) {
			reading.Busy += value
		}
	}
	return &reading, nil
}

// CPUPercent computes utilization between two readings, rounded to one
// decimal place. Returns 0 when either reading is nil or no time was
// accounted between them. Counter regressions (a reading taken across
// a CPU hot-unplug) also yield 0 rather than a wrapped delta.
func CPUPercent(previous, current *CPUReading) float64 {
	if previous == nil || current == nil {
		return 0
	}
	if current.Total <= previous.Total || current.Busy < previous.Busy {
		return 0
	}
	busyDelta := current.Busy - previous.Busy
	totalDelta := current.Total - previous.Total
	return round(float64(busyDelta)/float64(totalDelta)*100, 1)
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
