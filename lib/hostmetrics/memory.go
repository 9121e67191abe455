// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostmetrics

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// kibPerGiB converts /proc/meminfo kB values to GB (1024² based).
const kibPerGiB = 1024 * 1024

// Memory is the RAM section of a sample.
type Memory struct {
	Percent float64 `json:"percent"`
	UsedGB  float64 `json:"used_gb"`
	TotalGB float64 `json:"total_gb"`
}

// ReadMemory parses the meminfo file at path and reports used memory as
// MemTotal − MemAvailable. Percent is rounded to one decimal, the GB
// figures to two. Returns the zero Memory with an error when the file
// cannot be read or either key is missing.
func ReadMemory(path string) (Memory, error) {
	file, err := os.Open(path)
	if err != nil {
		return Memory{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer file.Close()

	values, err := parseMemInfo(file)
	if err != nil {
		return Memory{}, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, path, err)
	}

	total, hasTotal := values["MemTotal"]
	available, hasAvailable := values["MemAvailable"]
	if !hasTotal || !hasAvailable {
		return Memory{}, fmt.Errorf("%w: %s lacks MemTotal or MemAvailable", ErrMalformed, path)
	}
	if total == 0 || available > total {
		return Memory{}, fmt.Errorf("%w: MemAvailable %d kB exceeds MemTotal %d kB", ErrMalformed, available, total)
	}
	return memoryFromKB(total, available), nil
}

func memoryFromKB(totalKB, availableKB uint64) Memory {
	used := totalKB - availableKB
	return Memory{
		Percent: round(float64(used)/float64(totalKB)*100, 1),
		UsedGB:  round(float64(used)/kibPerGiB, 2),
		TotalGB: round(float64(totalKB)/kibPerGiB, 2),
	}
}

// parseMemInfo maps "Label:   value kB" lines to their numeric value.
// Lines that do not split into exactly a label and a numeric value are
// skipped; only a read error fails the parse.
func parseMemInfo(file *os.File) (map[string]uint64, error) {
	values := make(map[string]uint64)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		label, rest, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		value, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		values[strings.TrimSpace(label)] = value
	}
	return values, scanner.Err()
}
