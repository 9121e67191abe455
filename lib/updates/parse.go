// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package updates

import (
	"strings"
)

// Package is one pending upgrade.
type Package struct {
	Name    string `json:"name"`
	Current string `json:"current"`
	New     string `json:"new"`
}

// InstalledMarker stands in for the current version on apt hosts,
// where apt list does not print it in a fixed column.
const InstalledMarker = "installed"

// parsePacman reads checkupdates / pacman -Qu output:
//
//	linux 6.7.4.arch1-1 -> 6.7.5.arch1-1
//
// Lines with fewer than four fields are skipped.
func parsePacman(output string) []Package {
	var packages []Package
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		packages = append(packages, Package{
			Name:    fields[0],
			Current: fields[1],
			New:     fields[3],
		})
	}
	return packages
}

// parseApt reads apt list --upgradable output:
//
//	Listing... Done
//	firefox/jammy-updates 120.0+build2 amd64 [upgradable from: 119.0]
//
// A candidate line contains "/" and is not the "Listing" header. The
// name is everything before the first "/"; the new version is the
// second field, or "available" when the line has only one.
func parseApt(output string) []Package {
	var packages []Package
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "/") || strings.HasPrefix(strings.TrimSpace(line), "Listing") {
			continue
		}
		name, _, _ := strings.Cut(line, "/")
		version := "available"
		if fields := strings.Fields(line); len(fields) > 1 {
			version = fields[1]
		}
		packages = append(packages, Package{
			Name:    name,
			Current: InstalledMarker,
			New:     version,
		})
	}
	return packages
}
