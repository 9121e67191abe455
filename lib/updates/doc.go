// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package updates detects the host's package ecosystem, lists pending
// package upgrades, and writes a dated plain-text report of them.
//
// Two ecosystems are recognized by their release marker files:
// /etc/arch-release (pacman, queried with checkupdates when installed,
// otherwise pacman -Qu) and /etc/debian_version (apt list
// --upgradable). Any other host is reported as "Unknown" with no
// packages. Marker paths are resolved under a configurable root so the
// detection can be exercised against a synthetic filesystem.
//
// A check never fails: a missing tool, a timeout, or unparseable output
// degrades to an empty package list under the detected distribution
// label, and the failure is logged. The report is written even then,
// so every boot leaves a report behind.
package updates
