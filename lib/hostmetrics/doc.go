// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hostmetrics takes point-in-time readings of host resource
// usage for the hostwatch sampling loop.
//
// # Readings
//
//   - CPU utilization from two /proc/stat reads one sampling window
//     apart ([ReadCPUStats], [CPUPercent], [Sampler.CPUPercent])
//   - Memory usage from /proc/meminfo ([ReadMemory])
//   - Root filesystem usage from `df -h /` ([DiskUsage])
//   - Uptime from /proc/uptime ([ReadUptime])
//   - Host identity from uname(2) and the OS release files
//     ([ReadIdentity])
//
// # Failure policy
//
// No reading ever aborts the caller. Every function returns a usable
// value together with an error: when the error is non-nil the value is
// already the documented default (0 for CPU, the zero [Memory], the
// "0G" [Disk] placeholder, "N/A" for uptime). The error wraps exactly
// one of [ErrUnavailable], [ErrMalformed], or [ErrCommand] so callers
// can log the failure kind without parsing messages.
//
// The file readers take explicit paths so tests can point them at
// synthetic /proc content; [Sampler] resolves those paths under a
// configurable proc root.
package hostmetrics
