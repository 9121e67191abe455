// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"time"

	"github.com/bureau-foundation/hostwatch/lib/archive"
	"github.com/bureau-foundation/hostwatch/lib/hostmetrics"
	"github.com/bureau-foundation/hostwatch/lib/updates"
)

// TimeFormat is the layout of last_check and boot_time.
const TimeFormat = "2006-01-02 15:04:05"

// Snapshot is the published document.
type Snapshot struct {
	LastCheck string               `json:"last_check"`
	BootTime  string               `json:"boot_time"`
	Uptime    string               `json:"uptime"`
	System    hostmetrics.Identity `json:"system"`
	Resources Resources            `json:"resources"`
	Updates   updates.Result       `json:"updates"`
	Backup    Backup               `json:"backup"`
	Logs      Logs                 `json:"logs"`
}

// Resources holds the per-iteration metric readings.
type Resources struct {
	CPU  float64            `json:"cpu"`
	RAM  hostmetrics.Memory `json:"ram"`
	Disk hostmetrics.Disk   `json:"disk"`
}

// Backup holds the boot archive result and the archive listing.
type Backup struct {
	Current archive.Result  `json:"current"`
	History []archive.Entry `json:"history"`
}

// Logs holds the update report listing.
type Logs struct {
	UpdateLogs []archive.Entry `json:"update_logs"`
}

// Boot is everything computed once before sampling starts. It is
// captured by value and never modified afterwards; only the history
// listings may be replaced by WithHistory when history refresh is
// enabled.
type Boot struct {
	Time           time.Time
	Identity       hostmetrics.Identity
	Updates        updates.Result
	Archive        archive.Result
	ArchiveHistory []archive.Entry
	ReportHistory  []archive.Entry
}

// WithHistory returns a copy of b with the history listings replaced.
func (b Boot) WithHistory(archives, reports []archive.Entry) Boot {
	b.ArchiveHistory = archives
	b.ReportHistory = reports
	return b
}

// Assemble builds the document for one iteration. Nil listings are
// published as empty arrays.
func Assemble(boot Boot, sample hostmetrics.Sample, now time.Time) Snapshot {
	return Snapshot{
		LastCheck: now.Format(TimeFormat),
		BootTime:  boot.Time.Format(TimeFormat),
		Uptime:    sample.Uptime,
		System:    boot.Identity,
		Resources: Resources{
			CPU:  sample.CPUPercent,
			RAM:  sample.Memory,
			Disk: sample.Disk,
		},
		Updates: boot.Updates,
		Backup: Backup{
			Current: boot.Archive,
			History: nonNil(boot.ArchiveHistory),
		},
		Logs: Logs{
			UpdateLogs: nonNil(boot.ReportHistory),
		},
	}
}

func nonNil(entries []archive.Entry) []archive.Entry {
	if entries == nil {
		return []archive.Entry{}
	}
	return entries
}
