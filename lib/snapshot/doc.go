// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot defines the document hostwatchd publishes once per
// sampling iteration, assembles it from the boot-time results and a
// fresh metric sample, and writes it to the published path.
//
// The document is rewritten in full every iteration. Writes go to a
// temporary file in the same directory that is then renamed over the
// published path, so a reader polling the file sees either the
// previous document or the new one, never a truncated mix.
//
// Field names and nesting are a contract with the dashboard:
//
//	last_check, boot_time, uptime
//	system     {hostname, kernel, arch, platform}
//	resources  {cpu, ram{percent, used_gb, total_gb},
//	            disk{total, used, available, percent}}
//	updates    {count, list[{name, current, new}], distro, log_file}
//	backup     {current{status, filename, size, files, timestamp, msg, digest},
//	            history[{name, size, date}]}
//	logs       {update_logs[{name, size, date}]}
package snapshot
