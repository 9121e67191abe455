// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/hostwatch/lib/archive"
	"github.com/bureau-foundation/hostwatch/lib/hostmetrics"
	"github.com/bureau-foundation/hostwatch/lib/snapshot"
	"github.com/bureau-foundation/hostwatch/lib/updates"
	"github.com/bureau-foundation/hostwatch/lib/version"
)

func testDocument() snapshot.Snapshot {
	files := 2
	boot := snapshot.Boot{
		Time:     time.Date(2026, 3, 1, 9, 30, 15, 0, time.UTC),
		Identity: hostmetrics.Identity{Hostname: "rack-07", Kernel: "6.8.0-45-generic", Arch: "x86_64", Platform: "ubuntu 24.04"},
		Updates: updates.Result{
			Count: 2,
			List: []updates.Package{
				{Name: "firefox", Current: "installed", New: "120.0"},
				{Name: "libssl3", Current: "installed", New: "3.0.2-0ubuntu1.12"},
			},
			Distro:  updates.LabelDebian,
			LogFile: "updates_20260301_093015.log",
		},
		Archive: archive.Result{
			Status:    archive.StatusSuccess,
			Filename:  "backup_20260301_093015.zip",
			Size:      "0.01 MB",
			Files:     &files,
			Timestamp: "20260301_093015",
		},
		ArchiveHistory: []archive.Entry{{Name: "backup_20260301_093015.zip", Size: "0.01 MB", Date: "2026-03-01 09:30"}},
	}
	sample := hostmetrics.Sample{
		CPUPercent: 12.5,
		Memory:     hostmetrics.Memory{Percent: 50, UsedGB: 7.63, TotalGB: 15.26},
		Disk:       hostmetrics.Disk{Total: "468G", Used: "201G", Available: "244G", Percent: "46"},
		Uptime:     "26h 3m",
	}
	return snapshot.Assemble(boot, sample, time.Date(2026, 3, 1, 9, 31, 0, 0, time.UTC))
}

func writeSnapshot(t *testing.T, encoding snapshot.Encoding) string {
	t.Helper()
	data, err := snapshot.Encode(testDocument(), encoding)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "data."+string(encoding))
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStatusSummary(t *testing.T) {
	for _, encoding := range []snapshot.Encoding{snapshot.EncodingJSON, snapshot.EncodingCBOR} {
		t.Run(string(encoding), func(t *testing.T) {
			var stdout bytes.Buffer
			if err := run([]string{"status", "--file", writeSnapshot(t, encoding)}, &stdout); err != nil {
				t.Fatalf("run: %v", err)
			}
			output := stdout.String()

			for _, want := range []string{
				"rack-07 (ubuntu 24.04)",
				"checked 2026-03-01 09:31:00",
				"CPU      12.5%",
				"7.63 / 15.26 GB",
				"201G / 468G (244G free)",
				"2 package(s) pending",
				"firefox",
				"installed → 120.0",
				"success backup_20260301_093015.zip  0.01 MB  2 file(s)",
				"archives (1)",
			} {
				if !strings.Contains(output, want) {
					t.Errorf("summary missing %q:\n%s", want, output)
				}
			}
			if strings.Contains(output, "\x1b[") {
				t.Errorf("summary written to a buffer contains ANSI escapes:\n%q", output)
			}
		})
	}
}

func TestStatusFailedBackup(t *testing.T) {
	document := testDocument()
	document.Backup.Current = archive.Result{Status: archive.StatusError, Message: archive.MessageSourceNotFound}
	document.Updates = updates.Result{List: []updates.Package{}, Distro: updates.LabelUnknown}

	output := renderStatus(document, newThemeForTest())
	if !strings.Contains(output, "error Source not found") {
		t.Errorf("summary missing archive error:\n%s", output)
	}
	if !strings.Contains(output, "up to date") {
		t.Errorf("summary missing up-to-date line:\n%s", output)
	}
}

func TestStatusJSON(t *testing.T) {
	var stdout bytes.Buffer
	if err := run([]string{"status", "--json", "--file", writeSnapshot(t, snapshot.EncodingCBOR)}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}

	var document map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &document); err != nil {
		t.Fatalf("--json output is not JSON: %v\n%s", err, stdout.String())
	}
	if document["last_check"] != "2026-03-01 09:31:00" {
		t.Errorf("last_check = %v", document["last_check"])
	}
}

func TestStatusRaw(t *testing.T) {
	jsonPath := writeSnapshot(t, snapshot.EncodingJSON)
	var stdout bytes.Buffer
	if err := run([]string{"status", "--raw", "--file", jsonPath}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	published, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(stdout.Bytes(), published) {
		t.Error("--raw on a JSON snapshot should print the file unchanged")
	}

	stdout.Reset()
	if err := run([]string{"status", "--raw", "--file", writeSnapshot(t, snapshot.EncodingCBOR)}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), `"hostname": "rack-07"`) {
		t.Errorf("--raw on a CBOR snapshot should print diagnostic notation:\n%s", stdout.String())
	}
}

func TestStatusErrors(t *testing.T) {
	path := writeSnapshot(t, snapshot.EncodingJSON)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"json and raw", []string{"status", "--json", "--raw", "--file", path}, "mutually exclusive"},
		{"missing file", []string{"status", "--file", filepath.Join(t.TempDir(), "absent.json")}, "reading snapshot"},
		{"unknown command", []string{"watch"}, "unknown command"},
		{"no command", nil, "missing command"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := run(test.args, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("run(%v) error = %v, want %q", test.args, err, test.want)
			}
		})
	}
}

func TestStatusCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{\"last_check\": "), 0644); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"status", "--file", path}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for truncated snapshot")
	}
}

func newThemeForTest() statusTheme {
	return newTheme(lipgloss.NewRenderer(&bytes.Buffer{}))
}

func TestVersion(t *testing.T) {
	for _, argument := range []string{"--version", "version"} {
		var stdout bytes.Buffer
		if err := run([]string{argument}, &stdout); err != nil {
			t.Fatalf("run(%s): %v", argument, err)
		}
		if got, want := stdout.String(), version.Full("hostwatch")+"\n"; got != want {
			t.Errorf("run(%s) printed %q, want %q", argument, got, want)
		}
	}
}
