// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories as
// needed, or fails the test.
//
//	testutil.WriteFile(t, filepath.Join(root, "proc", "stat"), "cpu  100 0 50 800 0 0 0 0\n")
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// ProcRoot builds a synthetic /proc under a temporary directory with
// the three files the host samplers read, and returns its path.
func ProcRoot(t testing.TB, stat, meminfo, uptime string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "proc")
	WriteFile(t, filepath.Join(root, "stat"), stat)
	WriteFile(t, filepath.Join(root, "meminfo"), meminfo)
	WriteFile(t, filepath.Join(root, "uptime"), uptime)
	return root
}
