// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/bureau-foundation/hostwatch/lib/binhash"
	"github.com/bureau-foundation/hostwatch/lib/clock"
	"github.com/bureau-foundation/hostwatch/lib/updates"
)

var archiveTime = time.Date(2026, 3, 1, 9, 30, 15, 0, time.Local)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// writeTree creates files (relative path → content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCreateRoundTrip(t *testing.T) {
	source := t.TempDir()
	files := map[string]string{
		"notes.txt":               "first file",
		"nested/deeper/data.csv":  "a,b,c\n1,2,3\n",
		"nested/empty.bin":        "",
		"with space/Data Dumy.md": strings.Repeat("compressible ", 1000),
	}
	writeTree(t, source, files)
	if err := os.MkdirAll(filepath.Join(source, "empty-dir"), 0755); err != nil {
		t.Fatal(err)
	}

	// A link to a file outside the tree is archived with the target's
	// content. A link to a directory is not followed, and a dangling
	// link contributes nothing.
	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"real.txt": "linked content", "dir/hidden.txt": "not archived"})
	symlink(t, filepath.Join(outside, "real.txt"), filepath.Join(source, "link.txt"))
	symlink(t, filepath.Join(outside, "dir"), filepath.Join(source, "linked-dir"))
	symlink(t, filepath.Join(outside, "gone.txt"), filepath.Join(source, "dangling.txt"))
	files["link.txt"] = "linked content"

	modified := time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(source, "notes.txt"), modified, modified); err != nil {
		t.Fatal(err)
	}

	directory := t.TempDir()
	creator := &Creator{Source: source, Directory: directory, Clock: clock.Fake(archiveTime), Logger: quietLogger()}
	result := creator.Create()

	if result.Failed() {
		t.Fatalf("Create() failed: %+v", result)
	}
	if result.Filename != "backup_20260301_093015.zip" || result.Timestamp != "20260301_093015" {
		t.Errorf("Filename=%q Timestamp=%q", result.Filename, result.Timestamp)
	}
	if result.Files == nil || *result.Files != len(files) {
		t.Errorf("Files = %v, want %d", result.Files, len(files))
	}
	if !strings.HasSuffix(result.Size, " MB") {
		t.Errorf("Size = %q, want an MB label", result.Size)
	}

	archivePath := filepath.Join(directory, result.Filename)
	digest, err := binhash.HashFile(archivePath)
	if err != nil {
		t.Fatal(err)
	}
	if result.Digest != digest.String() {
		t.Errorf("Digest = %q, want %q", result.Digest, digest)
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer reader.Close()

	found := make(map[string]string)
	for _, file := range reader.File {
		if file.Method != zip.Deflate {
			t.Errorf("%s stored with method %d, want deflate", file.Name, file.Method)
		}
		if file.Name == "notes.txt" && !file.Modified.Equal(modified) {
			t.Errorf("notes.txt modified %v, want %v", file.Modified, modified)
		}
		contents, err := file.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(contents)
		contents.Close()
		if err != nil {
			t.Fatal(err)
		}
		found[file.Name] = string(data)
	}

	if len(found) != len(files) {
		t.Errorf("archive holds %d entries, want %d: %v", len(found), len(files), found)
	}
	for name, content := range files {
		if found[name] != content {
			t.Errorf("entry %q = %q, want %q", name, found[name], content)
		}
	}
}

func symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
}

func TestCreateKeepsExistingArchive(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "a"})
	directory := t.TempDir()
	existing := filepath.Join(directory, "backup_20260301_093015.zip")
	if err := os.WriteFile(existing, []byte("earlier boot"), 0644); err != nil {
		t.Fatal(err)
	}

	creator := &Creator{Source: source, Directory: directory, Clock: clock.Fake(archiveTime), Logger: quietLogger()}
	result := creator.Create()

	if !result.Failed() || !strings.Contains(result.Message, "already exists") {
		t.Errorf("Create() = %+v, want an already-exists error", result)
	}
	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("existing archive removed: %v", err)
	}
	if string(data) != "earlier boot" {
		t.Errorf("existing archive overwritten: %q", data)
	}
}

func TestCreateMissingSource(t *testing.T) {
	directory := t.TempDir()
	creator := &Creator{
		Source:    filepath.Join(t.TempDir(), "Data Dumy Back Up"),
		Directory: directory,
		Clock:     clock.Fake(archiveTime),
		Logger:    quietLogger(),
	}

	result := creator.Create()

	if result.Status != StatusError || result.Message != MessageSourceNotFound {
		t.Errorf("Create() = %+v, want source-not-found error", result)
	}
	if result.Filename != "" || result.Files != nil {
		t.Errorf("error result carries success fields: %+v", result)
	}
	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("archive directory not empty after failure: %v", entries)
	}
}

func TestCreateFailureRemovesArchive(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("skipping: root can read unreadable files")
	}
	source := t.TempDir()
	writeTree(t, source, map[string]string{"readable.txt": "ok", "secret.txt": "no"})
	if err := os.Chmod(filepath.Join(source, "secret.txt"), 0); err != nil {
		t.Fatal(err)
	}

	directory := t.TempDir()
	creator := &Creator{Source: source, Directory: directory, Clock: clock.Fake(archiveTime), Logger: quietLogger()}
	result := creator.Create()

	if !result.Failed() || result.Message == "" {
		t.Errorf("Create() = %+v, want an error result", result)
	}
	if _, err := os.Stat(filepath.Join(directory, "backup_20260301_093015.zip")); !os.IsNotExist(err) {
		t.Errorf("partial archive left behind (stat err %v)", err)
	}
}

func TestCreateSkipsArchiveInsideSource(t *testing.T) {
	source := t.TempDir()
	writeTree(t, source, map[string]string{"a.txt": "a"})
	directory := filepath.Join(source, "backups")
	if err := os.Mkdir(directory, 0755); err != nil {
		t.Fatal(err)
	}

	creator := &Creator{Source: source, Directory: directory, Clock: clock.Fake(archiveTime), Logger: quietLogger()}
	result := creator.Create()

	if result.Failed() || *result.Files != 1 {
		t.Errorf("Create() = %+v, want one file", result)
	}
}

func TestListArchivesNewestFirst(t *testing.T) {
	directory := t.TempDir()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	for i := range 14 {
		name := ArchivePrefix + start.Add(time.Duration(i)*time.Hour).Format(FileTimeFormat) + ArchiveSuffix
		writeTree(t, directory, map[string]string{name: strings.Repeat("x", i*1024)})
	}
	writeTree(t, directory, map[string]string{"notes.txt": "ignored", "backup_partial.tmp": "ignored"})
	if err := os.Mkdir(filepath.Join(directory, "nested.zip"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err := ListArchives(directory, DefaultArchiveLimit)
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if len(entries) != DefaultArchiveLimit {
		t.Fatalf("ListArchives returned %d entries, want %d", len(entries), DefaultArchiveLimit)
	}
	if want := "backup_20260101_130000.zip"; entries[0].Name != want {
		t.Errorf("first entry = %q, want %q", entries[0].Name, want)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Name <= entries[i].Name {
			t.Errorf("entries not newest-first: %q before %q", entries[i-1].Name, entries[i].Name)
		}
	}
	if entries[0].Size != "0.01 MB" {
		t.Errorf("size = %q, want %q", entries[0].Size, "0.01 MB")
	}
	if _, err := time.Parse(HistoryDateFormat, entries[0].Date); err != nil {
		t.Errorf("date %q does not parse: %v", entries[0].Date, err)
	}
}

func TestListReports(t *testing.T) {
	directory := t.TempDir()
	for i := range 7 {
		writeTree(t, directory, map[string]string{
			fmt.Sprintf("updates_2026030%d_120000.log", i+1): strings.Repeat("r", 1536),
		})
	}
	writeTree(t, directory, map[string]string{"daemon.log": "ignored"})

	entries, err := ListReports(directory, DefaultReportLimit)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(entries) != DefaultReportLimit {
		t.Fatalf("ListReports returned %d entries, want %d", len(entries), DefaultReportLimit)
	}
	if entries[0].Name != "updates_20260307_120000.log" {
		t.Errorf("first entry = %q", entries[0].Name)
	}
	if entries[0].Size != "1.5 KB" {
		t.Errorf("size = %q, want %q", entries[0].Size, "1.5 KB")
	}
}

func TestListMissingDirectory(t *testing.T) {
	entries, err := ListArchives(filepath.Join(t.TempDir(), "absent"), DefaultArchiveLimit)
	if err != nil {
		t.Fatalf("ListArchives: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %#v, want empty non-nil slice", entries)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		unit int64
		want string
	}{
		{0, Megabyte, "0.0 MB"},
		{Megabyte, Megabyte, "1.0 MB"},
		{Megabyte + Megabyte/2, Megabyte, "1.5 MB"},
		{1234567, Megabyte, "1.18 MB"},
		{1536, Kilobyte, "1.5 KB"},
		{100, Kilobyte, "0.1 KB"},
	}
	for _, test := range tests {
		if got := FormatSize(test.size, test.unit); got != test.want {
			t.Errorf("FormatSize(%d, %d) = %q, want %q", test.size, test.unit, got, test.want)
		}
	}
}

func TestNamingMatchesUpdateReports(t *testing.T) {
	if ReportPrefix != updates.ReportPrefix {
		t.Errorf("ReportPrefix = %q, updates writes %q", ReportPrefix, updates.ReportPrefix)
	}
	if FileTimeFormat != updates.FileTimeFormat {
		t.Errorf("FileTimeFormat = %q, updates writes %q", FileTimeFormat, updates.FileTimeFormat)
	}
}
