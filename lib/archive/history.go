// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Size units for FormatSize.
const (
	Kilobyte int64 = 1024
	Megabyte int64 = 1024 * 1024
)

// HistoryDateFormat is the layout of Entry.Date.
const HistoryDateFormat = "2006-01-02 15:04"

// Default listing limits.
const (
	DefaultArchiveLimit = 10
	DefaultReportLimit  = 5
)

// ReportPrefix starts every update report file name.
const ReportPrefix = "updates_"

// Entry is one file in a history listing.
type Entry struct {
	Name string `json:"name"`
	Size string `json:"size"`
	Date string `json:"date"`
}

// ListArchives returns the newest limit .zip files in directory with
// sizes in MB.
func ListArchives(directory string, limit int) ([]Entry, error) {
	return list(directory, limit, Megabyte, func(name string) bool {
		return strings.HasSuffix(name, ArchiveSuffix)
	})
}

// ListReports returns the newest limit update reports in directory
// with sizes in KB.
func ListReports(directory string, limit int) ([]Entry, error) {
	return list(directory, limit, Kilobyte, func(name string) bool {
		return strings.HasPrefix(name, ReportPrefix)
	})
}

// list selects matching regular files, sorts them by name descending,
// and keeps the first limit. A missing directory lists as empty. Files
// that disappear between the directory read and their stat are
// skipped.
func list(directory string, limit int, unit int64, match func(string) bool) ([]Entry, error) {
	entries := []Entry{}

	dirEntries, err := os.ReadDir(directory)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entries, nil
		}
		return entries, err
	}

	var names []string
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !match(dirEntry.Name()) {
			continue
		}
		names = append(names, dirEntry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names {
		if len(entries) >= limit {
			break
		}
		info, err := os.Stat(filepath.Join(directory, name))
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name: name,
			Size: FormatSize(info.Size(), unit),
			Date: info.ModTime().Format(HistoryDateFormat),
		})
	}
	return entries, nil
}

// FormatSize renders size in unit rounded to two decimals with the
// unit's suffix: "1.5 MB", "0.0 KB", "12.34 MB". At least one decimal
// digit is always printed.
func FormatSize(size int64, unit int64) string {
	suffix := "MB"
	if unit == Kilobyte {
		suffix = "KB"
	}
	value := float64(size) / float64(unit)
	rounded := math.Round(value*100) / 100
	text := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text + " " + suffix
}
