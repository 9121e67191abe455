// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package updates

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const reportWidth = 70

var (
	reportBanner = strings.Repeat("=", reportWidth)
	reportRule   = strings.Repeat("-", reportWidth)
)

// ReportTimeFormat is the layout of the "Generated:" header line.
const ReportTimeFormat = "2006-01-02 15:04:05"

// Guidance returns the upgrade command printed at the end of a report
// that lists packages.
func Guidance(family Family) string {
	if family == FamilyArch {
		return "sudo pacman -Syu"
	}
	return "sudo apt update && sudo apt upgrade"
}

// WriteReport renders the fixed-width report for packages. The table
// columns are 30, 20, and 20 characters wide; longer values overflow
// their column rather than being cut.
func WriteReport(w io.Writer, generated time.Time, family Family, packages []Package) error {
	var b strings.Builder
	writeReportHeader(&b, generated, family)

	if len(packages) == 0 {
		b.WriteString("✅ System is fully updated!\n")
		b.WriteString("No packages require updates at this time.\n")
	} else {
		fmt.Fprintf(&b, "⚠️  %d package(s) available for update:\n\n", len(packages))
		fmt.Fprintf(&b, "%-30s %-20s %-20s\n", "Package Name", "Current", "New Version")
		b.WriteString(reportRule + "\n")
		for _, pkg := range packages {
			fmt.Fprintf(&b, "%-30s %-20s %-20s\n", pkg.Name, pkg.Current, pkg.New)
		}
		b.WriteString("\n" + reportBanner + "\n")
		b.WriteString("HOW TO UPDATE:\n")
		fmt.Fprintf(&b, "  %s\n", Guidance(family))
		b.WriteString(reportBanner + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFailureReport renders the report for a check whose package query
// failed. It never claims the system is up to date.
func WriteFailureReport(w io.Writer, generated time.Time, family Family, queryErr error) error {
	var b strings.Builder
	writeReportHeader(&b, generated, family)

	b.WriteString("❌ Update check failed!\n")
	fmt.Fprintf(&b, "Error: %v\n", queryErr)
	b.WriteString("Pending updates are unknown until the next successful check.\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeReportHeader(b *strings.Builder, generated time.Time, family Family) {
	b.WriteString(reportBanner + "\n")
	b.WriteString("  SYSTEM UPDATE CHECK REPORT\n")
	fmt.Fprintf(b, "  Generated: %s\n", generated.Format(ReportTimeFormat))
	fmt.Fprintf(b, "  Distribution: %s\n", family)
	b.WriteString(reportBanner + "\n\n")
}
