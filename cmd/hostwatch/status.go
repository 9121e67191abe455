// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/hostwatch/lib/archive"
	"github.com/bureau-foundation/hostwatch/lib/snapshot"
)

// maxListedPackages caps the package rows printed under Updates.
const maxListedPackages = 10

// statusTheme holds the styles for the status summary. Colors are ANSI
// 256 codes; the renderer drops them when stdout is not a terminal.
type statusTheme struct {
	header  lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	faint   lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	pending lipgloss.Style
}

func newTheme(renderer *lipgloss.Renderer) statusTheme {
	return statusTheme{
		header:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		section: renderer.NewStyle().Bold(true),
		label:   renderer.NewStyle().Width(8).Foreground(lipgloss.Color("245")),
		faint:   renderer.NewStyle().Foreground(lipgloss.Color("242")),
		good:    renderer.NewStyle().Foreground(lipgloss.Color("78")),
		bad:     renderer.NewStyle().Foreground(lipgloss.Color("203")),
		pending: renderer.NewStyle().Foreground(lipgloss.Color("221")),
	}
}

func renderStatus(document snapshot.Snapshot, theme statusTheme) string {
	var b strings.Builder

	system := document.System
	host := theme.header.Render(system.Hostname)
	if system.Platform != "" {
		host += " " + theme.faint.Render("("+system.Platform+")")
	}
	fmt.Fprintf(&b, "%s  %s\n", host, theme.faint.Render(system.Kernel+" "+system.Arch))
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n\n",
		theme.faint.Render("checked"), document.LastCheck,
		theme.faint.Render("booted"), document.BootTime,
		theme.faint.Render("up"), document.Uptime)

	resources := document.Resources
	b.WriteString(theme.section.Render("Resources") + "\n")
	fmt.Fprintf(&b, "  %s %.1f%%\n", theme.label.Render("CPU"), resources.CPU)
	fmt.Fprintf(&b, "  %s %.1f%%  %.2f / %.2f GB\n", theme.label.Render("Memory"),
		resources.RAM.Percent, resources.RAM.UsedGB, resources.RAM.TotalGB)
	fmt.Fprintf(&b, "  %s %s%%  %s / %s (%s free)\n\n", theme.label.Render("Disk"),
		resources.Disk.Percent, resources.Disk.Used, resources.Disk.Total, resources.Disk.Available)

	renderUpdates(&b, document, theme)
	renderBackup(&b, document, theme)
	return b.String()
}

func renderUpdates(b *strings.Builder, document snapshot.Snapshot, theme statusTheme) {
	result := document.Updates
	b.WriteString(theme.section.Render("Updates") + "  " + theme.faint.Render(result.Distro) + "\n")
	if result.Count == 0 {
		b.WriteString("  " + theme.good.Render("up to date") + "\n")
	} else {
		b.WriteString("  " + theme.pending.Render(fmt.Sprintf("%d package(s) pending", result.Count)) + "\n")
		for i, pkg := range result.List {
			if i == maxListedPackages {
				fmt.Fprintf(b, "  %s\n", theme.faint.Render(fmt.Sprintf("… %d more", len(result.List)-i)))
				break
			}
			fmt.Fprintf(b, "  %-30s %s → %s\n", pkg.Name, theme.faint.Render(pkg.Current), pkg.New)
		}
	}
	if result.LogFile != "" {
		fmt.Fprintf(b, "  %s %s\n", theme.faint.Render("report"), result.LogFile)
	}
	b.WriteString("\n")
}

func renderBackup(b *strings.Builder, document snapshot.Snapshot, theme statusTheme) {
	current := document.Backup.Current
	b.WriteString(theme.section.Render("Backup") + "\n")
	if current.Failed() {
		fmt.Fprintf(b, "  %s %s\n", theme.bad.Render(current.Status), current.Message)
	} else {
		files := 0
		if current.Files != nil {
			files = *current.Files
		}
		fmt.Fprintf(b, "  %s %s  %s  %d file(s)\n", theme.good.Render(current.Status), current.Filename, current.Size, files)
	}

	renderHistory(b, "archives", document.Backup.History, theme)
	renderHistory(b, "reports", document.Logs.UpdateLogs, theme)
}

func renderHistory(b *strings.Builder, title string, entries []archive.Entry, theme statusTheme) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s\n", theme.faint.Render(fmt.Sprintf("%s (%d)", title, len(entries))))
	for _, entry := range entries {
		fmt.Fprintf(b, "    %s  %s  %s\n", entry.Date, entry.Name, theme.faint.Render(entry.Size))
	}
}
