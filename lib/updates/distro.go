// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package updates

import (
	"os"
	"path/filepath"
)

// Family identifies a package ecosystem.
type Family int

const (
	// FamilyUnknown is any host without a recognized release marker.
	FamilyUnknown Family = iota

	// FamilyArch hosts carry /etc/arch-release and use pacman.
	FamilyArch

	// FamilyDebian hosts carry /etc/debian_version and use apt.
	FamilyDebian
)

// Distribution labels reported in Result.Distro and in the report
// header.
const (
	LabelArch    = "Arch Linux"
	LabelDebian  = "Debian/Ubuntu"
	LabelUnknown = "Unknown"
)

// String returns the distribution label for the family.
func (f Family) String() string {
	switch f {
	case FamilyArch:
		return LabelArch
	case FamilyDebian:
		return LabelDebian
	default:
		return LabelUnknown
	}
}

// DetectFamily checks the release marker files under root. Arch wins
// when both markers are present.
func DetectFamily(root string) Family {
	if exists(filepath.Join(root, "etc", "arch-release")) {
		return FamilyArch
	}
	if exists(filepath.Join(root, "etc", "debian_version")) {
		return FamilyDebian
	}
	return FamilyUnknown
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
