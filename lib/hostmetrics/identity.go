// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hostmetrics

import (
	"context"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/sys/unix"
)

// Identity describes the host in every snapshot. It is read once at
// boot; none of these values change without a reboot.
type Identity struct {
	Hostname string `json:"hostname"`
	Kernel   string `json:"kernel"`
	Arch     string `json:"arch"`

	// Platform is the distribution name and version as reported by
	// the OS release files ("ubuntu 24.04"). Empty when unknown.
	Platform string `json:"platform,omitempty"`
}

// ReadIdentity returns the uname(2) node name, release, and machine
// fields plus the platform string. Missing pieces are left empty; the
// hostname falls back to os.Hostname when uname fails.
func ReadIdentity(ctx context.Context) Identity {
	var identity Identity

	var utsname unix.Utsname
	if err := unix.Uname(&utsname); err == nil {
		identity.Hostname = unix.ByteSliceToString(utsname.Nodename[:])
		identity.Kernel = unix.ByteSliceToString(utsname.Release[:])
		identity.Arch = unix.ByteSliceToString(utsname.Machine[:])
	}
	if identity.Hostname == "" {
		identity.Hostname, _ = os.Hostname()
	}

	platform, _, platformVersion, err := host.PlatformInformationWithContext(ctx)
	if err == nil {
		identity.Platform = strings.TrimSpace(platform + " " + platformVersion)
	}
	return identity
}
