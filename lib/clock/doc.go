// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for hostwatch.
//
// Production code holds a Clock instead of calling time.Now or
// time.Sleep directly. The sampling loop's one-second CPU window is a
// Sleep on this interface, and every timestamp written into reports,
// archive names, and snapshots comes from Now. In production, Real()
// delegates to the time package. In tests, Fake() returns a clock that
// only moves when told to, and whose Sleep advances time instantly
// instead of blocking.
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	sampler := hostmetrics.NewSampler(hostmetrics.SamplerConfig{Clock: c})
//	sampler.CPUPercent(ctx) // returns without waiting a real second
package clock
