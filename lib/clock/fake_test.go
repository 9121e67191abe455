// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNow(t *testing.T) {
	c := Fake(epoch)
	if got := c.Now(); !got.Equal(epoch) {
		t.Errorf("Now() = %v, want %v", got, epoch)
	}
}

func TestFakeAdvanceAndSet(t *testing.T) {
	c := Fake(epoch)
	c.Advance(90 * time.Second)
	if got, want := c.Now(), epoch.Add(90*time.Second); !got.Equal(want) {
		t.Errorf("after Advance, Now() = %v, want %v", got, want)
	}

	target := epoch.Add(24 * time.Hour)
	c.Set(target)
	if got := c.Now(); !got.Equal(target) {
		t.Errorf("after Set, Now() = %v, want %v", got, target)
	}
	if c.Sleeps() != 0 {
		t.Errorf("Advance and Set must not count as sleeps, got %d", c.Sleeps())
	}
}

func TestFakeSleepAdvancesWithoutBlocking(t *testing.T) {
	c := Fake(epoch)

	c.Sleep(time.Hour)
	c.Sleep(time.Second)
	c.Sleep(-time.Second)

	if got, want := c.Now(), epoch.Add(time.Hour+time.Second); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
	if got, want := c.Slept(), time.Hour+time.Second; got != want {
		t.Errorf("Slept() = %v, want %v", got, want)
	}
	if got := c.Sleeps(); got != 3 {
		t.Errorf("Sleeps() = %d, want 3", got)
	}
}

func TestFakeOnSleepRunsAfterAdvance(t *testing.T) {
	c := Fake(epoch)

	var observed time.Time
	var duration time.Duration
	c.OnSleep = func(d time.Duration) {
		duration = d
		observed = c.Now()
	}

	c.Sleep(time.Second)

	if duration != time.Second {
		t.Errorf("OnSleep received %v, want 1s", duration)
	}
	if want := epoch.Add(time.Second); !observed.Equal(want) {
		t.Errorf("OnSleep observed Now() = %v, want %v (clock must advance before the hook)", observed, want)
	}
}

func TestRealClockNowMoves(t *testing.T) {
	c := Real()
	before := c.Now()
	c.Sleep(time.Millisecond)
	if !c.Now().After(before) {
		t.Error("real clock did not advance across Sleep")
	}
}
