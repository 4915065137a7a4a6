// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeClock_StandsStill(t *testing.T) {
	epoch := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	c := Fake(epoch)

	if !c.Now().Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", c.Now(), epoch)
	}
	if !c.Now().Equal(epoch) {
		t.Fatalf("second Now() = %v, want %v", c.Now(), epoch)
	}
}

func TestFakeClock_Advance(t *testing.T) {
	epoch := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	c := Fake(epoch)

	c.Advance(time.Hour)

	want := time.Date(2026, 10, 19, 0, 30, 0, 0, time.UTC)
	if !c.Now().Equal(want) {
		t.Errorf("after Advance, Now() = %v, want %v", c.Now(), want)
	}
}

func TestFakeClock_AdvanceNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on negative Advance")
		}
	}()
	Fake(time.Now()).Advance(-time.Second)
}

func TestFakeClock_Set(t *testing.T) {
	c := Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	target := time.Date(2027, 2, 3, 4, 5, 6, 0, time.UTC)

	c.Set(target)

	if !c.Now().Equal(target) {
		t.Errorf("after Set, Now() = %v, want %v", c.Now(), target)
	}
}
