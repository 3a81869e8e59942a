// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"testing"
	"time"
)

func TestAnimationClosedForm(t *testing.T) {
	const (
		accel = 2000.0
		step  = 16 * time.Millisecond
		ticks = 10
	)
	var a Animation
	t0 := time.Unix(0, 0)
	a.Start(t0, 0, 0, accel, -1e9, 1e9)

	var pos float32
	now := t0
	for i := 0; i < ticks; i++ {
		now = now.Add(step)
		var edge Edge
		pos, edge = a.Tick(now)
		if edge != EdgeNone {
			t.Fatalf("tick %d: hit edge %d", i, edge)
		}
	}
	T := float32(now.Sub(t0).Seconds())
	want := .5 * accel * T * T
	if diff := pos - want; diff < -1e-2 || diff > 1e-2 {
		t.Errorf("position after %d ticks: got %v, want %v", ticks, pos, want)
	}
}

func TestAnimationStopsAtMax(t *testing.T) {
	var a Animation
	t0 := time.Unix(0, 0)
	a.Start(t0, 100, 0, 2000, 0, 450)

	now := t0
	for i := 0; i < 100; i++ {
		now = now.Add(16 * time.Millisecond)
		pos, edge := a.Tick(now)
		if edge == EdgeMax {
			if got, want := pos, float32(450); got != want {
				t.Errorf("settled position: got %v, want %v", got, want)
			}
			if a.Active() {
				t.Error("animation still active after reaching a bound")
			}
			return
		}
		if edge == EdgeMin {
			t.Fatal("reached the minimum bound while accelerating toward the maximum")
		}
	}
	t.Fatal("animation never reached the maximum bound")
}

func TestAnimationStopsAtMin(t *testing.T) {
	var a Animation
	t0 := time.Unix(0, 0)
	a.Start(t0, 400, 0, -2000, 0, 450)

	now := t0
	for i := 0; i < 100; i++ {
		now = now.Add(16 * time.Millisecond)
		pos, edge := a.Tick(now)
		if edge == EdgeMin {
			if got, want := pos, float32(0); got != want {
				t.Errorf("settled position: got %v, want %v", got, want)
			}
			return
		}
	}
	t.Fatal("animation never reached the minimum bound")
}

func TestExtrapolationConstantVelocity(t *testing.T) {
	const velocity = 100.0 // px/s
	var e Extrapolation
	for i := 0; i <= 4; i++ {
		ts := time.Duration(i) * 20 * time.Millisecond
		e.Sample(ts, velocity*float32(ts.Seconds()))
	}
	got := e.Velocity()
	if got < velocity-1 || got > velocity+1 {
		t.Errorf("estimated velocity: got %v, want about %v", got, velocity)
	}
}

func TestExtrapolationDiscardsOldSamples(t *testing.T) {
	var e Extrapolation
	// Fast movement, followed by holding still for longer than the
	// estimation window.
	e.Sample(0, 0)
	e.Sample(20*time.Millisecond, 200)
	for i := 0; i <= 6; i++ {
		e.Sample(40*time.Millisecond+time.Duration(i)*25*time.Millisecond, 200)
	}
	got := e.Velocity()
	if got < -1 || got > 1 {
		t.Errorf("estimated velocity after holding still: got %v, want about 0", got)
	}
}

func TestExtrapolationSingleSample(t *testing.T) {
	var e Extrapolation
	e.Sample(0, 42)
	if got := e.Velocity(); got != 0 {
		t.Errorf("velocity from a single sample: got %v, want 0", got)
	}
}
