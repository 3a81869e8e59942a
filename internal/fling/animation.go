// SPDX-License-Identifier: Unlicense OR MIT

/*
Package fling implements the kinematics of a settling drawer: a
constant acceleration movement toward one of two bounds, and a
velocity estimator for released drags.
*/
package fling

import "time"

// Edge reports which bound, if any, an Animation has reached.
type Edge uint8

const (
	EdgeNone Edge = iota
	// EdgeMin is the minimum bound, the drawer's fully open position.
	EdgeMin
	// EdgeMax is the maximum bound, the drawer's fully closed position.
	EdgeMax
)

// Animation is a constant acceleration movement between two bounds.
type Animation struct {
	active   bool
	last     time.Time
	pos      float32
	velocity float32
	accel    float32
	min, max float32
}

// Start begins movement from pos with the given initial velocity in
// pixels per second and constant acceleration in pixels per second
// squared. The animation ends when the position reaches min or max.
func (a *Animation) Start(now time.Time, pos, velocity, accel, min, max float32) {
	a.active = true
	a.last = now
	a.pos = pos
	a.velocity = velocity
	a.accel = accel
	a.min = min
	a.max = max
}

// Tick integrates the movement up to now and returns the new
// position. A non-zero Edge reports that a bound was reached; the
// returned position is then the bound itself and the animation is
// stopped.
func (a *Animation) Tick(now time.Time) (float32, Edge) {
	if !a.active {
		return a.pos, EdgeNone
	}
	t := float32(now.Sub(a.last).Seconds())
	if t < 0 {
		t = 0
	}
	a.pos += a.velocity*t + .5*a.accel*t*t
	a.velocity += a.accel * t
	a.last = now
	switch {
	case a.pos <= a.min:
		a.pos = a.min
		a.active = false
		return a.pos, EdgeMin
	case a.pos >= a.max:
		a.pos = a.max
		a.active = false
		return a.pos, EdgeMax
	}
	return a.pos, EdgeNone
}

// Active reports whether the animation is running.
func (a *Animation) Active() bool {
	return a.active
}

// Stop halts the animation without settling at a bound.
func (a *Animation) Stop() {
	a.active = false
}
