// SPDX-License-Identifier: Unlicense OR MIT

package fling

import "time"

// sampleWindow is how far back samples are considered when estimating
// the release velocity.
const sampleWindow = 100 * time.Millisecond

type sample struct {
	t time.Duration
	p float32
}

// Extrapolation estimates the velocity of a pointer from position
// samples along one axis.
type Extrapolation struct {
	samples []sample
}

// Reset discards all recorded samples.
func (e *Extrapolation) Reset() {
	e.samples = e.samples[:0]
}

// Sample records the pointer position p at time t. Samples older than
// the estimation window are discarded.
func (e *Extrapolation) Sample(t time.Duration, p float32) {
	e.samples = append(e.samples, sample{t: t, p: p})
	cutoff := t - sampleWindow
	i := 0
	for i < len(e.samples) && e.samples[i].t < cutoff {
		i++
	}
	if i > 0 {
		n := copy(e.samples, e.samples[i:])
		e.samples = e.samples[:n]
	}
}

// Velocity returns the estimated velocity in pixels per second, from
// a least squares linear fit of the recorded samples. Fewer than two
// samples estimate to zero.
func (e *Extrapolation) Velocity() float32 {
	if len(e.samples) < 2 {
		return 0
	}
	// Fit p = p0 + v*t. Times are taken relative to the first sample
	// to keep the sums well conditioned.
	t0 := e.samples[0].t
	var sumT, sumP, sumTT, sumTP float64
	for _, s := range e.samples {
		t := (s.t - t0).Seconds()
		p := float64(s.p)
		sumT += t
		sumP += p
		sumTT += t * t
		sumTP += t * p
	}
	n := float64(len(e.samples))
	den := n*sumTT - sumT*sumT
	if den == 0 {
		return 0
	}
	return float32((n*sumTP - sumT*sumP) / den)
}
