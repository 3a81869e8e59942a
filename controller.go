// SPDX-License-Identifier: Unlicense OR MIT

package drawer

import (
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/unit"

	"gioui.org/x/drawer/internal/fling"
)

// Axis is the direction the drawer slides in.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// State is the settled drawer state. While a drag or fling is in
// progress the state remains whatever the drawer last settled at.
type State uint8

const (
	// Closed hides the content, with the handle resting at the
	// closed bound.
	Closed State = iota
	// Open reveals the content, with the handle resting at the top
	// offset.
	Open
)

// Interaction thresholds, scaled by the display density at
// construction.
var (
	tapThreshold     = unit.Dp(6)
	maxTapVelocity   = unit.Dp(100)
	maxMinorVelocity = unit.Dp(150)
	maxMajorVelocity = unit.Dp(200)
	maxAcceleration  = unit.Dp(2000)
)

// frameDuration is the animation tick cadence.
const frameDuration = time.Second / 60

// A Scheduler delivers delayed wakeups for animation ticks.
// ScheduleAt arranges for f to be called with the current time at or
// after the deadline and returns a function that cancels the pending
// call. Callbacks run on the goroutine that drives the controller.
type Scheduler interface {
	ScheduleAt(at time.Time, f func(now time.Time)) (cancel func())
}

// Controller is the drawer's interaction state machine. It consumes
// pointer coordinates and tick wakeups and moves the handle position
// between the open bound, the top offset, and the closed bound,
// bottom offset + container extent - handle extent. Positions are
// pixels along the drawer axis, measured from the container origin;
// smaller positions are more open.
//
// A Controller must be used from a single goroutine. Callbacks are
// invoked synchronously from the transition that triggers them; a
// callback may call back into the controller, but must not do so
// unboundedly.
type Controller struct {
	// Scheduler delivers animation ticks. It must be set before any
	// animated transition.
	Scheduler Scheduler

	// AllowSingleTap makes a tap on the settled handle move the
	// drawer to the opposite state.
	AllowSingleTap bool
	// AnimateOnClick animates the tap toggle; when unset the toggle
	// snaps immediately.
	AnimateOnClick bool

	// OnOpened is called when the drawer settles open.
	OnOpened func()
	// OnClosed is called when the drawer settles closed.
	OnClosed func()
	// OnScrollStarted is called when a drag begins or a fling is
	// seeded.
	OnScrollStarted func()
	// OnScrollEnded is called when a drag ends. For the animated
	// commands it is called as soon as the fling is seeded, not when
	// the animation settles.
	OnScrollEnded func()
	// OnScrolling is called with the handle position whenever it
	// moves. beforeLayout reports that the position was set before
	// any layout pass, so geometry derived from it is not yet valid.
	OnScrolling func(position int, beforeLayout bool)

	axis     Axis
	state    State
	tracking bool
	locked   bool

	top    int
	bottom int
	extent int // container extent along the axis
	handle int // handle extent along the axis

	pos        int
	touchDelta int

	closeLimit, openLimit     int
	closeLimited, openLimited bool

	est      fling.Extrapolation
	estMinor fling.Extrapolation
	anim     fling.Animation

	nextTick   time.Time
	cancelTick func()

	tapSlop  int
	maxTapV  float32
	maxMinV  float32
	maxMajV  float32
	maxAccel float32
}

// NewController returns a controller for a drawer sliding along axis,
// with interaction thresholds scaled by m.
func NewController(m unit.Metric, axis Axis) *Controller {
	c := &Controller{axis: axis}
	c.calibrate(m)
	return c
}

// calibrate computes the density scaled interaction thresholds.
func (c *Controller) calibrate(m unit.Metric) {
	c.tapSlop = m.Px(tapThreshold)
	c.maxTapV = float32(m.Px(maxTapVelocity))
	c.maxMinV = float32(m.Px(maxMinorVelocity))
	c.maxMajV = float32(m.Px(maxMajorVelocity))
	c.maxAccel = float32(m.Px(maxAcceleration))
}

// SetOffsets configures the top and bottom offsets. The top offset is
// live state afterwards: Open resets it to zero and OpenUpTo rewrites
// it.
func (c *Controller) SetOffsets(top, bottom int) {
	c.top = top
	c.bottom = bottom
}

// SetGeometry records the container and handle extents along the
// axis, as measured by the host's layout pass. While the drawer is
// settled the handle position is re-derived from the state.
func (c *Controller) SetGeometry(container, handle int) {
	c.extent = container
	c.handle = handle
	if !c.tracking && !c.anim.Active() {
		if c.state == Open {
			c.pos = c.openBound()
		} else {
			c.pos = c.closedBound()
		}
	}
}

func (c *Controller) openBound() int {
	return c.top
}

func (c *Controller) closedBound() int {
	return c.bottom + c.extent - c.handle
}

// State returns the settled drawer state.
func (c *Controller) State() State {
	return c.state
}

// IsOpen reports whether the drawer is settled open.
func (c *Controller) IsOpen() bool {
	return c.state == Open
}

// Tracking reports whether a drag is in progress.
func (c *Controller) Tracking() bool {
	return c.tracking
}

// Animating reports whether a fling is in progress.
func (c *Controller) Animating() bool {
	return c.anim.Active()
}

// Moving reports whether the handle is being dragged or animated.
func (c *Controller) Moving() bool {
	return c.tracking || c.anim.Active()
}

// Position returns the handle position along the axis.
func (c *Controller) Position() int {
	return c.pos
}

// TopOffset returns the current top offset.
func (c *Controller) TopOffset() int {
	return c.top
}

// Lock suppresses all touch driven transitions. Programmatic commands
// are unaffected.
func (c *Controller) Lock() {
	c.locked = true
}

// Unlock re-enables touch driven transitions.
func (c *Controller) Unlock() {
	c.locked = false
}

// Locked reports whether touch driven transitions are suppressed.
func (c *Controller) Locked() bool {
	return c.locked
}

// SetCloseLimit keeps drags from moving the handle past limit in the
// closing direction. The drag gesture itself is not prevented.
func (c *Controller) SetCloseLimit(limit int) {
	c.closeLimit = limit
	c.closeLimited = true
}

// ClearCloseLimit removes the closing drag limit.
func (c *Controller) ClearCloseLimit() {
	c.closeLimited = false
}

// SetOpenLimit keeps drags from moving the handle past limit in the
// opening direction. The drag gesture itself is not prevented.
func (c *Controller) SetOpenLimit(limit int) {
	c.openLimit = limit
	c.openLimited = true
}

// ClearOpenLimit removes the opening drag limit.
func (c *Controller) ClearOpenLimit() {
	c.openLimited = false
}

// StartDrag begins a tracking session from a pointer press at pos. It
// reports whether the drag was accepted; presses are refused while
// locked or mid-session. Any in-flight animation is cancelled before
// state changes.
func (c *Controller) StartDrag(pos f32.Point, t time.Duration) bool {
	if c.locked || c.tracking {
		return false
	}
	c.stopAnimation()
	c.tracking = true
	// A partially opened drawer must be draggable to fully open.
	c.top = 0
	if c.OnScrollStarted != nil {
		c.OnScrollStarted()
	}
	v := c.val(pos)
	c.touchDelta = int(v) - c.pos
	c.est.Reset()
	c.estMinor.Reset()
	c.est.Sample(t, v)
	c.estMinor.Sample(t, c.minor(pos))
	return true
}

// Drag moves the handle to follow the pointer at pos.
func (c *Controller) Drag(pos f32.Point, t time.Duration) {
	if !c.tracking || c.locked {
		return
	}
	v := c.val(pos)
	c.est.Sample(t, v)
	c.estMinor.Sample(t, c.minor(pos))
	target := int(v) - c.touchDelta
	if c.closeLimited && target > c.closeLimit {
		target = c.closeLimit
	}
	if c.openLimited && target < c.openLimit {
		target = c.openLimit
	}
	c.moveHandle(target)
}

// EndDrag completes a tracking session at time t. The release
// velocity decides whether the drawer settles open or closed; a slow
// release close to the settled bound is treated as a tap. now anchors
// the settle animation that follows.
func (c *Controller) EndDrag(t time.Duration, now time.Time) {
	if !c.tracking || c.locked {
		return
	}
	c.stopTracking()
	velocity := c.releaseVelocity()
	pos := c.pos
	if c.AllowSingleTap && abs(velocity) < c.maxTapV && c.nearEdge(pos) {
		if c.AnimateOnClick {
			c.performFling(pos, velocity, true, now)
		} else {
			c.Toggle()
		}
		return
	}
	c.performFling(pos, velocity, false, now)
}

// CancelDrag abandons a tracking session without a fling, leaving the
// handle where it is.
func (c *Controller) CancelDrag() {
	if !c.tracking || c.locked {
		return
	}
	c.stopTracking()
}

// Open settles the drawer open immediately, resetting the top offset
// to zero for a full open.
func (c *Controller) Open() {
	c.stopAnimation()
	c.top = 0
	c.moveHandle(c.openBound())
	c.setOpen()
}

// Close settles the drawer closed immediately.
func (c *Controller) Close() {
	c.stopAnimation()
	c.moveHandle(c.closedBound())
	c.setClosed()
}

// Toggle settles the drawer in the opposite state immediately.
func (c *Controller) Toggle() {
	if c.state == Open {
		c.Close()
	} else {
		c.Open()
	}
}

// OpenUpTo opens the drawer partially, leaving the handle offset
// pixels from the container origin. beforeLayout is passed through to
// OnScrolling and reports that geometry has not been laid out yet.
func (c *Controller) OpenUpTo(offset int, beforeLayout bool) {
	c.stopAnimation()
	if offset < 0 {
		offset = -offset
	}
	c.top = offset
	c.pos = offset
	c.setOpen()
	if c.OnScrolling != nil {
		c.OnScrolling(c.pos, beforeLayout)
	}
}

// AnimateOpen settles the drawer open with a fling from the current
// position. No-op when already open.
func (c *Controller) AnimateOpen(now time.Time) {
	if c.state == Open {
		return
	}
	c.AnimateToggle(now)
}

// AnimateClose settles the drawer closed with a fling from the
// current position. No-op when already closed.
func (c *Controller) AnimateClose(now time.Time) {
	if c.state == Closed {
		return
	}
	c.AnimateToggle(now)
}

// AnimateToggle seeds a fling toward the state opposite the current
// one. The scroll started/ended pair brackets only the seeding, not
// the animation that follows.
func (c *Controller) AnimateToggle(now time.Time) {
	if c.OnScrollStarted != nil {
		c.OnScrollStarted()
	}
	c.performFling(c.pos, 0, true, now)
	if c.OnScrollEnded != nil {
		c.OnScrollEnded()
	}
}

// Tick advances the fling animation. Hosts with a Scheduler wired up
// never call it directly.
func (c *Controller) Tick(now time.Time) {
	c.cancelTick = nil
	if !c.anim.Active() {
		return
	}
	pos, edge := c.anim.Tick(now)
	switch edge {
	case fling.EdgeMin:
		c.moveHandle(c.openBound())
		c.setOpen()
	case fling.EdgeMax:
		c.moveHandle(c.closedBound())
		c.setClosed()
	default:
		c.moveHandle(int(math.Round(float64(pos))))
		c.scheduleTick(c.nextTick.Add(frameDuration))
	}
}

// performFling chooses the settle direction from the current state,
// the release velocity and the position, then starts the animation.
// forced settles toward the state opposite the current one, which is
// what taps and the animated commands need.
func (c *Controller) performFling(pos int, velocity float32, forced bool, now time.Time) {
	var toOpen bool
	if c.state == Open {
		toClosed := forced || velocity > c.maxMajV ||
			(pos > c.top+c.handle && velocity > -c.maxMajV)
		toOpen = !toClosed
	} else {
		toOpen = forced || velocity > c.maxMajV ||
			(pos > c.extent/2 && velocity > -c.maxMajV)
	}
	accel := c.maxAccel
	if toOpen {
		accel = -c.maxAccel
		if velocity > 0 {
			velocity = 0
		}
	} else if velocity < 0 {
		velocity = 0
	}
	c.anim.Start(now, float32(pos), velocity, accel,
		float32(c.openBound()), float32(c.closedBound()))
	c.scheduleTick(now.Add(frameDuration))
}

// scheduleTick cancels any pending tick and schedules the next one.
// At most one tick is ever pending, so a retriggered fling cannot
// leave two tick chains running.
func (c *Controller) scheduleTick(at time.Time) {
	if c.Scheduler == nil {
		panic("drawer: a Scheduler is required for animated transitions")
	}
	if c.cancelTick != nil {
		c.cancelTick()
	}
	c.nextTick = at
	c.cancelTick = c.Scheduler.ScheduleAt(at, c.Tick)
}

func (c *Controller) stopAnimation() {
	c.anim.Stop()
	if c.cancelTick != nil {
		c.cancelTick()
		c.cancelTick = nil
	}
}

func (c *Controller) stopTracking() {
	c.tracking = false
	if c.OnScrollEnded != nil {
		c.OnScrollEnded()
	}
}

// moveHandle clamps the requested position into the valid range and
// applies it as a relative offset.
func (c *Controller) moveHandle(position int) {
	delta := position - c.pos
	if position < c.top {
		delta = c.top - c.pos
	} else if max := c.closedBound(); position > max {
		delta = max - c.pos
	}
	c.pos += delta
	if c.OnScrolling != nil {
		c.OnScrolling(c.pos, false)
	}
}

func (c *Controller) setOpen() {
	if c.state == Open {
		return
	}
	c.state = Open
	if c.OnOpened != nil {
		c.OnOpened()
	}
}

func (c *Controller) setClosed() {
	if c.state == Closed {
		return
	}
	c.state = Closed
	if c.OnClosed != nil {
		c.OnClosed()
	}
}

// releaseVelocity combines the axis velocity with the cross axis
// velocity, clamped to the minor velocity limit, keeping the axis
// sign.
func (c *Controller) releaseVelocity() float32 {
	major := c.est.Velocity()
	minor := abs(c.estMinor.Velocity())
	if minor > c.maxMinV {
		minor = c.maxMinV
	}
	velocity := float32(math.Hypot(float64(major), float64(minor)))
	if major < 0 {
		velocity = -velocity
	}
	return velocity
}

// nearEdge reports whether pos is within the tap threshold of the
// bound the drawer is settled at.
func (c *Controller) nearEdge(pos int) bool {
	if c.state == Open {
		return pos < c.top+c.tapSlop
	}
	return pos > c.closedBound()-c.tapSlop
}

func (c *Controller) val(p f32.Point) float32 {
	if c.axis == Horizontal {
		return p.X
	}
	return p.Y
}

func (c *Controller) minor(p f32.Point) float32 {
	if c.axis == Horizontal {
		return p.Y
	}
	return p.X
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		panic("invalid Axis")
	}
}

func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Open:
		return "Open"
	default:
		panic("invalid State")
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
