// SPDX-License-Identifier: Unlicense OR MIT

/*
Package drawer provides a sliding drawer widget: a handle the user
drags or flings to reveal and hide a content panel.

A Drawer fills its constraints and slides along a single axis. The
two children are supplied at layout time: the handle, which is the
draggable hit area, and the content attached to it. The content is
revealed between the handle and the far edge of the container.

The drag and fling behavior lives in Controller, which is independent
of the layout and drawing machinery and can be driven directly.
*/
package drawer

import (
	"image"
	"time"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
)

// Drawer is a sliding drawer widget. Use NewDrawer for a Drawer with
// the conventional defaults.
type Drawer struct {
	// Axis is the direction the drawer slides in.
	Axis Axis
	// TopOffset is the minimum handle position, limiting how far the
	// drawer opens.
	TopOffset unit.Value
	// BottomOffset is extra slack past the fully closed position.
	BottomOffset unit.Value
	// AllowSingleTap makes a tap on the handle toggle the drawer.
	AllowSingleTap bool
	// AnimateOnClick animates the tap toggle instead of snapping.
	AnimateOnClick bool

	// Listener slots, forwarded to the controller. All optional.
	OnOpened        func()
	OnClosed        func()
	OnScrollStarted func()
	OnScrollEnded   func()
	OnScrolling     func(position int, beforeLayout bool)

	ctl        *Controller
	drag       gesture.Drag
	sched      frameScheduler
	calibrated bool
}

// NewDrawer returns a vertical Drawer with the conventional defaults:
// taps toggle the drawer, animated.
func NewDrawer() *Drawer {
	return &Drawer{
		Axis:           Vertical,
		AllowSingleTap: true,
		AnimateOnClick: true,
	}
}

// Layout processes events and lays out the drawer. The drawer fills
// gtx.Constraints.Max; the handle is measured with loose constraints
// and the content gets the space left past the handle and the top
// offset.
func (d *Drawer) Layout(gtx layout.Context, handle, content layout.Widget) layout.Dimensions {
	if handle == nil || content == nil {
		panic("drawer: Layout requires a handle and a content widget")
	}
	c := d.ensure()
	if !d.calibrated {
		c.calibrate(gtx.Metric)
		c.SetOffsets(gtx.Px(d.TopOffset), gtx.Px(d.BottomOffset))
		d.calibrated = true
	}

	// Run a tick that came due since the last frame before reading
	// positions.
	d.sched.run(gtx.Now)

	gaxis := gesture.Vertical
	if d.Axis == Horizontal {
		gaxis = gesture.Horizontal
	}
	for _, ev := range d.drag.Events(gtx.Metric, gtx, gaxis) {
		switch ev.Type {
		case pointer.Press:
			c.StartDrag(ev.Position, ev.Time)
		case pointer.Drag:
			c.Drag(ev.Position, ev.Time)
		case pointer.Release:
			c.EndDrag(ev.Time, gtx.Now)
		case pointer.Cancel:
			c.CancelDrag()
		}
	}

	size := gtx.Constraints.Max

	hgtx := gtx
	hgtx.Constraints.Min = image.Point{}
	hmacro := op.Record(gtx.Ops)
	hdims := handle(hgtx)
	hcall := hmacro.Stop()
	hextent := d.axisSize(hdims.Size)

	c.SetGeometry(d.axisSize(size), hextent)

	// The content snapshot is recorded whether or not it is drawn, so
	// a drag can reveal it mid-frame without a relayout.
	csize := size
	if d.Axis == Vertical {
		csize.Y -= hextent + c.TopOffset()
		if csize.Y < 0 {
			csize.Y = 0
		}
	} else {
		csize.X -= hextent + c.TopOffset()
		if csize.X < 0 {
			csize.X = 0
		}
	}
	cgtx := gtx
	cgtx.Constraints = layout.Exact(csize)
	cmacro := op.Record(gtx.Ops)
	content(cgtx)
	ccall := cmacro.Stop()

	pos := c.Position()
	hrect := d.handleRect(size, hdims.Size, pos)

	st := op.Push(gtx.Ops)
	op.Offset(f32.Pt(float32(hrect.Min.X), float32(hrect.Min.Y))).Add(gtx.Ops)
	hcall.Add(gtx.Ops)
	st.Pop()

	if c.IsOpen() || c.Moving() {
		var coff f32.Point
		if d.Axis == Vertical {
			coff = f32.Pt(0, float32(pos+hextent))
		} else {
			coff = f32.Pt(float32(pos+hextent), 0)
		}
		st := op.Push(gtx.Ops)
		op.Offset(coff).Add(gtx.Ops)
		ccall.Add(gtx.Ops)
		st.Pop()
	}

	// The hit area covers only the handle.
	st = op.Push(gtx.Ops)
	pointer.Rect(hrect).Add(gtx.Ops)
	d.drag.Add(gtx.Ops)
	st.Pop()

	if at, pending := d.sched.pending(); pending {
		op.InvalidateOp{At: at}.Add(gtx.Ops)
	}

	return layout.Dimensions{Size: size}
}

// handleRect returns the handle rectangle in drawer coordinates, at
// position pos along the axis and centered on the cross axis.
func (d *Drawer) handleRect(container, handle image.Point, pos int) image.Rectangle {
	var min image.Point
	if d.Axis == Vertical {
		min = image.Pt((container.X-handle.X)/2, pos)
	} else {
		min = image.Pt(pos, (container.Y-handle.Y)/2)
	}
	return image.Rectangle{Min: min, Max: min.Add(handle)}
}

func (d *Drawer) axisSize(size image.Point) int {
	if d.Axis == Horizontal {
		return size.X
	}
	return size.Y
}

// Controller returns the drawer's interaction state machine, for
// hosts that need the full command surface.
func (d *Drawer) Controller() *Controller {
	return d.ensure()
}

// Open settles the drawer open immediately.
func (d *Drawer) Open() {
	d.ensure().Open()
}

// Close settles the drawer closed immediately.
func (d *Drawer) Close() {
	d.ensure().Close()
}

// Toggle settles the drawer in the opposite state immediately.
func (d *Drawer) Toggle() {
	d.ensure().Toggle()
}

// AnimateOpen opens the drawer with a fling.
func (d *Drawer) AnimateOpen(now time.Time) {
	d.ensure().AnimateOpen(now)
}

// AnimateClose closes the drawer with a fling.
func (d *Drawer) AnimateClose(now time.Time) {
	d.ensure().AnimateClose(now)
}

// AnimateToggle moves the drawer to the opposite state with a fling.
func (d *Drawer) AnimateToggle(now time.Time) {
	d.ensure().AnimateToggle(now)
}

// OpenUpTo opens the drawer partially, to offset pixels from the
// container origin.
func (d *Drawer) OpenUpTo(offset int, beforeLayout bool) {
	d.ensure().OpenUpTo(offset, beforeLayout)
}

// Lock makes the drawer ignore touch input until Unlock.
func (d *Drawer) Lock() {
	d.ensure().Lock()
}

// Unlock re-enables touch input.
func (d *Drawer) Unlock() {
	d.ensure().Unlock()
}

// IsOpen reports whether the drawer is settled open.
func (d *Drawer) IsOpen() bool {
	return d.ensure().IsOpen()
}

// Moving reports whether the handle is being dragged or animated.
func (d *Drawer) Moving() bool {
	return d.ensure().Moving()
}

// ensure lazily constructs the controller and keeps the user visible
// configuration forwarded, so fields may change between frames.
func (d *Drawer) ensure() *Controller {
	if d.ctl == nil {
		d.ctl = NewController(unit.Metric{}, d.Axis)
		d.ctl.Scheduler = &d.sched
	}
	c := d.ctl
	c.AllowSingleTap = d.AllowSingleTap
	c.AnimateOnClick = d.AnimateOnClick
	c.OnOpened = d.OnOpened
	c.OnClosed = d.OnClosed
	c.OnScrollStarted = d.OnScrollStarted
	c.OnScrollEnded = d.OnScrollEnded
	c.OnScrolling = d.OnScrolling
	return c
}

// frameScheduler implements Scheduler on the frame loop: a deadline
// becomes an InvalidateOp and the callback runs at the top of the
// first Layout at or past it.
type frameScheduler struct {
	gen int
	at  time.Time
	f   func(now time.Time)
}

func (s *frameScheduler) ScheduleAt(at time.Time, f func(now time.Time)) func() {
	s.gen++
	gen := s.gen
	s.at = at
	s.f = f
	return func() {
		if s.gen == gen {
			s.f = nil
		}
	}
}

// run invokes the pending callback if its deadline has passed.
func (s *frameScheduler) run(now time.Time) {
	if s.f == nil || now.Before(s.at) {
		return
	}
	f := s.f
	s.f = nil
	f(now)
}

// pending returns the deadline of the not yet due callback, if any.
func (s *frameScheduler) pending() (time.Time, bool) {
	return s.at, s.f != nil
}
