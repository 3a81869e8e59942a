// SPDX-License-Identifier: Unlicense OR MIT

package main

// A Gio program that demonstrates the sliding drawer widget. See
// https://gioui.org for more information.

import (
	"image"
	"image/color"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"golang.org/x/exp/shiny/materialdesign/icons"

	"gioui.org/x/drawer"
)

func main() {
	go func() {
		w := app.NewWindow(app.Size(unit.Dp(400), unit.Dp(600)))
		if err := loop(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

type UI struct {
	theme  *material.Theme
	drawer *drawer.Drawer
	grip   *widget.Icon
	status string

	toggle  widget.Clickable
	lock    widget.Clickable
	partial widget.Clickable
}

func newUI() *UI {
	grip, err := widget.NewIcon(icons.NavigationExpandLess)
	if err != nil {
		log.Fatal(err)
	}
	ui := &UI{
		theme:  material.NewTheme(gofont.Collection()),
		drawer: drawer.NewDrawer(),
		grip:   grip,
		status: "closed",
	}
	ui.drawer.OnOpened = func() { ui.status = "open" }
	ui.drawer.OnClosed = func() { ui.status = "closed" }
	return ui
}

func loop(w *app.Window) error {
	ui := newUI()
	var ops op.Ops
	for {
		e := <-w.Events()
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			ui.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (ui *UI) layout(gtx layout.Context) layout.Dimensions {
	for ui.toggle.Clicked() {
		ui.drawer.AnimateToggle(gtx.Now)
	}
	for ui.lock.Clicked() {
		if ui.drawer.Controller().Locked() {
			ui.drawer.Unlock()
		} else {
			ui.drawer.Lock()
		}
	}
	for ui.partial.Clicked() {
		ui.drawer.OpenUpTo(gtx.Px(unit.Dp(150)), false)
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(ui.layoutControls),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return ui.drawer.Layout(gtx, ui.layoutHandle, ui.layoutContent)
		}),
	)
}

func (ui *UI) layoutControls(gtx layout.Context) layout.Dimensions {
	in := layout.UniformInset(unit.Dp(8))
	lockLabel := "Lock"
	if ui.drawer.Controller().Locked() {
		lockLabel = "Unlock"
	}
	spaced := func(w layout.Widget) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Right: unit.Dp(8)}.Layout(gtx, w)
		})
	}
	return in.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			spaced(material.Button(ui.theme, &ui.toggle, "Toggle").Layout),
			spaced(material.Button(ui.theme, &ui.lock, lockLabel).Layout),
			spaced(material.Button(ui.theme, &ui.partial, "Peek").Layout),
			layout.Rigid(material.Body1(ui.theme, ui.status).Layout),
		)
	})
}

func (ui *UI) layoutHandle(gtx layout.Context) layout.Dimensions {
	gtx.Constraints = layout.Exact(image.Pt(gtx.Constraints.Max.X, gtx.Px(unit.Dp(36))))
	fill(gtx, ui.theme.Color.Primary)
	ui.grip.Color = ui.theme.Color.InvText
	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return ui.grip.Layout(gtx, unit.Dp(24))
	})
}

func (ui *UI) layoutContent(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min = gtx.Constraints.Max
	fill(gtx, color.RGBA{A: 0xff, R: 0xe0, G: 0xe0, B: 0xe0})
	return layout.Center.Layout(gtx,
		material.H6(ui.theme, "Drawer content").Layout)
}

func fill(gtx layout.Context, col color.RGBA) layout.Dimensions {
	d := gtx.Constraints.Min
	dr := f32.Rectangle{Max: f32.Pt(float32(d.X), float32(d.Y))}
	paint.ColorOp{Color: col}.Add(gtx.Ops)
	paint.PaintOp{Rect: dr}.Add(gtx.Ops)
	return layout.Dimensions{Size: d}
}
