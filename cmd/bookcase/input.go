package main

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/config"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/controls"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/window"
	"github.com/rs/zerolog"
)

// bindings maps window input to Controls operations.
//
//	Left / Right       previous / next viewpoint
//	Space / Enter      fly to the current viewpoint
//	1 .. 9             fly to viewpoint n without moving the cursor
//	Up / Down, A / D   step the grid cursor by row / column and fly there
//	G                  fly to the grid cursor
//	N                  add a viewpoint at the camera
//	U                  overwrite the current viewpoint with the camera
//	Delete, Backspace  remove the current viewpoint
//	P                  save viewpoints
//	X                  save the camera as the start view
//	C                  delete the saved start view
//	M / K              save / delete the configured distance bounds
//	O / I              save / delete the configured pan bounds
//	L                  lock or unlock panning
//	E                  cycle the editor mode
//	H                  toggle helpers
//
// Left drag orbits, right drag pans and the wheel zooms while no move is in flight.
type bindings struct {
	controls controls.Controls
	ctrl     camera.CameraController
	logger   zerolog.Logger

	cols, rows       int
	gridCol, gridRow int

	// distance and panBounds are the configured limits as the text the save operations parse.
	// Unconfigured limits are empty strings, which the save operations reject.
	distance  [2]string
	panBounds [6]string

	dragging     bool
	dragButton   window.MouseButton
	lastX, lastY int32
}

func newBindings(c controls.Controls, ctrl camera.CameraController, cols, rows int, limits config.LimitsConfig, logger zerolog.Logger) *bindings {
	b := &bindings{
		controls: c,
		ctrl:     ctrl,
		logger:   logger,
		cols:     cols,
		rows:     rows,
	}
	formatInto(b.distance[:], limits.Distance)
	formatInto(b.panBounds[:], limits.PanBounds)
	return b
}

func formatInto(dst []string, values []float32) {
	if len(values) != len(dst) {
		return
	}
	for i, v := range values {
		dst[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
}

func (b *bindings) attach(w window.Window) {
	w.SetKeyDownCallback(b.keyDown)
	w.SetMouseDownCallback(b.mouseDown)
	w.SetMouseUpCallback(b.mouseUp)
	w.SetMouseMoveCallback(b.mouseMove)
	w.SetScrollCallback(b.scroll)
}

func (b *bindings) keyDown(key uint32) {
	switch {
	case key >= common.Key1 && key <= common.Key9:
		b.report("go to viewpoint", b.controls.GoToViewpoint(int(key-common.Key1)))
		return
	}

	switch key {
	case common.KeyLeft:
		b.controls.PreviousViewpoint()
	case common.KeyRight:
		b.controls.NextViewpoint()
	case common.KeySpace, common.KeyEnter:
		b.report("go to current viewpoint", b.controls.GoToCurrentViewpoint())
	case common.KeyUp:
		b.stepGrid(0, 1)
	case common.KeyDown:
		b.stepGrid(0, -1)
	case common.KeyA:
		b.stepGrid(-1, 0)
	case common.KeyD:
		b.stepGrid(1, 0)
	case common.KeyG:
		b.stepGrid(0, 0)
	case common.KeyN:
		b.controls.AddViewpointFromCamera()
	case common.KeyU:
		b.controls.UpdateViewpointFromCamera()
	case common.KeyDelete, common.KeyBackspace:
		b.controls.RemoveViewpoint()
	case common.KeyP:
		b.report("save viewpoints", b.controls.SaveViewpoints())
	case common.KeyX:
		b.report("save camera default", b.controls.SaveCameraDefault())
	case common.KeyC:
		b.report("delete camera default", b.controls.DeleteCameraDefault())
	case common.KeyM:
		b.report("save distance bounds", b.controls.SaveDistanceBounds(b.distance[0], b.distance[1]))
	case common.KeyK:
		b.report("delete distance bounds", b.controls.DeleteDistanceBounds())
	case common.KeyO:
		b.report("save pan bounds", b.controls.SavePanBounds(b.panBounds))
	case common.KeyI:
		b.report("delete pan bounds", b.controls.DeletePanBounds())
	case common.KeyL:
		if b.ctrl.PanEnabled() {
			b.controls.DisablePan()
		} else {
			b.controls.EnablePan()
		}
		b.logger.Info().Bool("enabled", b.ctrl.PanEnabled()).Msg("pan")
	case common.KeyE:
		mode := b.controls.ToggleEditorMode()
		b.logger.Info().Str("mode", string(mode)).Msg("editor mode")
	case common.KeyH:
		b.controls.ToggleHelpers()
	}
}

// stepGrid moves the grid cursor, clamped to the bookcase, and flies the camera to it.
func (b *bindings) stepGrid(dCol, dRow int) {
	b.gridCol = min(max(b.gridCol+dCol, 0), b.cols-1)
	b.gridRow = min(max(b.gridRow+dRow, 0), b.rows-1)
	b.report("move to grid slot", b.controls.MoveToGridSlot(b.gridCol, b.gridRow))
}

func (b *bindings) report(action string, err error) {
	if err != nil {
		b.logger.Warn().Err(err).Str("action", action).Msg("input ignored")
	}
}

func (b *bindings) idle() bool {
	return b.controls.Animator().State() == camera.StateIdle
}

func (b *bindings) mouseDown(button window.MouseButton, x, y int32) {
	if button != window.MouseButtonLeft && button != window.MouseButtonRight {
		return
	}
	b.dragging = true
	b.dragButton = button
	b.lastX, b.lastY = x, y
}

func (b *bindings) mouseUp(button window.MouseButton, _, _ int32) {
	if b.dragging && button == b.dragButton {
		b.dragging = false
	}
}

func (b *bindings) mouseMove(x, y int32) {
	if !b.dragging {
		return
	}
	dx, dy := float32(x-b.lastX), float32(y-b.lastY)
	b.lastX, b.lastY = x, y
	if !b.idle() {
		return
	}

	switch b.dragButton {
	case window.MouseButtonLeft:
		b.ctrl.Rotate(dx, dy)
	case window.MouseButtonRight:
		b.ctrl.PanRight(-dx)
		b.ctrl.PanUp(dy)
	}
}

func (b *bindings) scroll(delta float32) {
	if b.idle() {
		b.ctrl.Zoom(delta)
	}
}
