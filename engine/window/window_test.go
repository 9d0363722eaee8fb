package window

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaddedViewport(t *testing.T) {
	tests := []struct {
		name                   string
		width, height, padding int
		want                   Rect
	}{
		{"default", 1280, 720, 25, Rect{X: 25, Y: 25, Width: 1230, Height: 695}},
		{"no padding", 800, 600, 0, Rect{Width: 800, Height: 600}},
		{"negative padding", 800, 600, -10, Rect{Width: 800, Height: 600}},
		{"too small", 40, 20, 25, Rect{X: 25, Y: 25, Width: 1, Height: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaddedViewport(tt.width, tt.height, tt.padding))
		})
	}
}

func TestHandleResizeIgnoresMinimisedWindow(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720, padding: 25}
	var got [][2]int
	w.SetResizeCallback(func(width, height int) { got = append(got, [2]int{width, height}) })

	w.handleResize(0, 0)
	assert.Empty(t, got)
	assert.Equal(t, 1280, w.Width())

	w.handleResize(1600, 900)
	assert.Equal(t, [][2]int{{1600, 900}}, got)
	assert.Equal(t, Rect{X: 25, Y: 25, Width: 1550, Height: 875}, w.Viewport())
}

func TestDispatchInput(t *testing.T) {
	w := &engineWindow{}
	var events []string
	w.SetKeyDownCallback(func(k uint32) { events = append(events, fmt.Sprintf("down %d", k)) })
	w.SetKeyUpCallback(func(k uint32) { events = append(events, fmt.Sprintf("up %d", k)) })
	w.SetMouseDownCallback(func(b MouseButton, x, y int32) { events = append(events, fmt.Sprintf("press %d %d,%d", b, x, y)) })

	w.dispatchKey(65, true)
	w.dispatchKey(65, false)
	w.dispatchMouseButton(MouseButtonRight, true, 10, 20)
	// no release callback registered
	w.dispatchMouseButton(MouseButtonRight, false, 10, 20)

	assert.Equal(t, []string{"down 65", "up 65", "press 1 10,20"}, events)
}

func TestCloseWithoutPlatformWindow(t *testing.T) {
	w := &engineWindow{}
	assert.Error(t, w.Close())
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
}
