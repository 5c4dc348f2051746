package glgpu

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowConfig describes the window OpenWindow creates.
type WindowConfig struct {
	Title         string
	Width, Height int
	Resizable     bool
	Samples       int
}

// Window is a glfw window whose GL context is current on the calling thread.
// It satisfies gpu.Surface.
type Window struct {
	*glfw.Window
}

// OpenWindow initializes glfw, creates a 4.1 core profile window and makes
// its context current. Call Terminate when done.
func OpenWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, boolHint(config.Resizable))
	if config.Samples > 0 {
		glfw.WindowHint(glfw.Samples, config.Samples)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()

	return &Window{Window: window}, nil
}

// FramebufferSize reports the drawing buffer size in pixels, which differs
// from the window size on high-dpi displays.
func (w *Window) FramebufferSize() (width, height int) {
	return w.Window.GetFramebufferSize()
}

// Time returns seconds since glfw was initialized.
func (w *Window) Time() float64 { return glfw.GetTime() }

// NextFrame presents the rendered frame and processes pending events.
func (w *Window) NextFrame() {
	w.SwapBuffers()
	glfw.PollEvents()
}

// Terminate destroys the window and releases glfw.
func (w *Window) Terminate() {
	w.Destroy()
	glfw.Terminate()
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}
