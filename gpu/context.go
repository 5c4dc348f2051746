// Package gpu describes the graphics context the rest of meshlab renders
// through.
//
// Context mirrors the OpenGL / WebGL2 state machine one call at a time:
// binding points (array buffer, vertex array, program) are implicit global
// state, and every component that changes them is expected to restore them
// before returning. Drivers live in sub-packages: glgpu talks to a real
// OpenGL 4.1 core context, gputest records calls for tests.
package gpu

import "errors"

// ErrAllocation is returned when the context cannot create a GPU object.
var ErrAllocation = errors.New("gpu: allocation failed")

// Context is the single handle to a GPU device / surface pairing.
// It is not safe for concurrent use; all calls must come from the thread
// that owns the underlying context.
type Context interface {
	CreateBuffer() (Buffer, error)
	DeleteBuffer(Buffer)
	BindBuffer(target BufferTarget, buffer Buffer)
	// BufferData replaces the whole content of the buffer bound to target.
	BufferData(target BufferTarget, data []byte, usage BufferUsage)

	CreateVertexArray() (VertexArray, error)
	DeleteVertexArray(VertexArray)
	BindVertexArray(VertexArray)
	EnableVertexAttribArray(index uint32)
	// VertexAttribPointer describes attribute index of the bound vertex array,
	// sourcing from the buffer currently bound to ArrayBuffer.
	VertexAttribPointer(index uint32, size int32, typ ComponentType, normalized bool, stride int32, offset int32)

	CreateShader(stage ShaderStage) (Shader, error)
	ShaderSource(shader Shader, source string)
	CompileShader(Shader)
	ShaderCompiled(Shader) bool
	ShaderInfoLog(Shader) string
	DeleteShader(Shader)

	CreateProgram() (Program, error)
	AttachShader(Program, Shader)
	DetachShader(Program, Shader)
	LinkProgram(Program)
	ProgramLinked(Program) bool
	ProgramInfoLog(Program) string
	DeleteProgram(Program)
	UseProgram(Program)
	// AttribLocation returns -1 when program has no active input called name.
	AttribLocation(program Program, name string) int32
	// UniformLocation returns NoUniform when program has no active uniform called name.
	UniformLocation(program Program, name string) Uniform

	Uniform1i(u Uniform, v int32)
	Uniform1f(u Uniform, v float32)
	Uniform2f(u Uniform, x, y float32)
	Uniform3f(u Uniform, x, y, z float32)
	Uniform4f(u Uniform, x, y, z, w float32)
	UniformMatrix4fv(u Uniform, m *[16]float32)

	Enable(Capability)
	Disable(Capability)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int32)
	DrawArrays(mode DrawMode, first, count int32)
}

// Surface is the drawing region a Context renders into.
type Surface interface {
	// FramebufferSize reports the currently allocated drawing buffer in pixels.
	FramebufferSize() (width, height int)
}
