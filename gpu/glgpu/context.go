// Package glgpu implements gpu.Context on top of an OpenGL 4.1 core context.
//
// The GL context must be current on the calling goroutine's OS thread
// (see runtime.LockOSThread) before New is called and for every call after.
package glgpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/adinfinit/meshlab/gpu"
)

// Context is a gpu.Context backed by the current OpenGL context.
type Context struct {
	Version string
}

var _ gpu.Context = (*Context)(nil)

// New loads the GL function pointers for the current context.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize gl: %w", err)
	}
	ctx := &Context{Version: gl.GoStr(gl.GetString(gl.VERSION))}
	gpu.Logger().Info("opengl context", "version", ctx.Version)
	return ctx, nil
}

func (ctx *Context) CreateBuffer() (gpu.Buffer, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return gpu.Buffer{}, fmt.Errorf("buffer: %w", gpu.ErrAllocation)
	}
	return gpu.Buffer{V: id}, nil
}

func (ctx *Context) DeleteBuffer(b gpu.Buffer) { gl.DeleteBuffers(1, &b.V) }

func (ctx *Context) BindBuffer(target gpu.BufferTarget, b gpu.Buffer) {
	gl.BindBuffer(uint32(target), b.V)
}

func (ctx *Context) BufferData(target gpu.BufferTarget, data []byte, usage gpu.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(data), uint32(usage))
}

func (ctx *Context) CreateVertexArray() (gpu.VertexArray, error) {
	var id uint32
	gl.GenVertexArrays(1, &id)
	if id == 0 {
		return gpu.VertexArray{}, fmt.Errorf("vertex array: %w", gpu.ErrAllocation)
	}
	return gpu.VertexArray{V: id}, nil
}

func (ctx *Context) DeleteVertexArray(a gpu.VertexArray) { gl.DeleteVertexArrays(1, &a.V) }
func (ctx *Context) BindVertexArray(a gpu.VertexArray)   { gl.BindVertexArray(a.V) }
func (ctx *Context) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (ctx *Context) VertexAttribPointer(index uint32, size int32, typ gpu.ComponentType, normalized bool, stride int32, offset int32) {
	gl.VertexAttribPointer(index, size, uint32(typ), normalized, stride, gl.PtrOffset(int(offset)))
}

func (ctx *Context) CreateShader(stage gpu.ShaderStage) (gpu.Shader, error) {
	id := gl.CreateShader(uint32(stage))
	if id == 0 {
		return gpu.Shader{}, fmt.Errorf("%v shader: %w", stage, gpu.ErrAllocation)
	}
	return gpu.Shader{V: id}, nil
}

func (ctx *Context) ShaderSource(s gpu.Shader, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s.V, 1, csources, nil)
	free()
}

func (ctx *Context) CompileShader(s gpu.Shader) { gl.CompileShader(s.V) }

func (ctx *Context) ShaderCompiled(s gpu.Shader) bool {
	var status int32
	gl.GetShaderiv(s.V, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (ctx *Context) ShaderInfoLog(s gpu.Shader) string {
	var logLength int32
	gl.GetShaderiv(s.V, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(s.V, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (ctx *Context) DeleteShader(s gpu.Shader) { gl.DeleteShader(s.V) }

func (ctx *Context) CreateProgram() (gpu.Program, error) {
	id := gl.CreateProgram()
	if id == 0 {
		return gpu.Program{}, fmt.Errorf("program: %w", gpu.ErrAllocation)
	}
	return gpu.Program{V: id}, nil
}

func (ctx *Context) AttachShader(p gpu.Program, s gpu.Shader) { gl.AttachShader(p.V, s.V) }
func (ctx *Context) DetachShader(p gpu.Program, s gpu.Shader) { gl.DetachShader(p.V, s.V) }
func (ctx *Context) LinkProgram(p gpu.Program)                { gl.LinkProgram(p.V) }

func (ctx *Context) ProgramLinked(p gpu.Program) bool {
	var status int32
	gl.GetProgramiv(p.V, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (ctx *Context) ProgramInfoLog(p gpu.Program) string {
	var logLength int32
	gl.GetProgramiv(p.V, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(p.V, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (ctx *Context) DeleteProgram(p gpu.Program) { gl.DeleteProgram(p.V) }
func (ctx *Context) UseProgram(p gpu.Program)    { gl.UseProgram(p.V) }

func (ctx *Context) AttribLocation(p gpu.Program, name string) int32 {
	return gl.GetAttribLocation(p.V, gl.Str(name+"\x00"))
}

func (ctx *Context) UniformLocation(p gpu.Program, name string) gpu.Uniform {
	return gpu.Uniform{V: gl.GetUniformLocation(p.V, gl.Str(name+"\x00"))}
}

func (ctx *Context) Uniform1i(u gpu.Uniform, v int32)         { gl.Uniform1i(u.V, v) }
func (ctx *Context) Uniform1f(u gpu.Uniform, v float32)       { gl.Uniform1f(u.V, v) }
func (ctx *Context) Uniform2f(u gpu.Uniform, x, y float32)    { gl.Uniform2f(u.V, x, y) }
func (ctx *Context) Uniform3f(u gpu.Uniform, x, y, z float32) { gl.Uniform3f(u.V, x, y, z) }
func (ctx *Context) Uniform4f(u gpu.Uniform, x, y, z, w float32) {
	gl.Uniform4f(u.V, x, y, z, w)
}
func (ctx *Context) UniformMatrix4fv(u gpu.Uniform, m *[16]float32) {
	gl.UniformMatrix4fv(u.V, 1, false, &m[0])
}

func (ctx *Context) Enable(capability gpu.Capability)  { gl.Enable(uint32(capability)) }
func (ctx *Context) Disable(capability gpu.Capability) { gl.Disable(uint32(capability)) }

func (ctx *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (ctx *Context) Clear(mask gpu.ClearMask)       { gl.Clear(uint32(mask)) }
func (ctx *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (ctx *Context) DrawArrays(mode gpu.DrawMode, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}
