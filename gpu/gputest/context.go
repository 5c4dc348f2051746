// Package gputest provides a recording gpu.Context for tests.
//
// Context keeps the GL binding points as plain fields (BoundBuffer,
// BoundVertexArray, CurrentProgram) so tests can check that a component
// restores them, logs every call in order, and records misuse that a real
// driver would report as GL_INVALID_OPERATION into Errors instead of
// panicking. Shader compilation is done by a small GLSL front end that only
// understands enough to report syntax errors, assign input locations and
// match vertex outputs with fragment inputs.
package gputest

import (
	"fmt"
	"sort"

	"github.com/adinfinit/meshlab/gpu"
)

// Call is a single recorded Context method invocation.
type Call struct {
	Name string
	Args []any
}

func (call Call) String() string { return fmt.Sprintf("%s%v", call.Name, call.Args) }

// Attrib is the state of one vertex attribute slot in a vertex array.
type Attrib struct {
	Enabled    bool
	Buffer     gpu.Buffer
	Size       int32
	Type       gpu.ComponentType
	Normalized bool
	Stride     int32
	Offset     int32
}

// Draw is a recorded DrawArrays call together with the state it ran under.
type Draw struct {
	Mode        gpu.DrawMode
	First       int32
	Count       int32
	VertexArray gpu.VertexArray
	Program     gpu.Program
}

type buffer struct {
	data  []byte
	usage gpu.BufferUsage
}

// Context is an in-memory gpu.Context.
type Context struct {
	// FailAllocations makes every Create* call fail with gpu.ErrAllocation.
	FailAllocations bool

	BoundBuffer      gpu.Buffer
	BoundVertexArray gpu.VertexArray
	CurrentProgram   gpu.Program

	Enabled         map[gpu.Capability]bool
	ClearColorValue [4]float32
	ViewportValue   [4]int32

	Calls  []Call
	Draws  []Draw
	Clears []gpu.ClearMask
	Errors []string

	nextID       uint32
	buffers      map[uint32]*buffer
	vertexArrays map[uint32]map[uint32]*Attrib
	shaders      map[uint32]*shaderObject
	programs     map[uint32]*programObject
}

var _ gpu.Context = (*Context)(nil)

// New returns an empty context.
func New() *Context {
	return &Context{
		Enabled:      map[gpu.Capability]bool{},
		buffers:      map[uint32]*buffer{},
		vertexArrays: map[uint32]map[uint32]*Attrib{},
		shaders:      map[uint32]*shaderObject{},
		programs:     map[uint32]*programObject{},
	}
}

func (ctx *Context) record(name string, args ...any) {
	ctx.Calls = append(ctx.Calls, Call{Name: name, Args: args})
}

func (ctx *Context) misuse(format string, args ...any) {
	ctx.Errors = append(ctx.Errors, fmt.Sprintf(format, args...))
}

func (ctx *Context) allocate() (uint32, error) {
	if ctx.FailAllocations {
		return 0, gpu.ErrAllocation
	}
	ctx.nextID++
	return ctx.nextID, nil
}

// CallCount returns how many times the named method was called.
func (ctx *Context) CallCount(name string) int {
	n := 0
	for _, call := range ctx.Calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

// CallNames returns the recorded method names in call order.
func (ctx *Context) CallNames() []string {
	names := make([]string, len(ctx.Calls))
	for i, call := range ctx.Calls {
		names[i] = call.Name
	}
	return names
}

// ResetCalls forgets recorded calls, draws and clears but keeps GPU state.
func (ctx *Context) ResetCalls() {
	ctx.Calls = nil
	ctx.Draws = nil
	ctx.Clears = nil
}

// LiveObjects returns the number of buffers, vertex arrays, shaders and
// programs that were created and not deleted.
func (ctx *Context) LiveObjects() int {
	return len(ctx.buffers) + len(ctx.vertexArrays) + len(ctx.shaders) + len(ctx.programs)
}

// BufferContents returns the data last uploaded to b.
func (ctx *Context) BufferContents(b gpu.Buffer) ([]byte, bool) {
	buf, ok := ctx.buffers[b.V]
	if !ok {
		return nil, false
	}
	return buf.data, true
}

// BufferUsage returns the usage hint of the last upload to b.
func (ctx *Context) BufferUsage(b gpu.Buffer) gpu.BufferUsage {
	if buf, ok := ctx.buffers[b.V]; ok {
		return buf.usage
	}
	return 0
}

// Attribute returns the state of slot index in vertex array a.
func (ctx *Context) Attribute(a gpu.VertexArray, index uint32) (Attrib, bool) {
	attribs, ok := ctx.vertexArrays[a.V]
	if !ok {
		return Attrib{}, false
	}
	attrib, ok := attribs[index]
	if !ok {
		return Attrib{}, false
	}
	return *attrib, true
}

// AttributeIndices returns the configured slots of vertex array a, sorted.
func (ctx *Context) AttributeIndices(a gpu.VertexArray) []uint32 {
	var indices []uint32
	for index := range ctx.vertexArrays[a.V] {
		indices = append(indices, index)
	}
	sort.Slice(indices, func(i, k int) bool { return indices[i] < indices[k] })
	return indices
}

// UniformValue returns the last value set for the named uniform of p.
func (ctx *Context) UniformValue(p gpu.Program, name string) (any, bool) {
	prog, ok := ctx.programs[p.V]
	if !ok || !prog.linked {
		return nil, false
	}
	loc, ok := prog.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := prog.values[loc]
	return v, ok
}

func (ctx *Context) CreateBuffer() (gpu.Buffer, error) {
	ctx.record("CreateBuffer")
	id, err := ctx.allocate()
	if err != nil {
		return gpu.Buffer{}, err
	}
	ctx.buffers[id] = &buffer{}
	return gpu.Buffer{V: id}, nil
}

func (ctx *Context) DeleteBuffer(b gpu.Buffer) {
	ctx.record("DeleteBuffer", b)
	if _, ok := ctx.buffers[b.V]; !ok {
		ctx.misuse("DeleteBuffer: unknown buffer %d", b.V)
		return
	}
	delete(ctx.buffers, b.V)
	if ctx.BoundBuffer == b {
		ctx.BoundBuffer = gpu.Buffer{}
	}
}

func (ctx *Context) BindBuffer(target gpu.BufferTarget, b gpu.Buffer) {
	ctx.record("BindBuffer", target, b)
	if b.Valid() {
		if _, ok := ctx.buffers[b.V]; !ok {
			ctx.misuse("BindBuffer: unknown buffer %d", b.V)
			return
		}
	}
	ctx.BoundBuffer = b
}

func (ctx *Context) BufferData(target gpu.BufferTarget, data []byte, usage gpu.BufferUsage) {
	ctx.record("BufferData", target, len(data), usage)
	buf, ok := ctx.buffers[ctx.BoundBuffer.V]
	if !ok {
		ctx.misuse("BufferData: no buffer bound")
		return
	}
	buf.data = append([]byte(nil), data...)
	buf.usage = usage
}

func (ctx *Context) CreateVertexArray() (gpu.VertexArray, error) {
	ctx.record("CreateVertexArray")
	id, err := ctx.allocate()
	if err != nil {
		return gpu.VertexArray{}, err
	}
	ctx.vertexArrays[id] = map[uint32]*Attrib{}
	return gpu.VertexArray{V: id}, nil
}

func (ctx *Context) DeleteVertexArray(a gpu.VertexArray) {
	ctx.record("DeleteVertexArray", a)
	if _, ok := ctx.vertexArrays[a.V]; !ok {
		ctx.misuse("DeleteVertexArray: unknown vertex array %d", a.V)
		return
	}
	delete(ctx.vertexArrays, a.V)
	if ctx.BoundVertexArray == a {
		ctx.BoundVertexArray = gpu.VertexArray{}
	}
}

func (ctx *Context) BindVertexArray(a gpu.VertexArray) {
	ctx.record("BindVertexArray", a)
	if a.Valid() {
		if _, ok := ctx.vertexArrays[a.V]; !ok {
			ctx.misuse("BindVertexArray: unknown vertex array %d", a.V)
			return
		}
	}
	ctx.BoundVertexArray = a
}

func (ctx *Context) boundAttrib(method string, index uint32) *Attrib {
	attribs, ok := ctx.vertexArrays[ctx.BoundVertexArray.V]
	if !ok {
		ctx.misuse("%s: no vertex array bound", method)
		return nil
	}
	attrib, ok := attribs[index]
	if !ok {
		attrib = &Attrib{}
		attribs[index] = attrib
	}
	return attrib
}

func (ctx *Context) EnableVertexAttribArray(index uint32) {
	ctx.record("EnableVertexAttribArray", index)
	if attrib := ctx.boundAttrib("EnableVertexAttribArray", index); attrib != nil {
		attrib.Enabled = true
	}
}

func (ctx *Context) VertexAttribPointer(index uint32, size int32, typ gpu.ComponentType, normalized bool, stride int32, offset int32) {
	ctx.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
	if !ctx.BoundBuffer.Valid() {
		ctx.misuse("VertexAttribPointer: no array buffer bound")
		return
	}
	attrib := ctx.boundAttrib("VertexAttribPointer", index)
	if attrib == nil {
		return
	}
	attrib.Buffer = ctx.BoundBuffer
	attrib.Size = size
	attrib.Type = typ
	attrib.Normalized = normalized
	attrib.Stride = stride
	attrib.Offset = offset
}

func (ctx *Context) Enable(capability gpu.Capability) {
	ctx.record("Enable", capability)
	ctx.Enabled[capability] = true
}

func (ctx *Context) Disable(capability gpu.Capability) {
	ctx.record("Disable", capability)
	delete(ctx.Enabled, capability)
}

func (ctx *Context) ClearColor(r, g, b, a float32) {
	ctx.record("ClearColor", r, g, b, a)
	ctx.ClearColorValue = [4]float32{r, g, b, a}
}

func (ctx *Context) Clear(mask gpu.ClearMask) {
	ctx.record("Clear", mask)
	ctx.Clears = append(ctx.Clears, mask)
}

func (ctx *Context) Viewport(x, y, width, height int32) {
	ctx.record("Viewport", x, y, width, height)
	ctx.ViewportValue = [4]int32{x, y, width, height}
}

func (ctx *Context) DrawArrays(mode gpu.DrawMode, first, count int32) {
	ctx.record("DrawArrays", mode, first, count)
	if !ctx.BoundVertexArray.Valid() {
		ctx.misuse("DrawArrays: no vertex array bound")
	}
	ctx.Draws = append(ctx.Draws, Draw{
		Mode:        mode,
		First:       first,
		Count:       count,
		VertexArray: ctx.BoundVertexArray,
		Program:     ctx.CurrentProgram,
	})
}
