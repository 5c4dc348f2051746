// Package mesh manages a vertex buffer together with the vertex array that
// describes its layout.
package mesh

import (
	"fmt"
	"unsafe"

	"github.com/adinfinit/meshlab/gpu"
)

// Mesh owns one vertex buffer and one vertex array on a context.
//
// After Delete every method that would touch the GPU does nothing, so a
// render loop may keep calling Start/Render/Stop on a deleted mesh.
type Mesh struct {
	ctx gpu.Context

	vao gpu.VertexArray
	vbo gpu.Buffer

	count    int32
	drawMode gpu.DrawMode
	stride   int32
	deleted  bool
}

// New allocates the buffer and vertex array of a mesh on ctx.
func New(ctx gpu.Context) (*Mesh, error) {
	vbo, err := ctx.CreateBuffer()
	if err != nil {
		return nil, fmt.Errorf("mesh buffer: %w", err)
	}
	vao, err := ctx.CreateVertexArray()
	if err != nil {
		ctx.DeleteBuffer(vbo)
		return nil, fmt.Errorf("mesh vertex array: %w", err)
	}
	gpu.Logger().Debug("mesh created", "vbo", vbo.V, "vao", vao.V)

	return &Mesh{
		ctx:      ctx,
		vao:      vao,
		vbo:      vbo,
		drawMode: gpu.Triangles,
	}, nil
}

// UpdateVertexBuffer replaces the whole buffer content with data.
//
// The length of data is not checked against the configured layout; a
// length that is not a multiple of the stride is only logged.
func (mesh *Mesh) UpdateVertexBuffer(data []byte) {
	if mesh.deleted {
		return
	}
	if mesh.stride > 0 && len(data)%int(mesh.stride) != 0 {
		gpu.Logger().Warn("vertex data is not a whole number of records",
			"bytes", len(data), "stride", mesh.stride)
	}

	mesh.ctx.BindBuffer(gpu.ArrayBuffer, mesh.vbo)
	mesh.ctx.BufferData(gpu.ArrayBuffer, data, gpu.StaticDraw)
	mesh.ctx.BindBuffer(gpu.ArrayBuffer, gpu.Buffer{})
}

// Configure describes the buffer content to the vertex array: attribute i of
// layout is enabled at index i with the offset and stride derived from the
// layout. Configuring again replaces the previous description.
func (mesh *Mesh) Configure(layout Layout) {
	if mesh.deleted || len(layout) == 0 {
		return
	}

	ctx := mesh.ctx
	ctx.BindBuffer(gpu.ArrayBuffer, mesh.vbo)
	ctx.BindVertexArray(mesh.vao)

	stride := layout.Stride()
	offset := int32(0)
	for i, attr := range layout {
		index := uint32(i)
		ctx.EnableVertexAttribArray(index)
		ctx.VertexAttribPointer(index, attr.Count, attr.Type, false, stride, offset)
		offset += attr.Size()
	}
	mesh.stride = stride

	ctx.BindBuffer(gpu.ArrayBuffer, gpu.Buffer{})
	ctx.BindVertexArray(gpu.VertexArray{})
}

// Start binds the mesh's vertex array.
func (mesh *Mesh) Start() {
	if mesh.deleted {
		return
	}
	mesh.ctx.BindVertexArray(mesh.vao)
}

// Render draws Count vertices starting at 0 with the current DrawMode.
// The vertex array must have been bound with Start and a program must be in use.
func (mesh *Mesh) Render() {
	if mesh.deleted {
		return
	}
	mesh.ctx.DrawArrays(mesh.drawMode, 0, mesh.count)
}

// Stop unbinds the vertex array.
func (mesh *Mesh) Stop() {
	if mesh.deleted {
		return
	}
	mesh.ctx.BindVertexArray(gpu.VertexArray{})
}

// Delete releases the buffer and the vertex array. Further calls do nothing.
func (mesh *Mesh) Delete() {
	if mesh.deleted {
		return
	}
	mesh.ctx.DeleteBuffer(mesh.vbo)
	mesh.ctx.DeleteVertexArray(mesh.vao)
	mesh.deleted = true
	gpu.Logger().Debug("mesh deleted", "vbo", mesh.vbo.V, "vao", mesh.vao.V)
}

func (mesh *Mesh) Deleted() bool { return mesh.deleted }

func (mesh *Mesh) DrawMode() gpu.DrawMode         { return mesh.drawMode }
func (mesh *Mesh) SetDrawMode(mode gpu.DrawMode) { mesh.drawMode = mode }

func (mesh *Mesh) Count() int32         { return mesh.count }
func (mesh *Mesh) SetCount(count int32) { mesh.count = count }

// Stride returns the stride applied by the last Configure, or 0.
func (mesh *Mesh) Stride() int32 { return mesh.stride }

// VertexArray and Buffer expose the raw handles for callers that bind
// several meshes' resources themselves.
func (mesh *Mesh) VertexArray() gpu.VertexArray { return mesh.vao }
func (mesh *Mesh) Buffer() gpu.Buffer           { return mesh.vbo }

// Float32Bytes reinterprets vertices as bytes in native byte order without
// copying.
func Float32Bytes(vertices []float32) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*4)
}
