package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adinfinit/meshlab/gpu"
	"github.com/adinfinit/meshlab/gpu/gputest"
)

func TestLayoutStrideAndOffsets(t *testing.T) {
	for _, tc := range []struct {
		name    string
		layout  Layout
		stride  int32
		offsets []int32
	}{
		{"position", Layout{{Type: gpu.Float, Count: 2}}, 8, []int32{0}},
		{"position color", Layout{{Type: gpu.Float, Count: 2}, {Type: gpu.Float, Count: 3}}, 20, []int32{0, 8}},
		{"mixed", Layout{
			{Type: gpu.Float, Count: 3},
			{Type: gpu.UnsignedByte, Count: 4},
			{Type: gpu.HalfFloat, Count: 2},
			{Type: gpu.Short, Count: 1},
			{Type: gpu.Int, Count: 1},
		}, 26, []int32{0, 12, 16, 20, 22}},
		{"empty", Layout{}, 0, []int32{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.stride, tc.layout.Stride())
			assert.Equal(t, tc.offsets, tc.layout.Offsets())
		})
	}
}

func TestLayoutOffsetsAreRunningSums(t *testing.T) {
	var layout Layout
	for i, typ := range gpu.SupportedComponentTypes {
		layout = append(layout, Attribute{Type: typ, Count: int32(i%4 + 1)})
	}

	offsets := layout.Offsets()
	sum := int32(0)
	for i, attr := range layout {
		assert.Equal(t, sum, offsets[i], "offset %d", i)
		if i > 0 {
			assert.Greater(t, offsets[i], offsets[i-1])
		}
		sum += attr.Size()
	}
	assert.Equal(t, sum, layout.Stride())
}

func newMesh(t *testing.T) (*gputest.Context, *Mesh) {
	t.Helper()
	ctx := gputest.New()
	m, err := New(ctx)
	require.NoError(t, err)
	return ctx, m
}

func TestNew(t *testing.T) {
	ctx, m := newMesh(t)
	assert.True(t, m.Buffer().Valid())
	assert.True(t, m.VertexArray().Valid())
	assert.Equal(t, gpu.Triangles, m.DrawMode())
	assert.Zero(t, m.Count())
	assert.False(t, m.Deleted())
	assert.Equal(t, 2, ctx.LiveObjects())
}

func TestNewAllocationFailure(t *testing.T) {
	ctx := gputest.New()
	ctx.FailAllocations = true
	m, err := New(ctx)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, gpu.ErrAllocation)
}

func TestUpdateVertexBuffer(t *testing.T) {
	ctx, m := newMesh(t)

	m.UpdateVertexBuffer([]byte{1, 2, 3, 4})
	m.UpdateVertexBuffer([]byte{5, 6})

	data, ok := ctx.BufferContents(m.Buffer())
	require.True(t, ok)
	assert.Equal(t, []byte{5, 6}, data, "upload replaces content")
	assert.Equal(t, gpu.StaticDraw, ctx.BufferUsage(m.Buffer()))
	assert.False(t, ctx.BoundBuffer.Valid(), "buffer binding must not leak")
	assert.Empty(t, ctx.Errors)
}

func TestConfigure(t *testing.T) {
	ctx, m := newMesh(t)

	m.Configure(Layout{
		{Type: gpu.Float, Count: 3},
		{Type: gpu.UnsignedByte, Count: 4},
		{Type: gpu.Float, Count: 2},
	})

	assert.Equal(t, []uint32{0, 1, 2}, ctx.AttributeIndices(m.VertexArray()))
	want := []gputest.Attrib{
		{Enabled: true, Buffer: m.Buffer(), Size: 3, Type: gpu.Float, Stride: 24, Offset: 0},
		{Enabled: true, Buffer: m.Buffer(), Size: 4, Type: gpu.UnsignedByte, Stride: 24, Offset: 12},
		{Enabled: true, Buffer: m.Buffer(), Size: 2, Type: gpu.Float, Stride: 24, Offset: 16},
	}
	for i, w := range want {
		got, ok := ctx.Attribute(m.VertexArray(), uint32(i))
		require.True(t, ok)
		assert.Equal(t, w, got, "attribute %d", i)
	}
	assert.Equal(t, int32(24), m.Stride())

	assert.False(t, ctx.BoundBuffer.Valid(), "buffer binding must not leak")
	assert.False(t, ctx.BoundVertexArray.Valid(), "vertex array binding must not leak")
	assert.Empty(t, ctx.Errors)
}

func TestConfigureEmptyLayout(t *testing.T) {
	ctx, m := newMesh(t)
	ctx.ResetCalls()

	m.Configure(nil)
	m.Configure(Layout{})

	assert.Empty(t, ctx.Calls)
	assert.Zero(t, m.Stride())
}

func TestConfigureAgain(t *testing.T) {
	ctx, m := newMesh(t)
	m.Configure(Layout{{Type: gpu.Float, Count: 2}})
	m.Configure(Layout{{Type: gpu.Float, Count: 3}, {Type: gpu.Float, Count: 3}})

	got, ok := ctx.Attribute(m.VertexArray(), 0)
	require.True(t, ok)
	assert.Equal(t, int32(3), got.Size)
	assert.Equal(t, int32(24), got.Stride)
	assert.Equal(t, int32(24), m.Stride())
	assert.Empty(t, ctx.Errors)
}

func TestEndToEnd(t *testing.T) {
	ctx, m := newMesh(t)

	layout := Layout{{Type: gpu.Float, Count: 2}}
	assert.Equal(t, int32(8), layout.Stride())
	assert.Equal(t, []int32{0}, layout.Offsets())

	vertices := []float32{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}
	m.Configure(layout)
	m.UpdateVertexBuffer(Float32Bytes(vertices))
	m.SetCount(6)

	ctx.ResetCalls()
	m.Start()
	m.Render()
	m.Stop()

	require.Len(t, ctx.Draws, 1)
	assert.Equal(t, gputest.Draw{
		Mode:        gpu.Triangles,
		First:       0,
		Count:       6,
		VertexArray: m.VertexArray(),
	}, ctx.Draws[0])
	assert.Equal(t, []string{"BindVertexArray", "DrawArrays", "BindVertexArray"}, ctx.CallNames())
	assert.False(t, ctx.BoundVertexArray.Valid())

	data, _ := ctx.BufferContents(m.Buffer())
	assert.Len(t, data, 48)
	assert.Empty(t, ctx.Errors)
}

func TestDrawMode(t *testing.T) {
	ctx, m := newMesh(t)
	m.SetDrawMode(gpu.LineStrip)
	m.SetCount(4)
	m.Start()
	m.Render()
	m.Stop()

	require.Len(t, ctx.Draws, 1)
	assert.Equal(t, gpu.LineStrip, ctx.Draws[0].Mode)
	assert.Equal(t, int32(4), ctx.Draws[0].Count)
}

func TestUseAfterDelete(t *testing.T) {
	ctx, m := newMesh(t)
	m.Configure(Layout{{Type: gpu.Float, Count: 2}})
	m.SetCount(3)

	m.Delete()
	assert.True(t, m.Deleted())
	assert.Zero(t, ctx.LiveObjects())
	assert.Equal(t, 1, ctx.CallCount("DeleteBuffer"))
	assert.Equal(t, 1, ctx.CallCount("DeleteVertexArray"))

	ctx.ResetCalls()
	m.UpdateVertexBuffer([]byte{1, 2, 3, 4})
	m.Configure(Layout{{Type: gpu.Float, Count: 2}})
	m.Start()
	m.Render()
	m.Stop()
	m.Delete()

	assert.Empty(t, ctx.Calls)
	assert.Empty(t, ctx.Draws)
	assert.Empty(t, ctx.Errors)
}

func TestFloat32Bytes(t *testing.T) {
	assert.Nil(t, Float32Bytes(nil))
	b := Float32Bytes([]float32{0, 1, 2})
	assert.Len(t, b, 12)
	assert.Equal(t, []byte{0, 0, 0, 0}, b[:4])
}
