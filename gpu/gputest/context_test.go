package gputest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adinfinit/meshlab/gpu"
)

func TestParseGLSL(t *testing.T) {
	u, err := parseGLSL(`#version 330 core
// comment with in vec3 Ignored;
layout (location = 2) in vec2 aOffset;
in vec3 aColor; in vec2 aPos;
uniform mat4 Projection;
out vec3 fColor;
/* uniform float Hidden; */
vec3 tint(in vec3 c) { return c; }
void main() {
	fColor = tint(aColor);
	gl_Position = Projection * vec4(aPos + aOffset, 0.0, 1.0);
}`)
	require.NoError(t, err)

	require.Len(t, u.Inputs, 3)
	assert.Equal(t, variable{Qualifier: "in", Type: "vec2", Name: "aOffset", Location: 2}, u.Inputs[0])
	assert.Equal(t, "aColor", u.Inputs[1].Name)
	assert.Equal(t, "aPos", u.Inputs[2].Name)
	require.Len(t, u.Uniforms, 1)
	assert.Equal(t, "Projection", u.Uniforms[0].Name)
	require.Len(t, u.Outputs, 1)
	assert.Equal(t, "fColor", u.Outputs[0].Name)
}

func TestParseGLSLErrors(t *testing.T) {
	for _, source := range []string{
		"",
		"void main() { gl_Position = vec4(; }",
		"in vec2 position; void main() {",
		"in vec2 position;",
		"this is not glsl }",
	} {
		_, err := parseGLSL(source)
		assert.Error(t, err, "%q", source)
	}
}

func TestBindingState(t *testing.T) {
	ctx := New()
	buf, err := ctx.CreateBuffer()
	require.NoError(t, err)
	vao, err := ctx.CreateVertexArray()
	require.NoError(t, err)

	ctx.BindBuffer(gpu.ArrayBuffer, buf)
	ctx.BindVertexArray(vao)
	ctx.EnableVertexAttribArray(1)
	ctx.VertexAttribPointer(1, 3, gpu.Float, false, 12, 0)
	ctx.BufferData(gpu.ArrayBuffer, []byte{1, 2, 3}, gpu.StaticDraw)

	assert.Equal(t, buf, ctx.BoundBuffer)
	assert.Equal(t, vao, ctx.BoundVertexArray)

	attrib, ok := ctx.Attribute(vao, 1)
	require.True(t, ok)
	assert.Equal(t, Attrib{Enabled: true, Buffer: buf, Size: 3, Type: gpu.Float, Stride: 12}, attrib)

	data, ok := ctx.BufferContents(buf)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, gpu.StaticDraw, ctx.BufferUsage(buf))

	ctx.DeleteBuffer(buf)
	ctx.DeleteVertexArray(vao)
	assert.False(t, ctx.BoundBuffer.Valid())
	assert.False(t, ctx.BoundVertexArray.Valid())
	assert.Zero(t, ctx.LiveObjects())
	assert.Empty(t, ctx.Errors)
}

func TestMisuseIsRecorded(t *testing.T) {
	ctx := New()
	ctx.BufferData(gpu.ArrayBuffer, []byte{1}, gpu.StaticDraw)
	ctx.EnableVertexAttribArray(0)
	ctx.DrawArrays(gpu.Triangles, 0, 3)
	ctx.BindBuffer(gpu.ArrayBuffer, gpu.Buffer{V: 42})
	ctx.DeleteBuffer(gpu.Buffer{V: 42})
	assert.Len(t, ctx.Errors, 5)
}

func TestFailAllocations(t *testing.T) {
	ctx := New()
	ctx.FailAllocations = true
	_, err := ctx.CreateBuffer()
	assert.ErrorIs(t, err, gpu.ErrAllocation)
	_, err = ctx.CreateProgram()
	assert.ErrorIs(t, err, gpu.ErrAllocation)
	assert.Zero(t, ctx.LiveObjects())
}

func compile(t *testing.T, ctx *Context, stage gpu.ShaderStage, source string) gpu.Shader {
	t.Helper()
	sh, err := ctx.CreateShader(stage)
	require.NoError(t, err)
	ctx.ShaderSource(sh, source)
	ctx.CompileShader(sh)
	require.True(t, ctx.ShaderCompiled(sh), ctx.ShaderInfoLog(sh))
	return sh
}

func TestLinkMatchesInterfaces(t *testing.T) {
	ctx := New()
	vs := compile(t, ctx, gpu.VertexStage, `
in vec2 position;
out vec3 color;
uniform float Time;
void main() { color = vec3(Time); gl_Position = vec4(position, 0, 1); }`)
	fs := compile(t, ctx, gpu.FragmentStage, `
in vec3 color;
out vec4 result;
uniform float Time;
void main() { result = vec4(color, 1); }`)

	prog, err := ctx.CreateProgram()
	require.NoError(t, err)
	ctx.AttachShader(prog, vs)
	ctx.AttachShader(prog, fs)
	ctx.LinkProgram(prog)
	require.True(t, ctx.ProgramLinked(prog), ctx.ProgramInfoLog(prog))

	assert.Equal(t, int32(0), ctx.AttribLocation(prog, "position"))
	assert.Equal(t, int32(-1), ctx.AttribLocation(prog, "missing"))
	time := ctx.UniformLocation(prog, "Time")
	assert.True(t, time.Valid())
	assert.False(t, ctx.UniformLocation(prog, "missing").Valid())

	ctx.UseProgram(prog)
	ctx.Uniform1f(time, 2.5)
	v, ok := ctx.UniformValue(prog, "Time")
	require.True(t, ok)
	assert.Equal(t, float32(2.5), v)
	assert.Empty(t, ctx.Errors)
}

func TestLinkReportsMismatch(t *testing.T) {
	ctx := New()
	vs := compile(t, ctx, gpu.VertexStage, `in vec2 position; void main() { gl_Position = vec4(position, 0, 1); }`)
	fs := compile(t, ctx, gpu.FragmentStage, `in vec3 color; out vec4 result; void main() { result = vec4(color, 1); }`)

	prog, err := ctx.CreateProgram()
	require.NoError(t, err)
	ctx.AttachShader(prog, vs)
	ctx.AttachShader(prog, fs)
	ctx.LinkProgram(prog)
	assert.False(t, ctx.ProgramLinked(prog))
	assert.Contains(t, ctx.ProgramInfoLog(prog), `"color"`)
}
