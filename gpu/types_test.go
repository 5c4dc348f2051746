package gpu

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentByteSize(t *testing.T) {
	want := map[ComponentType]int32{
		Byte:          1,
		UnsignedByte:  1,
		Short:         2,
		UnsignedShort: 2,
		HalfFloat:     2,
		Int:           4,
		UnsignedInt:   4,
		Float:         4,
	}

	seen := map[ComponentType]bool{}
	for _, typ := range SupportedComponentTypes {
		require.False(t, seen[typ], "%v listed twice", typ)
		seen[typ] = true

		size, ok := want[typ]
		require.True(t, ok, "unexpected supported type %v", typ)
		assert.Equal(t, size, ComponentByteSize(typ), "%v", typ)
	}
	assert.Len(t, seen, len(want))
}

func TestComponentTypeMatchesGL(t *testing.T) {
	assert.Equal(t, uint32(0x1406), uint32(Float))
	assert.Equal(t, uint32(0x140B), uint32(HalfFloat))
	assert.Equal(t, "FLOAT", Float.String())
	assert.Equal(t, "ComponentType(0x1)", ComponentType(1).String())
}

func TestHandleValid(t *testing.T) {
	assert.False(t, Buffer{}.Valid())
	assert.True(t, Buffer{V: 3}.Valid())
	assert.False(t, VertexArray{}.Valid())
	assert.False(t, Shader{}.Valid())
	assert.False(t, Program{}.Valid())
	assert.True(t, Uniform{}.Valid())
	assert.False(t, NoUniform.Valid())
}

func TestDrawModeString(t *testing.T) {
	assert.Equal(t, "TRIANGLES", Triangles.String())
	assert.Equal(t, "LINE_STRIP", LineStrip.String())
	assert.Equal(t, "vertex", VertexStage.String())
	assert.Equal(t, "fragment", FragmentStage.String())
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		assert.False(t, l.Enabled(context.Background(), level), "level %v", level)
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Debug("buffer created", "id", 1)
	assert.Contains(t, buf.String(), "buffer created")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
