package gpu

import "fmt"

type (
	Buffer      struct{ V uint32 }
	VertexArray struct{ V uint32 }
	Shader      struct{ V uint32 }
	Program     struct{ V uint32 }
	Uniform     struct{ V int32 }
)

// NoUniform is the location reported for names the program does not declare.
var NoUniform = Uniform{V: -1}

func (b Buffer) Valid() bool      { return b.V != 0 }
func (a VertexArray) Valid() bool { return a.V != 0 }
func (s Shader) Valid() bool      { return s.V != 0 }
func (p Program) Valid() bool     { return p.V != 0 }
func (u Uniform) Valid() bool     { return u.V != -1 }

// ComponentType is the scalar type of a vertex attribute component.
// Values match the GL enums so drivers can pass them through.
type ComponentType uint32

const (
	Byte          ComponentType = 0x1400
	UnsignedByte  ComponentType = 0x1401
	Short         ComponentType = 0x1402
	UnsignedShort ComponentType = 0x1403
	Int           ComponentType = 0x1404
	UnsignedInt   ComponentType = 0x1405
	Float         ComponentType = 0x1406
	HalfFloat     ComponentType = 0x140B
)

// SupportedComponentTypes lists every ComponentType exactly once.
var SupportedComponentTypes = []ComponentType{
	Byte, UnsignedByte,
	Short, UnsignedShort, HalfFloat,
	Int, UnsignedInt, Float,
}

// ComponentByteSize returns the width in bytes of a single component of typ.
// It is the only place stride and offset arithmetic gets sizes from.
func ComponentByteSize(typ ComponentType) int32 {
	switch typ {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort, HalfFloat:
		return 2
	}
	return 4
}

func (typ ComponentType) String() string {
	switch typ {
	case Byte:
		return "BYTE"
	case UnsignedByte:
		return "UNSIGNED_BYTE"
	case Short:
		return "SHORT"
	case UnsignedShort:
		return "UNSIGNED_SHORT"
	case Int:
		return "INT"
	case UnsignedInt:
		return "UNSIGNED_INT"
	case Float:
		return "FLOAT"
	case HalfFloat:
		return "HALF_FLOAT"
	}
	return fmt.Sprintf("ComponentType(0x%x)", uint32(typ))
}

// DrawMode is the primitive topology of a draw call.
type DrawMode uint32

const (
	Points        DrawMode = 0x0
	Lines         DrawMode = 0x1
	LineLoop      DrawMode = 0x2
	LineStrip     DrawMode = 0x3
	Triangles     DrawMode = 0x4
	TriangleStrip DrawMode = 0x5
	TriangleFan   DrawMode = 0x6
)

func (mode DrawMode) String() string {
	switch mode {
	case Points:
		return "POINTS"
	case Lines:
		return "LINES"
	case LineLoop:
		return "LINE_LOOP"
	case LineStrip:
		return "LINE_STRIP"
	case Triangles:
		return "TRIANGLES"
	case TriangleStrip:
		return "TRIANGLE_STRIP"
	case TriangleFan:
		return "TRIANGLE_FAN"
	}
	return fmt.Sprintf("DrawMode(0x%x)", uint32(mode))
}

// ShaderStage selects which pipeline stage a shader object compiles for.
type ShaderStage uint32

const (
	VertexStage   ShaderStage = 0x8B31
	FragmentStage ShaderStage = 0x8B30
)

func (stage ShaderStage) String() string {
	switch stage {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(0x%x)", uint32(stage))
}

type BufferTarget uint32

const (
	ArrayBuffer BufferTarget = 0x8892
)

// BufferUsage is the hint passed along with buffer uploads.
type BufferUsage uint32

const (
	StaticDraw  BufferUsage = 0x88E4
	DynamicDraw BufferUsage = 0x88E8
	StreamDraw  BufferUsage = 0x88E0
)

type ClearMask uint32

const (
	ColorBufferBit ClearMask = 0x4000
	DepthBufferBit ClearMask = 0x0100
)

// Capability is a fixed-function feature toggled with Enable/Disable.
type Capability uint32

const (
	Blend     Capability = 0x0BE2
	CullFace  Capability = 0x0B44
	DepthTest Capability = 0x0B71
)
