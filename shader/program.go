package shader

import (
	"fmt"
	"unsafe"

	"github.com/adinfinit/g"
	m "github.com/go-gl/mathgl/mgl32"

	"github.com/adinfinit/meshlab/gpu"
)

// Program is a linked vertex + fragment program.
//
// Attribute and uniform locations are looked up once per name and cached
// for the lifetime of the program.
type Program struct {
	ctx     gpu.Context
	handle  gpu.Program
	deleted bool

	attribCache  map[string]uint32
	uniformCache map[string]gpu.Uniform
}

func newProgram(ctx gpu.Context, handle gpu.Program) *Program {
	return &Program{
		ctx:          ctx,
		handle:       handle,
		attribCache:  map[string]uint32{},
		uniformCache: map[string]gpu.Uniform{},
	}
}

// Handle returns the native program object.
func (program *Program) Handle() gpu.Program { return program.handle }

// Deleted reports whether Delete has been called.
func (program *Program) Deleted() bool { return program.deleted }

// Use makes the program current.
func (program *Program) Use() {
	if program.deleted {
		return
	}
	program.ctx.UseProgram(program.handle)
}

// Delete releases the program. Further calls do nothing.
func (program *Program) Delete() {
	if program.deleted {
		return
	}
	program.ctx.DeleteProgram(program.handle)
	program.deleted = true
}

// AttribLocation returns the input index of the named vertex attribute.
func (program *Program) AttribLocation(name string) (uint32, error) {
	if location, ok := program.attribCache[name]; ok {
		return location, nil
	}
	location := program.ctx.AttribLocation(program.handle, name)
	if location < 0 {
		return 0, &MissingLocationError{Kind: "attribute", Name: name}
	}
	program.attribCache[name] = uint32(location)
	return uint32(location), nil
}

// UniformLocation returns the location of the named uniform.
func (program *Program) UniformLocation(name string) (gpu.Uniform, error) {
	if location, ok := program.uniformCache[name]; ok {
		return location, nil
	}
	location := program.ctx.UniformLocation(program.handle, name)
	if !location.Valid() {
		return location, &MissingLocationError{Kind: "uniform", Name: name}
	}
	program.uniformCache[name] = location
	return location, nil
}

// SetUniform uploads value to the named uniform. The program must be current.
//
// Supported values are float32, int32, int, mgl32.Vec2, mgl32.Vec3,
// mgl32.Vec4, mgl32.Mat4, g.Vec3 and g.Mat4.
func (program *Program) SetUniform(name string, value any) error {
	if program.deleted {
		return nil
	}
	location, err := program.UniformLocation(name)
	if err != nil {
		return err
	}

	ctx := program.ctx
	switch v := value.(type) {
	case float32:
		ctx.Uniform1f(location, v)
	case int32:
		ctx.Uniform1i(location, v)
	case int:
		ctx.Uniform1i(location, int32(v))
	case m.Vec2:
		ctx.Uniform2f(location, v[0], v[1])
	case m.Vec3:
		ctx.Uniform3f(location, v[0], v[1], v[2])
	case m.Vec4:
		ctx.Uniform4f(location, v[0], v[1], v[2], v[3])
	case m.Mat4:
		mat := [16]float32(v)
		ctx.UniformMatrix4fv(location, &mat)
	case g.Vec3:
		ctx.Uniform3f(location, v.X, v.Y, v.Z)
	case g.Mat4:
		ctx.UniformMatrix4fv(location, (*[16]float32)(unsafe.Pointer(v.Ptr())))
	default:
		return fmt.Errorf("uniform %q: unsupported value type %T", name, value)
	}
	return nil
}

// CheckUniform verifies that value is something SetUniform can upload.
func CheckUniform(value any) error {
	switch value.(type) {
	case float32, int32, int, m.Vec2, m.Vec3, m.Vec4, m.Mat4, g.Vec3, g.Mat4:
		return nil
	}
	return fmt.Errorf("unsupported uniform value type %T", value)
}
