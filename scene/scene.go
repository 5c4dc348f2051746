// Package scene wires a program and a mesh together and renders them one
// frame at a time.
package scene

import (
	"errors"
	"fmt"
	"sort"
	"time"

	m "github.com/go-gl/mathgl/mgl32"
	"github.com/loov/hrtime"

	"github.com/adinfinit/meshlab/gpu"
	"github.com/adinfinit/meshlab/mesh"
	"github.com/adinfinit/meshlab/shader"
)

var (
	// ErrVertexData is returned when the vertex data does not fit the layout.
	ErrVertexData = errors.New("scene: vertex data does not match layout")
	// ErrLocationMismatch is returned when a named attribute is not placed
	// by the program at its position in the layout.
	ErrLocationMismatch = errors.New("scene: attribute location does not match layout position")
)

// Config describes everything a scene renders.
type Config struct {
	VertexShader   string
	FragmentShader string

	Layout   mesh.Layout
	Vertices []byte
	// Count is the number of vertices to draw; 0 derives it from
	// len(Vertices) / Layout.Stride().
	Count    int32
	DrawMode gpu.DrawMode

	ClearColor m.Vec4
	// Capabilities are enabled around the draw call and disabled after it.
	Capabilities []gpu.Capability
	// Uniforms are uploaded every frame. Every name must be declared by the
	// program.
	Uniforms map[string]any
}

type uniform struct {
	name  string
	value any
}

// Scene renders one mesh with one program.
type Scene struct {
	ctx     gpu.Context
	surface gpu.Surface

	program *shader.Program
	mesh    *mesh.Mesh

	clearColor   m.Vec4
	capabilities []gpu.Capability
	uniforms     []uniform

	Viewport  [2]int
	Frames    int
	lastFrame time.Duration
	closed    bool
}

// New builds the program and mesh described by config. Nothing stays
// allocated when it fails.
func New(ctx gpu.Context, surface gpu.Surface, config Config) (*Scene, error) {
	if len(config.Layout) == 0 {
		return nil, fmt.Errorf("empty layout: %w", ErrVertexData)
	}

	stride := config.Layout.Stride()
	if stride <= 0 {
		return nil, fmt.Errorf("layout has zero stride: %w", ErrVertexData)
	}
	count := config.Count
	if count == 0 {
		if len(config.Vertices)%int(stride) != 0 {
			return nil, fmt.Errorf("%d bytes with stride %d: %w", len(config.Vertices), stride, ErrVertexData)
		}
		count = int32(len(config.Vertices) / int(stride))
	} else if int(count)*int(stride) > len(config.Vertices) {
		return nil, fmt.Errorf("%d vertices need %d bytes, have %d: %w",
			count, int(count)*int(stride), len(config.Vertices), ErrVertexData)
	}

	program, err := shader.Build(ctx, config.VertexShader, config.FragmentShader)
	if err != nil {
		return nil, err
	}

	if err := checkLocations(program, config.Layout); err != nil {
		program.Delete()
		return nil, err
	}

	uniforms, err := resolveUniforms(program, config.Uniforms)
	if err != nil {
		program.Delete()
		return nil, err
	}

	geometry, err := mesh.New(ctx)
	if err != nil {
		program.Delete()
		return nil, err
	}
	geometry.Configure(config.Layout)
	geometry.UpdateVertexBuffer(config.Vertices)
	geometry.SetCount(count)
	if config.DrawMode != 0 {
		geometry.SetDrawMode(config.DrawMode)
	}

	return &Scene{
		ctx:          ctx,
		surface:      surface,
		program:      program,
		mesh:         geometry,
		clearColor:   config.ClearColor,
		capabilities: config.Capabilities,
		uniforms:     uniforms,
	}, nil
}

// checkLocations verifies that every named attribute is placed by the
// program at its position in the layout, since Mesh.Configure assigns
// attribute indices by position.
func checkLocations(program *shader.Program, layout mesh.Layout) error {
	for i, attr := range layout {
		if attr.Name == "" {
			continue
		}
		location, err := program.AttribLocation(attr.Name)
		if err != nil {
			return err
		}
		if location != uint32(i) {
			return fmt.Errorf("%q is at location %d, layout position %d: %w",
				attr.Name, location, i, ErrLocationMismatch)
		}
	}
	return nil
}

func resolveUniforms(program *shader.Program, values map[string]any) ([]uniform, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	uniforms := make([]uniform, 0, len(names))
	for _, name := range names {
		if _, err := program.UniformLocation(name); err != nil {
			return nil, err
		}
		if err := shader.CheckUniform(values[name]); err != nil {
			return nil, fmt.Errorf("uniform %q: %w", name, err)
		}
		uniforms = append(uniforms, uniform{name: name, value: values[name]})
	}
	return uniforms, nil
}

// SetUniform changes the value uploaded for name on the following frames.
func (scene *Scene) SetUniform(name string, value any) error {
	if err := shader.CheckUniform(value); err != nil {
		return fmt.Errorf("uniform %q: %w", name, err)
	}
	for i := range scene.uniforms {
		if scene.uniforms[i].name == name {
			scene.uniforms[i].value = value
			return nil
		}
	}
	if _, err := scene.program.UniformLocation(name); err != nil {
		return err
	}
	scene.uniforms = append(scene.uniforms, uniform{name: name, value: value})
	return nil
}

// SetClearColor changes the color the surface is cleared to.
func (scene *Scene) SetClearColor(color m.Vec4) { scene.clearColor = color }

// Frame renders one frame: clear, use the program, upload uniforms and draw
// the mesh. The viewport is reissued first when the surface size changed.
func (scene *Scene) Frame() error {
	if scene.closed {
		return nil
	}
	start := hrtime.Now()

	scene.updateViewport()

	ctx := scene.ctx
	for _, capability := range scene.capabilities {
		ctx.Enable(capability)
	}
	c := scene.clearColor
	ctx.ClearColor(c[0], c[1], c[2], c[3])
	ctx.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)

	scene.program.Use()
	for _, u := range scene.uniforms {
		if err := scene.program.SetUniform(u.name, u.value); err != nil {
			return err
		}
	}

	scene.mesh.Start()
	scene.mesh.Render()
	scene.mesh.Stop()

	for _, capability := range scene.capabilities {
		ctx.Disable(capability)
	}

	scene.Frames++
	scene.lastFrame = hrtime.Now() - start
	return nil
}

func (scene *Scene) updateViewport() {
	if scene.surface == nil {
		return
	}
	width, height := scene.surface.FramebufferSize()
	size := [2]int{width, height}
	if size == scene.Viewport {
		return
	}
	scene.ctx.Viewport(0, 0, int32(width), int32(height))
	scene.Viewport = size
	gpu.Logger().Debug("viewport changed", "width", width, "height", height)
}

// LastFrame returns how long the previous Frame took on the CPU.
func (scene *Scene) LastFrame() time.Duration { return scene.lastFrame }

func (scene *Scene) Program() *shader.Program { return scene.program }
func (scene *Scene) Mesh() *mesh.Mesh         { return scene.mesh }

// Close releases the mesh and the program. Further calls do nothing.
func (scene *Scene) Close() {
	if scene.closed {
		return
	}
	scene.mesh.Delete()
	scene.program.Delete()
	scene.closed = true
}
