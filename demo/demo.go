// Package demo holds the data that drives the sandbox scenes: shader
// sources, vertex data, layouts and per-frame uniform animation.
package demo

import (
	"fmt"
	"sort"

	"github.com/adinfinit/g"
	m "github.com/go-gl/mathgl/mgl32"

	"github.com/adinfinit/meshlab/gpu"
	"github.com/adinfinit/meshlab/mesh"
	"github.com/adinfinit/meshlab/scene"
)

// Demo is one selectable scene.
type Demo struct {
	Name        string
	Description string
	// Config returns a fresh scene configuration.
	Config func() scene.Config
	// Animate, when set, is called before every frame with the time in seconds.
	Animate func(s *scene.Scene, now float64) error
}

var demos = map[string]Demo{}

func register(demo Demo) {
	if _, exists := demos[demo.Name]; exists {
		panic("demo " + demo.Name + " registered twice")
	}
	demos[demo.Name] = demo
}

// ByName returns the named demo.
func ByName(name string) (Demo, error) {
	demo, ok := demos[name]
	if !ok {
		return Demo{}, fmt.Errorf("unknown demo %q, available: %v", name, Names())
	}
	return demo, nil
}

// Names lists the registered demos alphabetically.
func Names() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Background is the clear color shared by the demos.
var Background = m.Vec4{0x26 / 255.0, 0x42 / 255.0, 0x6b / 255.0, 1.0}

func init() {
	register(Demo{
		Name:        "triangle",
		Description: "single attribute passthrough triangle",
		Config: func() scene.Config {
			return scene.Config{
				VertexShader:   triangleVertexShader,
				FragmentShader: triangleFragmentShader,
				Layout:         mesh.Layout{mesh.Float("VertexPosition", 2)},
				Vertices: mesh.Float32Bytes([]float32{
					+0.0, +0.5,
					-0.5, -0.5,
					+0.5, -0.5,
				}),
				ClearColor: Background,
				Uniforms: map[string]any{
					"Color": m.Vec4{1, 0.6, 0.2, 1},
				},
			}
		},
	})

	register(Demo{
		Name:        "quad",
		Description: "interleaved position and color, pulsing over time",
		Config: func() scene.Config {
			return scene.Config{
				VertexShader:   quadVertexShader,
				FragmentShader: quadFragmentShader,
				Layout: mesh.Layout{
					mesh.Float("VertexPosition", 2),
					mesh.Float("VertexColor", 3),
				},
				Vertices: mesh.Float32Bytes([]float32{
					// positions   // colors
					-0.5, +0.5, 1.0, 0.0, 0.0,
					+0.5, -0.5, 0.0, 1.0, 0.0,
					-0.5, -0.5, 0.0, 0.0, 1.0,

					-0.5, +0.5, 1.0, 0.0, 0.0,
					+0.5, -0.5, 0.0, 1.0, 0.0,
					+0.5, +0.5, 0.0, 1.0, 1.0,
				}),
				ClearColor: Background,
				Uniforms: map[string]any{
					"Time": float32(0),
				},
			}
		},
		Animate: func(s *scene.Scene, now float64) error {
			return s.SetUniform("Time", float32(now))
		},
	})

	register(Demo{
		Name:        "lathe",
		Description: "lathe-turned fish lit by an orbiting camera",
		Config: func() scene.Config {
			fish := Lathe(12, 12, true, Fish)
			camera := NewCamera()
			camera.Update(1)
			return scene.Config{
				VertexShader:   latheVertexShader,
				FragmentShader: latheFragmentShader,
				Layout: mesh.Layout{
					mesh.Float("VertexPosition", 3),
					mesh.Float("VertexNormal", 3),
				},
				Vertices:     mesh.Float32Bytes(fish.TriangleList()),
				ClearColor:   Background,
				Capabilities: []gpu.Capability{gpu.DepthTest},
				Uniforms: map[string]any{
					"ProjectionMatrix":     camera.Projection,
					"CameraMatrix":         camera.Camera,
					"DiffuseLightPosition": g.V3(4, 4, 4),
				},
			}
		},
		Animate: animateLathe,
	})
}

func animateLathe(s *scene.Scene, now float64) error {
	camera := NewCamera()
	sn, cs := g.Sincos(float32(now) * 0.3)
	camera.Eye.X = sn * 6
	camera.Eye.Z = cs * 6

	aspect := float32(1)
	if s.Viewport[1] > 0 {
		aspect = float32(s.Viewport[0]) / float32(s.Viewport[1])
	}
	camera.Update(aspect)

	if err := s.SetUniform("ProjectionMatrix", camera.Projection); err != nil {
		return err
	}
	return s.SetUniform("CameraMatrix", camera.Camera)
}

// Camera computes the view and projection matrices of the lathe demo.
type Camera struct {
	Eye, LookAt, Up g.Vec3

	FOV       float32
	Near, Far float32

	Projection g.Mat4
	Camera     g.Mat4
}

func NewCamera() *Camera {
	return &Camera{
		Eye:    g.V3(6, 2, 6),
		LookAt: g.V3(0, 0, 0),
		Up:     g.V3(0, 1, 0),
		FOV:    70,
		Near:   0.1,
		Far:    100,
	}
}

// Update recomputes the matrices for the given aspect ratio.
func (camera *Camera) Update(aspect float32) {
	camera.Projection = g.Perspective(g.DegToRad(camera.FOV), aspect, camera.Near, camera.Far)
	camera.Camera = g.LookAtV(camera.Eye, camera.LookAt, camera.Up)
}
