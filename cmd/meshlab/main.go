package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/loov/hrtime"

	"github.com/adinfinit/meshlab/demo"
	"github.com/adinfinit/meshlab/gpu"
	"github.com/adinfinit/meshlab/gpu/glgpu"
	"github.com/adinfinit/meshlab/registry"
	"github.com/adinfinit/meshlab/scene"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "profile")
	debug      = flag.Bool("debug", false, "log gpu resource lifecycle")

	windowWidth  = flag.Int("width", 800, "window width")
	windowHeight = flag.Int("height", 600, "window height")

	demoName = flag.String("demo", "triangle", "demo to run: "+strings.Join(demo.Names(), ", "))
)

func init() { runtime.LockOSThread() }

func main() {
	flag.Parse()

	if *debug {
		gpu.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatalf("unable to create cpu-profile %q: %v", *cpuprofile, err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("unable to start cpu-profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	selected, err := demo.ByName(*demoName)
	if err != nil {
		log.Fatalln(err)
	}

	window, err := glgpu.OpenWindow(glgpu.WindowConfig{
		Title:     "meshlab: " + selected.Name,
		Width:     *windowWidth,
		Height:    *windowHeight,
		Resizable: true,
		Samples:   2,
	})
	if err != nil {
		log.Fatalln(err)
	}
	defer window.Terminate()

	ctx, err := glgpu.New()
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("OpenGL version", ctx.Version)

	reg := registry.New()
	reg.Set(registry.ContextKey, ctx)
	reg.Set(registry.SurfaceKey, window)

	run(reg, selected, window)
}

// run builds the demo scene from the context and surface stored in reg and
// renders until the window closes. A scene that fails to build is reported
// once; the window keeps being cleared so it stays responsive.
func run(reg *registry.Registry, selected demo.Demo, window *glgpu.Window) {
	ctx, ok := registry.Lookup[gpu.Context](reg, registry.ContextKey)
	if !ok {
		log.Fatalln("no graphics context registered")
	}
	surface, ok := registry.Lookup[gpu.Surface](reg, registry.SurfaceKey)
	if !ok {
		log.Fatalln("no surface registered")
	}

	config := selected.Config()
	s, err := scene.New(ctx, surface, config)
	if err != nil {
		log.Println("unable to build scene:", err)
	} else {
		defer s.Close()
	}

	for !window.ShouldClose() {
		if s == nil {
			width, height := surface.FramebufferSize()
			ctx.Viewport(0, 0, int32(width), int32(height))
			c := config.ClearColor
			ctx.ClearColor(c[0], c[1], c[2], c[3])
			ctx.Clear(gpu.ColorBufferBit)
			window.NextFrame()
			continue
		}

		animateStart := hrtime.Now()
		if selected.Animate != nil {
			if err := selected.Animate(s, window.Time()); err != nil {
				log.Println("animate:", err)
			}
		}
		animateStop := hrtime.Now()

		if err := s.Frame(); err != nil {
			log.Println("frame:", err)
		}

		window.SetTitle(fmt.Sprintf("%s\tAnimate:\t%v\tRender:\t%v",
			selected.Name, animateStop-animateStart, s.LastFrame()))

		window.NextFrame()
	}
}
