// Package shader compiles shader stages and links them into programs.
package shader

import (
	"fmt"

	"github.com/adinfinit/meshlab/gpu"
)

// Stage is a successfully compiled shader object waiting to be linked.
type Stage struct {
	ctx     gpu.Context
	handle  gpu.Shader
	kind    gpu.ShaderStage
	deleted bool
}

// Handle returns the native shader object.
func (stage *Stage) Handle() gpu.Shader { return stage.handle }

// Kind returns the pipeline stage the shader was compiled for.
func (stage *Stage) Kind() gpu.ShaderStage { return stage.kind }

// Delete releases the shader object. Programs already linked from it keep
// working. Calling Delete more than once does nothing.
func (stage *Stage) Delete() {
	if stage.deleted {
		return
	}
	stage.ctx.DeleteShader(stage.handle)
	stage.deleted = true
}

// Compile compiles source for the given stage. On failure the shader object
// is released and the compiler log is returned in a *CompileError.
func Compile(ctx gpu.Context, kind gpu.ShaderStage, source string) (*Stage, error) {
	handle, err := ctx.CreateShader(kind)
	if err != nil {
		return nil, fmt.Errorf("create %v shader: %w", kind, err)
	}

	ctx.ShaderSource(handle, source)
	ctx.CompileShader(handle)

	if !ctx.ShaderCompiled(handle) {
		log := ctx.ShaderInfoLog(handle)
		ctx.DeleteShader(handle)

		err := &CompileError{Stage: kind, Log: log}
		gpu.Logger().Error("shader compile failed", "stage", kind, "log", log)
		return nil, err
	}

	return &Stage{ctx: ctx, handle: handle, kind: kind}, nil
}

// Link links a vertex and a fragment stage into a program and makes it the
// current program. Stages are detached afterwards but not deleted.
//
// Nil or deleted stages, or stages compiled for the wrong slot, are rejected
// with ErrInvalidStage before anything is allocated.
func Link(ctx gpu.Context, vertex, fragment *Stage) (*Program, error) {
	if err := checkStage(vertex, gpu.VertexStage); err != nil {
		return nil, err
	}
	if err := checkStage(fragment, gpu.FragmentStage); err != nil {
		return nil, err
	}

	handle, err := ctx.CreateProgram()
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	ctx.AttachShader(handle, vertex.handle)
	ctx.AttachShader(handle, fragment.handle)
	ctx.LinkProgram(handle)
	ctx.DetachShader(handle, vertex.handle)
	ctx.DetachShader(handle, fragment.handle)

	if !ctx.ProgramLinked(handle) {
		log := ctx.ProgramInfoLog(handle)
		ctx.DeleteProgram(handle)

		gpu.Logger().Error("program link failed", "log", log)
		return nil, &LinkError{Log: log}
	}

	ctx.UseProgram(handle)
	gpu.Logger().Debug("program linked", "program", handle.V)

	return newProgram(ctx, handle), nil
}

func checkStage(stage *Stage, want gpu.ShaderStage) error {
	switch {
	case stage == nil:
		return fmt.Errorf("%v stage is nil: %w", want, ErrInvalidStage)
	case stage.deleted:
		return fmt.Errorf("%v stage was deleted: %w", want, ErrInvalidStage)
	case stage.kind != want:
		return fmt.Errorf("expected %v stage, got %v: %w", want, stage.kind, ErrInvalidStage)
	}
	return nil
}

// Build compiles both sources and links them. The intermediate shader
// objects are always released; a compile failure stops before linking.
func Build(ctx gpu.Context, vertexSource, fragmentSource string) (*Program, error) {
	vertex, err := Compile(ctx, gpu.VertexStage, vertexSource)
	if err != nil {
		return nil, err
	}
	defer vertex.Delete()

	fragment, err := Compile(ctx, gpu.FragmentStage, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer fragment.Delete()

	return Link(ctx, vertex, fragment)
}
