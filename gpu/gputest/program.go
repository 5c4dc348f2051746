package gputest

import (
	"fmt"
	"strings"

	"github.com/adinfinit/meshlab/gpu"
)

type shaderObject struct {
	stage    gpu.ShaderStage
	source   string
	compiled bool
	log      string
	unit     unit
}

type programObject struct {
	attached []*shaderObject
	linked   bool
	log      string
	attribs  map[string]int32
	uniforms map[string]int32
	values   map[int32]any
}

func (ctx *Context) CreateShader(stage gpu.ShaderStage) (gpu.Shader, error) {
	ctx.record("CreateShader", stage)
	id, err := ctx.allocate()
	if err != nil {
		return gpu.Shader{}, err
	}
	ctx.shaders[id] = &shaderObject{stage: stage}
	return gpu.Shader{V: id}, nil
}

func (ctx *Context) shader(method string, s gpu.Shader) *shaderObject {
	sh, ok := ctx.shaders[s.V]
	if !ok {
		ctx.misuse("%s: unknown shader %d", method, s.V)
	}
	return sh
}

func (ctx *Context) ShaderSource(s gpu.Shader, source string) {
	ctx.record("ShaderSource", s)
	if sh := ctx.shader("ShaderSource", s); sh != nil {
		sh.source = source
	}
}

func (ctx *Context) CompileShader(s gpu.Shader) {
	ctx.record("CompileShader", s)
	sh := ctx.shader("CompileShader", s)
	if sh == nil {
		return
	}
	u, err := parseGLSL(sh.source)
	if err != nil {
		sh.compiled = false
		sh.log = err.Error()
		return
	}
	sh.compiled = true
	sh.log = ""
	sh.unit = u
}

func (ctx *Context) ShaderCompiled(s gpu.Shader) bool {
	ctx.record("ShaderCompiled", s)
	sh := ctx.shader("ShaderCompiled", s)
	return sh != nil && sh.compiled
}

func (ctx *Context) ShaderInfoLog(s gpu.Shader) string {
	ctx.record("ShaderInfoLog", s)
	if sh := ctx.shader("ShaderInfoLog", s); sh != nil {
		return sh.log
	}
	return ""
}

func (ctx *Context) DeleteShader(s gpu.Shader) {
	ctx.record("DeleteShader", s)
	if ctx.shader("DeleteShader", s) != nil {
		delete(ctx.shaders, s.V)
	}
}

func (ctx *Context) CreateProgram() (gpu.Program, error) {
	ctx.record("CreateProgram")
	id, err := ctx.allocate()
	if err != nil {
		return gpu.Program{}, err
	}
	ctx.programs[id] = &programObject{}
	return gpu.Program{V: id}, nil
}

func (ctx *Context) program(method string, p gpu.Program) *programObject {
	prog, ok := ctx.programs[p.V]
	if !ok {
		ctx.misuse("%s: unknown program %d", method, p.V)
	}
	return prog
}

func (ctx *Context) AttachShader(p gpu.Program, s gpu.Shader) {
	ctx.record("AttachShader", p, s)
	prog, sh := ctx.program("AttachShader", p), ctx.shader("AttachShader", s)
	if prog == nil || sh == nil {
		return
	}
	prog.attached = append(prog.attached, sh)
}

func (ctx *Context) DetachShader(p gpu.Program, s gpu.Shader) {
	ctx.record("DetachShader", p, s)
	prog, sh := ctx.program("DetachShader", p), ctx.shader("DetachShader", s)
	if prog == nil || sh == nil {
		return
	}
	for i, attached := range prog.attached {
		if attached == sh {
			prog.attached = append(prog.attached[:i], prog.attached[i+1:]...)
			return
		}
	}
	ctx.misuse("DetachShader: shader %d not attached to program %d", s.V, p.V)
}

func (ctx *Context) LinkProgram(p gpu.Program) {
	ctx.record("LinkProgram", p)
	prog := ctx.program("LinkProgram", p)
	if prog == nil {
		return
	}
	if err := prog.link(); err != nil {
		prog.linked = false
		prog.log = err.Error()
		return
	}
	prog.linked = true
	prog.log = ""
}

func (prog *programObject) link() error {
	var vertex, fragment *shaderObject
	for _, sh := range prog.attached {
		if !sh.compiled {
			return fmt.Errorf("error: attached %v shader is not compiled", sh.stage)
		}
		switch sh.stage {
		case gpu.VertexStage:
			if vertex != nil {
				return fmt.Errorf("error: multiple vertex shaders attached")
			}
			vertex = sh
		case gpu.FragmentStage:
			if fragment != nil {
				return fmt.Errorf("error: multiple fragment shaders attached")
			}
			fragment = sh
		}
	}
	if vertex == nil {
		return fmt.Errorf("error: no vertex shader attached")
	}
	if fragment == nil {
		return fmt.Errorf("error: no fragment shader attached")
	}

	outputs := map[string]string{}
	for _, v := range vertex.unit.Outputs {
		outputs[v.Name] = v.Type
	}
	var problems []string
	for _, v := range fragment.unit.Inputs {
		typ, ok := outputs[v.Name]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("error: fragment input %q is not written by the vertex shader", v.Name))
		case typ != v.Type:
			problems = append(problems, fmt.Sprintf("error: %q declared as %s in vertex shader and %s in fragment shader", v.Name, typ, v.Type))
		}
	}

	uniforms := map[string]int32{}
	uniformTypes := map[string]string{}
	for _, sh := range []*shaderObject{vertex, fragment} {
		for _, v := range sh.unit.Uniforms {
			if typ, ok := uniformTypes[v.Name]; ok {
				if typ != v.Type {
					problems = append(problems, fmt.Sprintf("error: uniform %q declared with types %s and %s", v.Name, typ, v.Type))
				}
				continue
			}
			uniformTypes[v.Name] = v.Type
			uniforms[v.Name] = int32(len(uniforms))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "\n"))
	}

	attribs := map[string]int32{}
	used := map[int32]bool{}
	for _, v := range vertex.unit.Inputs {
		if v.Location >= 0 {
			attribs[v.Name] = int32(v.Location)
			used[int32(v.Location)] = true
		}
	}
	next := int32(0)
	for _, v := range vertex.unit.Inputs {
		if v.Location >= 0 {
			continue
		}
		for used[next] {
			next++
		}
		attribs[v.Name] = next
		used[next] = true
	}

	prog.attribs = attribs
	prog.uniforms = uniforms
	prog.values = map[int32]any{}
	return nil
}

func (ctx *Context) ProgramLinked(p gpu.Program) bool {
	ctx.record("ProgramLinked", p)
	prog := ctx.program("ProgramLinked", p)
	return prog != nil && prog.linked
}

func (ctx *Context) ProgramInfoLog(p gpu.Program) string {
	ctx.record("ProgramInfoLog", p)
	if prog := ctx.program("ProgramInfoLog", p); prog != nil {
		return prog.log
	}
	return ""
}

func (ctx *Context) DeleteProgram(p gpu.Program) {
	ctx.record("DeleteProgram", p)
	if ctx.program("DeleteProgram", p) == nil {
		return
	}
	delete(ctx.programs, p.V)
	if ctx.CurrentProgram == p {
		ctx.CurrentProgram = gpu.Program{}
	}
}

func (ctx *Context) UseProgram(p gpu.Program) {
	ctx.record("UseProgram", p)
	if p.Valid() {
		prog := ctx.program("UseProgram", p)
		if prog == nil {
			return
		}
		if !prog.linked {
			ctx.misuse("UseProgram: program %d is not linked", p.V)
			return
		}
	}
	ctx.CurrentProgram = p
}

func (ctx *Context) AttribLocation(p gpu.Program, name string) int32 {
	ctx.record("AttribLocation", p, name)
	prog := ctx.program("AttribLocation", p)
	if prog == nil || !prog.linked {
		return -1
	}
	if loc, ok := prog.attribs[name]; ok {
		return loc
	}
	return -1
}

func (ctx *Context) UniformLocation(p gpu.Program, name string) gpu.Uniform {
	ctx.record("UniformLocation", p, name)
	prog := ctx.program("UniformLocation", p)
	if prog == nil || !prog.linked {
		return gpu.NoUniform
	}
	if loc, ok := prog.uniforms[name]; ok {
		return gpu.Uniform{V: loc}
	}
	return gpu.NoUniform
}

func (ctx *Context) setUniform(method string, u gpu.Uniform, v any) {
	ctx.record(method, u, v)
	if !u.Valid() {
		// GL silently ignores location -1.
		return
	}
	prog, ok := ctx.programs[ctx.CurrentProgram.V]
	if !ok {
		ctx.misuse("%s: no program in use", method)
		return
	}
	prog.values[u.V] = v
}

func (ctx *Context) Uniform1i(u gpu.Uniform, v int32)   { ctx.setUniform("Uniform1i", u, v) }
func (ctx *Context) Uniform1f(u gpu.Uniform, v float32) { ctx.setUniform("Uniform1f", u, v) }
func (ctx *Context) Uniform2f(u gpu.Uniform, x, y float32) {
	ctx.setUniform("Uniform2f", u, [2]float32{x, y})
}
func (ctx *Context) Uniform3f(u gpu.Uniform, x, y, z float32) {
	ctx.setUniform("Uniform3f", u, [3]float32{x, y, z})
}
func (ctx *Context) Uniform4f(u gpu.Uniform, x, y, z, w float32) {
	ctx.setUniform("Uniform4f", u, [4]float32{x, y, z, w})
}
func (ctx *Context) UniformMatrix4fv(u gpu.Uniform, m *[16]float32) {
	ctx.setUniform("UniformMatrix4fv", u, *m)
}
