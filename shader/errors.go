package shader

import (
	"errors"
	"fmt"

	"github.com/adinfinit/meshlab/gpu"
)

// ErrInvalidStage is returned by Link when a stage is missing, deleted or
// compiled for the wrong pipeline stage.
var ErrInvalidStage = errors.New("shader: invalid stage")

// CompileError carries the compiler log of a stage that failed to compile.
type CompileError struct {
	Stage gpu.ShaderStage
	Log   string
}

func (err *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %v shader: %v", err.Stage, err.Log)
}

// LinkError carries the linker log of a program that failed to link.
type LinkError struct {
	Log string
}

func (err *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %v", err.Log)
}

// MissingLocationError reports an attribute or uniform name that the linked
// program does not declare (or that the driver optimized away).
type MissingLocationError struct {
	Kind string // "attribute" or "uniform"
	Name string
}

func (err *MissingLocationError) Error() string {
	return fmt.Sprintf("%s %q not found in program", err.Kind, err.Name)
}
