package gles

import (
	"fmt"

	"golang.org/x/mobile/exp/gl/glutil"
	"golang.org/x/mobile/gl"
)

// NewProgram compiles and links a vertex and fragment shader pair.
func NewProgram(glctx gl.Context, vertexSrc, fragmentSrc string) (gl.Program, error) {
	p, err := glutil.CreateProgram(glctx, vertexSrc, fragmentSrc)
	if err != nil {
		return gl.Program{}, fmt.Errorf("create program: %w", err)
	}
	return p, nil
}
