// Package gles manages OpenGL ES buffers, vertex array objects and the
// render thread they are confined to.
package gles

import (
	"fmt"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/memory"
	"golang.org/x/mobile/gl"
)

// Context is the part of gl.Context the engine relies on. Any gl.Context
// returned by golang.org/x/mobile satisfies it.
type Context interface {
	CreateBuffer() gl.Buffer
	DeleteBuffer(v gl.Buffer)
	BindBuffer(target gl.Enum, b gl.Buffer)
	BufferData(target gl.Enum, src []byte, usage gl.Enum)
	BufferSubData(target gl.Enum, offset int, data []byte)

	CreateVertexArray() gl.VertexArray
	DeleteVertexArray(v gl.VertexArray)
	BindVertexArray(rb gl.VertexArray)

	VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int)
	EnableVertexAttribArray(a gl.Attrib)
	DisableVertexAttribArray(a gl.Attrib)
	GetAttribLocation(p gl.Program, name string) gl.Attrib
	GetInteger(pname gl.Enum) int

	DrawArrays(mode gl.Enum, first, count int)
	DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int)
}

var _ Context = gl.Context(nil)

// glType returns the GL component type of a vertex attribute or index type.
// 64-bit types have no GL ES equivalent.
func glType(t memory.NumberType) (gl.Enum, error) {
	switch t {
	case memory.Int8:
		return gl.BYTE, nil
	case memory.Uint8:
		return gl.UNSIGNED_BYTE, nil
	case memory.Int16:
		return gl.SHORT, nil
	case memory.Uint16:
		return gl.UNSIGNED_SHORT, nil
	case memory.Int32:
		return gl.INT, nil
	case memory.Uint32:
		return gl.UNSIGNED_INT, nil
	case memory.Float32:
		return gl.FLOAT, nil
	}
	return 0, fmt.Errorf("%w: %s has no GL type", core.ErrInvalidArgument, t)
}

// currentProgram reads the program bound with glUseProgram.
func currentProgram(glctx Context) gl.Program {
	v := glctx.GetInteger(gl.CURRENT_PROGRAM)
	return gl.Program{Init: v != 0, Value: uint32(v)}
}

// validAttrib reports whether a location returned by GetAttribLocation names an active attribute.
func validAttrib(a gl.Attrib) bool {
	return int32(uint32(a.Value)) >= 0
}
