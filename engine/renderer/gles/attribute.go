package gles

import (
	"fmt"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/memory"
	"github.com/spaghettifunk/anima/engine/views"
	"golang.org/x/mobile/gl"
)

// AttributeOption customizes a BufferAttribute.
type AttributeOption func(*BufferAttribute)

// WithStride sets the distance in bytes between two consecutive elements.
// Zero means tightly packed.
func WithStride(bytes int) AttributeOption {
	return func(a *BufferAttribute) {
		a.stride = bytes
	}
}

// WithOffset sets the byte offset of the first element.
func WithOffset(bytes int) AttributeOption {
	return func(a *BufferAttribute) {
		a.offset = bytes
	}
}

// WithCount fixes the number of elements instead of deriving it from the buffer size.
func WithCount(n int) AttributeOption {
	return func(a *BufferAttribute) {
		a.count = n
		a.hasCount = true
	}
}

// Normalized maps integer components to [0,1] or [-1,1].
func Normalized() AttributeOption {
	return func(a *BufferAttribute) {
		a.normalize = true
	}
}

// BufferAttribute describes one vertex attribute stored in a BufferData.
// Two attributes are interchangeable when they are Equal.
type BufferAttribute struct {
	buffer        *BufferData
	numComponents int
	typ           memory.NumberType
	glType        gl.Enum
	stride        int
	offset        int
	count         int
	hasCount      bool
	normalize     bool
}

func NewBufferAttribute(buffer *BufferData, numComponents int, typ memory.NumberType, opts ...AttributeOption) (*BufferAttribute, error) {
	if buffer == nil {
		return nil, fmt.Errorf("%w: nil buffer", core.ErrInvalidArgument)
	}
	if numComponents < 1 || numComponents > 4 {
		return nil, fmt.Errorf("%w: numComponents %d not in 1..4", core.ErrInvalidArgument, numComponents)
	}
	glt, err := glType(typ)
	if err != nil {
		return nil, err
	}
	a := &BufferAttribute{
		buffer:        buffer,
		numComponents: numComponents,
		typ:           typ,
		glType:        glt,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.offset < 0 || a.offset%typ.Size() != 0 {
		return nil, fmt.Errorf("%w: offset %d must be a non-negative multiple of %d", core.ErrInvalidArgument, a.offset, typ.Size())
	}
	if a.stride < 0 {
		return nil, fmt.Errorf("%w: stride %d", core.ErrInvalidArgument, a.stride)
	}
	if a.hasCount && a.count < 0 {
		return nil, fmt.Errorf("%w: count %d", core.ErrInvalidArgument, a.count)
	}
	return a, nil
}

func (a *BufferAttribute) Buffer() *BufferData     { return a.buffer }
func (a *BufferAttribute) NumComponents() int      { return a.numComponents }
func (a *BufferAttribute) Type() memory.NumberType { return a.typ }
func (a *BufferAttribute) Stride() int             { return a.stride }
func (a *BufferAttribute) Offset() int             { return a.offset }
func (a *BufferAttribute) Normalize() bool         { return a.normalize }
func (a *BufferAttribute) NeedsUpdate() bool       { return a.buffer.NeedsUpdate() }
func (a *BufferAttribute) Version() uint64         { return a.buffer.Version() }

// Equal reports whether both attributes share buffer and layout.
func (a *BufferAttribute) Equal(o *BufferAttribute) bool {
	return o != nil && *a == *o
}

// ElementStride is the effective distance in bytes between two elements.
func (a *BufferAttribute) ElementStride() int {
	if a.stride > 0 {
		return a.stride
	}
	return a.numComponents * a.typ.Size()
}

// Count is the number of elements, derived from the buffer size unless fixed.
func (a *BufferAttribute) Count() int {
	if a.hasCount {
		return a.count
	}
	avail := a.buffer.ByteSize() - a.offset
	elem := a.numComponents * a.typ.Size()
	if avail < elem {
		return 0
	}
	return (avail-elem)/a.ElementStride() + 1
}

// pointer binds the buffer and points loc at this attribute's layout.
func (a *BufferAttribute) pointer(glctx Context, loc gl.Attrib) {
	a.buffer.Bind(glctx)
	glctx.EnableVertexAttribArray(loc)
	glctx.VertexAttribPointer(loc, a.numComponents, a.glType, a.normalize, a.stride, a.offset)
}

// FloatView exposes every float the attribute spans, including stride padding.
func (a *BufferAttribute) FloatView() (views.FloatView, error) {
	n := a.Count()
	if n == 0 {
		return views.FloatsOf(nil), nil
	}
	step, err := a.floatStride()
	if err != nil {
		return nil, err
	}
	return views.NewFloatView(a.buffer.Data(), a.typ, a.offset, (n-1)*step+a.numComponents, a.normalize)
}

func (a *BufferAttribute) floatStride() (int, error) {
	stride := a.ElementStride()
	if stride%a.typ.Size() != 0 {
		return 0, fmt.Errorf("%w: stride %d is not a multiple of %s", core.ErrInvalidArgument, stride, a.typ)
	}
	return stride / a.typ.Size(), nil
}

// Vectors3 views the attribute as 3D vectors visited in the order of ix.
// A nil ix visits every element.
func (a *BufferAttribute) Vectors3(ix views.Indices) (*views.Vector3View, error) {
	fv, err := a.FloatView()
	if err != nil {
		return nil, err
	}
	step := a.numComponents
	if a.Count() > 0 {
		if step, err = a.floatStride(); err != nil {
			return nil, err
		}
	}
	if ix == nil {
		ix = views.Range(a.Count())
	}
	return views.NewVector3View(fv, a.numComponents, views.WithStride(step), views.WithIndices(ix))
}
