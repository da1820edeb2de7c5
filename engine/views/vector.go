package views

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima/engine/core"
)

type vectorOptions struct {
	stride    int
	hasStride bool
	indices   Indices
}

// VectorOption customizes the layout of a vector view.
type VectorOption func(*vectorOptions)

// WithStride sets the number of floats between the starts of two consecutive vectors.
func WithStride(stride int) VectorOption {
	return func(o *vectorOptions) {
		o.stride = stride
		o.hasStride = true
	}
}

// WithIndices restricts the view to the given strided positions.
func WithIndices(ix Indices) VectorOption {
	return func(o *vectorOptions) {
		o.indices = ix
	}
}

// vectorLayout maps vector i, component c to floats[indices.At(i)*stride+c].
type vectorLayout struct {
	floats     FloatView
	components int
	stride     int
	indices    Indices
}

func newLayout(floats FloatView, components int, opts []VectorOption) (vectorLayout, error) {
	if components < 1 || components > 4 {
		return vectorLayout{}, fmt.Errorf("%w: numComponents %d not in 1..4", core.ErrInvalidArgument, components)
	}
	o := vectorOptions{stride: components}
	for _, opt := range opts {
		opt(&o)
	}
	if o.stride <= 0 {
		return vectorLayout{}, fmt.Errorf("%w: stride %d must be positive", core.ErrInvalidArgument, o.stride)
	}
	if o.indices == nil {
		n := 0
		if floats.Len() >= components {
			n = (floats.Len()-components)/o.stride + 1
		}
		o.indices = Range(n)
	}
	return vectorLayout{floats: floats, components: components, stride: o.stride, indices: o.indices}, nil
}

func (l *vectorLayout) Len() int {
	return l.indices.Len()
}

func (l *vectorLayout) NumComponents() int {
	return l.components
}

func (l *vectorLayout) Stride() int {
	return l.stride
}

// read fills dst with the stored components of vector i, leaving the rest untouched.
func (l *vectorLayout) read(i int, dst []float32) {
	base := l.indices.At(i) * l.stride
	n := min(l.components, len(dst))
	for c := 0; c < n; c++ {
		dst[c] = l.floats.Get(base + c)
	}
}

func (l *vectorLayout) write(i int, src []float32) {
	base := l.indices.At(i) * l.stride
	n := min(l.components, len(src))
	for c := 0; c < n; c++ {
		l.floats.Set(base+c, src[c])
	}
}

// Vector2View reads strided 2-component vectors out of a FloatView.
type Vector2View struct {
	vectorLayout
}

func NewVector2View(floats FloatView, numComponents int, opts ...VectorOption) (*Vector2View, error) {
	l, err := newLayout(floats, numComponents, opts)
	if err != nil {
		return nil, err
	}
	return &Vector2View{l}, nil
}

func (v *Vector2View) Get(i int) mgl32.Vec2 {
	var out mgl32.Vec2
	v.read(i, out[:])
	return out
}

func (v *Vector2View) Set(i int, vec mgl32.Vec2) {
	v.write(i, vec[:])
}

// Vector3View reads strided 3-component vectors out of a FloatView.
type Vector3View struct {
	vectorLayout
}

func NewVector3View(floats FloatView, numComponents int, opts ...VectorOption) (*Vector3View, error) {
	l, err := newLayout(floats, numComponents, opts)
	if err != nil {
		return nil, err
	}
	return &Vector3View{l}, nil
}

func (v *Vector3View) Get(i int) mgl32.Vec3 {
	var out mgl32.Vec3
	v.read(i, out[:])
	return out
}

func (v *Vector3View) Set(i int, vec mgl32.Vec3) {
	v.write(i, vec[:])
}

// Vector4View reads strided 4-component vectors out of a FloatView.
// A missing W component reads as 1.
type Vector4View struct {
	vectorLayout
}

func NewVector4View(floats FloatView, numComponents int, opts ...VectorOption) (*Vector4View, error) {
	l, err := newLayout(floats, numComponents, opts)
	if err != nil {
		return nil, err
	}
	return &Vector4View{l}, nil
}

func (v *Vector4View) Get(i int) mgl32.Vec4 {
	out := mgl32.Vec4{0, 0, 0, 1}
	v.read(i, out[:])
	return out
}

func (v *Vector4View) Set(i int, vec mgl32.Vec4) {
	v.write(i, vec[:])
}
