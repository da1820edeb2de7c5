package views

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector3ViewDense(t *testing.T) {
	floats := FloatsOf([]float32{1, 2, 3, 4, 5, 6, 7, 8, 9})
	v, err := NewVector3View(floats, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, v.Get(1))

	v.Set(2, mgl32.Vec3{0, 0, 1})
	assert.Equal(t, float32(1), floats.Get(8))
}

func TestVectorViewMissingComponents(t *testing.T) {
	floats := FloatsOf([]float32{1, 2, 3, 4})
	v4, err := NewVector4View(floats, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, v4.Len())
	assert.Equal(t, mgl32.Vec4{3, 4, 0, 1}, v4.Get(1))

	v3, err := NewVector3View(floats, 2)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, v3.Get(0))

	// only the stored components are written
	v3.Set(0, mgl32.Vec3{9, 8, 7})
	assert.Equal(t, float32(3), floats.Get(2))
}

func TestVectorViewStrideAndIndices(t *testing.T) {
	// interleaved position (3) + uv (2)
	floats := FloatsOf([]float32{
		0, 0, 0, 0.1, 0.2,
		1, 1, 1, 0.3, 0.4,
		2, 2, 2, 0.5, 0.6,
	})
	pos, err := NewVector3View(floats, 3, WithStride(5))
	require.NoError(t, err)
	assert.Equal(t, 3, pos.Len())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, pos.Get(2))

	uvFloats, err := floats.SubView(3, 15)
	require.NoError(t, err)
	uv, err := NewVector2View(uvFloats, 2, WithStride(5), WithIndices(Array([]int{2, 0})))
	require.NoError(t, err)
	assert.Equal(t, 2, uv.Len())
	assert.Equal(t, mgl32.Vec2{0.5, 0.6}, uv.Get(0))
	assert.Equal(t, mgl32.Vec2{0.1, 0.2}, uv.Get(1))
}

func TestVectorViewValidation(t *testing.T) {
	floats := FloatsOf(make([]float32, 6))
	_, err := NewVector3View(floats, 0)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = NewVector3View(floats, 5)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
	_, err = NewVector2View(floats, 2, WithStride(0))
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	empty, err := NewVector3View(FloatsOf(nil), 3)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestVectorViewOverNormalizedBytes(t *testing.T) {
	colors := memory.Uint8Array{255, 0, 255, 255, 0, 255, 0, 255}
	fv, err := NewFloatView(colors, memory.Uint8, 0, len(colors), true)
	require.NoError(t, err)
	v, err := NewVector4View(fv, 4)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{1, 0, 1, 1}, v.Get(0))
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, v.Get(1))
}
