package gles

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/memory"
	"github.com/spaghettifunk/anima/engine/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferAttributeValidation(t *testing.T) {
	b := NewBufferData(memory.Float32Array{0, 0, 0}, StaticDraw, ArrayBuffer)

	tests := []struct {
		name  string
		comps int
		typ   memory.NumberType
		opts  []AttributeOption
	}{
		{"too few components", 0, memory.Float32, nil},
		{"too many components", 5, memory.Float32, nil},
		{"no gl type", 3, memory.Float64, nil},
		{"misaligned offset", 3, memory.Float32, []AttributeOption{WithOffset(2)}},
		{"negative stride", 3, memory.Float32, []AttributeOption{WithStride(-4)}},
		{"negative count", 3, memory.Float32, []AttributeOption{WithCount(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBufferAttribute(b, tt.comps, tt.typ, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidArgument))
		})
	}

	_, err := NewBufferAttribute(nil, 3, memory.Float32)
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
}

func TestBufferAttributeCount(t *testing.T) {
	b := NewBufferData(make(memory.Float32Array, 12), StaticDraw, ArrayBuffer)

	packed, err := NewBufferAttribute(b, 3, memory.Float32)
	require.NoError(t, err)
	assert.Equal(t, 4, packed.Count())
	assert.Equal(t, 12, packed.ElementStride())

	interleaved, err := NewBufferAttribute(b, 3, memory.Float32, WithStride(24), WithOffset(12))
	require.NoError(t, err)
	assert.Equal(t, 2, interleaved.Count())

	fixed, err := NewBufferAttribute(b, 3, memory.Float32, WithCount(1))
	require.NoError(t, err)
	assert.Equal(t, 1, fixed.Count())

	empty, err := NewBufferAttribute(NewBufferData(nil, StaticDraw, ArrayBuffer), 3, memory.Float32)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count())
}

func TestBufferAttributeEqual(t *testing.T) {
	b1 := NewBufferData(make(memory.Float32Array, 6), StaticDraw, ArrayBuffer)
	b2 := NewBufferData(make(memory.Float32Array, 6), StaticDraw, ArrayBuffer)

	a, _ := NewBufferAttribute(b1, 3, memory.Float32)
	same, _ := NewBufferAttribute(b1, 3, memory.Float32)
	otherBuffer, _ := NewBufferAttribute(b2, 3, memory.Float32)
	otherShape, _ := NewBufferAttribute(b1, 2, memory.Float32)

	assert.True(t, a.Equal(same))
	assert.False(t, a.Equal(otherBuffer))
	assert.False(t, a.Equal(otherShape))
	assert.False(t, a.Equal(nil))
}

func TestBufferAttributeDelegatesVersioning(t *testing.T) {
	b := NewBufferData(make(memory.Float32Array, 3), StaticDraw, ArrayBuffer)
	a, err := NewBufferAttribute(b, 3, memory.Float32)
	require.NoError(t, err)

	assert.True(t, a.NeedsUpdate())
	b.Upload(newFakeGL())
	assert.False(t, a.NeedsUpdate())
	b.MarkDirty()
	assert.True(t, a.NeedsUpdate())
	assert.Equal(t, b.Version(), a.Version())
}

func TestBufferAttributeInterleavedVectors(t *testing.T) {
	data := memory.Float32Array{
		1, 2, 3, 0, 0, 1,
		4, 5, 6, 0, 1, 0,
	}
	b := NewBufferData(data, StaticDraw, ArrayBuffer)

	pos, err := NewBufferAttribute(b, 3, memory.Float32, WithStride(24))
	require.NoError(t, err)
	normal, err := NewBufferAttribute(b, 3, memory.Float32, WithStride(24), WithOffset(12))
	require.NoError(t, err)

	pv, err := pos.Vectors3(nil)
	require.NoError(t, err)
	require.Equal(t, 2, pv.Len())
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, pv.Get(1))

	nv, err := normal.Vectors3(views.Array([]int{1, 0}))
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, nv.Get(0))
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, nv.Get(1))
}

func TestBufferAttributeNormalizedView(t *testing.T) {
	b := NewBufferData(memory.Uint8Array{0, 255, 51}, StaticDraw, ArrayBuffer)
	a, err := NewBufferAttribute(b, 1, memory.Uint8, Normalized())
	require.NoError(t, err)

	fv, err := a.FloatView()
	require.NoError(t, err)
	require.Equal(t, 3, fv.Len())
	assert.InDelta(t, 1.0, fv.Get(1), 1e-6)
	assert.InDelta(t, 0.2, fv.Get(2), 1e-6)
}
