package views

import (
	"testing"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatViewPicksDirectSlice(t *testing.T) {
	data := memory.Float32Array{1, 2, 3, 4}
	v, err := NewFloatView(data, memory.Float32, 4, 2, false)
	require.NoError(t, err)
	assert.IsType(t, floatSliceView(nil), v)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, float32(2), v.Get(0))

	v.Set(1, 9)
	assert.Equal(t, float32(9), data[2])
}

func TestFloatViewOverMemory(t *testing.T) {
	mem := memory.New(12).WithOrder(false)
	mem.SetFloat32(4, 2.5)
	mem.SetFloat32(8, -1)

	v, err := NewFloatView(mem, memory.Float32, 4, 2, false)
	require.NoError(t, err)
	assert.IsType(t, &memoryFloatView{}, v)
	assert.Equal(t, float32(2.5), v.Get(0))
	assert.Equal(t, float32(-1), v.Get(1))

	v.Set(0, 7)
	assert.Equal(t, float32(7), mem.Float32(4))
}

func TestFloatViewPromotesByteArrays(t *testing.T) {
	data := memory.Uint8Array{0, 128, 255}
	v, err := NewFloatView(data, memory.Uint8, 0, 3, true)
	require.NoError(t, err)
	assert.IsType(t, &memoryFloatView{}, v)
	assert.Equal(t, float32(0), v.Get(0))
	assert.InDelta(t, 128.0/255.0, v.Get(1), 1e-6)
	assert.Equal(t, float32(1), v.Get(2))

	// a byte array reinterpreted as shorts decodes in host order
	shorts := memory.Uint8Array(memory.Int16Array{300, -5}.Bytes())
	sv, err := NewFloatView(shorts, memory.Int16, 2, 1, false)
	require.NoError(t, err)
	assert.Equal(t, float32(-5), sv.Get(0))
}

func TestFloatViewOverWrapper(t *testing.T) {
	data := memory.Int16Array{-32767, 0, 32767, 100}
	v, err := NewFloatView(data, memory.Int16, 2, 3, true)
	require.NoError(t, err)
	assert.IsType(t, &wrapperFloatView{}, v)
	assert.Equal(t, float32(0), v.Get(0))
	assert.Equal(t, float32(1), v.Get(1))

	raw, err := NewFloatView(data, memory.Int16, 0, 4, false)
	require.NoError(t, err)
	assert.Equal(t, float32(-32767), raw.Get(0))
	assert.Equal(t, float32(100), raw.Get(3))
}

func TestFloatViewRejectsMisalignedOffset(t *testing.T) {
	_, err := NewFloatView(memory.Int16Array{1, 2, 3}, memory.Int16, 1, 1, false)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = NewFloatView(memory.Float32Array{1}, memory.Float32, -4, 1, false)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = NewFloatView(memory.Float32Array{1}, memory.Float32, 0, 2, false)
	assert.ErrorIs(t, err, core.ErrOutOfRange)

	_, err = NewFloatView(memory.Float32Array{1}, memory.InvalidType, 0, 1, false)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestNormalizedRoundTrip(t *testing.T) {
	types := []struct {
		typ    memory.NumberType
		signed bool
		max    float64
	}{
		{memory.Int8, true, 127},
		{memory.Uint8, false, 255},
		{memory.Int16, true, 32767},
		{memory.Uint16, false, 65535},
		{memory.Int32, true, 2147483647},
		{memory.Uint32, false, 4294967295},
	}
	inputs := []float32{-2, -1, -0.5, -0.25, 0, 0.1, 0.33, 0.5, 0.99, 1, 3}

	for _, tt := range types {
		t.Run(tt.typ.String(), func(t *testing.T) {
			mem := memory.New(tt.typ.Size() * len(inputs))
			v, err := NewFloatView(mem, tt.typ, 0, len(inputs), true)
			require.NoError(t, err)
			for i, in := range inputs {
				v.Set(i, in)
				want := in
				lo := float32(0)
				if tt.signed {
					lo = -1
				}
				if want < lo {
					want = lo
				}
				if want > 1 {
					want = 1
				}
				assert.InDelta(t, want, v.Get(i), 1/tt.max+1e-6, "input %v", in)
			}
		})
	}
}

func TestSubViewSharesStorage(t *testing.T) {
	mem := memory.New(16)
	v, err := NewFloatView(mem, memory.Uint16, 0, 8, false)
	require.NoError(t, err)
	for i := 0; i < v.Len(); i++ {
		v.Set(i, float32(i))
	}

	sub, err := v.SubView(2, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Len())
	assert.Equal(t, float32(2), sub.Get(0))
	sub.Set(2, 40)
	assert.Equal(t, float32(40), v.Get(4))

	_, err = v.SubView(4, 9)
	assert.ErrorIs(t, err, core.ErrOutOfRange)
	_, err = v.SubView(3, 2)
	assert.ErrorIs(t, err, core.ErrOutOfRange)

	direct := FloatsOf([]float32{1, 2, 3})
	dsub, err := direct.SubView(1, 3)
	require.NoError(t, err)
	assert.Equal(t, float32(3), dsub.Get(1))
}

func TestViewAccessorsBoundsCheck(t *testing.T) {
	v, err := NewFloatView(memory.New(8), memory.Float32, 0, 2, false)
	require.NoError(t, err)
	assert.Panics(t, func() { v.Get(2) })
	assert.Panics(t, func() { v.Set(-1, 0) })

	iv, err := NewIntView(memory.Uint16Array{1, 2}, memory.Uint16, 0, 2)
	require.NoError(t, err)
	assert.Panics(t, func() { iv.Get(2) })
}

func TestIntViewVariants(t *testing.T) {
	ints := memory.Int32Array{5, -6, 7}
	v, err := NewIntView(ints, memory.Int32, 4, 2)
	require.NoError(t, err)
	assert.IsType(t, intSliceView(nil), v)
	assert.Equal(t, int32(-6), v.Get(0))

	shorts := memory.Uint16Array{1, 65535}
	sv, err := NewIntView(shorts, memory.Uint16, 0, 2)
	require.NoError(t, err)
	assert.IsType(t, &wrapperIntView{}, sv)
	assert.Equal(t, int32(65535), sv.Get(1))
	sv.Set(0, 70000)
	assert.Equal(t, uint16(70000-65536), shorts[0])

	bytes := memory.Int8Array{-1, 2}
	bv, err := NewIntView(bytes, memory.Int8, 0, 2)
	require.NoError(t, err)
	assert.IsType(t, &memoryIntView{}, bv)
	assert.Equal(t, int32(-1), bv.Get(0))

	mem := memory.New(8).WithOrder(false)
	mem.SetUint16(2, 0xBEEF)
	mv, err := NewIntView(mem, memory.Uint16, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(0xBEEF), mv.Get(0))
	sub, err := mv.SubView(1, 3)
	require.NoError(t, err)
	sub.Set(0, 12)
	assert.Equal(t, uint16(12), mem.Uint16(4))

	floats := memory.Float32Array{2.9, -2.9}
	fv, err := NewIntView(floats, memory.Float32, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fv.Get(0))
	assert.Equal(t, int32(-2), fv.Get(1))
}

func TestWrappers(t *testing.T) {
	w := WrapFloats(memory.Uint8Array{0, 255}, true)
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, float32(1), w.Float(1))
	w.SetFloat(0, 2)
	assert.Equal(t, float32(1), w.Float(0))

	sw := WrapFloats(memory.Int8Array{-128}, true)
	assert.Equal(t, float32(-1), sw.Float(0))

	iw := WrapInts(memory.Int64Array{1 << 40})
	assert.Equal(t, int32(0), iw.Int(0))
	iw.SetInt(0, -3)
	assert.Equal(t, int32(-3), iw.Int(0))

	fw := WrapFloats(memory.Float64Array{1.25}, true)
	assert.Equal(t, float32(1.25), fw.Float(0))
}
