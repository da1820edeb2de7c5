package views

import (
	"fmt"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/memory"
)

// FloatView is a fixed size, mutable sequence of float32 over some storage.
type FloatView interface {
	Len() int
	Get(i int) float32
	Set(i int, v float32)
	// SubView returns the elements [from, to) sharing storage with the view.
	SubView(from, to int) (FloatView, error)
}

// IntView is a fixed size, mutable sequence of int32 over some storage.
type IntView interface {
	Len() int
	Get(i int) int32
	Set(i int, v int32)
	SubView(from, to int) (IntView, error)
}

// FloatsOf views a float32 slice directly.
func FloatsOf(data []float32) FloatView {
	return floatSliceView(data)
}

// IntsOf views an int32 slice directly.
func IntsOf(data []int32) IntView {
	return intSliceView(data)
}

// NewFloatView builds the cheapest FloatView reading count elements of typ
// starting at byte offset of data.
func NewFloatView(data memory.Bufferable, typ memory.NumberType, offset, count int, normalize bool) (FloatView, error) {
	mem, arr, start, err := resolve(data, typ, offset, count)
	if err != nil {
		return nil, err
	}
	if arr != nil {
		if f32, ok := arr.(memory.Float32Array); ok {
			return floatSliceView(f32[start : start+count]), nil
		}
		return &wrapperFloatView{w: WrapFloats(arr, normalize), start: start, count: count}, nil
	}
	return &memoryFloatView{mem: mem, typ: typ, normalize: normalize && !typ.IsFloat(), count: count}, nil
}

// NewIntView builds the cheapest IntView reading count elements of typ
// starting at byte offset of data.
func NewIntView(data memory.Bufferable, typ memory.NumberType, offset, count int) (IntView, error) {
	mem, arr, start, err := resolve(data, typ, offset, count)
	if err != nil {
		return nil, err
	}
	if arr != nil {
		if i32, ok := arr.(memory.Int32Array); ok {
			return intSliceView(i32[start : start+count]), nil
		}
		return &wrapperIntView{w: WrapInts(arr), start: start, count: count}, nil
	}
	return &memoryIntView{mem: mem, typ: typ, count: count}, nil
}

// resolve validates the request and picks the storage. It returns either an
// array whose element type is typ together with the element index of the first
// element, or a Memory covering exactly the requested bytes.
func resolve(data memory.Bufferable, typ memory.NumberType, offset, count int) (*memory.Memory, memory.PrimitiveArray, int, error) {
	if !typ.Valid() {
		return nil, nil, 0, fmt.Errorf("%w: number type %s", core.ErrInvalidArgument, typ)
	}
	if offset < 0 || count < 0 {
		return nil, nil, 0, fmt.Errorf("%w: offset %d and count %d must not be negative", core.ErrInvalidArgument, offset, count)
	}
	size := typ.Size()
	if err := core.CheckRange("view", offset, count*size, data.ByteSize()); err != nil {
		return nil, nil, 0, err
	}

	arr, isArray := data.(memory.PrimitiveArray)
	if isArray && arr.Type().Size() > 1 && offset%size != 0 {
		return nil, nil, 0, fmt.Errorf("%w: offset %d is not a multiple of %s size %d", core.ErrInvalidArgument, offset, typ, size)
	}
	if isArray && arr.Type() == typ && size > 1 {
		return nil, arr, offset / size, nil
	}

	// memory blocks, byte arrays and arrays read as another type decode from bytes
	mem, err := memory.AsMemory(data).Slice(offset, count*size)
	if err != nil {
		return nil, nil, 0, err
	}
	return mem, nil, 0, nil
}

func checkSub(from, to, size int) error {
	return core.CheckRange("subview", from, to-from, size)
}

type floatSliceView []float32

func (v floatSliceView) Len() int             { return len(v) }
func (v floatSliceView) Get(i int) float32    { return v[i] }
func (v floatSliceView) Set(i int, f float32) { v[i] = f }

func (v floatSliceView) SubView(from, to int) (FloatView, error) {
	if err := checkSub(from, to, len(v)); err != nil {
		return nil, err
	}
	return v[from:to:to], nil
}

type memoryFloatView struct {
	mem       *memory.Memory
	typ       memory.NumberType
	normalize bool
	count     int
}

func (v *memoryFloatView) Len() int { return v.count }

func (v *memoryFloatView) Get(i int) float32 {
	core.MustRange("get", i, 1, v.count)
	return toFloat(v.typ, loadRaw(v.mem, v.typ, i*v.typ.Size()), v.normalize)
}

func (v *memoryFloatView) Set(i int, f float32) {
	core.MustRange("set", i, 1, v.count)
	storeRaw(v.mem, v.typ, i*v.typ.Size(), fromFloat(v.typ, f, v.normalize))
}

func (v *memoryFloatView) SubView(from, to int) (FloatView, error) {
	if err := checkSub(from, to, v.count); err != nil {
		return nil, err
	}
	size := v.typ.Size()
	mem, err := v.mem.Slice(from*size, (to-from)*size)
	if err != nil {
		return nil, err
	}
	return &memoryFloatView{mem: mem, typ: v.typ, normalize: v.normalize, count: to - from}, nil
}

type wrapperFloatView struct {
	w     FloatArrayWrapper
	start int
	count int
}

func (v *wrapperFloatView) Len() int { return v.count }

func (v *wrapperFloatView) Get(i int) float32 {
	core.MustRange("get", i, 1, v.count)
	return v.w.Float(v.start + i)
}

func (v *wrapperFloatView) Set(i int, f float32) {
	core.MustRange("set", i, 1, v.count)
	v.w.SetFloat(v.start+i, f)
}

func (v *wrapperFloatView) SubView(from, to int) (FloatView, error) {
	if err := checkSub(from, to, v.count); err != nil {
		return nil, err
	}
	return &wrapperFloatView{w: v.w, start: v.start + from, count: to - from}, nil
}

type intSliceView []int32

func (v intSliceView) Len() int           { return len(v) }
func (v intSliceView) Get(i int) int32    { return v[i] }
func (v intSliceView) Set(i int, n int32) { v[i] = n }

func (v intSliceView) SubView(from, to int) (IntView, error) {
	if err := checkSub(from, to, len(v)); err != nil {
		return nil, err
	}
	return v[from:to:to], nil
}

type memoryIntView struct {
	mem   *memory.Memory
	typ   memory.NumberType
	count int
}

func (v *memoryIntView) Len() int { return v.count }

func (v *memoryIntView) Get(i int) int32 {
	core.MustRange("get", i, 1, v.count)
	return loadInt(v.mem, v.typ, i*v.typ.Size())
}

func (v *memoryIntView) Set(i int, n int32) {
	core.MustRange("set", i, 1, v.count)
	storeInt(v.mem, v.typ, i*v.typ.Size(), n)
}

func (v *memoryIntView) SubView(from, to int) (IntView, error) {
	if err := checkSub(from, to, v.count); err != nil {
		return nil, err
	}
	size := v.typ.Size()
	mem, err := v.mem.Slice(from*size, (to-from)*size)
	if err != nil {
		return nil, err
	}
	return &memoryIntView{mem: mem, typ: v.typ, count: to - from}, nil
}

type wrapperIntView struct {
	w     IntArrayWrapper
	start int
	count int
}

func (v *wrapperIntView) Len() int { return v.count }

func (v *wrapperIntView) Get(i int) int32 {
	core.MustRange("get", i, 1, v.count)
	return v.w.Int(v.start + i)
}

func (v *wrapperIntView) Set(i int, n int32) {
	core.MustRange("set", i, 1, v.count)
	v.w.SetInt(v.start+i, n)
}

func (v *wrapperIntView) SubView(from, to int) (IntView, error) {
	if err := checkSub(from, to, v.count); err != nil {
		return nil, err
	}
	return &wrapperIntView{w: v.w, start: v.start + from, count: to - from}, nil
}
