package views

import (
	"fmt"

	"github.com/spaghettifunk/anima/engine/memory"
	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

// FloatArrayWrapper presents a typed array as a sequence of float32, widening
// and optionally normalizing integer elements.
type FloatArrayWrapper interface {
	Len() int
	Float(i int) float32
	SetFloat(i int, v float32)
}

// IntArrayWrapper presents a typed array as a sequence of int32.
type IntArrayWrapper interface {
	Len() int
	Int(i int) int32
	SetInt(i int, v int32)
}

type floatWrapper[T number] struct {
	data      []T
	typ       memory.NumberType
	normalize bool
}

func (w floatWrapper[T]) Len() int {
	return len(w.data)
}

func (w floatWrapper[T]) Float(i int) float32 {
	return toFloat(w.typ, float64(w.data[i]), w.normalize)
}

func (w floatWrapper[T]) SetFloat(i int, v float32) {
	w.data[i] = T(fromFloat(w.typ, v, w.normalize))
}

type intWrapper[T number] struct {
	data []T
	typ  memory.NumberType
}

func (w intWrapper[T]) Len() int {
	return len(w.data)
}

func (w intWrapper[T]) Int(i int) int32 {
	if w.typ.IsFloat() {
		return floatToInt32(float64(w.data[i]))
	}
	return int32(w.data[i])
}

func (w intWrapper[T]) SetInt(i int, v int32) {
	w.data[i] = T(v)
}

func newFloatWrapper[T number](data []T, typ memory.NumberType, normalize bool) FloatArrayWrapper {
	return floatWrapper[T]{data: data, typ: typ, normalize: normalize}
}

func newIntWrapper[T number](data []T, typ memory.NumberType) IntArrayWrapper {
	return intWrapper[T]{data: data, typ: typ}
}

// WrapFloats adapts any primitive array to a FloatArrayWrapper. normalize is
// ignored for float arrays.
func WrapFloats(a memory.PrimitiveArray, normalize bool) FloatArrayWrapper {
	switch arr := a.(type) {
	case memory.Int8Array:
		return newFloatWrapper([]int8(arr), memory.Int8, normalize)
	case memory.Uint8Array:
		return newFloatWrapper([]uint8(arr), memory.Uint8, normalize)
	case memory.Int16Array:
		return newFloatWrapper([]int16(arr), memory.Int16, normalize)
	case memory.Uint16Array:
		return newFloatWrapper([]uint16(arr), memory.Uint16, normalize)
	case memory.Int32Array:
		return newFloatWrapper([]int32(arr), memory.Int32, normalize)
	case memory.Uint32Array:
		return newFloatWrapper([]uint32(arr), memory.Uint32, normalize)
	case memory.Int64Array:
		return newFloatWrapper([]int64(arr), memory.Int64, normalize)
	case memory.Uint64Array:
		return newFloatWrapper([]uint64(arr), memory.Uint64, normalize)
	case memory.Float32Array:
		return newFloatWrapper([]float32(arr), memory.Float32, false)
	case memory.Float64Array:
		return newFloatWrapper([]float64(arr), memory.Float64, false)
	}
	panic(fmt.Sprintf("views: unsupported array %T", a))
}

// WrapInts adapts any primitive array to an IntArrayWrapper.
func WrapInts(a memory.PrimitiveArray) IntArrayWrapper {
	switch arr := a.(type) {
	case memory.Int8Array:
		return newIntWrapper([]int8(arr), memory.Int8)
	case memory.Uint8Array:
		return newIntWrapper([]uint8(arr), memory.Uint8)
	case memory.Int16Array:
		return newIntWrapper([]int16(arr), memory.Int16)
	case memory.Uint16Array:
		return newIntWrapper([]uint16(arr), memory.Uint16)
	case memory.Int32Array:
		return newIntWrapper([]int32(arr), memory.Int32)
	case memory.Uint32Array:
		return newIntWrapper([]uint32(arr), memory.Uint32)
	case memory.Int64Array:
		return newIntWrapper([]int64(arr), memory.Int64)
	case memory.Uint64Array:
		return newIntWrapper([]uint64(arr), memory.Uint64)
	case memory.Float32Array:
		return newIntWrapper([]float32(arr), memory.Float32)
	case memory.Float64Array:
		return newIntWrapper([]float64(arr), memory.Float64)
	}
	panic(fmt.Sprintf("views: unsupported array %T", a))
}
