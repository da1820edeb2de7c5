package memory

import "unsafe"

// PrimitiveArray tags a fixed-width numeric slice with its element encoding.
type PrimitiveArray interface {
	Bufferable
	Len() int
	Type() NumberType
}

type (
	Int8Array    []int8
	Uint8Array   []uint8
	Int16Array   []int16
	Uint16Array  []uint16
	Int32Array   []int32
	Uint32Array  []uint32
	Int64Array   []int64
	Uint64Array  []uint64
	Float32Array []float32
	Float64Array []float64
)

// sliceBytes reinterprets s as its raw host-order bytes without copying.
func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero)))
}

func (a Int8Array) Len() int         { return len(a) }
func (a Int8Array) Type() NumberType { return Int8 }
func (a Int8Array) ByteSize() int    { return len(a) }
func (a Int8Array) Bytes() []byte    { return sliceBytes(a) }

func (a Uint8Array) Len() int         { return len(a) }
func (a Uint8Array) Type() NumberType { return Uint8 }
func (a Uint8Array) ByteSize() int    { return len(a) }
func (a Uint8Array) Bytes() []byte    { return a }

func (a Int16Array) Len() int         { return len(a) }
func (a Int16Array) Type() NumberType { return Int16 }
func (a Int16Array) ByteSize() int    { return len(a) * 2 }
func (a Int16Array) Bytes() []byte    { return sliceBytes(a) }

func (a Uint16Array) Len() int         { return len(a) }
func (a Uint16Array) Type() NumberType { return Uint16 }
func (a Uint16Array) ByteSize() int    { return len(a) * 2 }
func (a Uint16Array) Bytes() []byte    { return sliceBytes(a) }

func (a Int32Array) Len() int         { return len(a) }
func (a Int32Array) Type() NumberType { return Int32 }
func (a Int32Array) ByteSize() int    { return len(a) * 4 }
func (a Int32Array) Bytes() []byte    { return sliceBytes(a) }

func (a Uint32Array) Len() int         { return len(a) }
func (a Uint32Array) Type() NumberType { return Uint32 }
func (a Uint32Array) ByteSize() int    { return len(a) * 4 }
func (a Uint32Array) Bytes() []byte    { return sliceBytes(a) }

func (a Int64Array) Len() int         { return len(a) }
func (a Int64Array) Type() NumberType { return Int64 }
func (a Int64Array) ByteSize() int    { return len(a) * 8 }
func (a Int64Array) Bytes() []byte    { return sliceBytes(a) }

func (a Uint64Array) Len() int         { return len(a) }
func (a Uint64Array) Type() NumberType { return Uint64 }
func (a Uint64Array) ByteSize() int    { return len(a) * 8 }
func (a Uint64Array) Bytes() []byte    { return sliceBytes(a) }

func (a Float32Array) Len() int         { return len(a) }
func (a Float32Array) Type() NumberType { return Float32 }
func (a Float32Array) ByteSize() int    { return len(a) * 4 }
func (a Float32Array) Bytes() []byte    { return sliceBytes(a) }

func (a Float64Array) Len() int         { return len(a) }
func (a Float64Array) Type() NumberType { return Float64 }
func (a Float64Array) ByteSize() int    { return len(a) * 8 }
func (a Float64Array) Bytes() []byte    { return sliceBytes(a) }

// AsMemory wraps the bytes of a in a Memory using host byte order. No copy is made.
func AsMemory(b Bufferable) *Memory {
	if m, ok := b.(*Memory); ok {
		return m
	}
	data := b.Bytes()
	if len(data) == 0 {
		return Empty
	}
	return Of(data)
}
