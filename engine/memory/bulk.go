package memory

import (
	"math"

	"github.com/spaghettifunk/anima/engine/core"
)

// Bulk transfers between a Memory and typed slices. Each element is decoded on
// its own, so a byte order different from the host one costs a swap per element.

func getN[T any](m *Memory, index int, dst []T, width int, decode func([]byte) T) error {
	if err := core.CheckRange("get", index, len(dst)*width, len(m.data)); err != nil {
		return err
	}
	for i := range dst {
		p := index + i*width
		dst[i] = decode(m.data[p : p+width])
	}
	return nil
}

func setN[T any](m *Memory, index int, src []T, width int, encode func([]byte, T)) error {
	if err := core.CheckRange("set", index, len(src)*width, len(m.data)); err != nil {
		return err
	}
	for i, v := range src {
		p := index + i*width
		encode(m.data[p:p+width], v)
	}
	return nil
}

func (m *Memory) GetBytes(index int, dst []byte) error {
	if err := core.CheckRange("get", index, len(dst), len(m.data)); err != nil {
		return err
	}
	copy(dst, m.data[index:])
	return nil
}

func (m *Memory) SetBytes(index int, src []byte) error {
	if err := core.CheckRange("set", index, len(src), len(m.data)); err != nil {
		return err
	}
	copy(m.data[index:], src)
	return nil
}

func (m *Memory) GetInt16sLE(index int, dst []int16, le bool) error {
	bo := order(le)
	return getN(m, index, dst, 2, func(b []byte) int16 { return int16(bo.Uint16(b)) })
}

func (m *Memory) SetInt16sLE(index int, src []int16, le bool) error {
	bo := order(le)
	return setN(m, index, src, 2, func(b []byte, v int16) { bo.PutUint16(b, uint16(v)) })
}

func (m *Memory) GetInt32sLE(index int, dst []int32, le bool) error {
	bo := order(le)
	return getN(m, index, dst, 4, func(b []byte) int32 { return int32(bo.Uint32(b)) })
}

func (m *Memory) SetInt32sLE(index int, src []int32, le bool) error {
	bo := order(le)
	return setN(m, index, src, 4, func(b []byte, v int32) { bo.PutUint32(b, uint32(v)) })
}

func (m *Memory) GetInt64sLE(index int, dst []int64, le bool) error {
	bo := order(le)
	return getN(m, index, dst, 8, func(b []byte) int64 { return int64(bo.Uint64(b)) })
}

func (m *Memory) SetInt64sLE(index int, src []int64, le bool) error {
	bo := order(le)
	return setN(m, index, src, 8, func(b []byte, v int64) { bo.PutUint64(b, uint64(v)) })
}

func (m *Memory) GetFloat32sLE(index int, dst []float32, le bool) error {
	bo := order(le)
	return getN(m, index, dst, 4, func(b []byte) float32 { return math.Float32frombits(bo.Uint32(b)) })
}

func (m *Memory) SetFloat32sLE(index int, src []float32, le bool) error {
	bo := order(le)
	return setN(m, index, src, 4, func(b []byte, v float32) { bo.PutUint32(b, math.Float32bits(v)) })
}

func (m *Memory) GetFloat64sLE(index int, dst []float64, le bool) error {
	bo := order(le)
	return getN(m, index, dst, 8, func(b []byte) float64 { return math.Float64frombits(bo.Uint64(b)) })
}

func (m *Memory) SetFloat64sLE(index int, src []float64, le bool) error {
	bo := order(le)
	return setN(m, index, src, 8, func(b []byte, v float64) { bo.PutUint64(b, math.Float64bits(v)) })
}

func (m *Memory) GetInt16s(index int, dst []int16) error {
	return m.GetInt16sLE(index, dst, m.defaultLE)
}

func (m *Memory) SetInt16s(index int, src []int16) error {
	return m.SetInt16sLE(index, src, m.defaultLE)
}

func (m *Memory) GetInt32s(index int, dst []int32) error {
	return m.GetInt32sLE(index, dst, m.defaultLE)
}

func (m *Memory) SetInt32s(index int, src []int32) error {
	return m.SetInt32sLE(index, src, m.defaultLE)
}

func (m *Memory) GetInt64s(index int, dst []int64) error {
	return m.GetInt64sLE(index, dst, m.defaultLE)
}

func (m *Memory) SetInt64s(index int, src []int64) error {
	return m.SetInt64sLE(index, src, m.defaultLE)
}

func (m *Memory) GetFloat32s(index int, dst []float32) error {
	return m.GetFloat32sLE(index, dst, m.defaultLE)
}

func (m *Memory) SetFloat32s(index int, src []float32) error {
	return m.SetFloat32sLE(index, src, m.defaultLE)
}

func (m *Memory) GetFloat64s(index int, dst []float64) error {
	return m.GetFloat64sLE(index, dst, m.defaultLE)
}

func (m *Memory) SetFloat64s(index int, src []float64) error {
	return m.SetFloat64sLE(index, src, m.defaultLE)
}
