package memory

import (
	"encoding/binary"
	"math"

	"github.com/spaghettifunk/anima/engine/core"
)

// Bufferable is anything that can be uploaded to the GPU as an opaque run of bytes.
type Bufferable interface {
	// ByteSize is the size of the data in bytes.
	ByteSize() int
	// Bytes exposes the data in host byte order. The returned slice aliases the data.
	Bytes() []byte
}

var nativeLE = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// NativeLE reports whether the host stores multi-byte scalars little-endian.
func NativeLE() bool {
	return nativeLE
}

// Empty is the zero-size Memory.
var Empty = &Memory{data: []byte{}, defaultLE: nativeLE}

/**
 * @brief A byte addressable block with endian aware scalar access.
 * Slices share storage with the block they were taken from.
 */
type Memory struct {
	data      []byte
	defaultLE bool
}

// New allocates a zeroed block of size bytes using host byte order by default.
func New(size int) *Memory {
	if size == 0 {
		return Empty
	}
	return &Memory{data: make([]byte, size), defaultLE: nativeLE}
}

// Of wraps b without copying.
func Of(b []byte) *Memory {
	return &Memory{data: b, defaultLE: nativeLE}
}

func (m *Memory) Size() int {
	return len(m.data)
}

func (m *Memory) ByteSize() int {
	return len(m.data)
}

func (m *Memory) Bytes() []byte {
	return m.data
}

func (m *Memory) DefaultLE() bool {
	return m.defaultLE
}

// WithOrder returns a view of the same storage with a different default byte order.
func (m *Memory) WithOrder(le bool) *Memory {
	return &Memory{data: m.data, defaultLE: le}
}

// Free drops the backing storage. The block reads as empty afterwards.
func (m *Memory) Free() {
	if m == Empty {
		return
	}
	m.data = nil
}

// Slice returns a block sharing storage with m covering [offset, offset+length).
func (m *Memory) Slice(offset, length int) (*Memory, error) {
	if err := core.CheckRange("slice", offset, length, len(m.data)); err != nil {
		return nil, err
	}
	return &Memory{data: m.data[offset : offset+length : offset+length], defaultLE: m.defaultLE}, nil
}

// Fill sets length bytes starting at offset to value.
func (m *Memory) Fill(value byte, offset, length int) error {
	if err := core.CheckRange("fill", offset, length, len(m.data)); err != nil {
		return err
	}
	b := m.data[offset : offset+length]
	for i := range b {
		b[i] = value
	}
	return nil
}

// CopyTo copies length bytes from m at srcOffset into dest at destOffset.
// Overlapping ranges of the same storage are handled.
func (m *Memory) CopyTo(dest *Memory, srcOffset, destOffset, length int) error {
	if err := core.CheckRange("src", srcOffset, length, len(m.data)); err != nil {
		return err
	}
	if err := core.CheckRange("dest", destOffset, length, len(dest.data)); err != nil {
		return err
	}
	copy(dest.data[destOffset:destOffset+length], m.data[srcOffset:srcOffset+length])
	return nil
}

func order(le bool) binary.ByteOrder {
	if le {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (m *Memory) at(index, width int) []byte {
	core.MustRange("index", index, width, len(m.data))
	return m.data[index : index+width]
}

func (m *Memory) Int8(index int) int8 {
	return int8(m.at(index, 1)[0])
}

func (m *Memory) SetInt8(index int, v int8) {
	m.at(index, 1)[0] = byte(v)
}

func (m *Memory) Uint8(index int) uint8 {
	return m.at(index, 1)[0]
}

func (m *Memory) SetUint8(index int, v uint8) {
	m.at(index, 1)[0] = v
}

func (m *Memory) Uint16LE(index int, le bool) uint16 {
	return order(le).Uint16(m.at(index, 2))
}

func (m *Memory) SetUint16LE(index int, v uint16, le bool) {
	order(le).PutUint16(m.at(index, 2), v)
}

func (m *Memory) Uint32LE(index int, le bool) uint32 {
	return order(le).Uint32(m.at(index, 4))
}

func (m *Memory) SetUint32LE(index int, v uint32, le bool) {
	order(le).PutUint32(m.at(index, 4), v)
}

func (m *Memory) Uint64LE(index int, le bool) uint64 {
	return order(le).Uint64(m.at(index, 8))
}

func (m *Memory) SetUint64LE(index int, v uint64, le bool) {
	order(le).PutUint64(m.at(index, 8), v)
}

func (m *Memory) Uint16(index int) uint16       { return m.Uint16LE(index, m.defaultLE) }
func (m *Memory) SetUint16(index int, v uint16) { m.SetUint16LE(index, v, m.defaultLE) }
func (m *Memory) Uint32(index int) uint32       { return m.Uint32LE(index, m.defaultLE) }
func (m *Memory) SetUint32(index int, v uint32) { m.SetUint32LE(index, v, m.defaultLE) }
func (m *Memory) Uint64(index int) uint64       { return m.Uint64LE(index, m.defaultLE) }
func (m *Memory) SetUint64(index int, v uint64) { m.SetUint64LE(index, v, m.defaultLE) }

func (m *Memory) Int16LE(index int, le bool) int16       { return int16(m.Uint16LE(index, le)) }
func (m *Memory) SetInt16LE(index int, v int16, le bool) { m.SetUint16LE(index, uint16(v), le) }
func (m *Memory) Int16(index int) int16                  { return m.Int16LE(index, m.defaultLE) }
func (m *Memory) SetInt16(index int, v int16)            { m.SetInt16LE(index, v, m.defaultLE) }

func (m *Memory) Int32LE(index int, le bool) int32       { return int32(m.Uint32LE(index, le)) }
func (m *Memory) SetInt32LE(index int, v int32, le bool) { m.SetUint32LE(index, uint32(v), le) }
func (m *Memory) Int32(index int) int32                  { return m.Int32LE(index, m.defaultLE) }
func (m *Memory) SetInt32(index int, v int32)            { m.SetInt32LE(index, v, m.defaultLE) }

func (m *Memory) Int64LE(index int, le bool) int64       { return int64(m.Uint64LE(index, le)) }
func (m *Memory) SetInt64LE(index int, v int64, le bool) { m.SetUint64LE(index, uint64(v), le) }
func (m *Memory) Int64(index int) int64                  { return m.Int64LE(index, m.defaultLE) }
func (m *Memory) SetInt64(index int, v int64)            { m.SetInt64LE(index, v, m.defaultLE) }

func (m *Memory) Float32LE(index int, le bool) float32 {
	return math.Float32frombits(m.Uint32LE(index, le))
}

func (m *Memory) SetFloat32LE(index int, v float32, le bool) {
	m.SetUint32LE(index, math.Float32bits(v), le)
}

func (m *Memory) Float32(index int) float32       { return m.Float32LE(index, m.defaultLE) }
func (m *Memory) SetFloat32(index int, v float32) { m.SetFloat32LE(index, v, m.defaultLE) }

func (m *Memory) Float64LE(index int, le bool) float64 {
	return math.Float64frombits(m.Uint64LE(index, le))
}

func (m *Memory) SetFloat64LE(index int, v float64, le bool) {
	m.SetUint64LE(index, math.Float64bits(v), le)
}

func (m *Memory) Float64(index int) float64       { return m.Float64LE(index, m.defaultLE) }
func (m *Memory) SetFloat64(index int, v float64) { m.SetFloat64LE(index, v, m.defaultLE) }
