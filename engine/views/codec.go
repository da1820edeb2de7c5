package views

import (
	"fmt"
	"math"

	"github.com/spaghettifunk/anima/engine/memory"
)

// limits holds the representable range of an integer NumberType as float64.
// hi is the largest float64 that still converts to the type without overflow.
type limits struct {
	lo, hi float64
	max    float64
}

var typeLimits = map[memory.NumberType]limits{
	memory.Int8:   {lo: math.MinInt8, hi: math.MaxInt8, max: math.MaxInt8},
	memory.Uint8:  {lo: 0, hi: math.MaxUint8, max: math.MaxUint8},
	memory.Int16:  {lo: math.MinInt16, hi: math.MaxInt16, max: math.MaxInt16},
	memory.Uint16: {lo: 0, hi: math.MaxUint16, max: math.MaxUint16},
	memory.Int32:  {lo: math.MinInt32, hi: math.MaxInt32, max: math.MaxInt32},
	memory.Uint32: {lo: 0, hi: math.MaxUint32, max: math.MaxUint32},
	memory.Int64:  {lo: math.MinInt64, hi: math.Nextafter(math.MaxInt64, 0), max: math.MaxInt64},
	memory.Uint64: {lo: 0, hi: math.Nextafter(math.MaxUint64, 0), max: math.MaxUint64},
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toFloat converts a raw stored value to the logical float value.
func toFloat(typ memory.NumberType, raw float64, normalize bool) float32 {
	if !normalize || typ.IsFloat() {
		return float32(raw)
	}
	l := typeLimits[typ]
	v := raw / l.max
	if typ.Signed() && v < -1 {
		v = -1
	}
	return float32(v)
}

// fromFloat converts a logical float value to the raw value to store, already
// clamped to what typ can hold.
func fromFloat(typ memory.NumberType, v float32, normalize bool) float64 {
	if typ.IsFloat() {
		return float64(v)
	}
	l := typeLimits[typ]
	f := float64(v)
	if math.IsNaN(f) {
		return 0
	}
	if normalize {
		if typ.Signed() {
			f = clamp(f, -1, 1)
		} else {
			f = clamp(f, 0, 1)
		}
		return clamp(math.Round(f*l.max), l.lo, l.hi)
	}
	return clamp(math.Trunc(f), l.lo, l.hi)
}

// floatToInt32 truncates toward zero, saturating at the int32 range.
func floatToInt32(f float64) int32 {
	if math.IsNaN(f) {
		return 0
	}
	return int32(clamp(math.Trunc(f), math.MinInt32, math.MaxInt32))
}

func loadRaw(m *memory.Memory, typ memory.NumberType, at int) float64 {
	switch typ {
	case memory.Int8:
		return float64(m.Int8(at))
	case memory.Uint8:
		return float64(m.Uint8(at))
	case memory.Int16:
		return float64(m.Int16(at))
	case memory.Uint16:
		return float64(m.Uint16(at))
	case memory.Int32:
		return float64(m.Int32(at))
	case memory.Uint32:
		return float64(m.Uint32(at))
	case memory.Int64:
		return float64(m.Int64(at))
	case memory.Uint64:
		return float64(m.Uint64(at))
	case memory.Float32:
		return float64(m.Float32(at))
	case memory.Float64:
		return m.Float64(at)
	}
	panic(fmt.Sprintf("views: unsupported number type %s", typ))
}

func storeRaw(m *memory.Memory, typ memory.NumberType, at int, v float64) {
	switch typ {
	case memory.Int8:
		m.SetInt8(at, int8(v))
	case memory.Uint8:
		m.SetUint8(at, uint8(v))
	case memory.Int16:
		m.SetInt16(at, int16(v))
	case memory.Uint16:
		m.SetUint16(at, uint16(v))
	case memory.Int32:
		m.SetInt32(at, int32(v))
	case memory.Uint32:
		m.SetUint32(at, uint32(v))
	case memory.Int64:
		m.SetInt64(at, int64(v))
	case memory.Uint64:
		m.SetUint64(at, uint64(v))
	case memory.Float32:
		m.SetFloat32(at, float32(v))
	case memory.Float64:
		m.SetFloat64(at, v)
	default:
		panic(fmt.Sprintf("views: unsupported number type %s", typ))
	}
}

// loadInt widens integer storage to int32: signed types sign-extend, unsigned
// types zero-extend and 32/64 bit values keep their low 32 bits.
func loadInt(m *memory.Memory, typ memory.NumberType, at int) int32 {
	switch typ {
	case memory.Int8:
		return int32(m.Int8(at))
	case memory.Uint8:
		return int32(m.Uint8(at))
	case memory.Int16:
		return int32(m.Int16(at))
	case memory.Uint16:
		return int32(m.Uint16(at))
	case memory.Int32:
		return m.Int32(at)
	case memory.Uint32:
		return int32(m.Uint32(at))
	case memory.Int64:
		return int32(m.Int64(at))
	case memory.Uint64:
		return int32(m.Uint64(at))
	case memory.Float32:
		return floatToInt32(float64(m.Float32(at)))
	case memory.Float64:
		return floatToInt32(m.Float64(at))
	}
	panic(fmt.Sprintf("views: unsupported number type %s", typ))
}

// storeInt narrows v to the storage type, dropping high bits.
func storeInt(m *memory.Memory, typ memory.NumberType, at int, v int32) {
	switch typ {
	case memory.Int8:
		m.SetInt8(at, int8(v))
	case memory.Uint8:
		m.SetUint8(at, uint8(v))
	case memory.Int16:
		m.SetInt16(at, int16(v))
	case memory.Uint16:
		m.SetUint16(at, uint16(v))
	case memory.Int32:
		m.SetInt32(at, v)
	case memory.Uint32:
		m.SetUint32(at, uint32(v))
	case memory.Int64:
		m.SetInt64(at, int64(v))
	case memory.Uint64:
		m.SetUint64(at, uint64(uint32(v)))
	case memory.Float32:
		m.SetFloat32(at, float32(v))
	case memory.Float64:
		m.SetFloat64(at, float64(v))
	default:
		panic(fmt.Sprintf("views: unsupported number type %s", typ))
	}
}
