package memory

import "fmt"

// NumberType describes the fixed-width numeric encoding of an element.
type NumberType uint8

const (
	InvalidType NumberType = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
)

var typeSizes = [...]int{
	InvalidType: 0,
	Int8:        1,
	Uint8:       1,
	Int16:       2,
	Uint16:      2,
	Int32:       4,
	Uint32:      4,
	Int64:       8,
	Uint64:      8,
	Float32:     4,
	Float64:     8,
}

var typeNames = [...]string{
	InvalidType: "invalid",
	Int8:        "int8",
	Uint8:       "uint8",
	Int16:       "int16",
	Uint16:      "uint16",
	Int32:       "int32",
	Uint32:      "uint32",
	Int64:       "int64",
	Uint64:      "uint64",
	Float32:     "float32",
	Float64:     "float64",
}

// Size returns the element size in bytes, 0 for an invalid type.
func (t NumberType) Size() int {
	if int(t) >= len(typeSizes) {
		return 0
	}
	return typeSizes[t]
}

func (t NumberType) Valid() bool {
	return t != InvalidType && int(t) < len(typeSizes)
}

func (t NumberType) IsFloat() bool {
	return t == Float32 || t == Float64
}

// Signed is true for signed integers and floats.
func (t NumberType) Signed() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Float32, Float64:
		return true
	}
	return false
}

func (t NumberType) String() string {
	if int(t) >= len(typeNames) {
		return fmt.Sprintf("NumberType(%d)", uint8(t))
	}
	return typeNames[t]
}
