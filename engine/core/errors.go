package core

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange       = errors.New("out of range")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrMissingAttribute = errors.New("missing attribute")
	ErrWrongThread      = errors.New("called outside of the render thread")

	ErrNoData              = errors.New("no data")
	ErrInsufficientData    = errors.New("insufficient data")
	ErrInvalidIndex        = errors.New("invalid index")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// RangeError reports an access to [Offset, Offset+Length) that does not fit
// inside a region of Size elements. Arg names the offending argument.
type RangeError struct {
	Arg    string
	Offset int
	Length int
	Size   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: range [%d, %d) out of bounds for size %d", e.Arg, e.Offset, e.Offset+e.Length, e.Size)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// CheckRange returns a *RangeError unless 0 <= offset, 0 <= length and offset+length <= size.
func CheckRange(arg string, offset, length, size int) error {
	if offset < 0 || length < 0 || offset > size-length {
		return &RangeError{Arg: arg, Offset: offset, Length: length, Size: size}
	}
	return nil
}

// MustRange panics with a *RangeError when CheckRange fails. Used by
// single element accessors, which behave like slice indexing.
func MustRange(arg string, offset, length, size int) {
	if err := CheckRange(arg, offset, length, size); err != nil {
		panic(err)
	}
}
