package views

import (
	"fmt"

	"github.com/spaghettifunk/anima/engine/core"
)

// Indices is an ordered, finite sequence of element positions to visit.
type Indices interface {
	Len() int
	At(i int) int
}

type rangeIndices struct {
	start, end int
}

// Range visits 0, 1, ..., n-1.
func Range(n int) Indices {
	if n < 0 {
		n = 0
	}
	return rangeIndices{start: 0, end: n}
}

// Between visits start, start+1, ..., end-1.
func Between(start, end int) (Indices, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: range [%d, %d)", core.ErrInvalidArgument, start, end)
	}
	return rangeIndices{start: start, end: end}, nil
}

func (r rangeIndices) Len() int { return r.end - r.start }

func (r rangeIndices) At(i int) int {
	core.MustRange("index", i, 1, r.end-r.start)
	return r.start + i
}

type progression struct {
	start, step, count int
}

// Progression visits count positions start, start+step, start+2*step, ...
func Progression(start, step, count int) (Indices, error) {
	if start < 0 || step <= 0 || count < 0 {
		return nil, fmt.Errorf("%w: progression start=%d step=%d count=%d", core.ErrInvalidArgument, start, step, count)
	}
	return progression{start: start, step: step, count: count}, nil
}

func (p progression) Len() int { return p.count }

func (p progression) At(i int) int {
	core.MustRange("index", i, 1, p.count)
	return p.start + i*p.step
}

type arrayIndices []int

// Array visits the given positions in order.
func Array(positions []int) Indices {
	return arrayIndices(positions)
}

func (a arrayIndices) Len() int     { return len(a) }
func (a arrayIndices) At(i int) int { return a[i] }

type viewIndices struct {
	v IntView
}

// FromIntView visits the positions stored in v, typically an element buffer.
func FromIntView(v IntView) Indices {
	return viewIndices{v: v}
}

func (ix viewIndices) Len() int { return ix.v.Len() }

// At reads the stored value as unsigned, since element buffers hold unsigned indices.
func (ix viewIndices) At(i int) int {
	return int(uint32(ix.v.Get(i)))
}
