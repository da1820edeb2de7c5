package gles

import (
	"golang.org/x/mobile/gl"
)

// fakeGL records the calls made through Context.
type fakeGL struct {
	calls []string

	nextBuffer  uint32
	nextVAO     uint32
	boundBuffer uint32
	live        map[uint32]bool
	deleted     []uint32
	uploads     map[uint32][][]byte

	program   int
	locations map[int]map[string]int
	pointers  map[gl.Attrib]int
	drawn     int
	drawType  gl.Enum
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		live:      make(map[uint32]bool),
		uploads:   make(map[uint32][][]byte),
		locations: make(map[int]map[string]int),
		pointers:  make(map[gl.Attrib]int),
	}
}

func (f *fakeGL) count(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

// useProgram makes id current and declares its attribute locations.
func (f *fakeGL) useProgram(id int, locs map[string]int) {
	f.program = id
	f.locations[id] = locs
}

func (f *fakeGL) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeGL) CreateBuffer() gl.Buffer {
	f.record("CreateBuffer")
	f.nextBuffer++
	f.live[f.nextBuffer] = true
	return gl.Buffer{Value: f.nextBuffer}
}

func (f *fakeGL) DeleteBuffer(v gl.Buffer) {
	f.record("DeleteBuffer")
	delete(f.live, v.Value)
	f.deleted = append(f.deleted, v.Value)
}

func (f *fakeGL) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.record("BindBuffer")
	f.boundBuffer = b.Value
}

func (f *fakeGL) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	f.record("BufferData")
	f.uploads[f.boundBuffer] = append(f.uploads[f.boundBuffer], append([]byte(nil), src...))
}

func (f *fakeGL) BufferSubData(target gl.Enum, offset int, data []byte) {
	f.record("BufferSubData")
	f.uploads[f.boundBuffer] = append(f.uploads[f.boundBuffer], append([]byte(nil), data...))
}

func (f *fakeGL) CreateVertexArray() gl.VertexArray {
	f.record("CreateVertexArray")
	f.nextVAO++
	return gl.VertexArray{Value: f.nextVAO}
}

func (f *fakeGL) DeleteVertexArray(v gl.VertexArray) { f.record("DeleteVertexArray") }
func (f *fakeGL) BindVertexArray(v gl.VertexArray)   { f.record("BindVertexArray") }

func (f *fakeGL) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer")
	f.pointers[dst]++
}

func (f *fakeGL) EnableVertexAttribArray(a gl.Attrib)  { f.record("EnableVertexAttribArray") }
func (f *fakeGL) DisableVertexAttribArray(a gl.Attrib) { f.record("DisableVertexAttribArray") }

func (f *fakeGL) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	f.record("GetAttribLocation")
	if loc, ok := f.locations[int(p.Value)][name]; ok {
		return gl.Attrib{Value: uint(loc)}
	}
	return gl.Attrib{Value: ^uint(0)}
}

func (f *fakeGL) GetInteger(pname gl.Enum) int {
	if pname == gl.CURRENT_PROGRAM {
		return f.program
	}
	return 0
}

func (f *fakeGL) DrawArrays(mode gl.Enum, first, count int) {
	f.record("DrawArrays")
	f.drawn = count
}

func (f *fakeGL) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.record("DrawElements")
	f.drawn = count
	f.drawType = ty
}
