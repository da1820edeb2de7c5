package gles

import (
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/memory"
	"golang.org/x/mobile/gl"
)

// Usage is the expected update pattern of a buffer.
type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
	StreamDraw
)

func (u Usage) glEnum() gl.Enum {
	switch u {
	case DynamicDraw:
		return gl.DYNAMIC_DRAW
	case StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

// Target is the binding point of a buffer.
type Target int

const (
	ArrayBuffer Target = iota
	ElementArrayBuffer
)

func (t Target) glEnum() gl.Enum {
	if t == ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

// BufferState is the GPU residency of a BufferData.
type BufferState int

const (
	// BufferUnallocated has no GPU handle.
	BufferUnallocated BufferState = iota
	// BufferClean has a GPU handle holding the current data.
	BufferClean
	// BufferDirty has a GPU handle holding stale data.
	BufferDirty
)

func (s BufferState) String() string {
	switch s {
	case BufferClean:
		return "clean"
	case BufferDirty:
		return "dirty"
	default:
		return "unallocated"
	}
}

/**
 * @brief CPU side contents of one GPU buffer plus its upload state.
 * The GPU handle is created on first upload and deleted when the last
 * user releases the buffer.
 */
type BufferData struct {
	data       memory.Bufferable
	usage      Usage
	target     Target
	versioned  Versioned
	handle     gl.Buffer
	usageCount int
}

func NewBufferData(data memory.Bufferable, usage Usage, target Target) *BufferData {
	if data == nil {
		data = memory.Empty
	}
	return &BufferData{
		data:      data,
		usage:     usage,
		target:    target,
		versioned: NewVersioned(),
	}
}

func (b *BufferData) Data() memory.Bufferable { return b.data }
func (b *BufferData) ByteSize() int           { return b.data.ByteSize() }
func (b *BufferData) Usage() Usage            { return b.usage }
func (b *BufferData) Target() Target          { return b.target }
func (b *BufferData) Handle() gl.Buffer       { return b.handle }
func (b *BufferData) UsageCount() int         { return b.usageCount }
func (b *BufferData) NeedsUpdate() bool       { return b.versioned.NeedsUpdate() }
func (b *BufferData) Version() uint64         { return b.versioned.Version() }

// MarkDirty records that the data changed and must be uploaded again.
func (b *BufferData) MarkDirty() {
	b.versioned.MarkDirty()
}

// SetData replaces the contents and marks the buffer dirty.
func (b *BufferData) SetData(data memory.Bufferable) {
	if data == nil {
		data = memory.Empty
	}
	b.data = data
	b.versioned.MarkDirty()
}

func (b *BufferData) State() BufferState {
	switch {
	case b.handle.Value == 0:
		return BufferUnallocated
	case b.versioned.NeedsUpdate():
		return BufferDirty
	default:
		return BufferClean
	}
}

// Bind binds the buffer to its target, creating the GPU handle if needed.
func (b *BufferData) Bind(glctx Context) {
	if b.handle.Value == 0 {
		b.handle = glctx.CreateBuffer()
	}
	glctx.BindBuffer(b.target.glEnum(), b.handle)
}

// Upload sends the full contents to the GPU when they are dirty. It leaves
// the buffer bound to its target.
func (b *BufferData) Upload(glctx Context) {
	if !b.versioned.NeedsUpdate() && b.handle.Value != 0 {
		return
	}
	b.Bind(glctx)
	glctx.BufferData(b.target.glEnum(), b.data.Bytes(), b.usage.glEnum())
	b.versioned.MarkClean()
}

// UpdateRange re-sends length bytes at offset with BufferSubData. Buffers that
// were never uploaded get a full upload instead.
func (b *BufferData) UpdateRange(glctx Context, offset, length int) error {
	if err := core.CheckRange("update", offset, length, b.data.ByteSize()); err != nil {
		return err
	}
	if b.handle.Value == 0 {
		b.Upload(glctx)
		return nil
	}
	b.Bind(glctx)
	glctx.BufferSubData(b.target.glEnum(), offset, b.data.Bytes()[offset:offset+length])
	return nil
}

// Dispose deletes the GPU handle if one exists. The data stays and is
// uploaded again on next use.
func (b *BufferData) Dispose(glctx Context) {
	if b.handle.Value != 0 {
		glctx.DeleteBuffer(b.handle)
		b.handle = gl.Buffer{}
		core.LogDebug("deleted %d byte buffer", b.data.ByteSize())
	}
	b.versioned.MarkDirty()
}

// Acquire registers one more user of the buffer.
func (b *BufferData) Acquire() {
	b.usageCount++
}

// Release drops one user and disposes the buffer when none are left.
// Releasing an unused buffer does nothing.
func (b *BufferData) Release(glctx Context) {
	if b.usageCount <= 0 {
		return
	}
	b.usageCount--
	if b.usageCount == 0 {
		b.Dispose(glctx)
	}
}
