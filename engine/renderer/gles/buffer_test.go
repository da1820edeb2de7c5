package gles

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/gl"
)

func TestVersionedIncrementsOncePerDirtyTransition(t *testing.T) {
	v := NewVersioned()
	assert.True(t, v.NeedsUpdate())
	assert.Equal(t, uint64(0), v.Version())

	v.MarkDirty()
	assert.Equal(t, uint64(0), v.Version())

	v.MarkClean()
	v.MarkDirty()
	v.MarkDirty()
	assert.Equal(t, uint64(1), v.Version())

	v.SetNeedsUpdate(false)
	assert.False(t, v.NeedsUpdate())
	v.SetNeedsUpdate(true)
	assert.Equal(t, uint64(2), v.Version())
}

func TestBufferDataUploadLifecycle(t *testing.T) {
	glctx := newFakeGL()
	b := NewBufferData(memory.Float32Array{1, 2, 3}, StaticDraw, ArrayBuffer)

	assert.True(t, b.NeedsUpdate())
	assert.Equal(t, BufferUnallocated, b.State())

	b.Upload(glctx)
	assert.False(t, b.NeedsUpdate())
	assert.Equal(t, BufferClean, b.State())
	assert.Equal(t, 1, glctx.count("CreateBuffer"))
	assert.Equal(t, 1, glctx.count("BufferData"))
	require.Len(t, glctx.uploads[b.Handle().Value], 1)
	assert.Len(t, glctx.uploads[b.Handle().Value][0], 12)

	b.Upload(glctx)
	assert.Equal(t, 1, glctx.count("BufferData"), "clean buffers are not uploaded again")

	version := b.Version()
	b.MarkDirty()
	b.MarkDirty()
	assert.Equal(t, version+1, b.Version())
	assert.Equal(t, BufferDirty, b.State())

	b.Upload(glctx)
	assert.Equal(t, 1, glctx.count("CreateBuffer"))
	assert.Equal(t, 2, glctx.count("BufferData"))
}

func TestBufferDataSetDataMarksDirty(t *testing.T) {
	glctx := newFakeGL()
	b := NewBufferData(memory.Uint8Array{1}, DynamicDraw, ArrayBuffer)
	b.Upload(glctx)

	b.SetData(memory.Uint8Array{1, 2, 3, 4})
	assert.True(t, b.NeedsUpdate())
	assert.Equal(t, 4, b.ByteSize())

	b.SetData(nil)
	assert.Equal(t, 0, b.ByteSize())
}

func TestBufferDataReleaseDisposesOnce(t *testing.T) {
	glctx := newFakeGL()
	b := NewBufferData(memory.Float32Array{1}, StaticDraw, ArrayBuffer)
	b.Acquire()
	b.Acquire()
	b.Upload(glctx)
	handle := b.Handle()

	b.Release(glctx)
	assert.Equal(t, 0, glctx.count("DeleteBuffer"))
	b.Release(glctx)
	assert.Equal(t, 1, glctx.count("DeleteBuffer"))
	assert.Equal(t, []uint32{handle.Value}, glctx.deleted)

	b.Release(glctx)
	assert.Equal(t, 1, glctx.count("DeleteBuffer"))
	assert.Equal(t, 0, b.UsageCount())
	assert.Equal(t, BufferUnallocated, b.State())
	assert.True(t, b.NeedsUpdate())
}

func TestBufferDataDisposeWithoutHandle(t *testing.T) {
	glctx := newFakeGL()
	b := NewBufferData(memory.Float32Array{1}, StaticDraw, ArrayBuffer)

	b.Dispose(glctx)
	assert.Equal(t, 0, glctx.count("DeleteBuffer"))
	assert.Equal(t, gl.Buffer{}, b.Handle())
}

func TestBufferDataUpdateRange(t *testing.T) {
	glctx := newFakeGL()
	b := NewBufferData(memory.Uint8Array{1, 2, 3, 4}, StaticDraw, ElementArrayBuffer)

	err := b.UpdateRange(glctx, 2, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrOutOfRange))

	require.NoError(t, b.UpdateRange(glctx, 0, 2))
	assert.Equal(t, 1, glctx.count("BufferData"), "first update uploads everything")

	require.NoError(t, b.UpdateRange(glctx, 1, 2))
	assert.Equal(t, 1, glctx.count("BufferSubData"))
	uploads := glctx.uploads[b.Handle().Value]
	assert.Equal(t, []byte{2, 3}, uploads[len(uploads)-1])
}

func TestUsageAndTargetEnums(t *testing.T) {
	assert.Equal(t, gl.Enum(gl.STATIC_DRAW), StaticDraw.glEnum())
	assert.Equal(t, gl.Enum(gl.DYNAMIC_DRAW), DynamicDraw.glEnum())
	assert.Equal(t, gl.Enum(gl.STREAM_DRAW), StreamDraw.glEnum())
	assert.Equal(t, gl.Enum(gl.ARRAY_BUFFER), ArrayBuffer.glEnum())
	assert.Equal(t, gl.Enum(gl.ELEMENT_ARRAY_BUFFER), ElementArrayBuffer.glEnum())
	assert.Equal(t, "dirty", BufferDirty.String())
}
