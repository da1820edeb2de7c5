package loaders

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	stdmath "math"

	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/memory"
	"github.com/spaghettifunk/anima/engine/renderer/gles"
	"golang.org/x/mobile/exp/f32"
)

// Source is a buffered byte stream the mesh parser reads from.
// Peek blocks until n bytes are available or the stream ends.
// *bufio.Reader satisfies it.
type Source interface {
	io.Reader
	Peek(n int) ([]byte, error)
	Discard(n int) (int, error)
}

const (
	// MaxVAOVertices is the largest vertex count addressable by 16-bit indices.
	MaxVAOVertices = 65536

	vaoHeaderSize = 8
	scratchSize   = 4096
)

var gzipMagic = []byte{0x1f, 0x8b, 0x08}

/**
 * @brief Positions and triangle indices decoded from a .vao stream.
 */
type VAOMesh struct {
	/** @brief Interleaved x, y, z positions. */
	Positions []float32
	/** @brief Triangle list indices into Positions. */
	Indices []uint16
	/** @brief Byte order the stream was written in. */
	BigEndian bool
}

func (m *VAOMesh) NumVertices() int {
	return len(m.Positions) / 3
}

// ByteSize is the size of the decoded payload.
func (m *VAOMesh) ByteSize() int {
	return len(m.Positions)*4 + len(m.Indices)*2
}

// Geometry builds an indexed geometry over the mesh data. The slices are shared, not copied.
func (m *VAOMesh) Geometry(name string) (*gles.Geometry, error) {
	indices := gles.NewBufferData(memory.Uint16Array(m.Indices), gles.StaticDraw, gles.ElementArrayBuffer)
	g, err := gles.NewIndexedGeometry(name, indices, memory.Uint16, 0)
	if err != nil {
		return nil, err
	}
	positions := gles.NewBufferData(memory.Float32Array(m.Positions), gles.StaticDraw, gles.ArrayBuffer)
	attr, err := gles.NewBufferAttribute(positions, 3, memory.Float32)
	if err != nil {
		return nil, err
	}
	g.SetAttribute(gles.PositionAttribute, attr)
	return g, nil
}

// InvalidIndexError reports an index referencing a vertex that does not exist.
type InvalidIndexError struct {
	Index       int
	Position    int
	NumVertices int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("vao: index %d at position %d is out of range [0, %d)", e.Index, e.Position, e.NumVertices)
}

func (e *InvalidIndexError) Unwrap() error {
	return core.ErrInvalidIndex
}

// isBigEndian guesses the byte order from the vertex count field. Small counts
// written big endian start with two zero bytes. 00 01 00 00 is read as 65536.
func isBigEndian(h []byte) bool {
	if h[0] == 0 && h[1] == 0 {
		return true
	}
	return h[0] == 0 && h[1] == 1 && h[2] == 0 && h[3] == 0
}

// ParseVAO decodes a .vao stream, transparently inflating gzip input.
// The whole mesh is decoded or an error is returned. ctx is checked between chunks.
func ParseVAO(ctx context.Context, src Source) (*VAOMesh, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	magic, err := src.Peek(len(gzipMagic))
	if len(magic) == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty stream", core.ErrNoData)
		}
		return nil, err
	}
	if bytes.Equal(magic, gzipMagic) {
		zr, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("vao: open gzip stream: %w", err)
		}
		defer zr.Close()
		return ParseVAO(ctx, bufio.NewReaderSize(zr, scratchSize))
	}

	header, err := src.Peek(vaoHeaderSize)
	if len(header) < vaoHeaderSize {
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: header needs %d bytes, got %d", core.ErrInsufficientData, vaoHeaderSize, len(header))
	}
	mesh := &VAOMesh{BigEndian: isBigEndian(header)}
	var order binary.ByteOrder = binary.LittleEndian
	if mesh.BigEndian {
		order = binary.BigEndian
	}
	numVerts := int32(order.Uint32(header[0:4]))
	numIndices := int32(order.Uint32(header[4:8]))
	if _, err := src.Discard(vaoHeaderSize); err != nil {
		return nil, err
	}

	if numVerts < 0 || numIndices < 0 {
		return nil, fmt.Errorf("%w: negative counts %d vertices, %d indices", core.ErrUnsupportedEncoding, numVerts, numIndices)
	}
	if numVerts > MaxVAOVertices {
		return nil, fmt.Errorf("%w: %d vertices exceed %d", core.ErrUnsupportedEncoding, numVerts, MaxVAOVertices)
	}

	d := decoder{ctx: ctx, src: src, order: order, scratch: make([]byte, scratchSize)}
	if mesh.Positions, err = d.floats(int(numVerts) * 3); err != nil {
		return nil, err
	}
	if mesh.Indices, err = d.indices(int(numIndices), int(numVerts)); err != nil {
		return nil, err
	}
	return mesh, nil
}

// decoder streams fixed width values through a reusable scratch buffer.
type decoder struct {
	ctx     context.Context
	src     Source
	order   binary.ByteOrder
	scratch []byte
}

// next reads the next chunk of at most remaining values of width bytes.
func (d *decoder) next(what string, width, remaining, total int) ([]byte, error) {
	if err := d.ctx.Err(); err != nil {
		return nil, err
	}
	chunk := d.scratch[:min(remaining*width, len(d.scratch))]
	n, err := io.ReadFull(d.src, chunk)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			read := total - remaining + n/width
			return nil, fmt.Errorf("%w: expected %d %s, stream ended after %d", core.ErrInsufficientData, total, what, read)
		}
		return nil, err
	}
	return chunk, nil
}

func (d *decoder) floats(total int) ([]float32, error) {
	out := make([]float32, 0, total)
	for remaining := total; remaining > 0; {
		chunk, err := d.next("floats", 4, remaining, total)
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(chunk); i += 4 {
			out = append(out, stdmath.Float32frombits(d.order.Uint32(chunk[i:])))
		}
		remaining -= len(chunk) / 4
	}
	return out, nil
}

func (d *decoder) indices(total, numVerts int) ([]uint16, error) {
	out := make([]uint16, 0, min(total, 1<<20))
	for remaining := total; remaining > 0; {
		chunk, err := d.next("indices", 2, remaining, total)
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(chunk); i += 2 {
			idx := d.order.Uint16(chunk[i:])
			if int(idx) >= numVerts {
				return nil, &InvalidIndexError{Index: int(idx), Position: len(out), NumVertices: numVerts}
			}
			out = append(out, idx)
		}
		remaining -= len(chunk) / 2
	}
	return out, nil
}

// LoadVAO parses a .vao stream into an indexed geometry named name.
func LoadVAO(ctx context.Context, name string, r io.Reader) (*gles.Geometry, error) {
	src, ok := r.(Source)
	if !ok {
		src = bufio.NewReaderSize(r, scratchSize)
	}
	mesh, err := ParseVAO(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return mesh.Geometry(name)
}

// EncodeVAO writes mesh in the .vao layout using order.
func EncodeVAO(w io.Writer, mesh *VAOMesh, order binary.ByteOrder) error {
	if len(mesh.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d position floats is not a multiple of 3", core.ErrInvalidArgument, len(mesh.Positions))
	}
	if mesh.NumVertices() > MaxVAOVertices {
		return fmt.Errorf("%w: %d vertices exceed %d", core.ErrUnsupportedEncoding, mesh.NumVertices(), MaxVAOVertices)
	}
	header := []int32{int32(mesh.NumVertices()), int32(len(mesh.Indices))}
	if err := binary.Write(w, order, header); err != nil {
		return err
	}
	if _, err := w.Write(f32.Bytes(order, mesh.Positions...)); err != nil {
		return err
	}
	return binary.Write(w, order, mesh.Indices)
}
