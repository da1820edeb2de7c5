package gles

import (
	"fmt"
	"maps"
	stdmath "math"
	"slices"

	"github.com/google/uuid"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/spaghettifunk/anima/engine/math"
	"github.com/spaghettifunk/anima/engine/memory"
	"github.com/spaghettifunk/anima/engine/views"
	"golang.org/x/mobile/gl"
)

// PositionAttribute is the attribute bounding volumes are computed from.
const PositionAttribute = "position"

// boundAttribute is an attribute currently wired into the vertex array object.
type boundAttribute struct {
	attr  *BufferAttribute
	loc   gl.Attrib
	valid bool
}

type elementBuffer struct {
	buffer   *BufferData
	typ      memory.NumberType
	glType   gl.Enum
	offset   int
	acquired bool
}

/**
 * @brief A set of named vertex attributes drawn together through one vertex array object.
 * Attribute bindings are reconciled with the GPU state on every Render.
 * Must only be used from the render goroutine.
 */
type Geometry struct {
	/** @brief Unique identifier of the geometry. */
	ID uuid.UUID
	/** @brief Display name, used in logs. */
	Name string
	/** @brief Primitive draw mode, gl.TRIANGLES by default. */
	Mode gl.Enum

	attributes map[string]*BufferAttribute
	count      int
	hasCount   bool

	vao     gl.VertexArray
	program gl.Program
	bound   map[string]boundAttribute

	elements *elementBuffer

	box    *math.Extents3D
	sphere *math.Sphere
}

func NewGeometry(name string) *Geometry {
	return &Geometry{
		ID:         uuid.New(),
		Name:       name,
		Mode:       gl.TRIANGLES,
		attributes: make(map[string]*BufferAttribute),
		bound:      make(map[string]boundAttribute),
	}
}

// NewIndexedGeometry creates a geometry drawn with DrawElements over indices.
// typ must be an unsigned integer type and offset a multiple of its size.
func NewIndexedGeometry(name string, indices *BufferData, typ memory.NumberType, offset int) (*Geometry, error) {
	if indices == nil {
		return nil, fmt.Errorf("%w: nil index buffer", core.ErrInvalidArgument)
	}
	if indices.Target() != ElementArrayBuffer {
		return nil, fmt.Errorf("%w: index buffer must target the element array", core.ErrInvalidArgument)
	}
	switch typ {
	case memory.Uint8, memory.Uint16, memory.Uint32:
	default:
		return nil, fmt.Errorf("%w: index type %s", core.ErrInvalidArgument, typ)
	}
	if offset < 0 || offset%typ.Size() != 0 {
		return nil, fmt.Errorf("%w: index offset %d must be a non-negative multiple of %d", core.ErrInvalidArgument, offset, typ.Size())
	}
	glt, err := glType(typ)
	if err != nil {
		return nil, err
	}
	g := NewGeometry(name)
	g.elements = &elementBuffer{buffer: indices, typ: typ, glType: glt, offset: offset}
	return g, nil
}

// Indexed reports whether the geometry draws through an element buffer.
func (g *Geometry) Indexed() bool {
	return g.elements != nil
}

// Indices returns the element buffer, or nil for non-indexed geometries.
func (g *Geometry) Indices() *BufferData {
	if g.elements == nil {
		return nil
	}
	return g.elements.buffer
}

// SetAttribute stores attr under name. A nil attr removes the name.
// Changes reach the GPU on the next Render.
func (g *Geometry) SetAttribute(name string, attr *BufferAttribute) {
	if attr == nil {
		g.RemoveAttribute(name)
		return
	}
	g.attributes[name] = attr
	if name == PositionAttribute {
		g.InvalidateBounds()
	}
}

func (g *Geometry) RemoveAttribute(name string) {
	delete(g.attributes, name)
	if name == PositionAttribute {
		g.InvalidateBounds()
	}
}

func (g *Geometry) Attribute(name string) (*BufferAttribute, bool) {
	a, ok := g.attributes[name]
	return a, ok
}

// AttributeNames returns the attribute names in sorted order.
func (g *Geometry) AttributeNames() []string {
	return slices.Sorted(maps.Keys(g.attributes))
}

// Bound reports whether name is currently wired into the vertex array object.
func (g *Geometry) Bound(name string) bool {
	_, ok := g.bound[name]
	return ok
}

// VertexArray returns the GPU handle, zero when not created.
func (g *Geometry) VertexArray() gl.VertexArray {
	return g.vao
}

// SetCount fixes the number of drawn elements. A negative n restores the derived count.
func (g *Geometry) SetCount(n int) {
	g.count = n
	g.hasCount = n >= 0
}

// Count is the number of elements drawn. Unless fixed with SetCount, it is
// the index count for indexed geometries and the smallest attribute count otherwise.
func (g *Geometry) Count() int {
	if g.hasCount {
		return g.count
	}
	if g.elements != nil {
		n := (g.elements.buffer.ByteSize() - g.elements.offset) / g.elements.typ.Size()
		return max(n, 0)
	}
	if len(g.attributes) == 0 {
		return 0
	}
	n := stdmath.MaxInt
	for _, a := range g.attributes {
		n = min(n, a.Count())
	}
	return n
}

// Create builds a new vertex array object from the current attributes,
// resolving locations against the program in use.
func (g *Geometry) Create(glctx Context) {
	g.Dispose(glctx)

	g.program = currentProgram(glctx)
	g.vao = glctx.CreateVertexArray()
	glctx.BindVertexArray(g.vao)
	defer glctx.BindVertexArray(gl.VertexArray{})

	for _, name := range g.AttributeNames() {
		g.bindAttribute(glctx, name, g.attributes[name])
	}
	if g.elements != nil {
		g.elements.buffer.Acquire()
		g.elements.acquired = true
		g.elements.buffer.Upload(glctx)
		g.elements.buffer.Bind(glctx)
	}
}

func (g *Geometry) bindAttribute(glctx Context, name string, attr *BufferAttribute) {
	attr.buffer.Acquire()
	attr.buffer.Upload(glctx)
	b := boundAttribute{attr: attr}
	if g.program.Init {
		b.loc = glctx.GetAttribLocation(g.program, name)
		b.valid = validAttrib(b.loc)
	}
	if b.valid {
		attr.pointer(glctx, b.loc)
	} else {
		core.LogDebug("geometry %s: attribute %s is not used by the current program", g.Name, name)
	}
	g.bound[name] = b
}

// updateForRender reconciles the bound attributes with the current ones.
func (g *Geometry) updateForRender(glctx Context) {
	if g.vao.Value == 0 {
		g.Create(glctx)
		return
	}
	glctx.BindVertexArray(g.vao)
	defer glctx.BindVertexArray(gl.VertexArray{})

	for _, name := range slices.Sorted(maps.Keys(g.bound)) {
		b := g.bound[name]
		if cur, ok := g.attributes[name]; ok && cur.Equal(b.attr) {
			continue
		}
		if b.valid {
			glctx.DisableVertexAttribArray(b.loc)
		}
		b.attr.buffer.Release(glctx)
		delete(g.bound, name)
	}

	program := currentProgram(glctx)
	if program == g.program {
		for _, b := range g.bound {
			if b.attr.NeedsUpdate() {
				b.attr.buffer.Upload(glctx)
			}
		}
	} else {
		g.program = program
		for _, name := range slices.Sorted(maps.Keys(g.bound)) {
			b := g.bound[name]
			b.attr.buffer.Upload(glctx)
			b.loc, b.valid = gl.Attrib{}, false
			if program.Init {
				b.loc = glctx.GetAttribLocation(program, name)
				b.valid = validAttrib(b.loc)
			}
			if b.valid {
				b.attr.pointer(glctx, b.loc)
			}
			g.bound[name] = b
		}
	}

	for _, name := range g.AttributeNames() {
		if _, ok := g.bound[name]; !ok {
			g.bindAttribute(glctx, name, g.attributes[name])
		}
	}

	if g.elements != nil && g.elements.buffer.NeedsUpdate() {
		g.elements.buffer.Upload(glctx)
	}
}

// Render brings the GPU state up to date and draws the geometry.
func (g *Geometry) Render(glctx Context) {
	g.updateForRender(glctx)

	n := g.Count()
	if n <= 0 {
		return
	}
	glctx.BindVertexArray(g.vao)
	if g.elements != nil {
		glctx.DrawElements(g.Mode, n, g.elements.glType, g.elements.offset)
	} else {
		glctx.DrawArrays(g.Mode, 0, n)
	}
	glctx.BindVertexArray(gl.VertexArray{})
}

// Dispose releases every buffer reference and deletes the vertex array object.
// The geometry can be rendered again afterwards.
func (g *Geometry) Dispose(glctx Context) {
	for name, b := range g.bound {
		b.attr.buffer.Release(glctx)
		delete(g.bound, name)
	}
	if g.elements != nil && g.elements.acquired {
		g.elements.buffer.Release(glctx)
		g.elements.acquired = false
	}
	if g.vao.Value != 0 {
		glctx.DeleteVertexArray(g.vao)
		g.vao = gl.VertexArray{}
	}
	g.program = gl.Program{}
}

// InvalidateBounds drops the cached bounding volumes.
func (g *Geometry) InvalidateBounds() {
	g.box = nil
	g.sphere = nil
}

// positions visits the vertices the geometry actually draws.
func (g *Geometry) positions() (*views.Vector3View, error) {
	pos, ok := g.attributes[PositionAttribute]
	if !ok {
		return nil, fmt.Errorf("%w: geometry %q has no %q attribute", core.ErrMissingAttribute, g.Name, PositionAttribute)
	}
	if g.elements == nil {
		return pos.Vectors3(views.Range(min(g.Count(), pos.Count())))
	}
	iv, err := views.NewIntView(g.elements.buffer.Data(), g.elements.typ, g.elements.offset, g.Count())
	if err != nil {
		return nil, err
	}
	n := pos.Count()
	for i := 0; i < iv.Len(); i++ {
		if ix := int(iv.Get(i)); ix < 0 || ix >= n {
			return nil, fmt.Errorf("%w: geometry %q index %d at position %d, only %d vertices", core.ErrInvalidIndex, g.Name, ix, i, n)
		}
	}
	return pos.Vectors3(views.FromIntView(iv))
}

// BoundingBox returns the extents of the drawn vertices, computed once and cached.
func (g *Geometry) BoundingBox() (math.Extents3D, error) {
	if g.box != nil {
		return *g.box, nil
	}
	vecs, err := g.positions()
	if err != nil {
		return math.Extents3D{}, err
	}
	box := math.EmptyExtents3D()
	for i := 0; i < vecs.Len(); i++ {
		box.Expand(vecs.Get(i))
	}
	g.box = &box
	return box, nil
}

// BoundingSphere returns a sphere centered on the bounding box that encloses the drawn vertices.
func (g *Geometry) BoundingSphere() (math.Sphere, error) {
	if g.sphere != nil {
		return *g.sphere, nil
	}
	box, err := g.BoundingBox()
	if err != nil {
		return math.Sphere{}, err
	}
	sphere := math.Sphere{}
	if !box.IsEmpty() {
		vecs, err := g.positions()
		if err != nil {
			return math.Sphere{}, err
		}
		center := box.Center()
		var maxSq float32
		for i := 0; i < vecs.Len(); i++ {
			d := vecs.Get(i).Sub(center)
			maxSq = max(maxSq, d.Dot(d))
		}
		sphere = math.Sphere{Center: center, Radius: float32(stdmath.Sqrt(float64(maxSq)))}
	}
	g.sphere = &sphere
	return sphere, nil
}
