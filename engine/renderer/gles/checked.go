package gles

import "golang.org/x/mobile/gl"

func (c *checkedContext) CreateBuffer() gl.Buffer {
	c.t.Check()
	return c.gl.CreateBuffer()
}

func (c *checkedContext) DeleteBuffer(v gl.Buffer) {
	c.t.Check()
	c.gl.DeleteBuffer(v)
}

func (c *checkedContext) BindBuffer(target gl.Enum, b gl.Buffer) {
	c.t.Check()
	c.gl.BindBuffer(target, b)
}

func (c *checkedContext) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	c.t.Check()
	c.gl.BufferData(target, src, usage)
}

func (c *checkedContext) BufferSubData(target gl.Enum, offset int, data []byte) {
	c.t.Check()
	c.gl.BufferSubData(target, offset, data)
}

func (c *checkedContext) CreateVertexArray() gl.VertexArray {
	c.t.Check()
	return c.gl.CreateVertexArray()
}

func (c *checkedContext) DeleteVertexArray(v gl.VertexArray) {
	c.t.Check()
	c.gl.DeleteVertexArray(v)
}

func (c *checkedContext) BindVertexArray(rb gl.VertexArray) {
	c.t.Check()
	c.gl.BindVertexArray(rb)
}

func (c *checkedContext) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	c.t.Check()
	c.gl.VertexAttribPointer(dst, size, ty, normalized, stride, offset)
}

func (c *checkedContext) EnableVertexAttribArray(a gl.Attrib) {
	c.t.Check()
	c.gl.EnableVertexAttribArray(a)
}

func (c *checkedContext) DisableVertexAttribArray(a gl.Attrib) {
	c.t.Check()
	c.gl.DisableVertexAttribArray(a)
}

func (c *checkedContext) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	c.t.Check()
	return c.gl.GetAttribLocation(p, name)
}

func (c *checkedContext) GetInteger(pname gl.Enum) int {
	c.t.Check()
	return c.gl.GetInteger(pname)
}

func (c *checkedContext) DrawArrays(mode gl.Enum, first, count int) {
	c.t.Check()
	c.gl.DrawArrays(mode, first, count)
}

func (c *checkedContext) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	c.t.Check()
	c.gl.DrawElements(mode, count, ty, offset)
}
