package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	geometry "github.com/richinsley/palettefold/geometry"
)

// quadBuffers holds the static screen quad uploaded once at startup.
type quadBuffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

func uploadQuad(p *Program) (*quadBuffers, error) {
	vertices := geometry.Quad()
	indices := geometry.FaceIndices[:]
	if err := geometry.Validate(indices, len(vertices)); err != nil {
		return nil, fmt.Errorf("invalid quad geometry: %w", err)
	}
	data := geometry.Interleave(vertices[:])

	q := &quadBuffers{indexCount: int32(len(indices))}
	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)

	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &q.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)

	bindAttribute(p.posLoc, geometry.PosComponents, geometry.PosOffset)
	bindAttribute(p.colorLoc, geometry.ColorComponents, geometry.ColorOffset)

	// The element buffer binding is VAO state; only unbind the array buffer.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return q, nil
}

func bindAttribute(location int32, components int32, offset int) {
	if location < 0 {
		return
	}
	gl.EnableVertexAttribArray(uint32(location))
	gl.VertexAttribPointer(uint32(location), components, gl.FLOAT, false, geometry.Stride, gl.PtrOffset(offset))
}

func (q *quadBuffers) destroy() {
	gl.DeleteBuffers(1, &q.vbo)
	gl.DeleteBuffers(1, &q.ebo)
	gl.DeleteVertexArrays(1, &q.vao)
}
