package renderer

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// device is the slice of the GL API used on every frame.
type device interface {
	UseProgram(program uint32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)
	Viewport(x, y, width, height int32)
	BindVertexArray(vao uint32)
	DrawElements(mode uint32, count int32, indexType uint32, offset int)
}

// glDevice forwards to the current OpenGL context.
type glDevice struct{}

func (glDevice) UseProgram(program uint32)              { gl.UseProgram(program) }
func (glDevice) Uniform1f(location int32, v float32)    { gl.Uniform1f(location, v) }
func (glDevice) Uniform2f(location int32, x, y float32) { gl.Uniform2f(location, x, y) }
func (glDevice) Viewport(x, y, width, height int32)     { gl.Viewport(x, y, width, height) }
func (glDevice) BindVertexArray(vao uint32)             { gl.BindVertexArray(vao) }

func (glDevice) DrawElements(mode uint32, count int32, indexType uint32, offset int) {
	gl.DrawElements(mode, count, indexType, gl.PtrOffset(offset))
}
