package geometry

import (
	"errors"
	"fmt"
)

// Vertex layout shared by the buffer upload and the attribute bindings.
const (
	PosComponents   = 2
	ColorComponents = 3
	FloatsPerVertex = PosComponents + ColorComponents
	Stride          = FloatsPerVertex * 4
	PosOffset       = 0
	ColorOffset     = PosComponents * 4
)

// ErrIndexOutOfRange is returned by Validate when an index names a missing vertex.
var ErrIndexOutOfRange = errors.New("face index out of range")

// Vertex is one corner of the screen quad.
type Vertex struct {
	Pos   [2]float32
	Color [3]float32
}

// quad covers normalized device coordinates, each corner carrying its own color.
var quad = [4]Vertex{
	{Pos: [2]float32{-1, -1}, Color: [3]float32{1, 0, 0}},
	{Pos: [2]float32{+1, -1}, Color: [3]float32{0, 1, 0}},
	{Pos: [2]float32{+1, +1}, Color: [3]float32{0, 0, 1}},
	{Pos: [2]float32{-1, +1}, Color: [3]float32{1, 1, 1}},
}

// FaceIndices describes the two triangles covering the quad.
var FaceIndices = [6]uint16{
	0, 1, 2,
	0, 2, 3,
}

// Quad returns a copy of the screen quad vertices.
func Quad() [4]Vertex {
	return quad
}

// Interleave flattens vertices into the position+color buffer layout.
func Interleave(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*FloatsPerVertex)
	for _, v := range vertices {
		out = append(out, v.Pos[0], v.Pos[1], v.Color[0], v.Color[1], v.Color[2])
	}
	return out
}

// Validate checks that every index refers to one of vertexCount vertices.
func Validate(indices []uint16, vertexCount int) error {
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("index %d is %d, only %d vertices: %w", i, idx, vertexCount, ErrIndexOutOfRange)
		}
	}
	return nil
}
