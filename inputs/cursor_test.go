package inputs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCorners(t *testing.T) {
	assert.Equal(t, Cursor{X: -1, Y: 1}, Normalize(0, 0, 800, 600))
	assert.Equal(t, Cursor{X: 1, Y: -1}, Normalize(800, 600, 800, 600))
	assert.Equal(t, Cursor{X: 0, Y: 0}, Normalize(400, 300, 800, 600))
}

func TestNormalizeInBounds(t *testing.T) {
	const w, h = 640.0, 480.0
	for x := 0.0; x <= w; x += 37 {
		for y := 0.0; y <= h; y += 29 {
			c := Normalize(x, y, w, h)
			assert.GreaterOrEqual(t, c.X, float32(-1))
			assert.LessOrEqual(t, c.X, float32(1))
			assert.GreaterOrEqual(t, c.Y, float32(-1))
			assert.LessOrEqual(t, c.Y, float32(1))
		}
	}
}

func TestNormalizeOutOfBounds(t *testing.T) {
	c := Normalize(-100, 700, 200, 350)
	assert.Equal(t, float32(-2), c.X)
	assert.Equal(t, float32(-3), c.Y)
}

func TestCursorTracker(t *testing.T) {
	var tr CursorTracker
	assert.Equal(t, Cursor{}, tr.Position())

	tr.Move(0, 0, 100, 100)
	assert.Equal(t, Cursor{X: -1, Y: 1}, tr.Position())

	tr.Move(100, 100, 100, 100)
	assert.Equal(t, Cursor{X: 1, Y: -1}, tr.Position())

	// zero-sized surfaces keep the previous position
	tr.Move(50, 50, 0, 100)
	assert.Equal(t, Cursor{X: 1, Y: -1}, tr.Position())
}

func TestNewUniforms(t *testing.T) {
	u := NewUniforms(10000, Cursor{X: 0.25, Y: -0.5}, 1280, 720)
	assert.Equal(t, float32(2), u.Time)
	assert.Equal(t, [2]float32{0.25, -0.5}, u.Cursor)
	assert.Equal(t, [2]float32{1280, 720}, u.Resolution)
}
