package inputs

// Cursor is the pointer position in normalized surface coordinates.
// The top-left corner of the surface is (-1, 1) and the bottom-right is (1, -1).
type Cursor struct {
	X float32
	Y float32
}

// Normalize maps a pointer offset in surface pixels to normalized coordinates.
// Positions outside the surface are not clamped.
func Normalize(offsetX, offsetY, width, height float64) Cursor {
	return Cursor{
		X: float32((offsetX/width)*2 - 1),
		Y: float32((offsetY/height)*-2 + 1),
	}
}

// CursorTracker keeps the latest cursor position for the frame loop.
// It is written by the window's pointer callback and read by the frame tick,
// both on the main thread, so it carries no lock.
type CursorTracker struct {
	pos Cursor
}

// Move records a pointer-move event at (offsetX, offsetY) over a surface of
// the given size. Events on a zero-sized surface are ignored.
func (t *CursorTracker) Move(offsetX, offsetY float64, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	t.pos = Normalize(offsetX, offsetY, float64(width), float64(height))
}

// Position returns the last recorded cursor position.
func (t *CursorTracker) Position() Cursor {
	return t.pos
}
