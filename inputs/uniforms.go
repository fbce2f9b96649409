package inputs

// TimeScale converts elapsed milliseconds into the slow-moving u_time value.
const TimeScale = 5000.0

// Uniforms holds the per-frame values pushed into the shader program.
type Uniforms struct {
	Time       float32
	Cursor     [2]float32
	Resolution [2]float32
}

// NewUniforms builds the uniform snapshot for one frame.
func NewUniforms(elapsedMillis float64, cursor Cursor, width, height int) *Uniforms {
	return &Uniforms{
		Time:       float32(elapsedMillis / TimeScale),
		Cursor:     [2]float32{cursor.X, cursor.Y},
		Resolution: [2]float32{float32(width), float32(height)},
	}
}
