package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Palette coefficients, see palette() in the fragment source.
var (
	paletteA = mgl32.Vec3{1.0, 0.5, 0.5}
	paletteB = mgl32.Vec3{0.5, 1.0, 0.5}
	paletteC = mgl32.Vec3{1.0, 1.0, 1.0}
	paletteD = mgl32.Vec3{0.263, 0.416, 0.557}
)

const (
	foldScale  = 1.5
	foldSteps  = 2
	bandFreq   = 8.0
	glowRadius = 0.02
)

// Palette maps t to a color with the cosine palette used by the fragment stage.
func Palette(t float32) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := range out {
		out[i] = paletteA[i] + paletteB[i]*cos(6.28318*(paletteC[i]*t+paletteD[i]))
	}
	return out
}

// Shade evaluates the fragment stage on the CPU for one pixel. The result
// depends only on its arguments.
func Shade(fragCoord, resolution mgl32.Vec2, t float32) mgl32.Vec4 {
	minRes := min(resolution.X(), resolution.Y())
	uv := fragCoord.Mul(2).Sub(resolution).Mul(1 / minRes)
	uv0 := uv
	r0 := uv0.Len()

	var color mgl32.Vec3
	for i := 0; i < foldSteps; i++ {
		uv = fract2(uv.Mul(foldScale)).Sub(mgl32.Vec2{0.5, 0.5})

		d := uv.Len() * exp(-r0)
		col := Palette(r0 + float32(i)*0.4 + t*0.4)

		d = abs(sin(d*bandFreq+t) / bandFreq)
		d = pow(glowRadius/d, 2)

		color = color.Add(col.Mul(d))
	}
	return color.Vec4(1)
}

func fract2(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{fract(v[0]), fract(v[1])}
}

func fract(x float32) float32 { return x - float32(math.Floor(float64(x))) }
func cos(x float32) float32   { return float32(math.Cos(float64(x))) }
func sin(x float32) float32   { return float32(math.Sin(float64(x))) }
func exp(x float32) float32   { return float32(math.Exp(float64(x))) }
func abs(x float32) float32   { return float32(math.Abs(float64(x))) }

func pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}
