package shader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcesDeclareContract(t *testing.T) {
	vs := Source(Vertex)
	assert.Contains(t, vs, "in vec2 a_pos;")
	assert.Contains(t, vs, "in vec3 a_color;")

	fs := Source(Fragment)
	assert.Contains(t, fs, "uniform float u_time;")
	assert.Contains(t, fs, "uniform vec2  u_cursor;")
	assert.Contains(t, fs, "uniform vec2  iResolution;")
	assert.Contains(t, fs, "out vec4 FragColor;")
	assert.Contains(t, fs, "vec4(finalColor, 1.0)")

	for _, src := range []string{vs, fs} {
		assert.True(t, strings.HasPrefix(src, "#version 300 es\n"))
	}
	assert.NotEqual(t, vs, fs)
}

func TestPalettePeriodic(t *testing.T) {
	for _, tv := range []float32{0, 0.3, 1.7, -2.25} {
		a, b := Palette(tv), Palette(tv+1)
		assert.True(t, a.ApproxEqualThreshold(b, 1e-3), "palette(%v) = %v, palette(%v) = %v", tv, a, tv+1, b)
	}
}

func TestPaletteBounds(t *testing.T) {
	for tv := float32(-3); tv < 3; tv += 0.05 {
		c := Palette(tv)
		assert.InDelta(t, 1.0, c.X(), 0.5+1e-5)
		assert.InDelta(t, 0.5, c.Y(), 1.0+1e-5)
		assert.InDelta(t, 0.5, c.Z(), 0.5+1e-5)
	}
}

func TestShadeDeterministic(t *testing.T) {
	res := mgl32.Vec2{640, 360}
	for _, frag := range []mgl32.Vec2{{0.5, 0.5}, {100.5, 200.5}, {639.5, 359.5}} {
		for _, tv := range []float32{0, 0.25, 3.9} {
			first := Shade(frag, res, tv)
			second := Shade(frag, res, tv)
			assert.Equal(t, first, second)
			assert.Equal(t, float32(1), first.W())
		}
	}
}

func TestShadeMatchesFormula(t *testing.T) {
	res := mgl32.Vec2{400, 300}
	frag := mgl32.Vec2{123.5, 45.5}
	const tv = float32(0.7)

	// Step through the two folds by hand.
	uv := mgl32.Vec2{(2*frag.X() - res.X()) / 300, (2*frag.Y() - res.Y()) / 300}
	r0 := uv.Len()
	var want mgl32.Vec3
	for i := 0; i < 2; i++ {
		uv = mgl32.Vec2{fract(uv.X()*1.5) - 0.5, fract(uv.Y()*1.5) - 0.5}
		d := uv.Len() * exp(-r0)
		col := Palette(r0 + float32(i)*0.4 + tv*0.4)
		d = abs(sin(d*8+tv) / 8)
		d = (0.02 / d) * (0.02 / d)
		want = want.Add(col.Mul(d))
	}

	got := Shade(frag, res, tv)
	assert.True(t, got.Vec3().ApproxEqualThreshold(want, 1e-3), "got %v want %v", got, want)
}

func TestShadeVariesWithTime(t *testing.T) {
	res := mgl32.Vec2{320, 240}
	frag := mgl32.Vec2{40.5, 80.5}
	assert.NotEqual(t, Shade(frag, res, 0), Shade(frag, res, 1))
}

func TestErrors(t *testing.T) {
	var err error = fmt.Errorf("build: %w", &CompileError{Stage: Fragment, Log: "0:12: syntax error"})
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Fragment, ce.Stage)
	assert.Contains(t, err.Error(), "failed to compile fragment shader: 0:12: syntax error")

	err = &LinkError{Log: "varying mismatch"}
	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "failed to link program: varying mismatch", err.Error())
}
