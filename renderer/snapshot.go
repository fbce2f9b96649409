package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	shader "github.com/richinsley/palettefold/shader"
	"golang.org/x/sync/errgroup"
)

// Snapshot evaluates the fragment field on the CPU for a width x height image
// at shader time t. Pixel centers follow GL conventions, so row 0 of the image
// is the top of the framebuffer.
func Snapshot(width, height int, t float32) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid snapshot size %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	res := mgl32.Vec2{float32(width), float32(height)}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for y := 0; y < height; y++ {
		g.Go(func() error {
			fragY := float32(height-1-y) + 0.5
			row := img.Pix[y*img.Stride : y*img.Stride+width*4]
			for x := 0; x < width; x++ {
				c := shader.Shade(mgl32.Vec2{float32(x) + 0.5, fragY}, res, t)
				row[x*4+0] = toByte(c.X())
				row[x*4+1] = toByte(c.Y())
				row[x*4+2] = toByte(c.Z())
				row[x*4+3] = toByte(c.W())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

// toByte clamps like a normalized fixed-point color attachment.
func toByte(v float32) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// WritePNG writes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
