package renderer

import (
	"context"
	"fmt"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	graphics "github.com/richinsley/palettefold/graphics"
	inputs "github.com/richinsley/palettefold/inputs"
	scheduler "github.com/richinsley/palettefold/scheduler"
)

// Ensures gl.Init() is called only once.
var glInitOnce sync.Once

type Renderer struct {
	context           graphics.Context
	dev               device
	cursor            *inputs.CursorTracker
	program           *Program
	quad              *quadBuffers
	offscreenRenderer *OffscreenRenderer
	width             int
	height            int
	recordMode        bool
}

// NewRenderer binds a renderer to ctx. In record mode frames go to an
// offscreen framebuffer of the given size instead of the window.
func NewRenderer(width, height int, recordMode bool, ctx graphics.Context, cursor *inputs.CursorTracker) (*Renderer, error) {
	if cursor == nil {
		cursor = &inputs.CursorTracker{}
	}
	r := &Renderer{
		context:    ctx,
		dev:        glDevice{},
		cursor:     cursor,
		width:      width,
		height:     height,
		recordMode: recordMode,
	}

	// Make the context current BEFORE initializing OpenGL.
	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if recordMode {
		var err error
		r.offscreenRenderer, err = NewOffscreenRenderer(width, height)
		if err != nil {
			return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
		}
	}
	return r, nil
}

// InitScene builds the shader program and uploads the screen quad.
func (r *Renderer) InitScene() error {
	program, err := buildProgram(r.context.IsGLES())
	if err != nil {
		return err
	}
	r.program = program

	r.quad, err = uploadQuad(program)
	if err != nil {
		return err
	}
	log.Printf("Scene ready: program %d, %d indices", program.ID, r.quad.indexCount)
	return nil
}

func (r *Renderer) Shutdown() {
	if r.quad != nil {
		r.quad.destroy()
	}
	if r.program != nil {
		gl.DeleteProgram(r.program.ID)
	}
	if r.offscreenRenderer != nil {
		r.offscreenRenderer.Destroy()
	}
}

// RenderFrame pushes the frame's uniforms and draws the quad.
func (r *Renderer) RenderFrame(u *inputs.Uniforms) {
	p := r.program
	r.dev.UseProgram(p.ID)
	if p.timeLoc != -1 {
		r.dev.Uniform1f(p.timeLoc, u.Time)
	}
	if p.cursorLoc != -1 {
		r.dev.Uniform2f(p.cursorLoc, u.Cursor[0], u.Cursor[1])
	}
	if p.resolutionLoc != -1 {
		r.dev.Uniform2f(p.resolutionLoc, u.Resolution[0], u.Resolution[1])
	}
	r.dev.Viewport(0, 0, int32(u.Resolution[0]), int32(u.Resolution[1]))
	r.dev.BindVertexArray(r.quad.vao)
	r.dev.DrawElements(gl.TRIANGLES, r.quad.indexCount, gl.UNSIGNED_SHORT, 0)
}

// Run renders to the window once per display refresh until the window closes
// or ctx is canceled.
func (r *Renderer) Run(ctx context.Context) {
	sched := scheduler.New(r.context.Time)
	sched.Start(func(elapsedMillis float64) {
		width, height := r.context.GetFramebufferSize()
		r.RenderFrame(inputs.NewUniforms(elapsedMillis, r.cursor.Position(), width, height))
	})

	frames := 0
	sched.Run(ctx, func() {
		r.context.EndFrame()
		frames++
		if r.context.ShouldClose() {
			sched.Stop()
		}
	})
	log.Printf("Render loop stopped after %d frames", frames)
}
