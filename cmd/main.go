package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	glfwcontext "github.com/richinsley/palettefold/glfwcontext"
	graphics "github.com/richinsley/palettefold/graphics"
	headless "github.com/richinsley/palettefold/headless"
	inputs "github.com/richinsley/palettefold/inputs"
	options "github.com/richinsley/palettefold/options"
	renderer "github.com/richinsley/palettefold/renderer"
)

func init() {
	runtime.LockOSThread()
}

func runSnapshot(opts *options.ShaderOptions) {
	img, err := renderer.Snapshot(*opts.Width, *opts.Height, float32(*opts.Time))
	if err != nil {
		log.Fatalf("Snapshot failed: %v", err)
	}
	path := opts.OutputPath()
	if err := renderer.WritePNG(path, img); err != nil {
		log.Fatalf("Failed to write snapshot: %v", err)
	}
	log.Printf("Wrote %dx%d snapshot at t=%.3f to %s", *opts.Width, *opts.Height, *opts.Time, path)
}

func newContext(opts *options.ShaderOptions, record bool, cursor *inputs.CursorTracker) (graphics.Context, func(), error) {
	if record && *opts.Headless {
		ctx, err := headless.NewHeadless(*opts.Width, *opts.Height)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create headless context: %w", err)
		}
		return ctx, func() {}, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	ctx, err := glfwcontext.New(*opts.Width, *opts.Height, !record, cursor)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, fmt.Errorf("failed to initialize glfw context: %w", err)
	}
	return ctx, glfwcontext.TerminateGraphics, nil
}

func runShader(opts *options.ShaderOptions) {
	record := *opts.Mode == "record"
	cursor := &inputs.CursorTracker{}

	ctx, terminate, err := newContext(opts, record, cursor)
	if err != nil {
		log.Fatalf("Failed to create graphics context: %v", err)
	}
	defer terminate()
	defer ctx.Shutdown()

	r, err := renderer.NewRenderer(*opts.Width, *opts.Height, record, ctx, cursor)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	if err := r.InitScene(); err != nil {
		log.Fatalf("Failed to initialize scene: %v", err)
	}

	if record {
		if err := r.RunOffscreen(opts); err != nil {
			log.Fatalf("Offscreen rendering failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if win, ok := ctx.(*glfwcontext.Context); ok {
		// Q ends the loop the same way an interrupt does.
		win.RegisterKeyCallback(glfw.KeyQ, stop)
	}
	log.Println("Starting interactive render loop...")
	r.Run(sigCtx)
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Palette fold shader viewer/recorder")
		flag.PrintDefaults()
		return
	}

	if *opts.ConfigFile != "" {
		cfg, err := options.LoadFile(*opts.ConfigFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		opts.Apply(cfg, flag.CommandLine)
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if *opts.Mode == "snapshot" {
		runSnapshot(opts)
		return
	}
	runShader(opts)
}
