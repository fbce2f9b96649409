package renderer

import (
	"fmt"
	"io"
	"log"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	inputs "github.com/richinsley/palettefold/inputs"
	options "github.com/richinsley/palettefold/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

const numBuffers = 3 // frames in flight between the renderer and the encoder

type OffscreenRenderer struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{width: width, height: height}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete: 0x%x", status)
	}
	return or, nil
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
}

// readPixels copies the framebuffer into a new RGBA buffer, bottom row first.
func (or *OffscreenRenderer) readPixels() []byte {
	pixels := make([]byte, or.width*or.height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// frameMillis is the elapsed time of frame i at a fixed frame rate.
func frameMillis(i, fps int) float64 {
	return float64(i) * 1000 / float64(fps)
}

// encoderArgs builds the ffmpeg arguments for raw RGBA frames read bottom-up.
func encoderArgs(opts *options.ShaderOptions) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", *opts.Width, *opts.Height),
		"r":       *opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	if *opts.Codec == "hevc" {
		outputArgs["c:v"] = "libx265"
		if strings.HasSuffix(*opts.OutputFile, ".mp4") {
			outputArgs["tag:v"] = "hvc1"
		}
	} else {
		outputArgs["c:v"] = "libx264"
	}
	return
}

// writeFrames streams frames to w until the channel closes.
func writeFrames(w io.Writer, frames <-chan *Frame) error {
	for frame := range frames {
		if _, err := w.Write(frame.Pixels); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
		}
	}
	return nil
}

// runEncoder is the consumer. It runs ffmpeg and feeds it frames from frameChan.
func (r *Renderer) runEncoder(opts *options.ShaderOptions, frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := encoderArgs(opts)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits before reading everything.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	writeErr := writeFrames(pipeWriter, frameChan)
	pipeWriter.Close()
	runErr := <-errc
	if runErr != nil {
		doneChan <- fmt.Errorf("ffmpeg failed: %w", runErr)
		return
	}
	doneChan <- writeErr
}

// RunOffscreen is the producer. It renders duration*fps frames at a fixed
// time step and sends them to the encoder.
func (r *Renderer) RunOffscreen(opts *options.ShaderOptions) error {
	if r.offscreenRenderer == nil {
		return fmt.Errorf("renderer was not created in record mode")
	}
	log.Println("Starting in record mode...")
	frameChan := make(chan *Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)

	go r.runEncoder(opts, frameChan, encoderDoneChan)

	totalFrames := opts.TotalFrames()
	width, height := r.offscreenRenderer.width, r.offscreenRenderer.height

	for i := 0; i < totalFrames; i++ {
		gl.BindFramebuffer(gl.FRAMEBUFFER, r.offscreenRenderer.fbo)
		r.RenderFrame(inputs.NewUniforms(frameMillis(i, *opts.FPS), inputs.Cursor{}, width, height))
		pixels := r.offscreenRenderer.readPixels()
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

		select {
		case frameChan <- &Frame{Pixels: pixels, PTS: int64(i)}:
		case err := <-encoderDoneChan:
			close(frameChan)
			if err == nil {
				err = fmt.Errorf("encoder stopped early")
			}
			return fmt.Errorf("recording stopped at frame %d: %w", i, err)
		}
	}

	close(frameChan)
	log.Printf("Rendered %d frames, waiting for encoder", totalFrames)
	return <-encoderDoneChan
}
