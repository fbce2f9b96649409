package renderer

import (
	"bytes"
	"errors"
	"flag"
	"testing"

	options "github.com/richinsley/palettefold/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordOptions(t *testing.T, args ...string) *options.ShaderOptions {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := options.Register(fs)
	require.NoError(t, fs.Parse(append([]string{"-mode", "record"}, args...)))
	return o
}

func TestEncoderArgsH264(t *testing.T) {
	in, out := encoderArgs(recordOptions(t, "-width", "320", "-height", "240", "-fps", "30"))
	assert.Equal(t, "rawvideo", in["f"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "320x240", in["s"])
	assert.Equal(t, 30, in["r"])
	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "libx264", out["c:v"])
	assert.NotContains(t, out, "tag:v")
}

func TestEncoderArgsHEVC(t *testing.T) {
	_, out := encoderArgs(recordOptions(t, "-codec", "hevc", "-output", "clip.mp4"))
	assert.Equal(t, "libx265", out["c:v"])
	assert.Equal(t, "hvc1", out["tag:v"])

	_, out = encoderArgs(recordOptions(t, "-codec", "hevc", "-output", "clip.mkv"))
	assert.NotContains(t, out, "tag:v")
}

func TestFrameMillis(t *testing.T) {
	assert.Equal(t, 0.0, frameMillis(0, 60))
	assert.Equal(t, 1000.0, frameMillis(60, 60))
	assert.Equal(t, 5000.0, frameMillis(125, 25))
}

func TestWriteFrames(t *testing.T) {
	frames := make(chan *Frame, 3)
	frames <- &Frame{Pixels: []byte{1, 2, 3, 4}, PTS: 0}
	frames <- &Frame{Pixels: []byte{5, 6, 7, 8}, PTS: 1}
	close(frames)

	var buf bytes.Buffer
	require.NoError(t, writeFrames(&buf, frames))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, buf.Bytes())
}

type failingWriter struct{}

var errBrokenPipe = errors.New("broken pipe")

func (failingWriter) Write([]byte) (int, error) { return 0, errBrokenPipe }

func TestWriteFramesError(t *testing.T) {
	frames := make(chan *Frame, 1)
	frames <- &Frame{Pixels: []byte{0}, PTS: 42}
	close(frames)

	err := writeFrames(failingWriter{}, frames)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBrokenPipe)
	assert.Contains(t, err.Error(), "frame 42")
}
