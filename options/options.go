package options

import (
	"flag"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultVideoOutput    = "output.mp4"
	DefaultSnapshotOutput = "snapshot.png"
)

type ShaderOptions struct {
	Help       *bool
	Mode       *string // window, record or snapshot
	Width      *int
	Height     *int
	Duration   *float64
	FPS        *int
	Time       *float64 // shader time for snapshot mode, in seconds of u_time
	OutputFile *string
	FFMPEGPath *string
	Codec      *string
	Headless   *bool // render through EGL instead of a hidden GLFW window (linux only)
	ConfigFile *string
}

// Register binds the options to flags on fs.
func Register(fs *flag.FlagSet) *ShaderOptions {
	return &ShaderOptions{
		Help:       fs.Bool("help", false, "Show help message"),
		Mode:       fs.String("mode", "window", "Run mode: window, record or snapshot"),
		Width:      fs.Int("width", 1280, "Width of the window or output"),
		Height:     fs.Int("height", 720, "Height of the window or output"),
		Duration:   fs.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		Time:       fs.Float64("time", 0, "Shader time for snapshot mode"),
		OutputFile: fs.String("output", DefaultVideoOutput, "Output file for record or snapshot mode"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      fs.String("codec", "h264", "Video codec for recording: h264 or hevc"),
		Headless:   fs.Bool("headless", false, "Use an EGL pbuffer context for recording (linux)"),
		ConfigFile: fs.String("config", "", "Optional YAML file with option defaults"),
	}
}

// FileConfig is the YAML form of the options. Unset fields leave the flag
// value alone.
type FileConfig struct {
	Mode       *string  `yaml:"mode"`
	Width      *int     `yaml:"width"`
	Height     *int     `yaml:"height"`
	Duration   *float64 `yaml:"duration"`
	FPS        *int     `yaml:"fps"`
	Time       *float64 `yaml:"time"`
	OutputFile *string  `yaml:"output"`
	FFMPEGPath *string  `yaml:"ffmpeg"`
	Codec      *string  `yaml:"codec"`
	Headless   *bool    `yaml:"headless"`
}

// LoadFile reads a YAML options file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Apply copies file values into o for every flag not set on the command line.
func (o *ShaderOptions) Apply(cfg *FileConfig, fs *flag.FlagSet) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	assign(set, "mode", o.Mode, cfg.Mode)
	assign(set, "width", o.Width, cfg.Width)
	assign(set, "height", o.Height, cfg.Height)
	assign(set, "duration", o.Duration, cfg.Duration)
	assign(set, "fps", o.FPS, cfg.FPS)
	assign(set, "time", o.Time, cfg.Time)
	assign(set, "output", o.OutputFile, cfg.OutputFile)
	assign(set, "ffmpeg", o.FFMPEGPath, cfg.FFMPEGPath)
	assign(set, "codec", o.Codec, cfg.Codec)
	assign(set, "headless", o.Headless, cfg.Headless)
}

func assign[T any](set map[string]bool, name string, dst, src *T) {
	if src == nil || dst == nil || set[name] {
		return
	}
	*dst = *src
}

// Validate checks the option values that the renderer relies on.
func (o *ShaderOptions) Validate() error {
	switch *o.Mode {
	case "window", "record", "snapshot":
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if *o.Mode == "record" {
		if *o.FPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", *o.FPS)
		}
		if *o.Duration <= 0 {
			return fmt.Errorf("duration must be positive, got %v", *o.Duration)
		}
		if n := o.TotalFrames(); n < 1 {
			return fmt.Errorf("duration %v at %d fps yields no frames", *o.Duration, *o.FPS)
		}
		if *o.Codec != "h264" && *o.Codec != "hevc" {
			return fmt.Errorf("unsupported codec %q", *o.Codec)
		}
	}
	return nil
}

// TotalFrames is the number of frames record mode renders. A partial trailing
// frame counts as a whole one, so any positive duration yields at least one.
func (o *ShaderOptions) TotalFrames() int {
	// Shave float noise so 0.1s at 30fps stays 3 frames rather than 4.
	return int(math.Ceil(*o.Duration*float64(*o.FPS) - 1e-9))
}

// OutputPath is the file written by record and snapshot modes. Snapshots get
// a PNG name unless an output was chosen explicitly.
func (o *ShaderOptions) OutputPath() string {
	if *o.Mode == "snapshot" && *o.OutputFile == DefaultVideoOutput {
		return DefaultSnapshotOutput
	}
	return *o.OutputFile
}
