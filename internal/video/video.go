package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/nerveband/drafts-cli/internal/config"
)

var log = logrus.WithField("component", "video")

// FrameSink consumes rendered frames in presentation order.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// Encoder opens a sink that turns a frame stream into a file.
type Encoder interface {
	Open(ctx context.Context, path string, params config.FrameParams) (FrameSink, error)
}

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process.
type FFmpegEncoder struct {
	// Binary defaults to "ffmpeg" from PATH.
	Binary string
}

func (e *FFmpegEncoder) Open(ctx context.Context, path string, params config.FrameParams) (FrameSink, error) {
	if params.Width <= 0 || params.Height <= 0 || params.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame params %dx%d@%d", params.Width, params.Height, params.FPS)
	}
	bin := e.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("output dir: %w", err)
		}
	}

	args := buildFFmpegArgs(path, params)
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	log.WithFields(logrus.Fields{"encoder": params.Encoder, "output": path}).Debugf("ffmpeg %v", args)

	return &ffmpegSink{
		cmd:    cmd,
		stdin:  stdin,
		stderr: &stderr,
		size:   image.Pt(params.Width, params.Height),
	}, nil
}

func buildFFmpegArgs(videoPath string, params config.FrameParams) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
	}

	encoder := params.Encoder
	if encoder == "" {
		encoder = "libx264"
	}
	quality := params.Quality
	if quality == 0 {
		quality = config.DefaultQuality(encoder)
	}
	args = append(args, "-c:v", encoder)

	switch encoder {
	case "h264_videotoolbox":
		args = append(args, "-b:v", fmt.Sprintf("%dk", quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	if params.TotalFrames > 0 {
		args = append(args, "-frames:v", fmt.Sprintf("%d", params.TotalFrames))
	}
	args = append(args, "-movflags", "+faststart", videoPath)
	return args
}

type ffmpegSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *bytes.Buffer
	size   image.Point
	closed bool
}

func (s *ffmpegSink) WriteFrame(img *image.RGBA) error {
	if img.Rect.Size() != s.size {
		return fmt.Errorf("frame size %v, encoder expects %v", img.Rect.Size(), s.size)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

func (s *ffmpegSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, tail(s.stderr.String(), 2000))
	}
	return nil
}

func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		tight := image.NewRGBA(image.Rectangle{Max: bounds.Size()})
		draw.Draw(tight, tight.Bounds(), img, bounds.Min, draw.Src)
		img = tight
	}
	_, err := w.Write(img.Pix)
	return err
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// PNGSink writes each frame as frame_00000.png in Dir.
type PNGSink struct {
	Dir   string
	count int
}

func NewPNGSink(dir string) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("frames dir: %w", err)
	}
	return &PNGSink{Dir: dir}, nil
}

func (s *PNGSink) WriteFrame(img *image.RGBA) error {
	path := filepath.Join(s.Dir, fmt.Sprintf("frame_%05d.png", s.count))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	s.count++
	return f.Close()
}

// Frames is the number of frames written so far.
func (s *PNGSink) Frames() int { return s.count }

func (s *PNGSink) Close() error { return nil }

// MultiSink fans every frame out to all sinks.
type MultiSink []FrameSink

func (m MultiSink) WriteFrame(img *image.RGBA) error {
	for _, s := range m {
		if err := s.WriteFrame(img); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
