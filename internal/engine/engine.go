package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/nerveband/drafts-cli/internal/config"
	"github.com/nerveband/drafts-cli/internal/director"
	"github.com/nerveband/drafts-cli/internal/fonts"
	"github.com/nerveband/drafts-cli/internal/renderer"
	"github.com/nerveband/drafts-cli/internal/system"
	"github.com/nerveband/drafts-cli/internal/timeline"
	"github.com/nerveband/drafts-cli/internal/ui"
	"github.com/nerveband/drafts-cli/internal/video"
)

// framesPerWorker bounds how far rendering may run ahead of the encoder.
const framesPerWorker = 2

// Project renders a storyboard into a frame sink.
type Project struct {
	Config     *config.Config
	Storyboard *director.Storyboard
	Fonts      *fonts.Handle
	Encoder    video.Encoder
	UI         *ui.Printer

	// BenchmarkLog receives one line per run when Config.ShowStats is set.
	BenchmarkLog string

	pool *system.ImagePool
}

func NewProject(cfg *config.Config, sb *director.Storyboard, fh *fonts.Handle, enc video.Encoder) *Project {
	return &Project{
		Config:       cfg,
		Storyboard:   sb,
		Fonts:        fh,
		Encoder:      enc,
		UI:           ui.Stdout(),
		BenchmarkLog: "benchmark.log",
		pool:         system.NewImagePool(),
	}
}

// Stats describes a finished run.
type Stats struct {
	RunID   string
	Frames  int
	Workers int
	Total   time.Duration
	Render  time.Duration
	Encode  time.Duration
}

// FPS is the effective render throughput.
func (s *Stats) FPS() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Total.Seconds()
}

type rendered struct {
	index int
	img   *image.RGBA
}

// Run renders every frame of the storyboard and writes them, in order, to
// the encoder and (optionally) the frames directory.
func (p *Project) Run(ctx context.Context) (*Stats, error) {
	startTime := time.Now()
	stats := &Stats{RunID: uuid.New().String()[:8]}
	log := logrus.WithFields(logrus.Fields{"component": "engine", "run_id": stats.RunID})

	composer, err := p.Storyboard.Composer()
	if err != nil {
		return nil, err
	}

	cfg := *p.Config
	if cfg.Width == 0 && cfg.Height == 0 {
		cfg.Width, cfg.Height = p.Storyboard.Composition.Width, p.Storyboard.Composition.Height
	}
	if cfg.FPS != 0 && cfg.FPS != composer.FPS() {
		return nil, timeline.ConfigErrorf("fps", "render fps %d does not match storyboard fps %d", cfg.FPS, composer.FPS())
	}
	cfg.FPS = composer.FPS()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.OutputVideo == "" && cfg.FramesDir == "" {
		return nil, timeline.ConfigErrorf("output", "nothing to write: set an output video or a frames directory")
	}

	if err := p.Fonts.LoadOrFallback(ctx); err != nil {
		return nil, err
	}
	if p.Fonts.Fallback() {
		p.UI.Warn("Font %s unavailable, using Go Mono", cfg.FontPath)
	}

	total := composer.TotalFrames()
	stats.Frames = total
	stats.Workers = p.workers(cfg, total)

	sink, err := p.openSink(ctx, cfg, total)
	if err != nil {
		return nil, err
	}

	p.UI.Plain("--- [PROJECT: DRAFTS CLI DEMO] ---\n")
	p.UI.Info("Storyboard: %s | Scenes: %d | Frames: %d", p.Storyboard.Composition.ID, composer.SceneCount(), total)
	p.UI.Info("Resolution: %dx%d @ %d FPS | Workers: %d", cfg.Width, cfg.Height, cfg.FPS, stats.Workers)
	p.UI.Plain("-----------------------------\n")
	log.WithFields(logrus.Fields{"workers": stats.Workers, "encoder": cfg.VideoEncoder}).Debug("render started")

	renderStart := time.Now()
	runErr := p.pipeline(ctx, composer, cfg, stats.Workers, sink, log)
	stats.Render = time.Since(renderStart)

	encodeStart := time.Now()
	closeErr := sink.Close()
	stats.Encode = time.Since(encodeStart)

	if err := errors.Join(runErr, closeErr); err != nil {
		return nil, err
	}

	stats.Total = time.Since(startTime)
	if cfg.ShowStats {
		p.report(cfg, stats)
	}
	return stats, nil
}

func (p *Project) workers(cfg config.Config, total int) int {
	n := cfg.Workers
	if n == 0 {
		n = system.Probe().RecommendedWorkers(cfg.Width*cfg.Height*4, framesPerWorker)
	}
	if n > total {
		n = total
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (p *Project) openSink(ctx context.Context, cfg config.Config, total int) (video.FrameSink, error) {
	var sinks video.MultiSink
	if cfg.OutputVideo != "" {
		if p.Encoder == nil {
			return nil, fmt.Errorf("no encoder for %s", cfg.OutputVideo)
		}
		s, err := p.Encoder.Open(ctx, cfg.OutputVideo, cfg.FrameParams(total))
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if cfg.FramesDir != "" {
		s, err := video.NewPNGSink(cfg.FramesDir)
		if err != nil {
			sinks.Close()
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return sinks, nil
}

// pipeline hands frame indices to the workers in order, at most window
// ahead of the last frame written, and reorders finished frames before
// they reach the sink.
func (p *Project) pipeline(ctx context.Context, composer *timeline.Composer, cfg config.Config, workers int, sink video.FrameSink, log *logrus.Entry) error {
	if p.pool == nil {
		p.pool = system.NewImagePool()
	}
	total := composer.TotalFrames()
	window := workers * framesPerWorker
	sem := semaphore.NewWeighted(int64(window))
	bounds := image.Rect(0, 0, cfg.Width, cfg.Height)

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	done := make(chan rendered, window)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < total; i++ {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			r, err := renderer.New(p.Fonts, cfg.Width, cfg.Height)
			if err != nil {
				return err
			}
			defer r.Close()

			for i := range jobs {
				img := p.pool.Get(bounds)
				r.Draw(img, composer.State(i))
				select {
				case done <- rendered{index: i, img: img}:
				case <-gctx.Done():
					p.pool.Put(img)
					return gctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(done)
		return nil
	})

	g.Go(func() error {
		pending := make(map[int]*image.RGBA, window)
		next := 0
		for res := range done {
			pending[res.index] = res.img
			for {
				img, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				err := sink.WriteFrame(img)
				p.pool.Put(img)
				if err != nil {
					return fmt.Errorf("write frame %d: %w", next, err)
				}
				sem.Release(1)
				next++
				if next%cfg.FPS == 0 || next == total {
					p.UI.Step("Ready: %d/%d", next, total)
					log.WithField("frame", next).Debug("frames written")
				}
			}
		}
		if next != total && gctx.Err() == nil {
			return fmt.Errorf("only %d of %d frames written", next, total)
		}
		return nil
	})

	return g.Wait()
}

func (p *Project) report(cfg config.Config, s *Stats) {
	p.UI.Plain(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Run: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoder flush: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		cfg.BuildVersion, s.RunID, s.Total.Seconds(), s.Render.Seconds(), s.Encode.Seconds(), s.FPS(),
	)

	if p.BenchmarkLog == "" {
		return
	}
	logEntry := fmt.Sprintf("[%s] Build: %s | Run: %s | Storyboard: %s | Frames: %d | Workers: %d | Total: %.2fs | Render: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		cfg.BuildVersion,
		s.RunID,
		filepath.Base(cfg.StoryboardPath),
		s.Frames,
		s.Workers,
		s.Total.Seconds(),
		s.Render.Seconds(),
		s.FPS(),
	)
	f, err := os.OpenFile(p.BenchmarkLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		p.UI.Warn("Could not write %s: %v", p.BenchmarkLog, err)
		return
	}
	_, err = f.WriteString(logEntry)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		p.UI.Warn("Could not write %s: %v", p.BenchmarkLog, err)
	}
}
