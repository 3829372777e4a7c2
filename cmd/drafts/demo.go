package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nerveband/drafts-cli/internal/config"
	"github.com/nerveband/drafts-cli/internal/director"
	"github.com/nerveband/drafts-cli/internal/engine"
	"github.com/nerveband/drafts-cli/internal/fonts"
	"github.com/nerveband/drafts-cli/internal/preview"
	"github.com/nerveband/drafts-cli/internal/system"
	"github.com/nerveband/drafts-cli/internal/ui"
	"github.com/nerveband/drafts-cli/internal/video"
)

func newDemoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render or preview the promo video of this CLI",
	}
	cmd.AddCommand(newRenderCmd(), newStateCmd(), newPreviewCmd(), newStoryboardCmd())
	return cmd
}

// loadStoryboard reads path, else the newest file in storyboards/, else
// the built-in demo.
func loadStoryboard(p *ui.Printer, path string) (*director.Storyboard, string, error) {
	if path == "" {
		latest, err := director.FindLatestStoryboard(director.DefaultDir)
		if err != nil {
			return director.DefaultStoryboard(), "", nil
		}
		path = latest
		p.Info("Using storyboard: %s", path)
	}
	sb, err := director.ReadStoryboard(path)
	if err != nil {
		return nil, "", err
	}
	return sb, path, nil
}

func newRenderCmd() *cobra.Command {
	cfg := &config.Config{BuildVersion: version}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo video with ffmpeg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &ui.Printer{Out: cmd.OutOrStdout(), Color: ui.IsTTY(os.Stdout)}
			sb, path, err := loadStoryboard(p, cfg.StoryboardPath)
			if err != nil {
				return err
			}
			cfg.StoryboardPath = path
			if err := cfg.ApplyPreset(); err != nil {
				return err
			}

			var enc video.Encoder
			if cfg.OutputVideo == "" && cfg.FramesDir == "" {
				cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", sb.Composition.ID, time.Now().Format("2006-01-02_15-04-05")))
			}
			if cfg.OutputVideo != "" {
				if !system.HasFFmpeg() {
					return fmt.Errorf("ffmpeg not found on PATH (use --keep-frames to write PNGs only)")
				}
				if cfg.VideoEncoder == "" {
					cfg.VideoEncoder = system.GetBestH264Encoder()
					if cfg.VideoEncoder != "libx264" {
						p.Info("Hardware encoder detected: %s", cfg.VideoEncoder)
					}
				}
				enc = &video.FFmpegEncoder{}
			}

			project := engine.NewProject(cfg, sb, fonts.NewHandle(cfg.FontPath), enc)
			project.UI = p
			if _, err := project.Run(cmd.Context()); err != nil {
				return err
			}

			if cfg.OutputVideo != "" {
				p.Success("Done! Output: %s", cfg.OutputVideo)
			} else {
				p.Success("Done! Frames: %s", cfg.FramesDir)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfg.StoryboardPath, "storyboard", "s", "", "Storyboard YAML (default: newest in storyboards/, else built-in)")
	f.StringVarP(&cfg.OutputVideo, "output", "o", "", "Output video (default: output/<id>_<timestamp>.mp4)")
	f.IntVar(&cfg.Width, "width", 0, "Width (default: storyboard)")
	f.IntVar(&cfg.Height, "height", 0, "Height (default: storyboard)")
	f.StringVar(&cfg.Preset, "preset", "", "Format preset: 16:9, 9:16, 4:5")
	f.IntVar(&cfg.Workers, "workers", 0, "Render workers (0: size from CPU and memory)")
	f.StringVar(&cfg.VideoEncoder, "encoder", "", "ffmpeg video encoder (default: best available H.264)")
	f.IntVar(&cfg.Quality, "quality", 0, "Quality (0: auto; x264 CRF, VideoToolbox bitrate = Q*100kbit/s)")
	f.StringVar(&cfg.FontPath, "font", "", "TTF/OTF font (default: embedded Go Mono)")
	f.StringVar(&cfg.FramesDir, "keep-frames", "", "Also write PNG frames to this directory")
	f.BoolVar(&cfg.ShowStats, "stats", false, "Print a performance report and append to benchmark.log")
	return cmd
}

func newStateCmd() *cobra.Command {
	var (
		path   string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "state FRAME...",
		Short: "Print the presentation state of frames as JSON",
		Long:  "Print the presentation state of each frame as one JSON object per line. FRAME may be a range like 60:66.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranges, err := parseFrames(args)
			if err != nil {
				return err
			}
			sb, _, err := loadStoryboard(nil, path)
			if err != nil {
				return err
			}
			composer, err := sb.Composer()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			for _, r := range ranges {
				for f := r.lo; f <= r.hi; f++ {
					if err := cmd.Context().Err(); err != nil {
						return err
					}
					if err := enc.Encode(composer.State(f)); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "storyboard", "s", "", "Storyboard YAML")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent output")
	return cmd
}

type frameRange struct{ lo, hi int }

// parseFrames accepts frame numbers and inclusive ranges "a:b".
func parseFrames(args []string) ([]frameRange, error) {
	ranges := make([]frameRange, 0, len(args))
	for _, arg := range args {
		from, to, isRange := strings.Cut(arg, ":")
		lo, err := parseFrame(from)
		if err != nil {
			return nil, err
		}
		hi := lo
		if isRange {
			if hi, err = parseFrame(to); err != nil {
				return nil, err
			}
		}
		if hi < lo {
			return nil, fmt.Errorf("empty frame range %q", arg)
		}
		ranges = append(ranges, frameRange{lo, hi})
	}
	return ranges, nil
}

func parseFrame(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid frame %q", s)
	}
	return n, nil
}

func newPreviewCmd() *cobra.Command {
	var (
		path   string
		frames int
		loop   bool
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Play the demo in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ui.IsTTY(os.Stdout) {
				return fmt.Errorf("preview needs a terminal")
			}
			sb, _, err := loadStoryboard(nil, path)
			if err != nil {
				return err
			}
			composer, err := sb.Composer()
			if err != nil {
				return err
			}
			return preview.Run(composer, preview.Options{Frames: frames, Loop: loop})
		},
	}
	cmd.Flags().StringVarP(&path, "storyboard", "s", "", "Storyboard YAML")
	cmd.Flags().IntVar(&frames, "frames", 0, "Stop after this many frames")
	cmd.Flags().BoolVar(&loop, "loop", false, "Keep playing")
	return cmd
}

func newStoryboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storyboard",
		Short: "Create and inspect storyboard files",
	}

	var out string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in demo storyboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeStoryboard(cmd, director.DefaultStoryboard(), out)
		},
	}
	initCmd.Flags().StringVarP(&out, "output", "o", "", "Output path (default: storyboards/storyboard_<timestamp>.yaml)")

	var (
		genOut   string
		commands []string
		width    int
		height   int
		fps      int
	)
	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a storyboard from a list of commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sb, err := director.NewDirector(width, height, fps).GenerateStoryboard(commands)
			if err != nil {
				return err
			}
			return writeStoryboard(cmd, sb, genOut)
		},
	}
	genCmd.Flags().StringVarP(&genOut, "output", "o", "", "Output path")
	genCmd.Flags().StringArrayVarP(&commands, "command", "c", nil, "Command to show (repeatable, in order)")
	genCmd.Flags().IntVar(&width, "width", 1280, "Width")
	genCmd.Flags().IntVar(&height, "height", 720, "Height")
	genCmd.Flags().IntVar(&fps, "fps", 30, "FPS")

	showCmd := &cobra.Command{
		Use:   "show [PATH]",
		Short: "Print the scene windows of a storyboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sb, _, err := loadStoryboard(nil, firstArg(args))
			if err != nil {
				return err
			}
			composer, err := sb.Composer()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			c := sb.Composition
			fmt.Fprintf(w, "%s  %dx%d @ %d fps  %d frames  %d per scene\n", c.ID, c.Width, c.Height, c.FPS, c.DurationInFrames, composer.FramesPerScene())
			for i := 0; i < composer.SceneCount(); i++ {
				s := composer.Scene(i)
				start := i * composer.FramesPerScene()
				fmt.Fprintf(w, "%2d  %4d-%-4d  %-7s %-20s %s\n", i, start, start+composer.FramesPerScene()-1, s.Output, s.Description, s.Command)
			}
			return nil
		},
	}

	cmd.AddCommand(initCmd, genCmd, showCmd)
	return cmd
}

func writeStoryboard(cmd *cobra.Command, sb *director.Storyboard, path string) error {
	if _, err := sb.Timeline(); err != nil {
		return err
	}
	if path == "" {
		path = director.GenerateStoryboardPath(director.DefaultDir)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := director.WriteStoryboard(sb, path); err != nil {
		return err
	}
	p := &ui.Printer{Out: cmd.OutOrStdout(), Color: ui.IsTTY(os.Stdout)}
	p.Success("Storyboard saved: %s", path)
	return nil
}
