package system

import (
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "system")

// Runs `ffmpeg -encoders`; replaced in tests.
var listEncoders = func() (string, error) {
	out, err := exec.Command("ffmpeg", "-encoders").CombinedOutput()
	return string(out), err
}

// GetBestH264Encoder prefers hardware encoders and falls back to libx264.
func GetBestH264Encoder() string {
	out, err := listEncoders()
	if err != nil {
		log.WithError(err).Debug("ffmpeg -encoders failed, using libx264")
		return "libx264"
	}

	// VideoToolbox first (macOS), then NVENC
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(out, name) {
			return name
		}
	}

	return "libx264"
}

// HasFFmpeg reports whether ffmpeg is on PATH.
func HasFFmpeg() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}
