//go:build unix

package system

import "syscall"

// InitResourceLimits raises the open file limit. Long renders keep ffmpeg
// pipes and frame dumps open at the same time.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.WithError(err).Warn("could not read open file limit")
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.WithError(err).Warn("could not raise open file limit")
	} else {
		log.WithField("limit", rLimit.Cur).Debug("open file limit raised")
	}
}
