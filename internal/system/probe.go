package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo is the part of the machine the render pool is sized against.
type HostInfo struct {
	LogicalCPUs    int
	AvailableBytes uint64
}

// Probe reads CPU and memory figures. Missing figures fall back to
// runtime.NumCPU and "unknown" (0) memory.
func Probe() HostInfo {
	info := HostInfo{LogicalCPUs: runtime.NumCPU()}

	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.LogicalCPUs = n
	} else if err != nil {
		log.WithError(err).Debug("cpu count unavailable")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.AvailableBytes = vm.Available
	} else {
		log.WithError(err).Debug("memory stats unavailable")
	}

	return info
}

// RecommendedWorkers caps the worker count so that the frames in flight
// (window frames of frameBytes each) use at most a quarter of free memory.
func (h HostInfo) RecommendedWorkers(frameBytes, window int) int {
	workers := h.LogicalCPUs
	if workers < 1 {
		workers = 1
	}
	if h.AvailableBytes == 0 || frameBytes <= 0 || window <= 0 {
		return workers
	}

	budget := h.AvailableBytes / 4
	perWorker := uint64(frameBytes) * uint64(window)
	if perWorker == 0 {
		return workers
	}
	if fit := int(budget / perWorker); fit < workers {
		workers = fit
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
