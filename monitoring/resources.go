// Package monitoring reports how a simulation run used the host: process
// resources, CPU profiles and snapshots of simulator state.
package monitoring

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

// ResourceUsage is the CPU and memory usage of the running process.
type ResourceUsage struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

// ReadResourceUsage samples the resource usage of the current process.
func ReadResourceUsage() (ResourceUsage, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ResourceUsage{}, err
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		return ResourceUsage{}, err
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		return ResourceUsage{}, err
	}

	return ResourceUsage{
		CPUPercent: cpuPercent,
		MemorySize: memInfo.RSS,
	}, nil
}
