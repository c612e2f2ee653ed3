// Package cpu implements the host-scalar compute backend for gridmaker.
package cpu

import (
	"github.com/atomraster/gridmaker/internal/parallel"
	"github.com/atomraster/gridmaker/internal/tensor"
)

// CPUBackend implements gridmaker's rasterization contract on the host,
// parallelized across atoms via internal/parallel.
type CPUBackend struct {
	device tensor.Device
	cfg    parallel.Config
}

// New creates a new host-scalar backend with default parallelism.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		cfg:    parallel.DefaultConfig(),
	}
}

// WithParallelConfig overrides the worker-pool configuration atom-parallel
// rasterization uses.
func (cpu *CPUBackend) WithParallelConfig(cfg parallel.Config) *CPUBackend {
	cpu.cfg = cfg
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}
