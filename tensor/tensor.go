// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the density/gradient grids
// gridmaker writes and the atom-coordinate buffers it reads.
//
// The package defines core interfaces and types:
//   - RawTensor: low-level tensor for grid/gradient buffers
//   - Backend: capability interface identifying a compute device
//   - Shape, DataType, Device: core type definitions
//
// Example:
//
//	backend := cpu.New()
//	grid, err := tensor.NewRaw(tensor.Shape{28, 48, 48, 48}, tensor.Float32, tensor.CPU)
package tensor

import (
	"github.com/atomraster/gridmaker/internal/tensor"
)

// Type aliases for public API

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{28, 48, 48, 48} represents a 28-channel 48^3 density grid.
type Shape = tensor.Shape

// Backend is defined in backend.go as a proper interface.

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
// gridmaker's Forward/Backward/BackwardRelevance consume and produce
// *RawTensor views directly; there is no higher-level wrapper type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}
