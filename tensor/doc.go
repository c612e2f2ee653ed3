// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the typed grid and coordinate buffers that
// gridmaker reads and writes.
//
// # Overview
//
// Tensors are the fundamental data structure gridmaker operates on. This
// package provides:
//   - RawTensor, a device-typed N-D buffer
//   - Device abstraction (CPU, WebGPU)
//   - Reference-counted storage shared by clones
//
// # Basic Usage
//
//	import (
//	    "github.com/atomraster/gridmaker/tensor"
//	)
//
//	func main() {
//	    // Allocate a 28-channel 48^3 density grid.
//	    grid, err := tensor.NewRaw(tensor.Shape{28, 48, 48, 48}, tensor.Float32, tensor.CPU)
//	}
//
// # Supported Data Types
//
// RawTensor supports the following DataType values:
//   - Float32, Float64 (floating-point)
//   - Int32, Int64 (signed integers)
//   - Uint8 (unsigned integers)
//   - Bool (boolean masks)
//
// # Device Support
//
// Tensors can reside on different devices:
//   - CPU: pure Go implementation
//   - WebGPU: zero-CGO GPU acceleration (Windows)
//
// # Memory Management
//
// A tensor and its clones share one buffer; writes through any of them are
// visible to all, and the buffer is never copied. The buffer is
// reference-counted and freed when the last owner releases it.
package tensor
