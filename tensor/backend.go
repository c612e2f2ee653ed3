// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/atomraster/gridmaker/internal/tensor"

// Backend identifies the device capability a tensor view is bound to.
// gridmaker dispatches on this at the top of each public entry point rather
// than proliferating one function per (host, device) combination: the
// numerical core is written once and parameterized by this small
// capability, with backend/cpu and backend/webgpu supplying the
// rasterization methods gridmaker actually calls.
//
// Implementations:
//   - backend/cpu: host-scalar, parallelized across atoms
//   - backend/webgpu: massively parallel forward, one thread per
//     (channel, voxel) output element
//
// Example:
//
//	import (
//	    "github.com/atomraster/gridmaker/tensor"
//	    "github.com/atomraster/gridmaker/backend/cpu"
//	)
//
//	backend := cpu.New()
//	grid, err := tensor.NewRaw(tensor.Shape{28, 48, 48, 48}, tensor.Float32, tensor.CPU)
type Backend interface {
	// Name returns a human-readable backend name (e.g. "CPU", "WebGPU").
	Name() string
	// Device returns the compute device this backend targets.
	Device() Device
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
