// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/atomraster/gridmaker/internal/backend/cpu"
	"github.com/atomraster/gridmaker/tensor"
)

// Backend represents the CPU rasterization backend implementation.
//
// The CPU backend rasterizes atoms onto a grid with a pure Go host-scalar
// kernel, parallelized across atoms.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/atomraster/gridmaker/backend/cpu"
//	    "github.com/atomraster/gridmaker/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    grid, err := tensor.NewRaw(tensor.Shape{28, 48, 48, 48}, tensor.Float32, tensor.CPU)
//	}
func New() *Backend {
	return internalcpu.New()
}
