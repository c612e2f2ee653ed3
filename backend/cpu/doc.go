// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go host-scalar rasterization backend.
//
// # Overview
//
// This package implements gridmaker's rasterization contract on the host:
//   - Pure Go implementation (no CGO)
//   - Atom-parallel dispatch via internal/parallel
//   - Float32 grids
//
// # Basic Usage
//
//	import (
//	    "github.com/atomraster/gridmaker/backend/cpu"
//	    "github.com/atomraster/gridmaker/gridmaker"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    gm, _ := gridmaker.New(gridmaker.WithResolution(0.5), gridmaker.WithDimension(23.5))
//	    err := gm.Forward(center, set, backend, out)
//	}
//
// # Performance
//
// Atoms are rasterized independently, each confined to its own local
// bounding box of voxels, and distributed across a worker pool sized to
// the number of CPUs (runtime.NumCPU).
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each rasterization call is
// isolated. In forward, each worker writes its own private grid, and the
// private grids are merged into the destination afterwards; in backward and
// relevance, each atom writes only its own output slots.
package cpu
