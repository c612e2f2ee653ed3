// Package raster defines the contract gridmaker dispatches through:
// Params carries one call's resolved geometry/kernel constants, and
// Backend is the capability backend/cpu and backend/webgpu implement to
// actually rasterize atoms onto a grid. Splitting this out of gridmaker
// itself keeps backend/cpu and backend/webgpu free of a dependency on the
// gridmaker package while gridmaker stays free of a dependency on either
// concrete backend.
package raster

import (
	"github.com/atomraster/gridmaker/coordset"
	"github.com/atomraster/gridmaker/internal/kernel"
	"github.com/atomraster/gridmaker/internal/tensor"
)

// Params is one call's resolved geometry and kernel configuration, derived
// by gridmaker from a *GridMaker and a caller-supplied grid center.
type Params struct {
	Center      [3]float64
	Dim         int
	NumTypes    int
	Resolution  float64
	RadiusScale float64
	Gaussian    float64 // G
	Final       float64 // F
	Binary      bool
	Coef        kernel.Coefficients
}

// Backend rasterizes atom sets onto (and gradients off of) a voxel grid.
// backend/cpu implements this with a host-scalar kernel parallelized
// across atoms; backend/webgpu implements RasterizeForward with a compute
// shader and leaves the backward variants unimplemented, matching the
// teacher's own precedent of shipping a GPU forward pass ahead of its
// backward counterpart.
//
// All grid and gradient buffers are row-major float32, channel-major for
// grids: index(c, x, y, z) = ((c*Dim+x)*Dim+y)*Dim+z.
type Backend interface {
	tensor.Backend

	// RasterizeForward writes NumTypes*Dim^3 densities into out, which the
	// caller has sized but not necessarily zeroed; implementations must
	// overwrite every element (spec invariant: forward never merely
	// accumulates onto caller garbage).
	RasterizeForward(set *coordset.Set, p Params, out []float32) error

	// RasterizeBackward accumulates per-atom coordinate gradients into
	// atomGrad (len N*3) and, for vector-typed sets, per-atom type
	// gradients into typeGrad (len N*NumTypes; pass nil for index-typed
	// sets). gridGradient is len NumTypes*Dim^3.
	RasterizeBackward(set *coordset.Set, p Params, gridGradient []float32, atomGrad, typeGrad []float32) error

	// RasterizeBackwardRelevance distributes relevance-grid mass back onto
	// atoms (index-typed sets only) into relevance (len N).
	RasterizeBackwardRelevance(set *coordset.Set, p Params, density, gridGradient []float32, relevance []float32) error
}
