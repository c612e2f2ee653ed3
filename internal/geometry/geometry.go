// Package geometry computes grid origins and per-atom voxel index bounds.
// Every routine here is pure and stateless, shared by forward, backward, and
// relevance passes alike.
package geometry

import "math"

// Origin returns the minimum-corner voxel center for a cubic grid of dim
// voxels per side, given the grid center and resolution. Voxel (i, j, k) has
// center origin + (i, j, k) * resolution.
func Origin(center [3]float64, dim int, resolution float64) [3]float64 {
	half := (float64(dim-1) / 2) * resolution
	return [3]float64{center[0] - half, center[1] - half, center[2] - half}
}

// Bounds1D returns the half-open voxel index range [lo, hi) along one axis
// whose centers may lie within cutoff of atomCoord, given that axis's grid
// origin. If lo >= hi, the atom contributes nothing along this axis.
func Bounds1D(origin, atomCoord, cutoff, resolution float64, dim int) (lo, hi int) {
	lo = int(math.Ceil((atomCoord - cutoff - origin) / resolution))
	if lo < 0 {
		lo = 0
	}
	hi = int(math.Floor((atomCoord+cutoff-origin)/resolution)) + 1
	if hi > dim {
		hi = dim
	}
	return lo, hi
}

// VoxelCenter returns the cartesian center of voxel index i along one axis.
func VoxelCenter(origin float64, i int, resolution float64) float64 {
	return origin + float64(i)*resolution
}
