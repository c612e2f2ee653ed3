package cpu

import (
	"fmt"
	"math"

	"github.com/atomraster/gridmaker/coordset"
	"github.com/atomraster/gridmaker/internal/geometry"
	"github.com/atomraster/gridmaker/internal/kernel"
	"github.com/atomraster/gridmaker/internal/parallel"
	"github.com/atomraster/gridmaker/internal/raster"
)

// relevanceEpsilon guards the division in backward relevance against a
// channel-local density of exactly zero.
const relevanceEpsilon = 1e-8

// RasterizeForward rasterizes set onto out, a NumTypes*Dim^3 row-major,
// channel-major float32 grid. Atoms are split into cpu.cfg.NumWorkers
// chunks, each accumulated into its own local grid, then merged in chunk
// order — this keeps the result bit-reproducible for a fixed NumWorkers
// even though atoms execute out of order relative to each other.
func (cpu *CPUBackend) RasterizeForward(set *coordset.Set, p raster.Params, out []float32) error {
	voxels := p.Dim * p.Dim * p.Dim
	want := p.NumTypes * voxels
	if len(out) != want {
		return fmt.Errorf("cpu: forward output length %d, want %d", len(out), want)
	}
	for i := range out {
		out[i] = 0
	}

	origin := geometry.Origin(p.Center, p.Dim, p.Resolution)
	workers := cpu.cfg.NumWorkers
	if !cpu.cfg.Enabled || set.N() < cpu.cfg.MinChunkSize {
		workers = 1
	}
	chunks := splitRange(set.N(), workers)
	if len(chunks) <= 1 {
		forwardChunk(set, p, origin, 0, set.N(), out)
		return nil
	}

	locals := make([][]float32, len(chunks))
	parallel.For(len(chunks), func(w int) {
		local := make([]float32, want)
		forwardChunk(set, p, origin, chunks[w][0], chunks[w][1], local)
		locals[w] = local
	}, parallel.Config{Enabled: true, NumWorkers: len(chunks), MinChunkSize: 1})

	for _, local := range locals {
		mergeInto(out, local, p.Binary)
	}
	return nil
}

func forwardChunk(set *coordset.Set, p raster.Params, origin [3]float64, lo, hi int, out []float32) {
	for i := lo; i < hi; i++ {
		rasterizeAtomForward(set, i, p, origin, out)
	}
}

func rasterizeAtomForward(set *coordset.Set, i int, p raster.Params, origin [3]float64, out []float32) {
	radius := float64(set.Radii[i])
	if radius <= 0 {
		return
	}
	coord := set.Coords[i]
	cx, cy, cz := float64(coord[0]), float64(coord[1]), float64(coord[2])
	rEff := p.RadiusScale * radius
	cutoff := p.Final * rEff

	loX, hiX := geometry.Bounds1D(origin[0], cx, cutoff, p.Resolution, p.Dim)
	loY, hiY := geometry.Bounds1D(origin[1], cy, cutoff, p.Resolution, p.Dim)
	loZ, hiZ := geometry.Bounds1D(origin[2], cz, cutoff, p.Resolution, p.Dim)
	if loX >= hiX || loY >= hiY || loZ >= hiZ {
		return
	}

	indexed := set.HasIndexedTypes()
	channel := 0
	if indexed {
		channel = int(set.TypeIndex[i])
		if channel < 0 {
			return
		}
	}

	dimCubed := p.Dim * p.Dim * p.Dim
	for x := loX; x < hiX; x++ {
		dx := geometry.VoxelCenter(origin[0], x, p.Resolution) - cx
		for y := loY; y < hiY; y++ {
			dy := geometry.VoxelCenter(origin[1], y, p.Resolution) - cy
			for z := loZ; z < hiZ; z++ {
				dz := geometry.VoxelCenter(origin[2], z, p.Resolution) - cz
				d := math.Sqrt(dx*dx + dy*dy + dz*dz)
				rho := kernel.Density(d, rEff, p.Binary, p.Gaussian, p.Final, p.Coef)
				if rho == 0 {
					continue
				}
				voxel := (x*p.Dim+y)*p.Dim + z
				if indexed {
					accumulate(&out[channel*dimCubed+voxel], float32(rho), p.Binary)
					continue
				}
				for c := 0; c < p.NumTypes; c++ {
					w := set.TypeVector[i*p.NumTypes+c]
					if w == 0 {
						continue
					}
					accumulate(&out[c*dimCubed+voxel], w*float32(rho), p.Binary)
				}
			}
		}
	}
}

func accumulate(dst *float32, v float32, binary bool) {
	if binary {
		if v > *dst {
			*dst = v
		}
		return
	}
	*dst += v
}

func mergeInto(dst, src []float32, binary bool) {
	for i, v := range src {
		accumulate(&dst[i], v, binary)
	}
}

// splitRange partitions [0, n) into up to workers contiguous, order-
// preserving chunks.
func splitRange(n, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	if n == 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	chunkSize := (n + workers - 1) / workers
	chunks := make([][2]int, 0, workers)
	for lo := 0; lo < n; lo += chunkSize {
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		chunks = append(chunks, [2]int{lo, hi})
	}
	return chunks
}

// RasterizeBackward computes atom-coordinate (and, for vector-typed sets,
// type) gradients. Each atom owns a disjoint slice of atomGrad/typeGrad, so
// atoms are parallelized directly with no merge step.
func (cpu *CPUBackend) RasterizeBackward(set *coordset.Set, p raster.Params, gridGradient []float32, atomGrad, typeGrad []float32) error {
	n := set.N()
	if len(atomGrad) != n*3 {
		return fmt.Errorf("cpu: backward atomGrad length %d, want %d", len(atomGrad), n*3)
	}
	if set.HasVectorTypes() && len(typeGrad) != n*p.NumTypes {
		return fmt.Errorf("cpu: backward typeGrad length %d, want %d", len(typeGrad), n*p.NumTypes)
	}
	if !set.HasIndexedTypes() && !set.HasVectorTypes() {
		return fmt.Errorf("cpu: backward requires an index or vector type encoding")
	}

	for i := range atomGrad {
		atomGrad[i] = 0
	}
	for i := range typeGrad {
		typeGrad[i] = 0
	}

	origin := geometry.Origin(p.Center, p.Dim, p.Resolution)
	parallel.For(n, func(i int) {
		rasterizeAtomBackward(set, i, p, origin, gridGradient, atomGrad, typeGrad)
	}, cpu.cfg)
	return nil
}

func rasterizeAtomBackward(set *coordset.Set, i int, p raster.Params, origin [3]float64, gridGradient, atomGrad, typeGrad []float32) {
	radius := float64(set.Radii[i])
	if radius <= 0 {
		return
	}
	coord := set.Coords[i]
	cx, cy, cz := float64(coord[0]), float64(coord[1]), float64(coord[2])
	rEff := p.RadiusScale * radius
	cutoff := p.Final * rEff
	// D and E scale with 1/rEff^2 and 1/rEff (spec.md 4.1), so unlike A, B, C
	// they cannot be shared across atoms of differing radius.
	coef := kernel.DeriveCoefficients(p.Gaussian, p.Final, rEff)

	loX, hiX := geometry.Bounds1D(origin[0], cx, cutoff, p.Resolution, p.Dim)
	loY, hiY := geometry.Bounds1D(origin[1], cy, cutoff, p.Resolution, p.Dim)
	loZ, hiZ := geometry.Bounds1D(origin[2], cz, cutoff, p.Resolution, p.Dim)
	if loX >= hiX || loY >= hiY || loZ >= hiZ {
		return
	}

	indexed := set.HasIndexedTypes()
	channel := 0
	if indexed {
		channel = int(set.TypeIndex[i])
		if channel < 0 {
			return
		}
	}

	dimCubed := p.Dim * p.Dim * p.Dim
	var gx, gy, gz float64
	for x := loX; x < hiX; x++ {
		dx := geometry.VoxelCenter(origin[0], x, p.Resolution) - cx
		for y := loY; y < hiY; y++ {
			dy := geometry.VoxelCenter(origin[1], y, p.Resolution) - cy
			for z := loZ; z < hiZ; z++ {
				dz := geometry.VoxelCenter(origin[2], z, p.Resolution) - cz
				d := math.Sqrt(dx*dx + dy*dy + dz*dz)
				ddensity := kernel.DDensity(d, rEff, p.Gaussian, p.Final, coef)
				// The type gradient needs rho even where the slope is zero
				// (e.g. the voxel at the atom center), so only index mode
				// skips these voxels.
				if ddensity == 0 && indexed {
					continue
				}
				var ux, uy, uz float64
				if d > 0 {
					ux, uy, uz = dx/d, dy/d, dz/d
				}
				voxel := (x*p.Dim+y)*p.Dim + z

				if indexed {
					g := float64(gridGradient[channel*dimCubed+voxel])
					term := g * -ddensity
					gx += term * ux
					gy += term * uy
					gz += term * uz
					continue
				}

				rho := kernel.Density(d, rEff, false, p.Gaussian, p.Final, coef)
				for c := 0; c < p.NumTypes; c++ {
					g := float64(gridGradient[c*dimCubed+voxel])
					// d(w*rho)/dw = rho, whatever the weight w is.
					typeGrad[i*p.NumTypes+c] += float32(g * rho)
					w := float64(set.TypeVector[i*p.NumTypes+c])
					if w == 0 {
						continue
					}
					term := w * g * -ddensity
					gx += term * ux
					gy += term * uy
					gz += term * uz
				}
			}
		}
	}
	atomGrad[i*3+0] = float32(gx)
	atomGrad[i*3+1] = float32(gy)
	atomGrad[i*3+2] = float32(gz)
}

// RasterizeBackwardRelevance distributes relevance-grid mass onto atoms.
// Index-typed sets only, per spec: relevance apportions each voxel's
// relevance across the atoms that contributed density to it.
func (cpu *CPUBackend) RasterizeBackwardRelevance(set *coordset.Set, p raster.Params, density, gridGradient []float32, relevance []float32) error {
	n := set.N()
	if len(relevance) != n {
		return fmt.Errorf("cpu: relevance length %d, want %d", len(relevance), n)
	}
	if !set.HasIndexedTypes() {
		return fmt.Errorf("cpu: backward relevance requires index-typed atoms")
	}

	for i := range relevance {
		relevance[i] = 0
	}

	origin := geometry.Origin(p.Center, p.Dim, p.Resolution)
	dimCubed := p.Dim * p.Dim * p.Dim
	parallel.For(n, func(i int) {
		radius := float64(set.Radii[i])
		if radius <= 0 {
			return
		}
		channel := int(set.TypeIndex[i])
		if channel < 0 {
			return
		}
		coord := set.Coords[i]
		cx, cy, cz := float64(coord[0]), float64(coord[1]), float64(coord[2])
		rEff := p.RadiusScale * radius
		cutoff := p.Final * rEff

		loX, hiX := geometry.Bounds1D(origin[0], cx, cutoff, p.Resolution, p.Dim)
		loY, hiY := geometry.Bounds1D(origin[1], cy, cutoff, p.Resolution, p.Dim)
		loZ, hiZ := geometry.Bounds1D(origin[2], cz, cutoff, p.Resolution, p.Dim)
		if loX >= hiX || loY >= hiY || loZ >= hiZ {
			return
		}

		var rel float64
		for x := loX; x < hiX; x++ {
			dx := geometry.VoxelCenter(origin[0], x, p.Resolution) - cx
			for y := loY; y < hiY; y++ {
				dy := geometry.VoxelCenter(origin[1], y, p.Resolution) - cy
				for z := loZ; z < hiZ; z++ {
					dz := geometry.VoxelCenter(origin[2], z, p.Resolution) - cz
					d := math.Sqrt(dx*dx + dy*dy + dz*dz)
					rho := kernel.Density(d, rEff, false, p.Gaussian, p.Final, p.Coef)
					if rho == 0 {
						continue
					}
					voxel := channel*dimCubed + (x*p.Dim+y)*p.Dim + z
					dens := float64(density[voxel])
					if dens < relevanceEpsilon {
						dens = relevanceEpsilon
					}
					rel += float64(gridGradient[voxel]) * rho / dens
				}
			}
		}
		relevance[i] = float32(rel)
	}, cpu.cfg)
	return nil
}

// Compile-time check that CPUBackend implements raster.Backend.
var _ raster.Backend = (*CPUBackend)(nil)
