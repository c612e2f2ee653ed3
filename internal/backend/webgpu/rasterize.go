//go:build windows

package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/atomraster/gridmaker/coordset"
	"github.com/atomraster/gridmaker/internal/geometry"
	"github.com/atomraster/gridmaker/internal/raster"
	"github.com/go-webgpu/webgpu/wgpu"
)

// forwardShaderWGSL computes one output (channel, voxel) element per
// thread by gathering over every atom, rather than the atom-parallel
// scatter the CPU backend uses. This trades the O(atoms*local_voxels) cost
// spec.md calls for, for a scatter-free kernel that needs no atomics: the
// GPU forward path is a reference implementation, not yet the optimized
// one (see DESIGN.md).
const forwardShaderWGSL = `
struct Params {
    origin: vec3<f32>,
    resolution: f32,
    dim: u32,
    num_types: u32,
    num_atoms: u32,
    binary: u32,
    gaussian: f32,
    final_r: f32,
    coef_a: f32,
    coef_b: f32,
    coef_c: f32,
    radius_scale: f32,
    indexed: u32,
    _pad0: f32,
};

@group(0) @binding(0) var<storage, read> atoms: array<f32>;
@group(0) @binding(1) var<storage, read> type_vectors: array<f32>;
@group(0) @binding(2) var<storage, read_write> grid: array<f32>;
@group(0) @binding(3) var<uniform> params: Params;

fn density(d: f32, r_eff: f32) -> f32 {
    if (params.binary != 0u) {
        if (d <= params.final_r * r_eff) {
            return 1.0;
        }
        return 0.0;
    }
    let x = d / r_eff;
    if (x <= params.gaussian) {
        return exp(-2.0 * x * x);
    }
    if (x <= params.final_r) {
        return params.coef_a * x * x + params.coef_b * x + params.coef_c;
    }
    return 0.0;
}

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let dim3 = params.dim * params.dim * params.dim;
    let total = params.num_types * dim3;
    let idx = gid.x;
    if (idx >= total) {
        return;
    }

    let channel = idx / dim3;
    let voxel = idx % dim3;
    let x = voxel / (params.dim * params.dim);
    let rem = voxel % (params.dim * params.dim);
    let y = rem / params.dim;
    let z = rem % params.dim;

    let vx = params.origin.x + f32(x) * params.resolution;
    let vy = params.origin.y + f32(y) * params.resolution;
    let vz = params.origin.z + f32(z) * params.resolution;

    var acc: f32 = 0.0;
    for (var i: u32 = 0u; i < params.num_atoms; i = i + 1u) {
        let base = i * 5u;
        let radius = atoms[base + 3u];
        if (radius <= 0.0) {
            continue;
        }
        let r_eff = params.radius_scale * radius;

        var weight: f32 = 0.0;
        if (params.indexed != 0u) {
            let type_idx = i32(atoms[base + 4u]);
            if (type_idx < 0 || u32(type_idx) != channel) {
                continue;
            }
            weight = 1.0;
        } else {
            weight = type_vectors[i * params.num_types + channel];
            if (weight == 0.0) {
                continue;
            }
        }

        let dx = vx - atoms[base];
        let dy = vy - atoms[base + 1u];
        let dz = vz - atoms[base + 2u];
        let d = sqrt(dx * dx + dy * dy + dz * dz);
        let rho = density(d, r_eff);
        if (params.binary != 0u) {
            acc = max(acc, rho);
        } else {
            acc = acc + weight * rho;
        }
    }
    grid[idx] = acc;
}
`

// RasterizeForward rasterizes set onto out via a WGSL compute shader, one
// thread per (channel, voxel) output element.
func (b *Backend) RasterizeForward(set *coordset.Set, p raster.Params, out []float32) error {
	voxels := p.Dim * p.Dim * p.Dim
	want := p.NumTypes * voxels
	if len(out) != want {
		return fmt.Errorf("webgpu: forward output length %d, want %d", len(out), want)
	}

	origin := geometry.Origin(p.Center, p.Dim, p.Resolution)
	n := set.N()

	atomData := make([]float32, n*5)
	for i := 0; i < n; i++ {
		c := set.Coords[i]
		atomData[i*5+0] = c[0]
		atomData[i*5+1] = c[1]
		atomData[i*5+2] = c[2]
		atomData[i*5+3] = set.Radii[i]
		if set.HasIndexedTypes() {
			atomData[i*5+4] = set.TypeIndex[i]
		} else {
			atomData[i*5+4] = -1
		}
	}

	typeVectorData := set.TypeVector
	if len(typeVectorData) == 0 {
		typeVectorData = []float32{0} // storage buffers can't be zero-sized
	}

	shader := b.compileShader("gridmaker_forward", forwardShaderWGSL)
	pipeline := b.getOrCreatePipeline("gridmaker_forward", shader)

	atomBytes := encodeFloat32s(atomData)
	bufAtoms := b.createBuffer(atomBytes, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer b.releaseBuffer(bufAtoms, uint64(len(atomBytes)))

	tvBytes := encodeFloat32s(typeVectorData)
	bufTypeVectors := b.createBuffer(tvBytes, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer b.releaseBuffer(bufTypeVectors, uint64(len(tvBytes)))

	// The output grid is the one buffer reused call-to-call at a stable size
	// (same Dim/NumTypes across a batch), so it is the only one routed
	// through bufferPool: every element is overwritten by the dispatch
	// below, so a reused, not-freshly-zeroed buffer is safe to bind.
	gridUsage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	gridBytes := uint64(want * 4)
	bufGrid := b.bufferPool.Acquire(gridBytes, gridUsage)
	defer b.bufferPool.Release(bufGrid, gridBytes, gridUsage)

	paramBytes := packForwardParams(origin, p, n, set.HasIndexedTypes())
	bufParams := b.createUniformBuffer(paramBytes)
	defer b.releaseBuffer(bufParams, uint64(len(paramBytes)))

	layout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(layout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufAtoms, 0, uint64(len(atomBytes))),
		wgpu.BufferBindingEntry(1, bufTypeVectors, 0, uint64(len(tvBytes))),
		wgpu.BufferBindingEntry(2, bufGrid, 0, gridBytes),
		wgpu.BufferBindingEntry(3, bufParams, 0, uint64(len(paramBytes))),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	//nolint:gosec // G115: want is non-negative
	workgroups := uint32((want + workgroupSize - 1) / workgroupSize)
	pass.DispatchWorkgroups(workgroups, 1, 1)
	pass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	resultBytes, err := b.readBuffer(bufGrid, gridBytes)
	if err != nil {
		return fmt.Errorf("webgpu: forward readback: %w", err)
	}
	copy(out, decodeFloat32s(resultBytes))
	return nil
}

// RasterizeBackward is not implemented for the WebGPU backend yet.
//
//nolint:revive // Parameters unused in stub implementation.
func (b *Backend) RasterizeBackward(set *coordset.Set, p raster.Params, gridGradient []float32, atomGrad, typeGrad []float32) error {
	panic("webgpu: RasterizeBackward not implemented yet")
}

// RasterizeBackwardRelevance is not implemented for the WebGPU backend yet.
//
//nolint:revive // Parameters unused in stub implementation.
func (b *Backend) RasterizeBackwardRelevance(set *coordset.Set, p raster.Params, density, gridGradient []float32, relevance []float32) error {
	panic("webgpu: RasterizeBackwardRelevance not implemented yet")
}

func packForwardParams(origin [3]float64, p raster.Params, numAtoms int, indexed bool) []byte {
	buf := make([]byte, 64)
	putFloat32 := func(off int, v float64) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(float32(v)))
	}
	putUint32 := func(off int, v int) {
		//nolint:gosec // G115: grid dimensions/counts are non-negative
		binary.LittleEndian.PutUint32(buf[off:off+4], uint32(v))
	}

	putFloat32(0, origin[0])
	putFloat32(4, origin[1])
	putFloat32(8, origin[2])
	putFloat32(12, p.Resolution)
	putUint32(16, p.Dim)
	putUint32(20, p.NumTypes)
	putUint32(24, numAtoms)
	putUint32(28, boolToInt(p.Binary))
	putFloat32(32, p.Gaussian)
	putFloat32(36, p.Final)
	putFloat32(40, p.Coef.A)
	putFloat32(44, p.Coef.B)
	putFloat32(48, p.Coef.C)
	putFloat32(52, p.RadiusScale)
	putUint32(56, boolToInt(indexed))
	// bytes 60:64 are padding, left zero.
	return buf
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func encodeFloat32s(data []float32) []byte {
	buf := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	return buf
}

func decodeFloat32s(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4 : i*4+4]))
	}
	return out
}

// Compile-time check that Backend implements raster.Backend.
var _ raster.Backend = (*Backend)(nil)
