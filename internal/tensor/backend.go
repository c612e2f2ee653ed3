package tensor

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
type Backend interface {
	// Name returns a human-readable backend name (e.g. "CPU", "WebGPU").
	Name() string
	// Device returns the compute device this backend targets.
	Device() Device
}
