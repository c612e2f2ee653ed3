// Package transform applies rigid rotation+translation to atom coordinates
// before the gridmaker core sees them, and back-propagates gradients through
// the rotation. The core is transform-agnostic: it only ever observes
// post-transform coordinates and the transform's declared center as the
// grid center.
package transform

// Rigid is a rotation about Center followed by a translation.
type Rigid struct {
	Center      [3]float64
	Rotation    [3][3]float64 // orthonormal rotation matrix
	Translation [3]float64
}

// Identity returns a no-op rigid transform centered at the origin.
func Identity() Rigid {
	return Rigid{
		Rotation: [3][3]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	}
}

// Forward applies the transform to a set of coordinates: translate to the
// origin, rotate, translate to Center, then apply Translation.
func (r Rigid) Forward(coords [][3]float32) [][3]float32 {
	out := make([][3]float32, len(coords))
	for i, c := range coords {
		x := float64(c[0]) - r.Center[0]
		y := float64(c[1]) - r.Center[1]
		z := float64(c[2]) - r.Center[2]

		rx := r.Rotation[0][0]*x + r.Rotation[0][1]*y + r.Rotation[0][2]*z
		ry := r.Rotation[1][0]*x + r.Rotation[1][1]*y + r.Rotation[1][2]*z
		rz := r.Rotation[2][0]*x + r.Rotation[2][1]*y + r.Rotation[2][2]*z

		out[i] = [3]float32{
			float32(rx + r.Center[0] + r.Translation[0]),
			float32(ry + r.Center[1] + r.Translation[1]),
			float32(rz + r.Center[2] + r.Translation[2]),
		}
	}
	return out
}

// Backward applies the inverse rotation to a gradient field, undoing the
// rotation Forward applied to coordinates so the gradient lands back in the
// pre-transform frame. Translation does not affect a gradient.
func (r Rigid) Backward(grad [][3]float32) [][3]float32 {
	out := make([][3]float32, len(grad))
	for i, g := range grad {
		x, y, z := float64(g[0]), float64(g[1]), float64(g[2])
		// Inverse of an orthonormal rotation is its transpose.
		out[i] = [3]float32{
			float32(r.Rotation[0][0]*x + r.Rotation[1][0]*y + r.Rotation[2][0]*z),
			float32(r.Rotation[0][1]*x + r.Rotation[1][1]*y + r.Rotation[2][1]*z),
			float32(r.Rotation[0][2]*x + r.Rotation[1][2]*y + r.Rotation[2][2]*z),
		}
	}
	return out
}
